package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tkbvnedu/internal/config"
	"tkbvnedu/internal/model"
	"tkbvnedu/internal/service/excel"
	"tkbvnedu/internal/store"
	"tkbvnedu/internal/transform"
)

type convertOptions struct {
	in             string
	sheet          string
	morning        string
	morningSheet   string
	afternoon      string
	afternoonSheet string
	out            string
}

func newConvertCmd(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert timetable file(s) into a TKB_VNEDU workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(a, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.in, "in", "", "single timetable file holding both sessions")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "sheet of --in (default: best detected sheet)")
	cmd.Flags().StringVar(&opts.morning, "morning", "", "morning timetable file (session forced to S)")
	cmd.Flags().StringVar(&opts.morningSheet, "morning-sheet", "", "sheet of --morning")
	cmd.Flags().StringVar(&opts.afternoon, "afternoon", "", "afternoon timetable file (session forced to C)")
	cmd.Flags().StringVar(&opts.afternoonSheet, "afternoon-sheet", "", "sheet of --afternoon")
	cmd.Flags().StringVar(&opts.out, "out", "", "output .xlsx path (default: <data_dir>/exports/<file_prefix>_<time>.xlsx)")

	return cmd
}

func (o convertOptions) validate() error {
	dual := o.morning != "" || o.afternoon != ""
	switch {
	case o.in != "" && dual:
		return errors.New("use either --in or --morning/--afternoon, not both")
	case o.in == "" && !dual:
		return errors.New("one of --in, --morning, --afternoon is required")
	}
	return nil
}

func (o convertOptions) mode() string {
	if o.in != "" {
		return "single"
	}
	return "dual"
}

func runConvert(a *app, opts convertOptions, out io.Writer) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if strings.TrimSpace(opts.out) == "" {
		if _, err := config.EnsureDataDir(a.cfg); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		name := fmt.Sprintf("%s_%s.xlsx", a.cfg.Export.FilePrefix, time.Now().Format("20060102_150405"))
		opts.out = config.ExportPath(a.cfg, name)
	}

	mappings, history, closeFn, err := a.openStores()
	if err != nil {
		return err
	}
	defer closeFn()

	svc := transform.NewService(mappings, a.logger)

	var (
		result  *transform.Result
		sources []string
	)
	if opts.in != "" {
		loaded, err := loadSheet(opts.in, opts.sheet)
		if err != nil {
			return err
		}
		sources = append(sources, opts.in)
		if result, err = svc.Single(loaded.grid); err != nil {
			return err
		}
	} else {
		var morning, afternoon model.Grid
		if opts.morning != "" {
			loaded, err := loadSheet(opts.morning, opts.morningSheet)
			if err != nil {
				return err
			}
			morning = loaded.grid
			sources = append(sources, opts.morning)
		}
		if opts.afternoon != "" {
			loaded, err := loadSheet(opts.afternoon, opts.afternoonSheet)
			if err != nil {
				return err
			}
			afternoon = loaded.grid
			sources = append(sources, opts.afternoon)
		}
		if result, err = svc.Dual(morning, afternoon); err != nil {
			return err
		}
	}

	writer := excel.NewWriter(excel.WriterOptions{
		SheetName: a.cfg.Export.SheetName,
		FontName:  a.cfg.Export.FontName,
	})
	data, err := writer.WriteToBytes(result.Rows)
	if err == nil {
		err = os.WriteFile(opts.out, data, 0644)
	}
	recordConversion(a.logger, history, opts, sources, result, err)
	if err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}

	fmt.Fprintf(out, "Wrote %d rows to %s\n", len(result.Rows), opts.out)
	keys := make([]string, 0, len(result.Layouts))
	for k := range result.Layouts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %s\n", k, result.Layouts[k])
	}
	if len(result.Unmapped) > 0 {
		fmt.Fprintf(out, "Unmapped subjects (%d): %s\n", len(result.Unmapped), strings.Join(result.Unmapped, ", "))
	}
	return nil
}

func recordConversion(logger *zap.Logger, history *store.Store, opts convertOptions, sources []string, result *transform.Result, runErr error) {
	if history == nil {
		return
	}
	id, err := history.CreateConversionLog(opts.mode(), sources)
	if err != nil {
		logger.Warn("create conversion log failed", zap.Error(err))
		return
	}

	status, message := store.ConversionSuccess, ""
	if runErr != nil {
		status, message = store.ConversionFailed, runErr.Error()
	}
	layouts := make([]string, 0, len(result.Layouts))
	for k, v := range result.Layouts {
		layouts = append(layouts, k+"="+string(v))
	}
	sort.Strings(layouts)

	if err := history.CompleteConversionLog(id, strings.Join(layouts, ","), len(result.Rows), len(result.Unmapped), status, message); err != nil {
		logger.Warn("complete conversion log failed", zap.Error(err))
	}
	if runErr != nil {
		return
	}
	settings := map[string]string{
		store.ConfigLastMode:       opts.mode(),
		store.ConfigLastOutputFile: opts.out,
	}
	if err := history.SetConfigs(settings); err != nil {
		logger.Warn("save settings failed", zap.Error(err))
	}
}
