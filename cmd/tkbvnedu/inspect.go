package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tkbvnedu/internal/subject"
)

func newInspectCmd(a *app) *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show detected layout, classes and subjects of a timetable file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(a, args[0], sheet, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet to inspect (default: best detected sheet)")
	return cmd
}

func runInspect(a *app, path, sheet string, out io.Writer) error {
	loaded, err := loadSheet(path, sheet)
	if err != nil {
		return err
	}

	mappings, _, closeFn, err := a.openStores()
	if err != nil {
		return err
	}
	defer closeFn()

	saved, err := mappings.Load()
	if err != nil {
		return fmt.Errorf("load mappings: %w", err)
	}

	fmt.Fprintf(out, "File: %s\n", loaded.path)
	for _, name := range loaded.workbook.SheetNames() {
		r := loaded.recognition[name]
		marker := " "
		if name == loaded.sheet {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-20s layout=%-12s header=%d classes=%d\n", marker, name, r.Layout, r.HeaderRow, len(r.Classes))
	}

	r := loaded.recognition[loaded.sheet]
	fmt.Fprintf(out, "\nSheet %q (%s)\n", loaded.sheet, r.Layout)
	fmt.Fprintf(out, "Classes: %s\n", strings.Join(r.Classes, ", "))

	entries := subject.Annotate(subject.Extract(loaded.grid, subject.Vocabulary()), saved)
	fmt.Fprintf(out, "Subjects (%d):\n", len(entries))
	for _, e := range entries {
		canonical := e.Canonical
		if canonical == "" {
			canonical = "(unmapped)"
		}
		fmt.Fprintf(out, "  %s -> %s\n", e.Raw, canonical)
	}
	return nil
}
