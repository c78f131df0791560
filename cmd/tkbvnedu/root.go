package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tkbvnedu/internal/config"
	"tkbvnedu/internal/logging"
	svcstore "tkbvnedu/internal/service/store"
	"tkbvnedu/internal/store"
	"tkbvnedu/internal/subject"
)

type rootOptions struct {
	configPath string
	port       int
	devMode    bool
	dataDir    string
	noDB       bool
}

// app 命令共享的运行环境
type app struct {
	cfg        *config.AppConfig
	configPath string
	configSeen bool
	portForced bool
	noDB       bool
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	a := &app{}

	cmd := &cobra.Command{
		Use:           "tkbvnedu",
		Short:         "Chuyển thời khóa biểu (nhiều định dạng) sang bảng TKB_VNEDU",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config.toml path (default: next to the executable)")
	pf.IntVar(&opts.port, "port", 0, "HTTP port (only when config.toml does not set one)")
	pf.BoolVar(&opts.devMode, "dev", false, "development mode")
	pf.StringVar(&opts.dataDir, "data-dir", "", "data directory (overrides config)")
	pf.BoolVar(&opts.noDB, "no-db", false, "keep the subject mapping table in memory only")

	cmd.AddCommand(newServeCmd(a), newInspectCmd(a), newConvertCmd(a), newConfigCmd(a))
	return cmd
}

func (a *app) init(cmd *cobra.Command, opts rootOptions) error {
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if opts.configPath != "" {
		cfg, info, err = config.LoadFile(opts.configPath)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "load config failed, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{Path: info.Path}
	}
	if info.Path == "" {
		info.Path = config.DefaultPath()
	}

	if opts.port > 0 && !info.PortSpecified {
		cfg.Server.Port = opts.port
		a.portForced = true
	}
	if opts.devMode {
		cfg.Server.DevMode = true
		cfg.Log.Development = true
	}
	if opts.dataDir != "" {
		cfg.Data.DataDir = opts.dataDir
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.configPath = info.Path
	a.configSeen = info.Found
	a.noDB = opts.noDB
	a.logger = logger
	return nil
}

// openStores 打开映射表存储；--no-db 时使用内存存储且不记录历史
func (a *app) openStores() (subject.Store, *store.Store, func(), error) {
	if a.noDB {
		return svcstore.NewMemoryStore(), nil, func() {}, nil
	}

	if _, err := config.EnsureDataDir(a.cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.New(config.DBPath(a.cfg))
	if err != nil {
		return nil, nil, nil, err
	}
	return st, st, func() { _ = st.Close() }, nil
}
