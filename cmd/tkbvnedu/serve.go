package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tkbvnedu/internal/config"
	"tkbvnedu/internal/server"
	"tkbvnedu/internal/util"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(a)
		},
	}
}

func runServe(a *app) error {
	cfg := a.cfg
	log := a.logger

	if !a.portForced {
		port, err := util.FindAvailablePort(cfg.Server.Port, 20)
		if err != nil {
			return err
		}
		cfg.Server.Port = port
	}

	srv, closeFn, err := a.newServer()
	if err != nil {
		return err
	}
	defer closeFn()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(addr)
	}()

	if !cfg.Server.DevMode {
		log.Info("opening browser", zap.String("url", url))
		if err := util.OpenBrowser(url); err != nil {
			log.Warn("cannot open browser, visit manually", zap.String("url", url), zap.Error(err))
		}
	} else {
		log.Info("development mode", zap.String("url", url))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		log.Info("shutting down")
		return nil
	}
}

// newServer 按 --no-db 选择存储并创建 HTTP 服务器，closeFn 释放存储
func (a *app) newServer() (*server.Server, func(), error) {
	mappings, history, closeFn, err := a.openStores()
	if err != nil {
		return nil, nil, fmt.Errorf("initialize storage: %w", err)
	}
	if history != nil {
		a.logger.Info("storage",
			zap.String("data_dir", config.DataDir(a.cfg)),
			zap.String("db", history.Path()),
		)
	} else {
		a.logger.Info("in-memory mapping table, history disabled")
	}
	return server.New(a.cfg, mappings, history, a.logger), closeFn, nil
}
