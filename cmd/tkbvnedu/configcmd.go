package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tkbvnedu/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration, or write it to config.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(a, write, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "save the effective configuration to the config file")
	return cmd
}

func runConfig(a *app, write bool, out io.Writer) error {
	if write {
		if err := config.SaveFile(a.configPath, a.cfg); err != nil {
			return fmt.Errorf("write %s: %w", a.configPath, err)
		}
		fmt.Fprintf(out, "Wrote %s\n", a.configPath)
		return nil
	}

	data, err := config.Encode(a.cfg)
	if err != nil {
		return err
	}
	state := "not found, defaults in use"
	if a.configSeen {
		state = "loaded"
	}
	fmt.Fprintf(out, "# %s (%s)\n", a.configPath, state)
	_, err = out.Write(data)
	return err
}
