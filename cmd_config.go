package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"themecoder/app/settings"
)

func runConfigShow(cmd *cobra.Command, opts *cliOptions) error {
	_, cfg, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}

func runConfigPath(cmd *cobra.Command, opts *cliOptions) error {
	path, err := settings.NewSettingsService(opts.configPath).Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigInit(cmd *cobra.Command, opts *cliOptions) error {
	svc := settings.NewSettingsService(opts.configPath)
	path, err := svc.WriteDefaults(opts.forceInit)
	if errors.Is(err, settings.ErrSettingsExist) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
