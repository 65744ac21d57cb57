package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func runCodebook(cmd *cobra.Command, opts *cliOptions, path string) error {
	_, cfg, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to open codebook: %w", err)
	}

	a := newApp(cfg, cmd.ErrOrStderr())
	cb := a.LoadCodebook(path)

	out := cmd.OutOrStdout()
	fmt.Fprint(out, cb.String())
	fmt.Fprintf(out, "\n%d groups, %d codes\n", cb.Len(), cb.CodeCount())
	return nil
}
