package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"themecoder/app/tui"
)

var errNoTerminal = errors.New("annotate needs an interactive terminal; use preview to inspect a grid from scripts")

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runAnnotate(cmd *cobra.Command, opts *cliOptions, gridPath string) error {
	svc, cfg, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNoTerminal
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	var instanceErr error
	if id, err := svc.EnsureInstanceID(); err != nil {
		instanceErr = err
	} else {
		cfg.InstanceID = id
	}
	a := newApp(cfg, logFile)
	if instanceErr != nil {
		a.Logger().Warn("could not record instance id", "error", instanceErr)
	}

	grid, err := a.OpenGrid(gridPath, gridOptions(cfg, opts))
	if err != nil {
		return err
	}
	if grid.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", grid.Warning)
	}
	cb := a.LoadCodebook(opts.codebookPath)
	sess, err := a.NewSession(cb, grid)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(sess, a, cfg.OutputPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	progress := sess.Progress()
	a.Logger().Info("session ended",
		"session_id", sess.ID(),
		"coded_rows", progress.CodedRows,
		"total_rows", progress.TotalRows)
	fmt.Fprintf(cmd.OutOrStdout(), "Coded %d of %d rows (session %s)\n",
		progress.CodedRows, progress.TotalRows, sess.ID())
	return nil
}
