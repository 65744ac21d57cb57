package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func runPreview(cmd *cobra.Command, opts *cliOptions, gridPath string) error {
	_, cfg, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	a := newApp(cfg, cmd.ErrOrStderr())
	grid, err := a.OpenGrid(gridPath, gridOptions(cfg, opts))
	if err != nil {
		return err
	}
	sess, err := a.NewSession(nil, grid)
	if err != nil {
		return err
	}

	n := min(max(opts.previewRows, 0), sess.RowCount())
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, append([]string{strconv.Itoa(i + 1)}, sess.Cells(i)...))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(append([]string{"#"}, sess.Headers()...)...).
		Rows(rows...)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "%d of %d rows, %s mode, fingerprint %s\n",
		n, sess.RowCount(), sess.Mode(), grid.Fingerprint)
	if grid.Warning != "" {
		fmt.Fprintf(out, "warning: %s\n", grid.Warning)
	}
	return nil
}
