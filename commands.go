package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"themecoder/app"
	"themecoder/app/interfaces"
	"themecoder/app/settings"
)

// cliOptions holds every flag value for one invocation
type cliOptions struct {
	configPath string

	// grid loading
	header       bool
	jpath        string
	pattern      string
	sourceColumn bool
	mode         string

	// annotate
	codebookPath  string
	outPath       string
	idPolicy      string
	sourceColumns bool

	previewRows int
	forceInit   bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "themecoder",
		Short: "Code paragraphs against a thematic codebook",
		Long: `themecoder walks through a table of paragraphs one row at a time and
lets you tick codes from a codebook, add new codes as you go, and export
the result as CSV or XLSX.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Settings file (default: "+settings.FileName+" next to the executable)")

	annotateCmd := &cobra.Command{
		Use:   "annotate <grid>",
		Short: "Start an interactive coding session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, opts, args[0])
		},
	}
	annotateCmd.Flags().StringVarP(&opts.codebookPath, "codebook", "c", "", "Codebook file (group lines start with the group marker)")
	annotateCmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Export destination; .xlsx writes a workbook")
	annotateCmd.Flags().StringVar(&opts.idPolicy, "id-policy", "", "Row identifier in the export: content or ordinal")
	annotateCmd.Flags().BoolVar(&opts.sourceColumns, "export-columns", false, "Include the visible source columns in the export (extended mode)")
	addGridFlags(annotateCmd, opts)

	codebookCmd := &cobra.Command{
		Use:   "codebook <file>",
		Short: "Print a codebook as it will be parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodebook(cmd, opts, args[0])
		},
	}

	previewCmd := &cobra.Command{
		Use:   "preview <grid>",
		Short: "Print the first rows of a grid as the session will show them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, opts, args[0])
		},
	}
	previewCmd.Flags().IntVarP(&opts.previewRows, "rows", "n", 5, "Number of rows to print")
	addGridFlags(previewCmd, opts)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the settings file",
	}
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts)
		},
	}
	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigPath(cmd, opts)
		},
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with every key set to its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, opts)
		},
	}
	configInitCmd.Flags().BoolVar(&opts.forceInit, "force", false, "Overwrite an existing settings file")
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)

	rootCmd.AddCommand(annotateCmd, codebookCmd, previewCmd, configCmd)
	return rootCmd
}

// addGridFlags registers the flags that control how a grid is read
func addGridFlags(cmd *cobra.Command, opts *cliOptions) {
	cmd.Flags().BoolVar(&opts.header, "header", false, "Treat the first row as a header")
	cmd.Flags().StringVar(&opts.jpath, "jpath", "", "JSONPath selecting the rows of a JSON source (e.g. $.items)")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "File pattern when the grid is a directory (e.g. **/*.csv)")
	cmd.Flags().BoolVar(&opts.sourceColumn, "source-column", false, "Add the source file name as a column for directory grids")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Column mode: legacy (first column) or extended (all columns)")
}

// loadSettings reads the settings file and applies any flags given on the
// command line.
func loadSettings(cmd *cobra.Command, opts *cliOptions) (*settings.SettingsService, settings.Settings, error) {
	svc := settings.NewSettingsService(opts.configPath)
	cfg, err := svc.GetSettings()
	if err != nil {
		return svc, cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("header") {
		cfg.NoHeaderRow = !opts.header
	}
	if flags.Changed("mode") {
		cfg.ColumnMode = opts.mode
	}
	if flags.Changed("id-policy") {
		cfg.IdentifierPolicy = opts.idPolicy
	}
	if flags.Changed("out") {
		cfg.OutputPath = opts.outPath
	}
	if flags.Changed("export-columns") {
		cfg.ExportSourceColumns = opts.sourceColumns
	}
	if err := cfg.Validate(); err != nil {
		return svc, cfg, err
	}
	return svc, cfg, nil
}

// newApp builds the App with a JSON logger on w and installs it as the default.
func newApp(cfg settings.Settings, w io.Writer) *app.App {
	logger := app.NewLogger(w, cfg.LogLevel)
	slog.SetDefault(logger)
	return app.NewApp(cfg, logger)
}

// gridOptions returns the loader options for this invocation.
func gridOptions(cfg settings.Settings, opts *cliOptions) interfaces.FileOptions {
	fo := cfg.FileOptions()
	fo.JPath = opts.jpath
	fo.FilePattern = opts.pattern
	fo.IncludeSourceColumn = opts.sourceColumn
	return fo
}

// openLogFile opens the log destination for append.
func openLogFile(cfg settings.Settings) (*os.File, error) {
	path := cfg.LogFilePath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
