package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"themecoder/app/codebook"
	"themecoder/app/export"
	"themecoder/app/fileloader"
	"themecoder/app/interfaces"
	"themecoder/app/session"
	"themecoder/app/settings"
)

// App struct
type App struct {
	settings settings.Settings
	logger   *slog.Logger

	// clipboard init
	clipOnce sync.Once
	clipOK   bool
}

// NewApp creates a new App for the given settings. A nil logger discards output.
func NewApp(cfg settings.Settings, logger *slog.Logger) *App {
	if logger == nil {
		logger = NewLogger(io.Discard, "error")
	}
	return &App{
		settings: cfg,
		logger:   logger,
	}
}

// NewLogger returns a JSON slog logger writing to w at the named level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// ParseLevel maps a settings level name to a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Settings returns the settings the app was created with.
func (a *App) Settings() settings.Settings {
	return a.settings
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Log writes a message at the named level.
func (a *App) Log(level, message string) {
	if a == nil || a.logger == nil {
		return
	}
	a.logger.Log(context.Background(), ParseLevel(level), message)
}

// OpenGrid loads the source grid at path.
func (a *App) OpenGrid(path string, opts interfaces.FileOptions) (*interfaces.Grid, error) {
	if opts.MaxFiles == 0 {
		opts.MaxFiles = a.settings.MaxDirectoryFiles
	}
	grid, err := fileloader.LoadGrid(path, opts, func(stage string, current, total int64, message string) {
		a.logger.Debug("load progress", "stage", stage, "current", current, "total", total, "message", message)
	})
	if err != nil {
		a.Log("error", fmt.Sprintf("Failed to load %s: %v", path, err))
		return nil, err
	}
	if grid.Warning != "" {
		a.logger.Warn("source partially read", "source", path, "warning", grid.Warning)
	}
	a.logger.Info("source loaded",
		"source", grid.Source,
		"fingerprint", grid.Fingerprint,
		"rows", grid.RowCount(),
		"columns", grid.ColumnCount())
	return grid, nil
}

// LoadCodebook parses the codebook at path using the configured group marker.
// A missing or unreadable file gives an empty codebook, so a session can run
// on dynamic codes alone.
func (a *App) LoadCodebook(path string) *codebook.Codebook {
	marker := a.settings.GroupMarker
	if path == "" {
		return codebook.ParseWithMarker(nil, marker)
	}

	cb, err := codebook.Open(path, marker)
	switch {
	case errors.Is(err, os.ErrNotExist):
		a.logger.Warn("codebook not found, starting empty", "path", path)
	case err != nil:
		a.logger.Warn("codebook unreadable, starting empty", "path", path, "error", err)
	default:
		a.logger.Info("codebook loaded", "path", path, "groups", cb.Len(), "codes", cb.CodeCount())
	}
	return cb
}

// NewSession starts a coding session over grid using the configured column mode.
func (a *App) NewSession(cb *codebook.Codebook, grid *interfaces.Grid) (*session.Session, error) {
	mode, err := a.settings.Mode()
	if err != nil {
		return nil, err
	}
	sess := session.New(cb, grid, mode)
	a.logger.Info("session started",
		"session_id", sess.ID(),
		"instance_id", a.settings.InstanceID,
		"source", sess.Grid().Source,
		"fingerprint", sess.Grid().Fingerprint,
		"rows", sess.RowCount(),
		"mode", mode.String())
	return sess, nil
}

// ExportOptions builds the export options for sess from the settings.
func (a *App) ExportOptions(sess *session.Session) (export.Options, error) {
	policy, err := a.settings.Policy()
	if err != nil {
		return export.Options{}, err
	}
	opts := export.Options{
		Policy:    policy,
		Separator: a.settings.CodeSeparator,
	}
	if a.settings.ExportSourceColumns && sess.Mode() == interfaces.ColumnModeExtended {
		opts.SourceColumns = sess.Mode().Columns(sess.Grid().ColumnCount())
	}
	return opts, nil
}

// ExportTable transforms the session's state into the export table.
func (a *App) ExportTable(sess *session.Session) (*export.Table, error) {
	opts, err := a.ExportOptions(sess)
	if err != nil {
		return nil, err
	}
	return export.Transform(sess.Grid(), sess, opts), nil
}

// Export writes the session's export table to path (or the configured output
// path when empty) and returns the number of records written.
func (a *App) Export(sess *session.Session, path string) (int, error) {
	if path == "" {
		path = a.settings.OutputPath
	}
	table, err := a.ExportTable(sess)
	if err != nil {
		return 0, err
	}

	meta := export.Metadata{
		SessionID:   sess.ID(),
		Source:      sess.Grid().Source,
		Fingerprint: sess.Grid().Fingerprint,
	}
	if err := export.WriteFile(path, table, meta); err != nil {
		a.Log("error", fmt.Sprintf("Export to %s failed: %v", path, err))
		return 0, err
	}

	a.logger.Info("export written",
		"session_id", sess.ID(),
		"path", path,
		"format", export.DetectFormat(path).String(),
		"records", len(table.Records))
	return len(table.Records), nil
}
