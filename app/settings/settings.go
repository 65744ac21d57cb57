package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"themecoder/app/interfaces"
)

// FileName is the settings file looked up next to the executable.
const FileName = "themecoder.yml"

// settingsValidate is shared by every Validate call.
var settingsValidate *validator.Validate

func init() {
	settingsValidate = validator.New()
	_ = settingsValidate.RegisterValidation("marker", validateMarker)
}

// validateMarker rejects group markers containing whitespace, which would be
// trimmed away before a line is ever inspected.
func validateMarker(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

// Validate checks every field against its constraints.
func (s Settings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Policy returns the parsed identifier policy.
func (s Settings) Policy() (interfaces.IdentifierPolicy, error) {
	return interfaces.ParseIdentifierPolicy(s.IdentifierPolicy)
}

// Mode returns the parsed column mode.
func (s Settings) Mode() (interfaces.ColumnMode, error) {
	return interfaces.ParseColumnMode(s.ColumnMode)
}

// FileOptions returns the loader options implied by these settings.
func (s Settings) FileOptions() interfaces.FileOptions {
	opts := interfaces.DefaultFileOptions()
	opts.NoHeaderRow = s.NoHeaderRow
	opts.MaxFiles = s.MaxDirectoryFiles
	return opts
}

// LogFilePath returns the log destination, defaulting to the temp dir.
func (s Settings) LogFilePath() string {
	if p := strings.TrimSpace(s.LogFile); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "themecoder.log")
}

// overlay applies every recognised key present in m onto settings. Values of
// the wrong type or out of range are ignored.
func overlay(settings Settings, m map[string]any) Settings {
	if v, ok := m["identifier_policy"]; ok {
		if vs, oks := v.(string); oks {
			settings.IdentifierPolicy = strings.TrimSpace(vs)
		}
	}
	if v, ok := m["column_mode"]; ok {
		if vs, oks := v.(string); oks {
			settings.ColumnMode = strings.TrimSpace(vs)
		}
	}
	if v, ok := m["no_header_row"]; ok {
		if vb, okb := v.(bool); okb {
			settings.NoHeaderRow = vb
		}
	}
	if v, ok := m["group_marker"]; ok {
		if vs, oks := v.(string); oks && vs != "" {
			settings.GroupMarker = vs
		}
	}
	if v, ok := m["code_separator"]; ok {
		if vs, oks := v.(string); oks && vs != "" {
			settings.CodeSeparator = vs
		}
	}
	if v, ok := m["output_path"]; ok {
		if vs, oks := v.(string); oks && strings.TrimSpace(vs) != "" {
			settings.OutputPath = strings.TrimSpace(vs)
		}
	}
	if v, ok := m["export_source_columns"]; ok {
		if vb, okb := v.(bool); okb {
			settings.ExportSourceColumns = vb
		}
	}
	if v, ok := m["log_level"]; ok {
		if vs, oks := v.(string); oks {
			settings.LogLevel = strings.ToLower(strings.TrimSpace(vs))
		}
	}
	if v, ok := m["log_file"]; ok {
		if vs, oks := v.(string); oks {
			settings.LogFile = vs
		}
	}
	if v, ok := m["max_directory_files"]; ok {
		if vi, oki := v.(int); oki && vi >= 1 {
			settings.MaxDirectoryFiles = vi
		}
	}
	if v, ok := m["instance_id"]; ok {
		if vs, oks := v.(string); oks {
			settings.InstanceID = vs
		}
	}
	return settings
}

// diff builds a minimal map containing only non-default values to avoid
// zero-value serialization pitfalls.
func diff(in Settings) map[string]any {
	data := make(map[string]any)
	if in.IdentifierPolicy != defaultSettings.IdentifierPolicy {
		data["identifier_policy"] = in.IdentifierPolicy
	}
	if in.ColumnMode != defaultSettings.ColumnMode {
		data["column_mode"] = in.ColumnMode
	}
	if in.NoHeaderRow != defaultSettings.NoHeaderRow {
		data["no_header_row"] = in.NoHeaderRow
	}
	if in.GroupMarker != defaultSettings.GroupMarker {
		data["group_marker"] = in.GroupMarker
	}
	if in.CodeSeparator != defaultSettings.CodeSeparator {
		data["code_separator"] = in.CodeSeparator
	}
	if strings.TrimSpace(in.OutputPath) != defaultSettings.OutputPath {
		data["output_path"] = strings.TrimSpace(in.OutputPath)
	}
	if in.ExportSourceColumns != defaultSettings.ExportSourceColumns {
		data["export_source_columns"] = in.ExportSourceColumns
	}
	if in.LogLevel != defaultSettings.LogLevel {
		data["log_level"] = in.LogLevel
	}
	if strings.TrimSpace(in.LogFile) != "" {
		data["log_file"] = strings.TrimSpace(in.LogFile)
	}
	if in.MaxDirectoryFiles != defaultSettings.MaxDirectoryFiles && in.MaxDirectoryFiles >= 1 {
		data["max_directory_files"] = in.MaxDirectoryFiles
	}
	if id := strings.TrimSpace(in.InstanceID); id != "" {
		data["instance_id"] = id
	}
	return data
}

// decode parses a settings document onto the defaults.
func decode(b []byte) (Settings, error) {
	settings := defaultSettings
	// Unmarshal into a generic map to detect key presence
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return settings, fmt.Errorf("failed to parse settings: %w", err)
	}
	return overlay(settings, m), nil
}

func defaultSettingsFilePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}
