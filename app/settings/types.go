package settings

// Settings holds application settings that can be overridden by the user.
type Settings struct {
	// How exported rows are identified: "content" echoes the paragraph text, "ordinal" numbers rows from 1
	IdentifierPolicy string `yaml:"identifier_policy" json:"identifier_policy" validate:"oneof=content ordinal"`
	// Which cells of a row are shown: "legacy" shows the first column only, "extended" shows every column
	ColumnMode string `yaml:"column_mode" json:"column_mode" validate:"oneof=legacy extended"`
	// Remove omitempty so that false is serialized (we need to persist explicit overrides)
	NoHeaderRow bool `yaml:"no_header_row" json:"no_header_row"`
	// Prefix that marks a group line in codebook files
	GroupMarker string `yaml:"group_marker" json:"group_marker" validate:"required,marker"`
	// Separator between codes in the exported codes column
	CodeSeparator string `yaml:"code_separator" json:"code_separator" validate:"required"`
	// Default export destination; .xlsx writes a workbook, anything else CSV
	OutputPath string `yaml:"output_path" json:"output_path" validate:"required"`
	// Include the visible source columns in the export (extended mode only)
	ExportSourceColumns bool `yaml:"export_source_columns" json:"export_source_columns"`
	// Minimum level written to the log
	LogLevel string `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	// Log destination while the terminal UI is running. Empty means the temp dir.
	LogFile string `yaml:"log_file,omitempty" json:"log_file,omitempty"`
	// Maximum number of files when opening a directory as a single grid
	MaxDirectoryFiles int `yaml:"max_directory_files" json:"max_directory_files" validate:"min=1"`
	// InstanceID is a unique identifier for this installation
	InstanceID string `yaml:"instance_id,omitempty" json:"instance_id,omitempty" validate:"omitempty,uuid"`
}

// defaultSettings defines the built-in defaults.
var defaultSettings = Settings{
	IdentifierPolicy: "content",
	ColumnMode:       "legacy",
	// Paragraph files are plain lists with no header line
	NoHeaderRow:   true,
	GroupMarker:   "#",
	CodeSeparator: ";",
	OutputPath:    "coded_output.csv",
	LogLevel:      "info",
	// Default max files when opening a directory
	MaxDirectoryFiles: 500,
}

// Defaults returns a copy of the built-in defaults.
func Defaults() Settings {
	return defaultSettings
}
