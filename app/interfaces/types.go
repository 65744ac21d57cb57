package interfaces

import (
	"fmt"
	"strings"
)

// FileOptions contains the options that define how a source file is turned into a grid.
type FileOptions struct {
	// Common file options
	JPath       string `json:"jpath,omitempty" yaml:"jpath,omitempty"`
	NoHeaderRow bool   `json:"noHeaderRow,omitempty" yaml:"noHeaderRow,omitempty"`

	// Directory loading options
	IsDirectory         bool   `json:"isDirectory,omitempty" yaml:"isDirectory,omitempty"`
	FilePattern         string `json:"filePattern,omitempty" yaml:"filePattern,omitempty"`
	IncludeSourceColumn bool   `json:"includeSourceColumn,omitempty" yaml:"includeSourceColumn,omitempty"`
	MaxFiles            int    `json:"maxFiles,omitempty" yaml:"maxFiles,omitempty"`
}

// DefaultFileOptions returns the default file options. Paragraph files are
// read without a header row.
func DefaultFileOptions() FileOptions {
	return FileOptions{
		NoHeaderRow: true,
	}
}

// Grid is the rectangular table of string cells produced by a loader.
// Rows are never created or destroyed once a grid has been loaded.
type Grid struct {
	Source      string     // Path the grid was loaded from
	Fingerprint string     // HighwayHash of the raw source bytes
	Header      []string   // Normalised column names
	Rows        [][]string // Data rows, all len(Header) wide
	Warning     string     // Non-empty if the source was only partially readable
}

// RowCount returns the number of data rows.
func (g *Grid) RowCount() int {
	if g == nil {
		return 0
	}
	return len(g.Rows)
}

// ColumnCount returns the grid width.
func (g *Grid) ColumnCount() int {
	if g == nil {
		return 0
	}
	return len(g.Header)
}

// Cell returns the cell at (row, col) or "" when out of range.
func (g *Grid) Cell(row, col int) string {
	if g == nil || row < 0 || row >= len(g.Rows) {
		return ""
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ColumnMode selects which cells of a row are exposed to the reviewer.
type ColumnMode int

const (
	// ColumnModeLegacy exposes exactly column 0 of every row.
	ColumnModeLegacy ColumnMode = iota
	// ColumnModeExtended exposes every column, each rendered independently.
	ColumnModeExtended
)

// String returns the settings name of the mode
func (m ColumnMode) String() string {
	switch m {
	case ColumnModeExtended:
		return "extended"
	default:
		return "legacy"
	}
}

// ParseColumnMode converts a settings value into a ColumnMode.
func ParseColumnMode(s string) (ColumnMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return ColumnModeLegacy, nil
	case "extended":
		return ColumnModeExtended, nil
	default:
		return ColumnModeLegacy, fmt.Errorf("unknown column mode %q (want legacy or extended)", s)
	}
}

// Project returns the cells of row visible under this mode.
func (m ColumnMode) Project(row []string) []string {
	if m == ColumnModeExtended {
		return row
	}
	if len(row) == 0 {
		return []string{""}
	}
	return row[:1]
}

// Columns returns the column indices visible under this mode for a grid of the given width.
func (m ColumnMode) Columns(width int) []int {
	if m != ColumnModeExtended {
		return []int{0}
	}
	cols := make([]int, width)
	for i := range cols {
		cols[i] = i
	}
	return cols
}

// IdentifierPolicy selects what identifies a row in exported output.
type IdentifierPolicy int

const (
	// IdentifierContent echoes the first cell's raw text.
	IdentifierContent IdentifierPolicy = iota
	// IdentifierOrdinal numbers rows starting at 1.
	IdentifierOrdinal
)

// String returns the settings name of the policy
func (p IdentifierPolicy) String() string {
	switch p {
	case IdentifierOrdinal:
		return "ordinal"
	default:
		return "content"
	}
}

// Header returns the export column name for the identifier.
func (p IdentifierPolicy) Header() string {
	if p == IdentifierOrdinal {
		return "row"
	}
	return "paragraph"
}

// ParseIdentifierPolicy converts a settings value into an IdentifierPolicy.
func ParseIdentifierPolicy(s string) (IdentifierPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "content":
		return IdentifierContent, nil
	case "ordinal":
		return IdentifierOrdinal, nil
	default:
		return IdentifierContent, fmt.Errorf("unknown identifier policy %q (want content or ordinal)", s)
	}
}

// ProgressCallback reports loading progress: stage name, rows done, rows total (-1 if unknown).
type ProgressCallback func(stage string, current, total int64, message string)
