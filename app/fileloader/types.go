// Package fileloader turns source files into the rectangular grid of string
// cells reviewed in a session. It supports CSV, XLSX and JSON files, their
// gzip/bzip2/xz compressed variants, and directories of such files.
package fileloader

import (
	"errors"

	"themecoder/app/interfaces"
)

// FileType represents the type of data file being processed
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeXLSX
	FileTypeJSON
)

// String returns the string representation of FileType
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeXLSX:
		return "XLSX"
	case FileTypeJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// FileOptions is the shared loader options type.
type FileOptions = interfaces.FileOptions

// DefaultFileOptions returns the default parsing options
func DefaultFileOptions() FileOptions {
	return interfaces.DefaultFileOptions()
}

// SourceColumnName is the extra column added to directory grids when
// FileOptions.IncludeSourceColumn is set.
const SourceColumnName = "__source_file__"

var (
	// ErrEmptyPath is returned when no source path was given.
	ErrEmptyPath = errors.New("file path is empty")
	// ErrJPathRequired is returned for JSON sources without a JSONPath expression.
	ErrJPathRequired = errors.New("JSONPath expression is required for JSON files")
	// ErrPatternRequired is returned for directory sources without a file pattern.
	ErrPatternRequired = errors.New("file pattern is required for directories (e.g. *.csv)")
)
