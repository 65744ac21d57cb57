package fileloader

import (
	"fmt"
	"os"
	"strings"

	"themecoder/app/interfaces"
)

// loadedFile is a single parsed source before it becomes a grid
type loadedFile struct {
	header      []string
	rows        [][]string
	fingerprint string
	warning     string
}

// LoadGrid reads the source at path into a rectangular grid. Directories are
// merged using opts.FilePattern. Rows keep source order, and short rows are
// padded with empty cells.
func LoadGrid(path string, opts FileOptions, progress interfaces.ProgressCallback) (*interfaces.Grid, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if opts.IsDirectory || IsDirectory(path) {
		return loadDirectory(path, opts, progress)
	}

	if progress != nil {
		progress("loading", 0, -1, path)
	}
	loaded, err := loadFile(path, opts)
	if err != nil {
		return nil, err
	}
	if progress != nil {
		n := int64(len(loaded.rows))
		progress("loading", n, n, "done")
	}

	return &interfaces.Grid{
		Source:      path,
		Fingerprint: loaded.fingerprint,
		Header:      loaded.header,
		Rows:        loaded.rows,
		Warning:     loaded.warning,
	}, nil
}

// loadFile reads, decompresses and parses one file.
func loadFile(path string, opts FileOptions) (*loadedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fingerprint, err := Fingerprint(raw)
	if err != nil {
		return nil, err
	}

	fileType, compression := DetectFileTypeAndCompression(path, raw)
	result, err := Decompress(raw, compression)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	warnings := []string{result.Warning}

	var records [][]string
	headerFromData := !opts.NoHeaderRow
	switch fileType {
	case FileTypeXLSX:
		records, err = parseXLSX(result.Data)
		records = dropEmptyRecords(records)
	case FileTypeJSON:
		records, err = parseJSON(result.Data, opts.JPath)
		// JSON always carries its own header
		headerFromData = true
	default:
		var warning string
		records, warning, err = parseCSV(result.Data)
		warnings = append(warnings, warning)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var header []string
	if headerFromData && len(records) > 0 {
		header, records = records[0], records[1:]
	}

	width := len(header)
	for _, rec := range records {
		width = max(width, len(rec))
	}
	header = NormalizeHeaders(padRow(header, width))

	return &loadedFile{
		header:      header,
		rows:        padRows(records, width),
		fingerprint: fingerprint,
		warning:     joinWarnings(warnings),
	}, nil
}

// padRow returns row extended with empty cells to width
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func padRows(rows [][]string, width int) [][]string {
	for i := range rows {
		rows[i] = padRow(rows[i], width)
	}
	return rows
}

func dropEmptyRecords(records [][]string) [][]string {
	out := records[:0]
	for _, rec := range records {
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out
}

func joinWarnings(warnings []string) string {
	var parts []string
	for _, w := range warnings {
		if w != "" {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, "; ")
}
