package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is an output file format.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

// String returns the string representation of Format
func (f Format) String() string {
	if f == FormatXLSX {
		return "XLSX"
	}
	return "CSV"
}

// DetectFormat picks the output format from the path's extension. Anything
// that is not .xlsx is written as CSV.
func DetectFormat(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// WriteCSV writes the table as comma-separated text. Fields containing commas,
// quotes or newlines are quoted.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Rows()); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// CSVBytes returns the table rendered by WriteCSV.
func CSVBytes(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SheetName is the worksheet that holds the exported table
const SheetName = "coded"

// Metadata is stored in the workbook properties of XLSX exports.
type Metadata struct {
	SessionID   string
	Source      string
	Fingerprint string
}

// WriteXLSX writes the table into a single worksheet of a new workbook at path.
func WriteXLSX(path string, t *Table, meta Metadata) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}
	for i, row := range t.Rows() {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       "Coded output",
		Subject:     filepath.Base(meta.Source),
		Identifier:  meta.SessionID,
		Description: meta.Fingerprint,
		Creator:     "themecoder",
	}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteFile writes the table to path in the format implied by its extension.
// CSV output is written to a temporary file first and renamed into place.
func WriteFile(path string, t *Table, meta Metadata) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}
	if DetectFormat(path) == FormatXLSX {
		return WriteXLSX(path, t, meta)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".coded-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := WriteCSV(tmp, t); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}
