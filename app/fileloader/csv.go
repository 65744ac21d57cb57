package fileloader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// utf8BOM is stripped from the start of text sources
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// parseCSV reads every record of CSV data. Records may have differing widths;
// LoadGrid pads them afterwards. A malformed record stops parsing and the
// records read so far are returned with a warning.
func parseCSV(data []byte) ([][]string, string, error) {
	data = trimBOM(data)
	if len(data) == 0 {
		return nil, "", nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	// Allow variable number of fields per record to handle ragged files
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(records) == 0 {
				return nil, "", fmt.Errorf("failed to parse csv: %w", err)
			}
			return records, fmt.Sprintf("CSV parsing stopped after %d records: %v", len(records), err), nil
		}
		records = append(records, rec)
	}
	return records, "", nil
}
