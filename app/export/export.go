// Package export turns a session's coding state and its source grid into an
// ordered table with one record per source row.
package export

import (
	"strconv"
	"strings"

	"themecoder/app/interfaces"
)

// DefaultSeparator joins a row's codes in the codes column
const DefaultSeparator = ";"

// CodesHeader names the codes column
const CodesHeader = "codes"

// SelectionReader is the read side of a coding state store.
type SelectionReader interface {
	Selected(row int) []string
}

// Options controls the shape of the exported table.
type Options struct {
	Policy interfaces.IdentifierPolicy
	// SourceColumns lists grid column indices copied between the identifier
	// and codes columns. Nil exports the two-column table.
	SourceColumns []int
	Separator     string
}

// DefaultOptions returns the two-column, content-identified export.
func DefaultOptions() Options {
	return Options{
		Policy:    interfaces.IdentifierContent,
		Separator: DefaultSeparator,
	}
}

// Record is one exported row.
type Record struct {
	ID    string
	Cells []string // copied source columns, if any
	Codes string
}

// Fields returns the record as a flat row in header order.
func (r Record) Fields() []string {
	out := make([]string, 0, len(r.Cells)+2)
	out = append(out, r.ID)
	out = append(out, r.Cells...)
	return append(out, r.Codes)
}

// Table is the exported result.
type Table struct {
	Header  []string
	Records []Record
}

// Rows returns the header followed by every record's fields.
func (t *Table) Rows() [][]string {
	rows := make([][]string, 0, len(t.Records)+1)
	rows = append(rows, t.Header)
	for _, r := range t.Records {
		rows = append(rows, r.Fields())
	}
	return rows
}

// Transform builds the export table. There is exactly one record per grid row,
// in grid order. Codes appear in the order the store holds them, which is
// lexicographic. Transform does not modify the store.
func Transform(grid *interfaces.Grid, state SelectionReader, opts Options) *Table {
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	header := []string{opts.Policy.Header()}
	for _, c := range opts.SourceColumns {
		name := ""
		if grid != nil && c >= 0 && c < len(grid.Header) {
			name = grid.Header[c]
		}
		header = append(header, name)
	}
	header = append(header, CodesHeader)

	n := grid.RowCount()
	table := &Table{Header: header, Records: make([]Record, 0, n)}
	for i := 0; i < n; i++ {
		rec := Record{ID: identifier(grid, i, opts.Policy)}
		if len(opts.SourceColumns) > 0 {
			rec.Cells = make([]string, len(opts.SourceColumns))
			for j, c := range opts.SourceColumns {
				rec.Cells[j] = grid.Cell(i, c)
			}
		}
		if state != nil {
			rec.Codes = strings.Join(state.Selected(i), sep)
		}
		table.Records = append(table.Records, rec)
	}
	return table
}

func identifier(grid *interfaces.Grid, row int, policy interfaces.IdentifierPolicy) string {
	if policy == interfaces.IdentifierOrdinal {
		return strconv.Itoa(row + 1)
	}
	return grid.Cell(row, 0)
}
