// Package session holds the state of one annotation session: the per-row code
// selections, the codes added while reviewing, and the row cursor.
//
// A Session is driven by a single reviewer. Each session owns its Store and
// Cursor outright; only the Codebook and the source Grid are shared, and both
// are treated as read-only.
package session

import (
	"sort"

	"themecoder/app/codebook"
	"themecoder/app/interfaces"

	"github.com/google/uuid"
)

// Option is one selectable code in a group's list.
type Option struct {
	Group    string
	Label    string
	Dynamic  bool // added during the session rather than read from the codebook
	Selected bool
}

// Progress summarises how much of the grid has been coded.
type Progress struct {
	CodedRows int
	TotalRows int
	Usage     map[string]int // label -> rows it is selected on
}

// Session is the state object owned by one annotation session.
type Session struct {
	id       string
	codebook *codebook.Codebook
	grid     *interfaces.Grid
	mode     interfaces.ColumnMode
	store    *Store
	cursor   Cursor
}

// New creates a session over grid using cb as the static vocabulary. The
// column mode is resolved here once for the lifetime of the session.
func New(cb *codebook.Codebook, grid *interfaces.Grid, mode interfaces.ColumnMode) *Session {
	if cb == nil {
		cb = codebook.New()
	}
	if grid == nil {
		grid = &interfaces.Grid{}
	}
	s := &Session{
		id:       uuid.New().String(),
		codebook: cb,
		grid:     grid,
		mode:     mode,
		store:    NewStore(),
	}
	s.store.Initialize(grid.RowCount())
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Codebook returns the shared static codebook.
func (s *Session) Codebook() *codebook.Codebook { return s.codebook }

// Grid returns the shared source grid.
func (s *Session) Grid() *interfaces.Grid { return s.grid }

// Mode returns the column mode the session was created with.
func (s *Session) Mode() interfaces.ColumnMode { return s.mode }

// RowCount returns the number of rows under review.
func (s *Session) RowCount() int { return s.grid.RowCount() }

// Initialize is the idempotent store initialiser. New already calls it; a
// second call never clobbers existing selections.
func (s *Session) Initialize(rowCount int) bool {
	return s.store.Initialize(rowCount)
}

// Selected returns the row's selected labels in lexicographic order.
func (s *Session) Selected(row int) []string {
	return s.store.Selected(row)
}

// Toggle selects or deselects label on row.
func (s *Session) Toggle(row int, label string, selected bool) bool {
	return s.store.Toggle(row, label, selected)
}

// CommitSelection replaces the row's selection with the sorted labels.
func (s *Session) CommitSelection(row int, labels []string) bool {
	return s.store.CommitSelection(row, labels)
}

// AddDynamicCode makes label available under group for every row.
func (s *Session) AddDynamicCode(group, label string) bool {
	return s.store.AddDynamicCode(group, label)
}

// Current returns the zero-based index of the row under review.
func (s *Session) Current() int { return s.cursor.Current() }

// Back moves the cursor to the previous row.
func (s *Session) Back() bool { return s.cursor.Back() }

// Next moves the cursor to the next row.
func (s *Session) Next() bool { return s.cursor.Next(s.RowCount()) }

// JumpTo moves the cursor to a one-based row number, clamped into range.
func (s *Session) JumpTo(oneBasedRow int) bool {
	return s.cursor.JumpTo(oneBasedRow, s.RowCount())
}

// Cells returns the cells of row visible under the session's column mode.
func (s *Session) Cells(row int) []string {
	if row < 0 || row >= s.RowCount() {
		return nil
	}
	return s.mode.Project(s.grid.Rows[row])
}

// Headers returns the column names visible under the session's column mode.
func (s *Session) Headers() []string {
	cols := s.mode.Columns(s.grid.ColumnCount())
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c < len(s.grid.Header) {
			out = append(out, s.grid.Header[c])
		} else {
			out = append(out, "")
		}
	}
	return out
}

// Groups returns every group that has options: codebook groups in source
// order, then groups that only exist through dynamic additions.
func (s *Session) Groups() []string {
	groups := s.codebook.GroupNames()
	for _, g := range s.store.DynamicGroups() {
		if !s.codebook.Has(g) {
			groups = append(groups, g)
		}
	}
	return groups
}

// Available returns the labels selectable under group: the codebook codes
// followed by dynamic codes. Dynamic codes that repeat a codebook code are
// listed as separate entries.
func (s *Session) Available(group string) []string {
	return append(s.codebook.Codes(group), s.store.DynamicCodes(group)...)
}

// Options returns the selectable options of group with their checked state for row.
//
// Selection is stored per row by label, not per option. Options that share a
// label, whether the same code listed in two groups or a dynamic copy of a
// codebook code, always report the same Selected value and toggle together.
func (s *Session) Options(row int, group string) []Option {
	static := s.codebook.Codes(group)
	dynamic := s.store.DynamicCodes(group)
	opts := make([]Option, 0, len(static)+len(dynamic))
	for _, l := range static {
		opts = append(opts, Option{Group: group, Label: l, Selected: s.store.IsSelected(row, l)})
	}
	for _, l := range dynamic {
		opts = append(opts, Option{Group: group, Label: l, Dynamic: true, Selected: s.store.IsSelected(row, l)})
	}
	return opts
}

// Progress reports coded rows and per-label usage.
func (s *Session) Progress() Progress {
	return Progress{
		CodedRows: s.store.CodedRows(),
		TotalRows: s.RowCount(),
		Usage:     s.store.Usage(),
	}
}

// UsageLabels returns the labels in Progress.Usage sorted by descending count, then name.
func (p Progress) UsageLabels() []string {
	labels := make([]string, 0, len(p.Usage))
	for l := range p.Usage {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if p.Usage[labels[i]] != p.Usage[labels[j]] {
			return p.Usage[labels[i]] > p.Usage[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}
