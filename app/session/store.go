package session

import (
	"slices"
	"strings"
)

// Store records which code labels are selected for each row and which codes
// were added during the session. Every row's selection is kept as a sorted,
// duplicate-free slice so the stored order is always the exported order.
//
// A Store is owned by exactly one session and is not safe for concurrent use.
type Store struct {
	initialized bool
	rows        map[int][]string // row index -> sorted labels
	rowCount    int

	dynamic      map[string][]string // group -> labels in first-seen order
	dynamicOrder []string            // groups in first-seen order
}

// NewStore returns an uninitialised store.
func NewStore() *Store {
	return &Store{}
}

// Initialize creates an empty selection for every row in [0, rowCount) and an
// empty set of dynamic codes. It is a no-op once the store has been
// initialised, so resuming never clobbers work in progress. It reports whether
// it created state.
func (s *Store) Initialize(rowCount int) bool {
	if s.initialized {
		return false
	}
	if rowCount < 0 {
		rowCount = 0
	}
	s.rows = make(map[int][]string, rowCount)
	for i := 0; i < rowCount; i++ {
		s.rows[i] = []string{}
	}
	s.rowCount = rowCount
	if s.dynamic == nil {
		s.dynamic = make(map[string][]string)
	}
	s.initialized = true
	return true
}

// Initialized reports whether Initialize has run.
func (s *Store) Initialized() bool {
	return s.initialized
}

// RowCount returns the number of rows the store was initialised with.
func (s *Store) RowCount() int {
	return s.rowCount
}

// Selected returns the row's selected labels in lexicographic order. Rows
// without an entry yield an empty slice. The result is a copy.
func (s *Store) Selected(row int) []string {
	labels, ok := s.rows[row]
	if !ok {
		return []string{}
	}
	return slices.Clone(labels)
}

// IsSelected reports whether label is selected for row.
func (s *Store) IsSelected(row int, label string) bool {
	_, found := slices.BinarySearch(s.rows[row], label)
	return found
}

// Toggle adds label to the row's selection when selected is true and removes
// it otherwise. Repeating a toggle is a no-op. Rows outside the initialised
// range are ignored. It reports whether the selection changed.
func (s *Store) Toggle(row int, label string, selected bool) bool {
	labels, ok := s.rows[row]
	if !ok {
		return false
	}
	i, found := slices.BinarySearch(labels, label)
	switch {
	case selected && !found:
		s.rows[row] = slices.Insert(labels, i, label)
		return true
	case !selected && found:
		s.rows[row] = slices.Delete(labels, i, i+1)
		return true
	}
	return false
}

// CommitSelection replaces the row's selection with the sorted, de-duplicated
// labels. Rows outside the initialised range are ignored.
func (s *Store) CommitSelection(row int, labels []string) bool {
	if _, ok := s.rows[row]; !ok {
		return false
	}
	s.rows[row] = canonical(labels)
	return true
}

// AddDynamicCode appends label to the group's session-wide dynamic codes
// unless the group already has it as a dynamic code. Blank labels are
// ignored. It reports whether the label was added.
func (s *Store) AddDynamicCode(group, label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	if s.dynamic == nil {
		s.dynamic = make(map[string][]string)
	}
	existing, ok := s.dynamic[group]
	if slices.Contains(existing, label) {
		return false
	}
	if !ok {
		s.dynamicOrder = append(s.dynamicOrder, group)
	}
	s.dynamic[group] = append(existing, label)
	return true
}

// DynamicCodes returns a copy of the group's dynamic codes in first-seen order.
func (s *Store) DynamicCodes(group string) []string {
	return slices.Clone(s.dynamic[group])
}

// DynamicGroups returns the groups that received dynamic codes, in first-seen order.
func (s *Store) DynamicGroups() []string {
	return slices.Clone(s.dynamicOrder)
}

// CodedRows returns how many rows have at least one selected label.
func (s *Store) CodedRows() int {
	n := 0
	for _, labels := range s.rows {
		if len(labels) > 0 {
			n++
		}
	}
	return n
}

// Usage counts how many rows each label is selected on.
func (s *Store) Usage() map[string]int {
	usage := make(map[string]int)
	for _, labels := range s.rows {
		for _, l := range labels {
			usage[l]++
		}
	}
	return usage
}

// canonical returns labels sorted and without duplicates.
func canonical(labels []string) []string {
	out := slices.Clone(labels)
	if out == nil {
		out = []string{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
