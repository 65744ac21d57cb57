// Package codebook parses the plain-text codebook format into an ordered,
// grouped vocabulary of codes.
//
// The format is line oriented:
//
//	#Tone
//	positive
//	negative
//
//	#Topic
//	family
//
// A line whose first non-space character is the group marker starts a new
// group. Every other non-blank line is a code label belonging to the most
// recent group. Labels seen before the first group are discarded.
package codebook

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// DefaultMarker is the group marker used when none is configured
const DefaultMarker = "#"

// maxLineBytes bounds a single codebook line.
const maxLineBytes = 1024 * 1024

// Group is a named, ordered list of code labels.
type Group struct {
	Name  string
	Codes []string
}

// Codebook is an ordered mapping from group name to code labels.
// A parsed Codebook is read-only and safe to share between sessions.
type Codebook struct {
	groups []Group
	index  map[string]int
	marker string
}

// New builds a codebook from groups in the given order. Later groups with a
// name already present replace the earlier group's codes in place.
func New(groups ...Group) *Codebook {
	cb := &Codebook{index: make(map[string]int), marker: DefaultMarker}
	for _, g := range groups {
		cb.register(g.Name)
		cb.groups[cb.index[g.Name]].Codes = append([]string(nil), g.Codes...)
	}
	return cb
}

// register makes name the current group with an empty code list.
func (cb *Codebook) register(name string) int {
	if i, ok := cb.index[name]; ok {
		cb.groups[i].Codes = []string{}
		return i
	}
	cb.groups = append(cb.groups, Group{Name: name, Codes: []string{}})
	cb.index[name] = len(cb.groups) - 1
	return len(cb.groups) - 1
}

// Parse reads a codebook using the default group marker.
func Parse(r io.Reader) *Codebook {
	return ParseWithMarker(r, DefaultMarker)
}

// ParseWithMarker reads a codebook from r. It never fails: a read error stops
// parsing and whatever was read so far is returned.
func ParseWithMarker(r io.Reader, marker string) *Codebook {
	if marker == "" {
		marker = DefaultMarker
	}
	cb := &Codebook{index: make(map[string]int), marker: marker}
	if r == nil {
		return cb
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	current := -1
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, marker) {
			name := strings.TrimSpace(strings.ReplaceAll(line, marker, ""))
			if name == "" {
				// A bare marker closes the current group without opening a new one
				current = -1
				continue
			}
			current = cb.register(name)
			continue
		}
		if current < 0 {
			continue
		}
		cb.groups[current].Codes = append(cb.groups[current].Codes, line)
	}
	return cb
}

// Load parses the codebook file at path. A missing or unreadable file yields
// an empty codebook.
func Load(path string, marker string) *Codebook {
	cb, _ := Open(path, marker)
	return cb
}

// Open is Load that also reports why the file could not be read. The
// returned codebook is never nil.
func Open(path string, marker string) (*Codebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseWithMarker(nil, marker), err
	}
	defer f.Close()
	return ParseWithMarker(f, marker), nil
}

// Marker returns the group marker the codebook was parsed with.
func (cb *Codebook) Marker() string {
	if cb == nil || cb.marker == "" {
		return DefaultMarker
	}
	return cb.marker
}

// Groups returns the groups in source order. The returned slice is a copy.
func (cb *Codebook) Groups() []Group {
	if cb == nil {
		return nil
	}
	out := make([]Group, len(cb.groups))
	for i, g := range cb.groups {
		out[i] = Group{Name: g.Name, Codes: append([]string(nil), g.Codes...)}
	}
	return out
}

// GroupNames returns the group names in source order.
func (cb *Codebook) GroupNames() []string {
	if cb == nil {
		return nil
	}
	names := make([]string, len(cb.groups))
	for i, g := range cb.groups {
		names[i] = g.Name
	}
	return names
}

// Codes returns a copy of the codes of the named group, or nil if the group does not exist.
func (cb *Codebook) Codes(group string) []string {
	if cb == nil {
		return nil
	}
	i, ok := cb.index[group]
	if !ok {
		return nil
	}
	return append([]string(nil), cb.groups[i].Codes...)
}

// Has reports whether the named group exists.
func (cb *Codebook) Has(group string) bool {
	if cb == nil {
		return false
	}
	_, ok := cb.index[group]
	return ok
}

// Len returns the number of groups.
func (cb *Codebook) Len() int {
	if cb == nil {
		return 0
	}
	return len(cb.groups)
}

// CodeCount returns the total number of code entries across all groups.
func (cb *Codebook) CodeCount() int {
	if cb == nil {
		return 0
	}
	n := 0
	for _, g := range cb.groups {
		n += len(g.Codes)
	}
	return n
}

// String renders the codebook back in its source format, using the marker it
// was parsed with.
func (cb *Codebook) String() string {
	var sb strings.Builder
	marker := cb.Marker()
	for i, g := range cb.Groups() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(marker)
		sb.WriteString(g.Name)
		sb.WriteString("\n")
		for _, c := range g.Codes {
			sb.WriteString(c)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
