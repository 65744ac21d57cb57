// Package tui is the interactive coding screen: one paragraph at a time on the
// left, the codebook on the right.
//
// The model is single-threaded and driven by the bubbletea event loop. All
// coding state lives in the session; the model only holds view state.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"themecoder/app/session"
)

// DefaultGroup receives codes added when the codebook has no groups.
const DefaultGroup = "Other"

// Actions are the side effects the screen can trigger.
type Actions interface {
	Export(sess *session.Session, path string) (int, error)
	CopyExport(sess *session.Session) (int, error)
}

type promptKind int

const (
	promptNone promptKind = iota
	promptAddCode
	promptJump
)

// item is one line of the codes panel: a group header or a code under it.
type item struct {
	group   string
	isGroup bool
	option  session.Option
}

// Model is the bubbletea model for a coding session.
type Model struct {
	sess    *session.Session
	actions Actions
	outPath string

	keys keyMap
	help help.Model

	// Paragraph panel
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	// Codes panel
	expanded map[string]bool
	focus    int

	// Prompt for add-code and jump
	input       textinput.Model
	prompt      promptKind
	promptGroup string

	status    string
	statusErr bool
	showHelp  bool
	quitting  bool
}

// New returns a model for sess. Exports go to outPath.
func New(sess *session.Session, actions Actions, outPath string) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		sess:     sess,
		actions:  actions,
		outPath:  outPath,
		keys:     defaultKeyMap(),
		help:     help.New(),
		expanded: make(map[string]bool),
		input:    ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// items flattens the codes panel for the current row. Groups are collapsed
// until expanded.
func (m Model) items() []item {
	row := m.sess.Current()
	var out []item
	for _, g := range m.sess.Groups() {
		out = append(out, item{group: g, isGroup: true})
		if !m.expanded[g] {
			continue
		}
		for _, opt := range m.sess.Options(row, g) {
			out = append(out, item{group: g, option: opt})
		}
	}
	return out
}

// focused returns the item under the cursor.
func (m Model) focused() (item, bool) {
	items := m.items()
	if m.focus < 0 || m.focus >= len(items) {
		return item{}, false
	}
	return items[m.focus], true
}

// clampFocus keeps the cursor on an existing line.
func (m *Model) clampFocus() {
	n := len(m.items())
	m.focus = max(0, min(m.focus, n-1))
}

// focusGroup moves the cursor to the header of group.
func (m *Model) focusGroup(group string) {
	for i, it := range m.items() {
		if it.isGroup && it.group == group {
			m.focus = i
			return
		}
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}
