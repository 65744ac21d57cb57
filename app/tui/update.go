package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 2
	footerHeight = 3
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		vpWidth, vpHeight := m.paragraphSize()
		if !m.ready {
			m.viewport = viewport.New(vpWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = vpHeight
		}
		m.refreshParagraph()
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		return m.updateKeys(msg)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Back):
		if m.sess.Back() {
			m.afterMove()
		}

	case key.Matches(msg, m.keys.Next):
		if m.sess.Next() {
			m.afterMove()
		}

	case key.Matches(msg, m.keys.Jump):
		if m.sess.RowCount() > 0 {
			m.openPrompt(promptJump, "", fmt.Sprintf("row 1-%d", m.sess.RowCount()))
		}

	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}

	case key.Matches(msg, m.keys.Down):
		if m.focus < len(m.items())-1 {
			m.focus++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.toggleFocused()

	case key.Matches(msg, m.keys.Expand):
		if it, ok := m.focused(); ok {
			m.expanded[it.group] = !m.expanded[it.group]
			m.focusGroup(it.group)
		}

	case key.Matches(msg, m.keys.AddCode):
		group := DefaultGroup
		if it, ok := m.focused(); ok {
			group = it.group
		}
		m.openPrompt(promptAddCode, group, "new code for "+group)

	case key.Matches(msg, m.keys.Export):
		m.export()

	case key.Matches(msg, m.keys.Copy):
		m.copyExport()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
	}
	return m, nil
}

// toggleFocused flips the focused code on the current row and commits the
// row's selection. On a group header it expands or collapses the group.
func (m *Model) toggleFocused() {
	it, ok := m.focused()
	if !ok {
		return
	}
	if it.isGroup {
		m.expanded[it.group] = !m.expanded[it.group]
		return
	}

	row := m.sess.Current()
	if m.sess.Toggle(row, it.option.Label, !it.option.Selected) {
		m.sess.CommitSelection(row, m.sess.Selected(row))
	}
}

func (m *Model) afterMove() {
	m.status = ""
	m.clampFocus()
	m.refreshParagraph()
	m.viewport.GotoTop()
}

func (m *Model) openPrompt(kind promptKind, group, placeholder string) {
	m.prompt = kind
	m.promptGroup = group
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.promptGroup = ""
	m.input.Blur()
	m.input.Reset()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil

	case msg.Type == tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		kind, group := m.prompt, m.promptGroup
		m.closePrompt()

		switch kind {
		case promptAddCode:
			m.addCode(group, value)
		case promptJump:
			m.jump(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) addCode(group, label string) {
	if label == "" {
		return
	}
	if !m.sess.AddDynamicCode(group, label) {
		m.setStatus(fmt.Sprintf("%q is already in %s", label, group), true)
		return
	}
	m.expanded[group] = true
	m.focusGroup(group)
	m.setStatus(fmt.Sprintf("Added %q to %s", label, group), false)
}

func (m *Model) jump(value string) {
	// Out-of-range numbers come back saturated, and JumpTo clamps them
	n, err := strconv.Atoi(value)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		m.setStatus(fmt.Sprintf("Not a row number: %q", value), true)
		return
	}
	if m.sess.JumpTo(n) {
		m.afterMove()
	}
}

func (m *Model) export() {
	if m.actions == nil {
		return
	}
	n, err := m.actions.Export(m.sess, m.outPath)
	if err != nil {
		m.setStatus("Export failed: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Exported %d rows to %s", n, m.outPath), false)
}

func (m *Model) copyExport() {
	if m.actions == nil {
		return
	}
	n, err := m.actions.CopyExport(m.sess)
	if err != nil {
		m.setStatus("Copy failed: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %d rows to clipboard", n), false)
}
