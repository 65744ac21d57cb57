package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// codesPanelWidth is the share of the screen given to the codes panel
const codesPanelWidth = 0.4

// paragraphSize returns the viewport dimensions for the paragraph panel.
func (m Model) paragraphSize() (int, int) {
	w := m.width - m.codesWidth() - 4
	h := m.height - headerHeight - footerHeight - 2
	return max(w, 10), max(h, 3)
}

func (m Model) codesWidth() int {
	return max(int(float64(m.width)*codesPanelWidth), 24)
}

// refreshParagraph renders the current row into the viewport.
func (m *Model) refreshParagraph() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.paragraphContent())
}

func (m Model) paragraphContent() string {
	if m.sess.RowCount() == 0 {
		return columnNameStyle.Render("The source has no rows.")
	}

	row := m.sess.Current()
	cells := m.sess.Cells(row)
	headers := m.sess.Headers()
	wrap := lipgloss.NewStyle().Width(m.viewport.Width)

	if len(cells) == 1 {
		return wrap.Render(cells[0])
	}

	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if i < len(headers) {
			b.WriteString(columnNameStyle.Render(headers[i]))
			b.WriteString("\n")
		}
		b.WriteString(wrap.Render(cell))
	}
	return b.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading...\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		left := panelStyle.Render(m.viewport.View())
		right := panelStyle.Width(m.codesWidth()).Render(m.renderCodes())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	if m.sess.RowCount() == 0 {
		return titleStyle.Render("No paragraphs")
	}
	return titleStyle.Render(fmt.Sprintf("Paragraph %d of %d", m.sess.Current()+1, m.sess.RowCount()))
}

func (m Model) renderCodes() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Codes"))
	b.WriteString("\n")

	items := m.items()
	if len(items) == 0 {
		b.WriteString(columnNameStyle.Render("No codes yet. Press a to add one."))
		return b.String()
	}

	for i, it := range items {
		var line string
		if it.isGroup {
			arrow := "▸"
			if m.expanded[it.group] {
				arrow = "▾"
			}
			line = groupStyle.Render(fmt.Sprintf("%s %s", arrow, it.group))
		} else {
			check := "[ ]"
			if it.option.Selected {
				check = "[x]"
			}
			line = fmt.Sprintf("  %s %s", check, it.option.Label)
			if it.option.Dynamic {
				line += dynamicStyle.Render(" +")
			}
		}
		if i == m.focus {
			line = focusStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	var b strings.Builder

	if m.prompt != promptNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if m.status != "" {
		style := statusOKStyle
		if m.statusErr {
			style = statusErrStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	p := m.sess.Progress()
	summary := fmt.Sprintf("%d/%d coded", p.CodedRows, p.TotalRows)
	if top := p.UsageLabels(); len(top) > 0 {
		shown := top[:min(len(top), 3)]
		parts := make([]string, len(shown))
		for i, label := range shown {
			parts[i] = fmt.Sprintf("%s %d", label, p.Usage[label])
		}
		summary += " · " + strings.Join(parts, ", ")
	}
	b.WriteString(statusStyle.Render(summary))
	b.WriteString("  ")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}
