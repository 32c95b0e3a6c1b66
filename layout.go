package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sidebarBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(colorSurface1)

func (m model) renderSidebar(width, height int) string {
	stack := make([]string, 0, len(m.panels))
	for i := range m.panels {
		stack = append(stack, m.panelView(i, width-1))
	}
	column := strings.Join(stack, "\n")
	column = lipgloss.Place(width-1, height, lipgloss.Left, lipgloss.Top, column)
	return sidebarBorderStyle.Render(column)
}

// panelView renders sidebar panel i with its content. Content funcs
// receive the panel handle so nested controls can drive the panel.
func (m model) panelView(i, width int) string {
	p := m.panels[i]
	focused := i == m.focusIdx && !m.popupOpen
	switch i {
	case panelLayers:
		return p.View(width, focused, m.layersContent)
	case panelAdjustments:
		return p.View(width, focused, m.adjustmentsContent)
	case panelHistory:
		return p.View(width, focused, m.historyContent)
	}
	return ""
}

// placeWithChrome pins the status line and footer to the bottom and
// pads every body line to full width to prevent ghosting from
// previous frames.
func (m model) placeWithChrome(body, statusLine, footer string) string {
	contentHeight := m.contentHeight()
	main := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	lines := splitLines(main)
	for i, line := range lines {
		lines[i] = padRight(line, m.width)
	}
	return strings.Join(lines, "\n") + "\n" + statusLine + "\n" + footer
}

func (m model) contentHeight() int {
	h := m.height - 2 // status line and footer
	if h < 1 {
		h = 1
	}
	return h
}
