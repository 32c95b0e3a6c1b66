package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/easel-tui/easel/widgets"
)

// ---------------------------------------------------------------------------
// Styles — Catppuccin Mocha themed
// ---------------------------------------------------------------------------

var (
	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	canvasStyle = lipgloss.NewStyle().
			Foreground(colorCanvasGrid)

	canvasInfoStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface2).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(colorSky).
			Background(colorMantle)
)

// applyWidgetStyles pushes theme colors into the widget style hooks.
func (m *model) applyWidgetStyles() {
	pill := widgets.DefaultPillStyles()
	pill.Marker = pill.Marker.Foreground(m.accent)
	pill.Label = pill.Label.Foreground(colorText)
	pill.Selected = pill.Selected.Foreground(m.accent)
	pill.CursorLine = pill.CursorLine.Foreground(colorCrust).Background(colorFocus)

	pop := widgets.DefaultPopoverStyles()
	pop.Frame = pop.Frame.BorderForeground(m.accent)
	pop.Title = pop.Title.Foreground(m.accent)
	pop.CloseBtn = pop.CloseBtn.Foreground(colorMutedChrome)
	pop.Query = pop.Query.Foreground(colorSky)
	pop.Empty = pop.Empty.Foreground(colorMutedChrome)
	m.blend.Styles = pop
	m.blend.PillStyles = pill

	rng := widgets.DefaultRangeStyles()
	rng.Label = rng.Label.Foreground(colorPanelTitle)
	rng.Fill = rng.Fill.Foreground(m.accent)
	rng.Track = rng.Track.Foreground(colorSurface2)
	rng.Handle = rng.Handle.Foreground(colorFocus)
	rng.Readout = rng.Readout.Foreground(colorSubtext1)
	m.opacity.Styles = rng
	m.zoom.Styles = rng

	pnl := widgets.DefaultPanelStyles()
	pnl.Header = pnl.Header.Foreground(colorPanelTitle).Background(colorSurface0)
	pnl.HeaderFocused = pnl.HeaderFocused.Foreground(colorCrust).Background(m.accent)
	pnl.Indicator = pnl.Indicator.Foreground(m.accent)
	pnl.Body = pnl.Body.Foreground(colorPanelFill)
	pnl.Grip = pnl.Grip.Foreground(colorSurface2)
	for _, p := range m.panels {
		p.Styles = pnl
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	header := m.renderHeader()
	statusLine := statusBarStyle.Render(truncate(m.status, max(0, m.width-4)))
	footer := m.renderFooter()

	canvasWidth := m.width - m.cfg.UI.SidebarWidth
	bodyHeight := m.contentHeight() - 1 // minus header row
	canvas := m.renderCanvas(canvasWidth, bodyHeight)
	sidebar := m.renderSidebar(m.cfg.UI.SidebarWidth, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, sidebar)

	base := m.placeWithChrome(header+"\n"+body, statusLine, footer)
	if !m.popupOpen {
		return base
	}

	popover := m.blend.View()
	x, y := m.popoverOrigin()
	return overlayAt(base, popover, x, y, m.width, m.contentHeight())
}

func (m model) renderHeader() string {
	name := headerAppStyle.Render(appName)
	doc := fmt.Sprintf("untitled.esl  ·  blend %s  ·  %s%%", m.blendMode, formatValue(m.zoomVal))
	line := name + "  " + doc
	return headerBarStyle.Width(m.width).Render(truncate(line, max(0, m.width-4)))
}

// renderCanvas draws the placeholder artboard: a dot grid with a
// readout card for the values the widgets drive.
func (m model) renderCanvas(width, height int) string {
	if width < 4 || height < 1 {
		return ""
	}
	dots := strings.TrimRight(strings.Repeat("·   ", width/4+1), " ")
	rows := make([]string, height)
	for i := range rows {
		rows[i] = canvasStyle.Render(truncate(dots, width))
	}

	card := canvasInfoStyle.Render(fmt.Sprintf(
		"blend  %s\nopacity %s%%\nzoom   %s%%",
		m.blendMode, formatValue(m.opacityVal), formatValue(m.zoomVal)))
	grid := strings.Join(rows, "\n")
	return overlayAt(grid, card, 4, 4, width, height)
}

// layersContent lists layers, trimmed to what the panel height shows.
func (m model) layersContent(h widgets.Handle) string {
	rows := make([]string, 0, len(m.layers))
	for i, name := range m.layers {
		marker := "  "
		if i == 0 {
			marker = "▪ "
		}
		rows = append(rows, marker+name)
	}
	if len(rows) > h.Height() && h.Height() > 0 {
		hidden := len(rows) - h.Height() + 1
		rows = append(rows[:h.Height()-1], fmt.Sprintf("  …%d more", hidden))
	}
	return strings.Join(rows, "\n")
}

// adjustmentsContent hosts the two sliders and the blend-mode row.
func (m model) adjustmentsContent(widgets.Handle) string {
	blendRow := fmt.Sprintf("Blend   %s  (b)", blendModeLabel(m.blendMode))
	return m.opacity.View() + "\n" + m.zoom.View() + "\n" + blendRow
}

// historyContent shows the action tail; the reset hint doubles as the
// nested control wired through the handle.
func (m model) historyContent(h widgets.Handle) string {
	visible := h.Height()
	if visible <= 0 {
		visible = 8
	}
	entries := m.history.tail(visible)
	if len(entries) == 0 {
		return "  (no edits yet)"
	}
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, "  "+e)
	}
	return strings.Join(rows, "\n")
}

func (m model) renderFooter() string {
	bindings := m.keys.HelpBindings(m.currentScope())
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	line := strings.Join(parts, "  ")
	return footerStyle.Width(m.width).Render(truncate(line, max(0, m.width-4)))
}
