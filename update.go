package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/easel-tui/easel/widgets"
)

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentScope() {
	case scopePopover:
		return m.updatePopover(msg)
	case scopeRange:
		return m.updateRange(msg)
	default:
		return m.updateSidebar(msg)
	}
}

// updatePopover feeds keys to the open popover. The popover consumes
// printable runes for its filter, so only ctrl+c quits from here.
func (m model) updatePopover(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var selected string
	closeReq := false
	m.blend.OnSelect = func(v string) { selected = v }
	m.blend.OnClose = func() { closeReq = true }
	m.blend.Update(msg)

	if selected != "" {
		m.setBlendMode(selected)
		m.popupOpen = false
		m.blend.Open = false
		m.blend.SetQuery("")
	}
	if closeReq {
		m.popupOpen = false
		m.blend.Open = false
		m.blend.SetQuery("")
		m.status = "blend popover closed"
	}
	return m, nil
}

// updateRange feeds keys to whichever slider holds focus.
func (m model) updateRange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := m.keys.Lookup(msg.String(), scopeRange); b != nil {
		if b.Action == actionBlurRange {
			m.opacity.Blur()
			m.zoom.Blur()
			m.status = "adjustment done"
			return m, nil
		}
		// anything else resolvable here came from the global fallback
		return m.applyBinding(b)
	}

	var changed *float64
	capture := func(v float64) { changed = &v }
	switch {
	case m.opacity.Focused():
		m.opacity.HandleChange = capture
		m.opacity.Update(msg)
		if changed != nil {
			m.setOpacity(*changed)
		}
	case m.zoom.Focused():
		m.zoom.HandleChange = capture
		m.zoom.Update(msg)
		if changed != nil {
			m.setZoom(*changed)
		}
	}
	return m, nil
}

func (m model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.keys.Lookup(msg.String(), scopeSidebar)
	if b == nil {
		return m, nil
	}
	return m.applyBinding(b)
}

func (m model) applyBinding(b *Binding) (tea.Model, tea.Cmd) {
	switch b.Action {
	case actionQuit:
		return m, tea.Quit
	case actionTogglePopup:
		m.popupOpen = !m.popupOpen
		m.blend.Open = m.popupOpen
		if m.popupOpen {
			m.status = "choose a blend mode"
		}
	case actionFocusNext:
		m.focusIdx = (m.focusIdx + 1) % panelCount
	case actionFocusPrev:
		m.focusIdx = (m.focusIdx + panelCount - 1) % panelCount
	case actionCollapse:
		if p := m.focusedPanel(); p != nil {
			p.Collapse()
		}
	case actionExpand:
		if p := m.focusedPanel(); p != nil {
			p.Expand(true)
		}
	case actionResetHeight:
		if p := m.focusedPanel(); p != nil {
			p.ResetHeight()
			m.status = "panel height reset"
		}
	case actionGrow:
		if p := m.focusedPanel(); p != nil && p.Resizeable {
			p.SetHeight(p.Height() + 2)
		}
	case actionShrink:
		if p := m.focusedPanel(); p != nil && p.Resizeable {
			h := p.Height() - 2
			if h < 0 {
				h = 0
			}
			p.SetHeight(h)
		}
	case actionFocusOpacity:
		m.focusIdx = panelAdjustments
		m.panels[panelAdjustments].Expand(true)
		m.zoom.Blur()
		m.opacity.Focus()
	case actionFocusZoom:
		m.focusIdx = panelAdjustments
		m.panels[panelAdjustments].Expand(true)
		m.opacity.Blur()
		m.zoom.Focus()
	case actionPanelJump1, actionPanelJump2, actionPanelJump3:
		idx := map[Action]int{
			actionPanelJump1: panelLayers,
			actionPanelJump2: panelAdjustments,
			actionPanelJump3: panelHistory,
		}[b.Action]
		m.focusIdx = idx
		m.panels[idx].ActivateShortcut()
		if m.panels[idx].TakeScrollRequest() {
			m.status = m.panels[idx].Title + " scrolled into view"
		}
	}
	return m, nil
}

// handleMouse maps pointer input: wheel over the sidebar resizes the
// focused panel (the grip), clicks land on the popover when open.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	sidebarStart := m.width - m.cfg.UI.SidebarWidth
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.X >= sidebarStart && !m.popupOpen {
			if p := m.focusedPanel(); p != nil && p.Resizeable {
				p.SetHeight(p.Height() + 1)
			}
		}
	case tea.MouseButtonWheelDown:
		if msg.X >= sidebarStart && !m.popupOpen {
			if p := m.focusedPanel(); p != nil && p.Resizeable {
				h := p.Height() - 1
				if h < 0 {
					h = 0
				}
				p.SetHeight(h)
			}
		}
	case tea.MouseButtonLeft:
		if !m.popupOpen {
			if msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion {
				return m.handleSliderDrag(msg)
			}
			break
		}
		if msg.Action != tea.MouseActionPress {
			break
		}
		px, py := m.popoverOrigin()
		// border and padding offset between frame and content grid
		var closeReq bool
		var selected string
		m.blend.OnClose = func() { closeReq = true }
		m.blend.OnSelect = func(v string) { selected = v }
		m.blend.Click(msg.X-px-2, msg.Y-py-1)
		if selected != "" {
			m.setBlendMode(selected)
		}
		if closeReq || selected != "" {
			m.popupOpen = false
			m.blend.Open = false
			m.blend.SetQuery("")
		}
	}
	return m, nil
}

// handleSliderDrag maps a pointer press or drag on a slider track to
// a value. Dragging bypasses the step arithmetic: the track column
// becomes a raw value, snapped to the minor step and clamped by the
// slider itself.
func (m model) handleSliderDrag(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	slider, col, ok := m.sliderHit(msg.X, msg.Y)
	if !ok || col < 0 || col >= slider.TrackWidth {
		return m, nil
	}

	var changed *float64
	slider.HandleChange = func(v float64) { changed = &v }
	slider.Drag(col)
	if changed == nil {
		return m, nil
	}
	m.focusIdx = panelAdjustments
	if slider == m.opacity {
		m.zoom.Blur()
		m.opacity.Focus()
		m.setOpacity(*changed)
	} else {
		m.opacity.Blur()
		m.zoom.Focus()
		m.setZoom(*changed)
	}
	return m, nil
}

// sliderHit locates which slider track, if any, sits under a screen
// cell, and translates the cell to a track column.
func (m model) sliderHit(x, y int) (*widgets.RangeInput, int, bool) {
	if m.panels[panelAdjustments].Collapsed() {
		return nil, 0, false
	}
	sidebarStart := m.width - m.cfg.UI.SidebarWidth
	contentX := x - sidebarStart - 1 // skip the sidebar border column
	if contentX < 0 {
		return nil, 0, false
	}

	top := 1 // header row
	for i := 0; i < panelAdjustments; i++ {
		top += lipgloss.Height(m.panelView(i, m.cfg.UI.SidebarWidth-1))
	}
	// body rows: opacity, zoom, blend
	switch y {
	case top + 1:
		return m.opacity, contentX - lipgloss.Width(m.opacity.Label) - 1, true
	case top + 2:
		return m.zoom, contentX - lipgloss.Width(m.zoom.Label) - 1, true
	}
	return nil, 0, false
}

// popoverOrigin computes where the popover frame lands on screen. The
// same placement is used at render time, so hit testing stays in sync.
func (m model) popoverOrigin() (int, int) {
	return anchorPopover(m.blend.View(), blendAnchorX, blendAnchorY, m.width, m.contentHeight())
}
