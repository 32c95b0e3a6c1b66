package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/easel-tui/easel/widgets"
)

const appName = "Easel"

// Sidebar panel indices
const (
	panelLayers      = 0
	panelAdjustments = 1
	panelHistory     = 2
	panelCount       = 3
)

// Canvas cell the blend-mode control sits on; the popover anchors here.
const (
	blendAnchorX = 2
	blendAnchorY = 2
)

var blendModes = []string{"normal", "multiply", "screen", "overlay", "soft-light"}

// historyLog collects edit actions for the History panel. It is shared
// by pointer so widget callbacks keep appending across model copies.
type historyLog struct {
	entries []string
}

func (h *historyLog) add(entry string) {
	h.entries = append(h.entries, entry)
}

func (h *historyLog) tail(n int) []string {
	if len(h.entries) <= n {
		return h.entries
	}
	return h.entries[len(h.entries)-n:]
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

type model struct {
	cfg    Config
	keys   *KeyRegistry
	accent lipgloss.Color

	panels  []*widgets.Panel
	opacity *widgets.RangeInput
	zoom    *widgets.RangeInput
	blend   *widgets.PopoverPanel
	history *historyLog

	// document state owned by the app; widgets only report intent
	blendMode  string
	opacityVal float64
	zoomVal    float64

	layers    []string
	focusIdx  int
	popupOpen bool
	status    string
	width     int
	height    int
}

func newModel(cfg Config, keys *KeyRegistry) model {
	history := &historyLog{}

	layersPanel := widgets.NewPanel("Layers", cfg.Panels.LayersHeight, true, true)
	adjustPanel := widgets.NewPanel("Adjustments", cfg.Panels.AdjustmentsHeight, true, true)
	historyPanel := widgets.NewPanel("History", cfg.Panels.HistoryHeight, true, false)
	for _, p := range []*widgets.Panel{layersPanel, adjustPanel, historyPanel} {
		title := p.Title
		p.OnExpand = func() { history.add("expand " + title) }
	}

	opacity := widgets.NewRangeInput("Opacity", 1, 5)
	opacity.SetBounds(0, 100)
	zoom := widgets.NewRangeInput("Zoom", 5, 25)
	zoom.SetBounds(25, 400)

	items := make([]widgets.PopoverItem, 0, len(blendModes))
	for _, mode := range blendModes {
		items = append(items, widgets.PopoverItem{
			Label:    blendModeLabel(mode),
			Value:    mode,
			Selected: mode == blendModes[0],
		})
	}
	blend := widgets.NewPopoverPanel("Blend Mode", items)

	m := model{
		cfg:        cfg,
		keys:       keys,
		accent:     accentByName(cfg.UI.Accent),
		panels:     []*widgets.Panel{layersPanel, adjustPanel, historyPanel},
		opacity:    opacity,
		zoom:       zoom,
		blend:      blend,
		history:    history,
		blendMode:  blendModes[0],
		opacityVal: 100,
		zoomVal:    100,
		layers:     []string{"Background", "Sketch", "Ink", "Color fill"},
		status:     "ready",
	}
	m.opacity.Value = m.opacityVal
	m.zoom.Value = m.zoomVal
	m.applyWidgetStyles()
	return m
}

// setBlendMode records a selection from the popover. Selection state
// is app-owned: the item list is rebuilt with the new Selected flags.
func (m *model) setBlendMode(mode string) {
	m.blendMode = mode
	items := make([]widgets.PopoverItem, 0, len(blendModes))
	for _, known := range blendModes {
		items = append(items, widgets.PopoverItem{
			Label:    blendModeLabel(known),
			Value:    known,
			Selected: known == mode,
		})
	}
	m.blend.SetItems(items)
	m.history.add("blend " + mode)
	m.status = fmt.Sprintf("blend mode: %s", mode)
}

func (m *model) setOpacity(v float64) {
	m.opacityVal = v
	m.opacity.Value = v
	m.status = fmt.Sprintf("opacity: %s%%", formatValue(v))
}

func (m *model) setZoom(v float64) {
	m.zoomVal = v
	m.zoom.Value = v
	m.status = fmt.Sprintf("zoom: %s%%", formatValue(v))
}

func (m model) focusedPanel() *widgets.Panel {
	if m.focusIdx < 0 || m.focusIdx >= len(m.panels) {
		return nil
	}
	return m.panels[m.focusIdx]
}

func (m model) currentScope() string {
	switch {
	case m.popupOpen:
		return scopePopover
	case m.opacity.Focused() || m.zoom.Focused():
		return scopeRange
	default:
		return scopeSidebar
	}
}

func blendModeLabel(mode string) string {
	switch mode {
	case "soft-light":
		return "Soft Light"
	default:
		return string(mode[0]-32) + mode[1:]
	}
}

func formatValue(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
