package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) model {
	t.Helper()
	cfg := Config{
		UI:     UIConfig{Accent: "mauve", SidebarWidth: 36},
		Panels: PanelConfig{LayersHeight: 12, AdjustmentsHeight: 14, HistoryHeight: 12},
		Keys:   KeysConfig{Layers: "alt+1", Adjustments: "alt+2", History: "alt+3"},
	}
	keys := NewKeyRegistry()
	if err := keys.ApplyPanelShortcuts(cfg.PanelShortcuts()); err != nil {
		t.Fatalf("shortcuts: %v", err)
	}
	m := newModel(cfg, keys)
	m.width = 100
	m.height = 40
	return m
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(model)
		if !ok {
			t.Fatalf("Update returned %T, want model", next)
		}
	}
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSizeTracked(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(model)
	if m.width != 80 || m.height != 24 {
		t.Fatalf("size = %dx%d, want 80x24", m.width, m.height)
	}
}

func TestBlendPopoverOpenSelectClose(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runeKey("b"))
	if !m.popupOpen || !m.blend.Open {
		t.Fatal("popover did not open on b")
	}
	if m.currentScope() != scopePopover {
		t.Fatalf("scope = %q, want popover", m.currentScope())
	}

	// down to Multiply, select it
	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.blendMode != "multiply" {
		t.Fatalf("blendMode = %q, want multiply", m.blendMode)
	}
	if m.popupOpen {
		t.Fatal("popover should close after selection")
	}

	// selection state is app-owned and pushed back into the items
	m = press(t, m, runeKey("b"))
	for _, item := range m.blend.VisibleItems() {
		if item.Value == "multiply" && !item.Selected {
			t.Fatal("multiply not marked selected after reopening")
		}
		if item.Value == "normal" && item.Selected {
			t.Fatal("normal still marked selected")
		}
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.popupOpen {
		t.Fatal("popover did not close on esc")
	}
}

func TestPopoverSwallowsSidebarKeys(t *testing.T) {
	m := testModel(t)
	m = press(t, m, runeKey("b"))

	before := m.focusIdx
	m = press(t, m, runeKey("j")) // would change panel focus in sidebar scope
	if m.focusIdx != before {
		t.Fatal("sidebar focus moved while popover open")
	}
	if m.blend.Query() != "j" {
		t.Fatalf("popover query = %q, want j (runes go to the filter)", m.blend.Query())
	}
}

func TestSidebarFocusCycle(t *testing.T) {
	m := testModel(t)
	m = press(t, m, runeKey("j"))
	if m.focusIdx != panelAdjustments {
		t.Fatalf("focus = %d, want adjustments", m.focusIdx)
	}
	m = press(t, m, runeKey("j"), runeKey("j"))
	if m.focusIdx != panelLayers {
		t.Fatalf("focus = %d, want wrap to layers", m.focusIdx)
	}
	m = press(t, m, runeKey("k"))
	if m.focusIdx != panelHistory {
		t.Fatalf("focus = %d, want wrap back to history", m.focusIdx)
	}
}

func TestCollapseExpandFocusedPanel(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runeKey("c"))
	if !m.panels[panelLayers].Collapsed() {
		t.Fatal("layers panel did not collapse")
	}
	if m.panels[panelLayers].Height() != 0 {
		t.Fatalf("collapsed height = %d, want 0", m.panels[panelLayers].Height())
	}

	m = press(t, m, runeKey("e"))
	if m.panels[panelLayers].Collapsed() {
		t.Fatal("layers panel did not expand")
	}
	if m.panels[panelLayers].Height() != 12 {
		t.Fatalf("restored height = %d, want 12", m.panels[panelLayers].Height())
	}
}

func TestGrowShrinkAndReset(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runeKey("+"), runeKey("+"))
	p := m.panels[panelLayers]
	if p.Height() != 16 {
		t.Fatalf("height = %d, want 16", p.Height())
	}
	if !p.ManuallyChanged() {
		t.Fatal("grow did not latch manual change")
	}

	m = press(t, m, runeKey("r"))
	if p.Height() != 12 || p.ManuallyChanged() {
		t.Fatalf("after reset height = %d manual = %v, want 12/false", p.Height(), p.ManuallyChanged())
	}
}

func TestShrinkPastThresholdAutoCollapses(t *testing.T) {
	m := testModel(t)
	// 12 -> 10 hits the threshold
	m = press(t, m, runeKey("-"))
	if !m.panels[panelLayers].Collapsed() {
		t.Fatalf("height %d should have auto-collapsed", m.panels[panelLayers].Height())
	}
}

func TestOpacityKeyboardAdjustment(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runeKey("o"))
	if !m.opacity.Focused() {
		t.Fatal("opacity slider not focused")
	}
	if m.currentScope() != scopeRange {
		t.Fatalf("scope = %q, want range", m.currentScope())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.opacityVal != 95 {
		t.Fatalf("opacity = %v, want 95 (major step down)", m.opacityVal)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	if m.opacityVal != 94 {
		t.Fatalf("opacity = %v, want 94 (minor step down)", m.opacityVal)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if m.opacityVal != 100 {
		t.Fatalf("opacity = %v, want clamped 100", m.opacityVal)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.opacity.Focused() {
		t.Fatal("esc did not blur the slider")
	}
	if m.currentScope() != scopeSidebar {
		t.Fatalf("scope = %q, want sidebar", m.currentScope())
	}
}

func TestZoomClampsAtLowerBound(t *testing.T) {
	m := testModel(t)
	m = press(t, m, runeKey("z"))
	for i := 0; i < 5; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.zoomVal != 25 {
		t.Fatalf("zoom = %v, want clamped 25", m.zoomVal)
	}
}

func TestPanelShortcutExpandsAndFocuses(t *testing.T) {
	m := testModel(t)
	m.panels[panelLayers].Collapse()
	m = press(t, m, runeKey("j")) // move focus off layers

	altOne := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true}
	m = press(t, m, altOne)
	if m.focusIdx != panelLayers {
		t.Fatalf("focus = %d, want layers", m.focusIdx)
	}
	if m.panels[panelLayers].Collapsed() {
		t.Fatal("shortcut did not expand the panel")
	}
	if m.panels[panelLayers].Height() != 12 {
		t.Fatalf("height = %d, want restored 12", m.panels[panelLayers].Height())
	}
	if !strings.Contains(m.status, "scrolled into view") {
		t.Fatalf("status = %q, want scroll-into-view note", m.status)
	}
}

func TestPanelShortcutWorksFromRangeScope(t *testing.T) {
	m := testModel(t)
	m = press(t, m, runeKey("o")) // focus opacity, scope becomes range

	altThree := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}, Alt: true}
	m = press(t, m, altThree)
	if m.focusIdx != panelHistory {
		t.Fatalf("focus = %d, want history via global fallback", m.focusIdx)
	}
}

func TestSliderDragMapsColumnToValue(t *testing.T) {
	m := testModel(t)

	// opacity sits on the first body row of the adjustments panel
	sidebarStart := m.width - m.cfg.UI.SidebarWidth
	layersRows := 1 + m.panels[panelLayers].Height() + 1 // header + body + grip
	opacityRow := 1 + layersRows + 1                     // app header + layers + panel header
	trackStart := sidebarStart + 1 + len("Opacity") + 1

	msg := tea.MouseMsg{
		X:      trackStart + m.opacity.TrackWidth - 1, // far right of the track
		Y:      opacityRow,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	next, _ := m.Update(msg)
	m = next.(model)
	if m.opacityVal != 100 {
		t.Fatalf("opacity after drag = %v, want 100", m.opacityVal)
	}
	if !m.opacity.Focused() {
		t.Fatal("drag did not focus the slider")
	}

	msg.X = trackStart
	next, _ = m.Update(msg)
	m = next.(model)
	if m.opacityVal != 0 {
		t.Fatalf("opacity after drag to track start = %v, want 0", m.opacityVal)
	}
}

func TestWheelResizesFocusedPanel(t *testing.T) {
	m := testModel(t)
	start := m.panels[panelLayers].Height()

	wheel := tea.MouseMsg{
		X:      m.width - 5,
		Y:      3,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelUp,
	}
	next, _ := m.Update(wheel)
	m = next.(model)
	if m.panels[panelLayers].Height() != start+1 {
		t.Fatalf("height = %d, want %d", m.panels[panelLayers].Height(), start+1)
	}
}

func TestHistoryLogSharedAcrossCopies(t *testing.T) {
	m := testModel(t)
	m = press(t, m, runeKey("b"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	found := false
	for _, e := range m.history.entries {
		if strings.Contains(e, "blend multiply") {
			found = true
		}
	}
	if !found {
		t.Fatalf("history = %v, want a blend entry", m.history.entries)
	}
}
