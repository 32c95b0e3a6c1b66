package widgets

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// containsPlain checks rendered output after stripping style escapes.
func containsPlain(view, want string) bool {
	return strings.Contains(ansi.Strip(view), want)
}

func blendItems() []PopoverItem {
	return []PopoverItem{
		{Label: "Normal", Value: "normal", Selected: true},
		{Label: "Multiply", Value: "multiply"},
		{Label: "Screen", Value: "screen"},
		{Label: "Overlay", Value: "overlay"},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPopoverClosedRendersNothing(t *testing.T) {
	p := NewPopoverPanel("Blend Mode", blendItems())
	if view := p.View(); view != "" {
		t.Fatalf("closed popover rendered %q, want empty", view)
	}
}

func TestPopoverClosedIgnoresInput(t *testing.T) {
	selected := 0
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.OnSelect = func(string) { selected++ }

	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p.Click(1, 1)
	if selected != 0 {
		t.Fatalf("closed popover fired onSelect %d times", selected)
	}
}

func TestPopoverOpenListsAllItems(t *testing.T) {
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.Open = true
	view := p.View()
	for _, label := range []string{"Normal", "Multiply", "Screen", "Overlay"} {
		if !containsPlain(view, label) {
			t.Fatalf("view missing item %q:\n%s", label, view)
		}
	}
	if !containsPlain(view, "Blend Mode") {
		t.Fatalf("view missing title:\n%s", view)
	}
	if !containsPlain(view, "[x] Normal") {
		t.Fatalf("selected item not marked:\n%s", view)
	}
}

func TestPopoverEscFiresOnCloseOnce(t *testing.T) {
	closed := 0
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.OnClose = func() { closed++ }
	p.Open = true

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if closed != 1 {
		t.Fatalf("onClose fired %d times, want 1", closed)
	}
}

func TestPopoverCloseControlClick(t *testing.T) {
	closed := 0
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.OnClose = func() { closed++ }
	p.Open = true
	p.View() // establish close-control geometry

	p.Click(p.closeCol+1, 0)
	if closed != 1 {
		t.Fatalf("onClose fired %d times, want 1", closed)
	}

	p.Click(0, 0) // title text is not the close control
	if closed != 1 {
		t.Fatalf("title-bar click outside the control fired onClose (total %d)", closed)
	}
}

func TestPopoverSelectionReportsValue(t *testing.T) {
	var got []string
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.OnSelect = func(v string) { got = append(got, v) }
	p.Open = true

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(got) != 1 || got[0] != "multiply" {
		t.Fatalf("onSelect = %v, want [multiply]", got)
	}

	// Selection stays with the caller: the popover must not mutate its
	// items' Selected flags.
	for _, item := range p.VisibleItems() {
		if item.Value == "multiply" && item.Selected {
			t.Fatal("popover flipped Selected itself")
		}
	}
}

func TestPopoverClickSelectsRow(t *testing.T) {
	var got []string
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.OnSelect = func(v string) { got = append(got, v) }
	p.Open = true
	p.View()

	p.Click(2, 3) // third row below the title bar
	if len(got) != 1 || got[0] != "screen" {
		t.Fatalf("onSelect = %v, want [screen]", got)
	}
}

func TestPopoverFilterSubsequence(t *testing.T) {
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.Open = true
	p.Update(keyRunes("mu"))

	items := p.VisibleItems()
	if len(items) != 1 || items[0].Value != "multiply" {
		t.Fatalf("filtered = %v, want just multiply", items)
	}
}

func TestPopoverFilterTypoFallback(t *testing.T) {
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.SetQuery("sceren") // transposed letters defeat the subsequence pass
	found := false
	for _, item := range p.VisibleItems() {
		if item.Value == "screen" {
			found = true
		}
	}
	if !found {
		t.Fatalf("typo query lost screen: %v", p.VisibleItems())
	}

	p.SetQuery("xqzv")
	if n := len(p.VisibleItems()); n != 0 {
		t.Fatalf("garbage query matched %d items", n)
	}
}

func TestPopoverFilterEditingKeys(t *testing.T) {
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.Open = true
	p.Update(keyRunes("mul"))
	if p.Query() != "mul" {
		t.Fatalf("query = %q, want mul", p.Query())
	}
	p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if p.Query() != "mu" {
		t.Fatalf("query = %q, want mu", p.Query())
	}
	p.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if p.Query() != "" {
		t.Fatalf("query = %q, want cleared", p.Query())
	}
	if len(p.VisibleItems()) != 4 {
		t.Fatalf("cleared filter shows %d items, want 4", len(p.VisibleItems()))
	}
}

func TestPopoverCopyValue(t *testing.T) {
	var copied []string
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	p.Open = true
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if len(copied) != 1 || copied[0] != "multiply" {
		t.Fatalf("clipboard = %v, want [multiply]", copied)
	}
}

func TestPopoverCursorClampsToFiltered(t *testing.T) {
	p := NewPopoverPanel("Blend Mode", blendItems())
	p.Open = true
	for i := 0; i < 10; i++ {
		p.CursorDown()
	}
	if p.Cursor() != 3 {
		t.Fatalf("cursor = %d, want 3", p.Cursor())
	}
	p.SetQuery("mu")
	if p.Cursor() != 0 {
		t.Fatalf("cursor after narrowing = %d, want 0", p.Cursor())
	}
}
