package widgets

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// Distance budget for the typo fallback when the subsequence match
// comes up empty.
const popoverTypoBudget = 2

// PopoverItem is one selectable entry. Selection is fully controlled
// by the caller; the popover never flips Selected itself.
type PopoverItem struct {
	Label    string
	Value    string
	Selected bool
}

type popoverKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Close      key.Binding
	Copy       key.Binding
	ClearQuery key.Binding
}

func newPopoverKeyMap() popoverKeyMap {
	return popoverKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev")),
		Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy value")),
		ClearQuery: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear filter")),
	}
}

// PopoverStyles controls popover chrome painting.
type PopoverStyles struct {
	Frame    lipgloss.Style
	TitleBar lipgloss.Style
	Title    lipgloss.Style
	CloseBtn lipgloss.Style
	Query    lipgloss.Style
	Empty    lipgloss.Style
}

// DefaultPopoverStyles returns a neutral style set.
func DefaultPopoverStyles() PopoverStyles {
	return PopoverStyles{
		Frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		TitleBar: lipgloss.NewStyle(),
		Title:    lipgloss.NewStyle().Bold(true),
		CloseBtn: lipgloss.NewStyle(),
		Query:    lipgloss.NewStyle().Italic(true),
		Empty:    lipgloss.NewStyle().Faint(true),
	}
}

// PopoverPanel is a dismissible overlay listing selectable pills. Open,
// Items and each item's Selected flag are controlled by the caller;
// the panel reports intent through OnClose and OnSelect and keeps only
// presentational state (cursor, filter query) of its own.
type PopoverPanel struct {
	Title    string
	Open     bool
	OnClose  func()
	OnSelect func(value string)

	Styles     PopoverStyles
	PillStyles PillStyles

	items    []PopoverItem
	filtered []PopoverItem
	query    string
	cursor   int
	keys     popoverKeyMap

	// rendered geometry of the close control, for pointer hit tests
	closeCol  int
	lastWidth int

	writeClipboard func(string) error
}

// NewPopoverPanel builds a closed popover over the given items.
func NewPopoverPanel(title string, items []PopoverItem) *PopoverPanel {
	p := &PopoverPanel{
		Title:          title,
		Styles:         DefaultPopoverStyles(),
		PillStyles:     DefaultPillStyles(),
		keys:           newPopoverKeyMap(),
		writeClipboard: clipboard.WriteAll,
	}
	p.SetItems(items)
	return p
}

// SetItems replaces the item list and re-applies the current filter.
func (p *PopoverPanel) SetItems(items []PopoverItem) {
	p.items = append([]PopoverItem(nil), items...)
	p.rebuildFiltered()
}

// SetQuery replaces the filter query.
func (p *PopoverPanel) SetQuery(q string) {
	p.query = q
	p.rebuildFiltered()
}

// Query returns the current filter query.
func (p *PopoverPanel) Query() string { return p.query }

// VisibleItems returns the items surviving the current filter, in
// ranked order.
func (p *PopoverPanel) VisibleItems() []PopoverItem {
	return append([]PopoverItem(nil), p.filtered...)
}

// Cursor returns the index of the highlighted row within VisibleItems.
func (p *PopoverPanel) Cursor() int { return p.cursor }

// CursorUp moves the highlight one row up.
func (p *PopoverPanel) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// CursorDown moves the highlight one row down.
func (p *PopoverPanel) CursorDown() {
	if p.cursor < len(p.filtered)-1 {
		p.cursor++
	}
}

// CurrentItem returns the highlighted item, if any.
func (p *PopoverPanel) CurrentItem() (PopoverItem, bool) {
	if len(p.filtered) == 0 {
		return PopoverItem{}, false
	}
	idx := p.cursor
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.filtered) {
		idx = len(p.filtered) - 1
	}
	return p.filtered[idx], true
}

// Close fires the close callback. The popover does not flip Open
// itself; visibility is the caller's state.
func (p *PopoverPanel) Close() {
	if p.OnClose != nil {
		p.OnClose()
	}
}

// selectCurrent fires OnSelect for the highlighted item.
func (p *PopoverPanel) selectCurrent() {
	item, ok := p.CurrentItem()
	if !ok {
		return
	}
	if p.OnSelect != nil {
		p.OnSelect(item.Value)
	}
}

// copyCurrent puts the highlighted item's value on the clipboard.
func (p *PopoverPanel) copyCurrent() {
	item, ok := p.CurrentItem()
	if !ok {
		return
	}
	_ = p.writeClipboard(item.Value)
}

// Update handles a key press while the popover is open. Closed
// popovers ignore all input, so no selection can fire while closed.
func (p *PopoverPanel) Update(msg tea.KeyMsg) {
	if !p.Open {
		return
	}
	switch {
	case key.Matches(msg, p.keys.Close):
		p.Close()
	case key.Matches(msg, p.keys.Up):
		p.CursorUp()
	case key.Matches(msg, p.keys.Down):
		p.CursorDown()
	case key.Matches(msg, p.keys.Select):
		p.selectCurrent()
	case key.Matches(msg, p.keys.Copy):
		p.copyCurrent()
	case key.Matches(msg, p.keys.ClearQuery):
		p.SetQuery("")
	case msg.Type == tea.KeyBackspace:
		if p.query != "" {
			p.SetQuery(p.query[:len(p.query)-1])
		}
	case msg.Type == tea.KeyRunes && !msg.Alt:
		p.SetQuery(p.query + string(msg.Runes))
	}
}

// Click handles a pointer press at popover-relative coordinates. Row 0
// is the title bar; a hit on the close control fires OnClose, a hit on
// an item row fires OnSelect for that row.
func (p *PopoverPanel) Click(x, y int) {
	if !p.Open {
		return
	}
	if y == 0 {
		if x >= p.closeCol && x < p.closeCol+3 {
			p.Close()
		}
		return
	}
	row := y - 1
	if p.query != "" {
		row-- // filter line sits between title bar and items
	}
	if row < 0 || row >= len(p.filtered) {
		return
	}
	p.cursor = row
	p.selectCurrent()
}

// rebuildFiltered reranks items against the query: subsequence match
// first, edit-distance fallback when nothing survives.
func (p *PopoverPanel) rebuildFiltered() {
	q := strings.TrimSpace(p.query)
	if q == "" {
		p.filtered = append([]PopoverItem(nil), p.items...)
		p.clampCursor()
		return
	}

	labels := make([]string, len(p.items))
	for i := range p.items {
		labels[i] = p.items[i].Label
	}
	matches := fuzzy.Find(q, labels)
	out := make([]PopoverItem, 0, len(matches))
	for _, match := range matches {
		out = append(out, p.items[match.Index])
	}

	if len(out) == 0 {
		for i := range p.items {
			d := levenshtein.ComputeDistance(strings.ToLower(q), strings.ToLower(p.items[i].Label))
			if d <= popoverTypoBudget {
				out = append(out, p.items[i])
			}
		}
	}

	p.filtered = out
	p.clampCursor()
}

func (p *PopoverPanel) clampCursor() {
	if p.cursor >= len(p.filtered) {
		p.cursor = len(p.filtered) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// View renders the popover. While closed it renders nothing at all:
// the item list is absent from output, not merely hidden.
func (p *PopoverPanel) View() string {
	if !p.Open {
		return ""
	}

	width := p.contentWidth()
	title := p.Styles.Title.Render(p.Title)
	closeBtn := p.Styles.CloseBtn.Render("[✕]")
	gap := width - lipgloss.Width(title) - lipgloss.Width(closeBtn)
	if gap < 1 {
		gap = 1
	}
	p.closeCol = lipgloss.Width(title) + gap
	p.lastWidth = width
	bar := p.Styles.TitleBar.Render(title + strings.Repeat(" ", gap) + closeBtn)

	lines := []string{bar}
	if p.query != "" {
		lines = append(lines, p.Styles.Query.Render("/"+p.query))
	}
	if len(p.filtered) == 0 {
		lines = append(lines, p.Styles.Empty.Render("no matches"))
	}
	for i, item := range p.filtered {
		pill := Pill{
			InputType: "checkbox",
			Name:      p.Title,
			Value:     item.Value,
			Label:     item.Label,
			Selected:  item.Selected,
			Styles:    p.PillStyles,
		}
		lines = append(lines, pill.Render(i == p.cursor))
	}
	return p.Styles.Frame.Render(strings.Join(lines, "\n"))
}

func (p *PopoverPanel) contentWidth() int {
	w := lipgloss.Width(p.Title) + 5
	for _, item := range p.items {
		if lw := lipgloss.Width(item.Label) + 4; lw > w {
			w = lw
		}
	}
	return w
}
