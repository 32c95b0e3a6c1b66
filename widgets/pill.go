package widgets

import "github.com/charmbracelet/lipgloss"

// PillStyles controls how a pill row is painted.
type PillStyles struct {
	Marker     lipgloss.Style
	Label      lipgloss.Style
	Selected   lipgloss.Style
	CursorLine lipgloss.Style
}

// DefaultPillStyles returns a neutral style set; the app overrides the
// colors from its theme.
func DefaultPillStyles() PillStyles {
	return PillStyles{
		Marker:     lipgloss.NewStyle(),
		Label:      lipgloss.NewStyle(),
		Selected:   lipgloss.NewStyle().Bold(true),
		CursorLine: lipgloss.NewStyle().Reverse(true),
	}
}

// Pill is a checkbox-styled selectable label control. It owns no
// selection state; Selected is supplied by the caller each render and
// activation flows back through OnClick.
type Pill struct {
	InputType string // "checkbox" or "radio"
	Name      string
	Value     string
	Label     string
	Selected  bool
	OnClick   func(value string)
	Styles    PillStyles
}

// Click fires the pill's activation callback with its value.
func (p Pill) Click() {
	if p.OnClick != nil {
		p.OnClick(p.Value)
	}
}

func (p Pill) marker() string {
	open, close := "[", "]"
	if p.InputType == "radio" {
		open, close = "(", ")"
	}
	mark := " "
	if p.Selected {
		mark = "x"
	}
	return open + mark + close
}

// Render draws the pill as a single row. cursor highlights the whole
// line for keyboard navigation.
func (p Pill) Render(cursor bool) string {
	label := p.Styles.Label
	if p.Selected {
		label = p.Styles.Selected
	}
	row := p.Styles.Marker.Render(p.marker()) + " " + label.Render(p.Label)
	if cursor {
		return p.Styles.CursorLine.Render(row)
	}
	return row
}
