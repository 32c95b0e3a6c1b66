package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Unbounded marks a missing min or max bound on a RangeInput.
func Unbounded() float64 { return math.NaN() }

type rangeKeyMap struct {
	MajorDown key.Binding
	MajorUp   key.Binding
	MinorDown key.Binding
	MinorUp   key.Binding
}

func newRangeKeyMap() rangeKeyMap {
	return rangeKeyMap{
		MajorDown: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "decrease")),
		MajorUp:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "increase")),
		MinorDown: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←", "fine decrease")),
		MinorUp:   key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→", "fine increase")),
	}
}

// RangeStyles controls slider painting.
type RangeStyles struct {
	Label   lipgloss.Style
	Track   lipgloss.Style
	Fill    lipgloss.Style
	Handle  lipgloss.Style
	Readout lipgloss.Style
}

// DefaultRangeStyles returns a neutral style set.
func DefaultRangeStyles() RangeStyles {
	return RangeStyles{
		Label:   lipgloss.NewStyle(),
		Track:   lipgloss.NewStyle().Faint(true),
		Fill:    lipgloss.NewStyle(),
		Handle:  lipgloss.NewStyle().Bold(true),
		Readout: lipgloss.NewStyle(),
	}
}

// RangeInput is a controlled numeric slider. Value is owned by the
// caller; every adjustment path funnels through HandleChange with the
// clamped candidate, and the widget itself never stores a value.
//
// Min and Max default to Unbounded(); clamping applies only to bounds
// that are set. MinorStep and MajorStep must be positive.
type RangeInput struct {
	Label        string
	Value        float64
	Min          float64
	Max          float64
	MinorStep    float64
	MajorStep    float64
	HandleChange func(float64)

	TrackWidth int
	Styles     RangeStyles

	focused bool
	keys    rangeKeyMap
}

// NewRangeInput builds an unbounded slider.
func NewRangeInput(label string, minorStep, majorStep float64) *RangeInput {
	return &RangeInput{
		Label:      label,
		Min:        Unbounded(),
		Max:        Unbounded(),
		MinorStep:  minorStep,
		MajorStep:  majorStep,
		TrackWidth: 20,
		Styles:     DefaultRangeStyles(),
		keys:       newRangeKeyMap(),
	}
}

// SetBounds sets the clamp range. Pass Unbounded() to leave a side
// open.
func (r *RangeInput) SetBounds(min, max float64) {
	r.Min = min
	r.Max = max
}

// Focus directs keyboard adjustment to this slider.
func (r *RangeInput) Focus() { r.focused = true }

// Blur releases keyboard focus.
func (r *RangeInput) Blur() { r.focused = false }

// Focused reports whether the slider holds keyboard focus.
func (r *RangeInput) Focused() bool { return r.focused }

// clamp bounds v to [Min, Max] for whichever bounds are set. The two
// clamps bound opposite directions, so application order is
// irrelevant.
func (r *RangeInput) clamp(v float64) float64 {
	if !math.IsNaN(r.Min) && v < r.Min {
		v = r.Min
	}
	if !math.IsNaN(r.Max) && v > r.Max {
		v = r.Max
	}
	return v
}

func (r *RangeInput) emit(v float64) {
	if r.HandleChange != nil {
		r.HandleChange(v)
	}
}

// StepMajorDown subtracts MajorStep and emits the clamped result.
func (r *RangeInput) StepMajorDown() { r.emit(r.clamp(r.Value - r.MajorStep)) }

// StepMajorUp adds MajorStep and emits the clamped result.
func (r *RangeInput) StepMajorUp() { r.emit(r.clamp(r.Value + r.MajorStep)) }

// StepMinorDown subtracts MinorStep and emits the clamped result.
func (r *RangeInput) StepMinorDown() { r.emit(r.clamp(r.Value - r.MinorStep)) }

// StepMinorUp adds MinorStep and emits the clamped result.
func (r *RangeInput) StepMinorUp() { r.emit(r.clamp(r.Value + r.MinorStep)) }

// Update handles a key press. Adjustment keys are live only while the
// slider holds focus.
func (r *RangeInput) Update(msg tea.KeyMsg) {
	if !r.focused {
		return
	}
	switch {
	case key.Matches(msg, r.keys.MinorDown):
		r.StepMinorDown()
	case key.Matches(msg, r.keys.MinorUp):
		r.StepMinorUp()
	case key.Matches(msg, r.keys.MajorDown):
		r.StepMajorDown()
	case key.Matches(msg, r.keys.MajorUp):
		r.StepMajorUp()
	}
}

// Drag maps a pointer position on the track (0-based column) straight
// to a value, bypassing the step arithmetic. The raw value snaps to
// MinorStep granularity and is clamped, mirroring a native range
// control's own constraints. Dragging needs both bounds; an unbounded
// track has no geometry to map against.
func (r *RangeInput) Drag(col int) {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.TrackWidth < 2 {
		return
	}
	frac := float64(col) / float64(r.TrackWidth-1)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	raw := r.Min + frac*(r.Max-r.Min)
	snapped := math.Round(raw/r.MinorStep) * r.MinorStep
	r.emit(r.clamp(snapped))
}

// View renders "Label ░░░●░░ value".
func (r *RangeInput) View() string {
	handle := 0
	if !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && r.Max > r.Min {
		frac := (r.clamp(r.Value) - r.Min) / (r.Max - r.Min)
		handle = int(math.Round(frac * float64(r.TrackWidth-1)))
	}
	var track strings.Builder
	for i := 0; i < r.TrackWidth; i++ {
		switch {
		case i == handle:
			track.WriteString(r.Styles.Handle.Render("●"))
		case i < handle:
			track.WriteString(r.Styles.Fill.Render("█"))
		default:
			track.WriteString(r.Styles.Track.Render("░"))
		}
	}
	readout := r.Styles.Readout.Render(formatRangeValue(r.Value))
	label := r.Styles.Label.Render(r.Label)
	return label + " " + track.String() + " " + readout
}

func formatRangeValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return strings.TrimRight(fmt.Sprintf("%.2f", v), "0")
}
