package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// collapseThreshold is the height at or below which a resizeable
// panel snaps shut on its own.
const collapseThreshold = 10

// PanelStyles controls panel chrome painting.
type PanelStyles struct {
	Header        lipgloss.Style
	HeaderFocused lipgloss.Style
	Indicator     lipgloss.Style
	Body          lipgloss.Style
	Grip          lipgloss.Style
}

// DefaultPanelStyles returns a neutral style set.
func DefaultPanelStyles() PanelStyles {
	return PanelStyles{
		Header:        lipgloss.NewStyle().Bold(true),
		HeaderFocused: lipgloss.NewStyle().Bold(true).Reverse(true),
		Indicator:     lipgloss.NewStyle(),
		Body:          lipgloss.NewStyle(),
		Grip:          lipgloss.NewStyle().Faint(true),
	}
}

// Panel is a collapsible, optionally resizeable container. Its state
// lives for the instance's lifetime only and is mutated exclusively
// through the action methods; after every mutation the reactions run
// in a fixed order, so a single action never leaves a half-applied
// cascade behind.
type Panel struct {
	Title       string
	CanCollapse bool
	Resizeable  bool
	OnExpand    func()

	height          int
	expandToHeight  int
	initialHeight   int
	collapsed       bool
	manuallyChanged bool
	contentID       string
	scrollRequested bool

	Styles PanelStyles
}

// NewPanel builds a panel in the expanded configuration. Collapse
// bookkeeping starts clean regardless of canCollapse; the first frame
// always shows the panel open at initialHeight.
func NewPanel(title string, initialHeight int, canCollapse, resizeable bool) *Panel {
	return &Panel{
		Title:          title,
		CanCollapse:    canCollapse,
		Resizeable:     resizeable,
		height:         initialHeight,
		expandToHeight: initialHeight,
		initialHeight:  initialHeight,
		contentID:      uuid.NewString(),
		Styles:         DefaultPanelStyles(),
	}
}

// Height returns the current rendered height.
func (p *Panel) Height() int { return p.height }

// ExpandToHeight returns the height an expand restores to.
func (p *Panel) ExpandToHeight() int { return p.expandToHeight }

// Collapsed reports whether the panel is collapsed.
func (p *Panel) Collapsed() bool { return p.collapsed }

// ManuallyChanged reports whether a user resize has suppressed
// automatic height re-sync.
func (p *Panel) ManuallyChanged() bool { return p.manuallyChanged }

// ContentID returns the instance's stable content identifier, for
// linking related content to this panel.
func (p *Panel) ContentID() string { return p.contentID }

// Collapse closes the panel. No-op unless CanCollapse; zeroes the
// visible height only when the panel tracks height at all.
func (p *Panel) Collapse() {
	if !p.CanCollapse {
		return
	}
	p.collapsed = true
	if p.Resizeable {
		p.height = 0
	}
	p.react()
}

// Expand opens the panel. restore brings the height back to the
// remembered expand target on resizeable panels.
func (p *Panel) Expand(restore bool) {
	p.collapsed = false
	if restore && p.Resizeable {
		p.height = p.expandToHeight
	}
	if p.OnExpand != nil {
		p.OnExpand()
	}
	p.react()
}

// SetHeight applies a user-driven resize. No-op unless Resizeable.
// Marks the panel manually changed, which suppresses initial-height
// re-sync until ResetHeight. A resize that pulls a collapsed panel
// past the threshold expands it without restoring height, since the
// height was just set explicitly.
func (p *Panel) SetHeight(h int) {
	if !p.Resizeable {
		return
	}
	p.manuallyChanged = true
	p.height = h
	if p.collapsed && h > collapseThreshold {
		p.Expand(false)
		return // Expand already ran the reactions
	}
	p.react()
}

// ResetHeight clears the manual-resize latch so initial-height re-sync
// applies again, and puts the height back at the expand target.
func (p *Panel) ResetHeight() {
	p.manuallyChanged = false
	if p.collapsed {
		p.Expand(true)
		return
	}
	if p.Resizeable {
		p.height = p.expandToHeight
	}
	p.react()
}

// SetInitialHeight re-syncs the default height from the caller. The
// sync is live only until the user resizes manually.
func (p *Panel) SetInitialHeight(h int) {
	p.initialHeight = h
	if p.manuallyChanged || !p.Resizeable {
		return
	}
	p.height = h
	p.expandToHeight = h
	p.react()
}

// ActivateShortcut expands the panel and requests that the app scroll
// it into view.
func (p *Panel) ActivateShortcut() {
	p.Expand(true)
	p.scrollRequested = true
}

// TakeScrollRequest reports and clears a pending scroll-into-view
// request.
func (p *Panel) TakeScrollRequest() bool {
	req := p.scrollRequested
	p.scrollRequested = false
	return req
}

// react runs the reactive rules in their fixed order after a
// mutation. Order: auto-collapse-on-shrink. Initial-height re-sync is
// prop-change driven and lives in SetInitialHeight.
func (p *Panel) react() {
	if p.Resizeable && !p.collapsed && p.height <= collapseThreshold {
		p.Collapse()
	}
}

// Handle is the explicit state-and-actions object handed to panel
// content, so a deeply nested child (a drag grip, a reset control)
// can read and drive the panel without prop threading.
type Handle struct {
	panel *Panel
}

// Handle returns the panel's descendant-facing handle.
func (p *Panel) Handle() Handle { return Handle{panel: p} }

// Height returns the panel's current height.
func (h Handle) Height() int { return h.panel.height }

// Collapsed reports the panel's collapse flag.
func (h Handle) Collapsed() bool { return h.panel.collapsed }

// ContentID returns the panel's stable content identifier.
func (h Handle) ContentID() string { return h.panel.contentID }

// SetHeight drives a user resize on the panel.
func (h Handle) SetHeight(height int) { h.panel.SetHeight(height) }

// Collapse closes the panel.
func (h Handle) Collapse() { h.panel.Collapse() }

// Expand opens the panel, restoring height.
func (h Handle) Expand() { h.panel.Expand(true) }

// ResetHeight clears the manual-resize latch.
func (h Handle) ResetHeight() { h.panel.ResetHeight() }

// View renders the panel header plus, when expanded, the body clipped
// and padded to the tracked height. content receives the handle so
// nested widgets can drive the panel.
func (p *Panel) View(width int, focused bool, content func(Handle) string) string {
	indicator := "▾"
	if p.collapsed {
		indicator = "▸"
	}
	header := p.Styles.Header
	if focused {
		header = p.Styles.HeaderFocused
	}
	title := p.Styles.Indicator.Render(indicator) + " " + p.Title
	if p.Resizeable && !p.collapsed {
		title += fmt.Sprintf(" (%d)", p.height)
	}
	lines := []string{header.Render(padPanelLine(title, width))}

	if !p.collapsed {
		body := ""
		if content != nil {
			body = content(p.Handle())
		}
		bodyLines := strings.Split(body, "\n")
		rows := p.height
		if !p.Resizeable {
			rows = len(bodyLines)
		}
		for i := 0; i < rows; i++ {
			line := ""
			if i < len(bodyLines) {
				line = bodyLines[i]
			}
			lines = append(lines, p.Styles.Body.Render(padPanelLine(line, width)))
		}
		if p.Resizeable {
			lines = append(lines, p.Styles.Grip.Render(padPanelLine(strings.Repeat("┈", min(width, 8)), width)))
		}
	}
	return strings.Join(lines, "\n")
}

func padPanelLine(s string, width int) string {
	w := lipgloss.Width(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
