// Package widgets contains the presentational controls for the editor
// chrome.
//
// Allowed here:
// - self-contained controls (pill, popover selector, range slider,
//   collapsible panel) and their local interaction state
//
// Not allowed here:
// - app-wide routing, scope policy, or layout composition
// - persistence of any kind; every value a widget shows is owned by
//   the caller and flows back out through callbacks
package widgets
