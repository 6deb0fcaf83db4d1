package tui

import "github.com/ensigniasec/regionpick/internal/selector"

// Message types for Bubble Tea update loop.

// scaleChangedMsg is sent after style variables were republished.
type scaleChangedMsg struct {
	Scale float64
	Width float64
}

// selectorMsg carries a selector state change.
type selectorMsg struct{ Event selector.Event }

// statusExpiredMsg clears a flashed status message if it is still the current one.
type statusExpiredMsg struct{ Seq int }

// configReloadedMsg reports that the config file was reloaded.
type configReloadedMsg struct{}
