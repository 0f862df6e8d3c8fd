// Package pause implements the play/pause toggle that gates an easel's render
// callback.
package pause

import (
	"fmt"
	"weak"

	"github.com/agiangrant/easel/host"
)

// State is either Pause or Play.
type State int

const (
	// Pause is the initial state.
	Pause State = iota
	Play
)

const (
	// ButtonClass is the element class of the indicator.
	ButtonClass = "easel-pause"
	// ButtonTitle is the indicator's tooltip.
	ButtonTitle = "Play/Pause"
)

// Label returns the glyph shown on the indicator in this state. The glyph
// names the action a click performs next, so Pause shows "play" and Play
// shows "pause".
func (s State) Label() string {
	if s == Play {
		return "⏸︎"
	}
	return "⏵︎"
}

// Toggle returns the other state.
func (s State) Toggle() State {
	if s == Play {
		return Pause
	}
	return Play
}

func (s State) String() string {
	if s == Play {
		return "play"
	}
	return "pause"
}

// Button is the pause controller together with its clickable indicator.
type Button struct {
	state     State
	indicator host.Button
	onChange  func(State)
}

// New creates the indicator and a controller in the Pause state. onChange,
// if non-nil, is called with the new state after every transition.
func New(elements host.Elements, onChange func(State)) (*Button, error) {
	indicator, err := elements.NewButton(ButtonClass, ButtonTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to create pause button: %w: %w", host.ErrElementConstructionFailed, err)
	}
	b := &Button{
		state:     Pause,
		indicator: indicator,
		onChange:  onChange,
	}
	indicator.SetLabel(b.state.Label())

	// The host keeps the listener for as long as the element lives, so the
	// listener must not keep the controller alive.
	ref := weak.Make(b)
	indicator.OnClick(func() {
		if b := ref.Value(); b != nil {
			b.Toggle()
		}
	})
	return b, nil
}

// Toggle flips the state, relabels the indicator and notifies the hook.
func (b *Button) Toggle() {
	b.state = b.state.Toggle()
	b.indicator.SetLabel(b.state.Label())
	if b.onChange != nil {
		b.onChange(b.state)
	}
}

// Click is Toggle, for callers that are not going through the indicator.
func (b *Button) Click() {
	b.Toggle()
}

// IsPaused reports whether the controller is in the Pause state.
func (b *Button) IsPaused() bool {
	return b.state == Pause
}

// State returns the current state.
func (b *Button) State() State {
	return b.state
}

// Indicator returns the clickable element.
func (b *Button) Indicator() host.Button {
	return b.indicator
}
