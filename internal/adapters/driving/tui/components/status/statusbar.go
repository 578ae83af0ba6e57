// Package status provides the picker status bar.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// State represents what the picker is doing.
type State string

const (
	StateTyping    State = "typing"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateResolving State = "resolving"
	StateError     State = "error"
)

// Bar displays picker status and keybinding hints.
type Bar struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	state        State
	message      string
	count        int
	resultsFocus bool
	width        int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateTyping,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		return "Searching..."
	case StateResolving:
		return "Resolving video..."
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateResults:
		return fmt.Sprintf("%d videos", s.count)
	case StateTyping:
	}
	return fmt.Sprintf("Type %d+ characters to search", domain.MinQueryLength)
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.resultsFocus {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.InputHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return strings.Join(hints, " | ")
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.count = count
}

// SetResultsFocus switches the hints between input and list bindings.
func (s *Bar) SetResultsFocus(focused bool) {
	s.resultsFocus = focused
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to the typing state.
func (s *Bar) Clear() {
	s.state = StateTyping
	s.message = ""
	s.count = 0
}
