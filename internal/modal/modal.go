// Package modal implements the add-city dialog state machine.
package modal

import (
	"strings"

	"github.com/fakhrymubarak/weather-dashboard/internal/render"
)

// State is derived from the dialog fields; it is never stored.
type State int

const (
	Closed State = iota
	OpenEmpty
	OpenTyping
	OpenError
)

func (s State) String() string {
	switch s {
	case OpenEmpty:
		return "open-empty"
	case OpenTyping:
		return "open-typing"
	case OpenError:
		return "open-error"
	default:
		return "closed"
	}
}

// Suggester filters the place catalog by a partial name.
type Suggester interface {
	Suggest(query string) []string
}

// Modal is not safe for concurrent use.
type Modal struct {
	suggester       Suggester
	open            bool
	input           string
	suggestions     []string
	showSuggestions bool
	err             string
}

func New(s Suggester) *Modal {
	return &Modal{suggester: s}
}

func (m *Modal) State() State {
	switch {
	case !m.open:
		return Closed
	case m.err != "":
		return OpenError
	case m.input != "":
		return OpenTyping
	default:
		return OpenEmpty
	}
}

func (m *Modal) IsOpen() bool { return m.open }

// Open resets the dialog and shows it.
func (m *Modal) Open() {
	m.open = true
	m.input = ""
	m.suggestions = nil
	m.showSuggestions = false
	m.err = ""
}

// Input records a keystroke. Any keystroke clears the validation error.
func (m *Modal) Input(text string) {
	m.input = text
	m.err = ""
	if q := strings.TrimSpace(text); q != "" {
		m.suggestions = m.suggester.Suggest(q)
		m.showSuggestions = true
		return
	}
	m.showSuggestions = false
}

// PickSuggestion fills the input without submitting.
func (m *Modal) PickSuggestion(name string) {
	m.input = name
	m.showSuggestions = false
}

// Submission returns the trimmed input; ok is false when there is nothing to submit.
func (m *Modal) Submission() (name string, ok bool) {
	name = strings.TrimSpace(m.input)
	return name, name != ""
}

// Fail shows a validation error and keeps the input editable.
func (m *Modal) Fail(msg string) {
	m.err = msg
}

func (m *Modal) Close() {
	m.open = false
}

// Blur hides suggestions without closing the dialog.
func (m *Modal) Blur() {
	m.showSuggestions = false
}

// View is the render input for the dialog.
func (m *Modal) View() render.ModalView {
	v := render.ModalView{
		Open:            m.open,
		Input:           m.input,
		ShowSuggestions: m.showSuggestions,
		Error:           m.err,
	}
	if len(m.suggestions) > 0 {
		v.Suggestions = append([]string(nil), m.suggestions...)
	}
	return v
}
