// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/styles"
)

// State represents what the app is doing, for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateSaving  State = "saving"
)

// Mode selects which keybinding hints are shown.
type Mode string

const (
	ModeDocuments Mode = "documents"
	ModeEdit      Mode = "edit"
	ModeDraft     Mode = "draft"
)

// Level is the severity of a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Bar displays application state, a transient notice, and keybinding hints.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	state  State
	mode   Mode

	notice      string
	noticeLevel Level

	collection string
	docCount   int

	width int
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
		state:  StateReady,
		mode:   ModeDocuments,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.notice != "" {
		if s.noticeLevel == LevelError {
			return s.styles.Error.Render(s.notice)
		}
		return s.styles.Success.Render(s.notice)
	}

	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateSaving:
		return s.styles.Muted.Render("Saving...")
	case StateReady:
	}
	if s.collection == "" {
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Normal.Render(fmt.Sprintf("%s: %d documents", s.collection, s.docCount))
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.mode {
	case ModeEdit:
		bindings = s.keymap.EditHelp()
	case ModeDraft:
		bindings = s.keymap.DraftHelp()
	default:
		bindings = s.keymap.DocumentsHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMode sets which hints are shown.
func (s *Bar) SetMode(mode Mode) {
	s.mode = mode
}

// Mode returns the current hint mode.
func (s *Bar) Mode() Mode {
	return s.mode
}

// SetNotice shows a notice until it is cleared.
func (s *Bar) SetNotice(notice string, level Level) {
	s.notice = notice
	s.noticeLevel = level
}

// Notice returns the current notice and its level.
func (s *Bar) Notice() (string, Level) {
	return s.notice, s.noticeLevel
}

// ClearNotice removes the notice.
func (s *Bar) ClearNotice() {
	s.notice = ""
	s.noticeLevel = LevelInfo
}

// SetCollection sets the collection summary shown when idle.
func (s *Bar) SetCollection(name string, docCount int) {
	s.collection = name
	s.docCount = docCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
