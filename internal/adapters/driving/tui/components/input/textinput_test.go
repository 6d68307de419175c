package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docview/internal/adapters/driving/tui/styles"
)

func TestNewCell(t *testing.T) {
	cell := NewCell(styles.DefaultStyles(), "value", "Seoul")

	require.NotNil(t, cell)
	assert.Equal(t, "Seoul", cell.Value())
	assert.False(t, cell.Focused())
}

func TestNewCell_NilStyles(t *testing.T) {
	cell := NewCell(nil, "", "")

	require.NotNil(t, cell)
	assert.NotPanics(t, func() { _ = cell.View() })
}

func TestCell_TypingWhenFocused(t *testing.T) {
	cell := NewCell(nil, "", "Seo")
	cell.Focus()

	cell, _ = cell.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ul")})

	assert.Equal(t, "Seoul", cell.Value())
}

func TestCell_IgnoresTypingWhenBlurred(t *testing.T) {
	cell := NewCell(nil, "", "Seo")

	cell, _ = cell.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ul")})

	assert.Equal(t, "Seo", cell.Value())
}

func TestCell_FocusBlur(t *testing.T) {
	cell := NewCell(nil, "", "")

	cell.Focus()
	assert.True(t, cell.Focused())

	cell.Blur()
	assert.False(t, cell.Focused())
}

func TestCell_SetValue(t *testing.T) {
	cell := NewCell(nil, "", "old")

	cell.SetValue("new")

	assert.Equal(t, "new", cell.Value())
	assert.Contains(t, cell.View(), "new")
}

func TestCell_SetWidth(t *testing.T) {
	cell := NewCell(nil, "", "")

	cell.SetWidth(40)
	assert.Equal(t, 40, cell.Width())

	cell.SetWidth(2)
	assert.Equal(t, 8, cell.Width(), "width has a floor")
}
