package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{name: "quit", binding: km.Quit, keys: []string{"q", "ctrl+c"}},
		{name: "help", binding: km.Help, keys: []string{"?"}},
		{name: "back", binding: km.Back, keys: []string{"esc"}},
		{name: "up", binding: km.Up, keys: []string{"up", "k"}},
		{name: "down", binding: km.Down, keys: []string{"down", "j"}},
		{name: "prev collection", binding: km.PrevCollection, keys: []string{"left", "h"}},
		{name: "next collection", binding: km.NextCollection, keys: []string{"right", "l"}},
		{name: "edit", binding: km.Edit, keys: []string{"e"}},
		{name: "delete", binding: km.Delete, keys: []string{"d"}},
		{name: "new draft", binding: km.NewDraft, keys: []string{"n"}},
		{name: "reload", binding: km.Reload, keys: []string{"r"}},
		{name: "save", binding: km.Save, keys: []string{"ctrl+s"}},
		{name: "add field", binding: km.AddField, keys: []string{"ctrl+n"}},
		{name: "remove field", binding: km.RemoveField, keys: []string{"ctrl+x"}},
		{name: "next cell", binding: km.NextCell, keys: []string{"tab"}},
		{name: "prev cell", binding: km.PrevCell, keys: []string{"shift+tab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.DocumentsHelp(), km.Edit)
	assert.Contains(t, km.EditHelp(), km.Save)
	assert.Contains(t, km.DraftHelp(), km.AddField)
	assert.NotEmpty(t, km.FullHelp())
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("l", km.NextCollection))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Edit))
}
