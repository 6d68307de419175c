package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, ModeDocuments, bar.Mode())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilDependencies(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Contains(t, bar.View(), "Ready")
}

func TestBar_View_States(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Bar)
		want  string
	}{
		{name: "loading", setup: func(b *Bar) { b.SetState(StateLoading) }, want: "Loading..."},
		{name: "saving", setup: func(b *Bar) { b.SetState(StateSaving) }, want: "Saving..."},
		{name: "collection summary", setup: func(b *Bar) { b.SetCollection("Mirae", 3) }, want: "Mirae: 3 documents"},
		{
			name: "notice wins over state",
			setup: func(b *Bar) {
				b.SetState(StateLoading)
				b.SetNotice("create Mirae failed: permission denied", LevelError)
			},
			want: "create Mirae failed: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			tt.setup(bar)

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestBar_View_HintsFollowMode(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)

	assert.Contains(t, bar.View(), "e: edit")

	bar.SetMode(ModeEdit)
	assert.Contains(t, bar.View(), "ctrl+s: save")
	assert.NotContains(t, bar.View(), "e: edit")

	bar.SetMode(ModeDraft)
	assert.Contains(t, bar.View(), "ctrl+n: + field")
}

func TestBar_ClearNotice(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetNotice("delete Mirae/1 ok", LevelInfo)

	msg, level := bar.Notice()
	assert.Equal(t, "delete Mirae/1 ok", msg)
	assert.Equal(t, LevelInfo, level)

	bar.ClearNotice()
	msg, _ = bar.Notice()
	assert.Empty(t, msg)
}
