package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{"store.backend": "memory"})

	assert.Equal(t, "memory", store.GetString("store.backend"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("firestore.project_id", "campus"))
	require.NoError(t, store.Set("firestore.project_id", "campus-2"))

	val, ok := store.Get("firestore.project_id")
	assert.True(t, ok)
	assert.Equal(t, "campus-2", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str":   "value",
		"num":   42,
		"empty": "",
	})

	assert.Equal(t, "value", store.GetString("str"))
	assert.Equal(t, "", store.GetString("num"))
	assert.Equal(t, "", store.GetString("empty"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected []string
	}{
		{name: "string slice", value: []string{"A", "B"}, expected: []string{"A", "B"}},
		{name: "any slice skips non-strings", value: []any{"A", 1, "B"}, expected: []string{"A", "B"}},
		{name: "wrong type", value: "A,B", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore(map[string]any{"viewer.collections": tt.value})
			assert.Equal(t, tt.expected, store.GetStringSlice("viewer.collections"))
		})
	}

	assert.Nil(t, NewConfigStore().GetStringSlice("viewer.collections"))
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := NewConfigStore(map[string]any{"viewer.collections": []string{"A"}})

	got := store.GetStringSlice("viewer.collections")
	got[0] = "changed"

	assert.Equal(t, []string{"A"}, store.GetStringSlice("viewer.collections"))
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			_ = store.Set(key, n)
			_, _ = store.Get(key)
			_ = store.GetString(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		val, ok := store.Get(fmt.Sprintf("key.%d", i))
		assert.True(t, ok)
		assert.Equal(t, i, val)
	}
}
