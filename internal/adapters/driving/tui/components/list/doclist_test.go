package list

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docview/internal/core/domain"
)

func testDocs() []domain.Document {
	return []domain.Document{
		{ID: "1", Fields: domain.NewFields(domain.Field{Name: "name", Value: domain.StringValue("A")})},
		{ID: "2", Fields: domain.NewFields(domain.Field{Name: "floors", Value: domain.IntegerValue(5)})},
		{ID: "3"},
	}
}

func TestNewDocumentList(t *testing.T) {
	l := NewDocumentList(nil)

	require.NotNil(t, l)
	_, ok := l.Selected()
	assert.False(t, ok)
}

func TestDocumentList_Empty(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDocuments(nil)

	assert.Contains(t, l.View(nil), EmptyMessage)
}

func TestDocumentList_Navigation(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDocuments(testDocs())

	l.MoveUp()
	assert.Equal(t, 0, l.SelectedIndex(), "stays at top")

	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.SelectedIndex(), "stays at bottom")

	doc, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "3", doc.ID)

	l.Reset()
	assert.Equal(t, 0, l.SelectedIndex())
}

func TestDocumentList_SetDocumentsKeepsCursorOnSameID(t *testing.T) {
	l := NewDocumentList(nil)
	docs := testDocs()
	l.SetDocuments(docs)
	l.MoveDown()

	l.SetDocuments(docs[1:])

	doc, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "2", doc.ID)
}

func TestDocumentList_SetDocumentsClampsCursor(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDocuments(testDocs())
	l.MoveDown()
	l.MoveDown()

	l.SetDocuments(testDocs()[:1])

	assert.Equal(t, 0, l.SelectedIndex())
}

func TestDocumentList_ViewShowsFieldsNotID(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDimensions(120, 40)
	l.SetDocuments(testDocs())

	out := l.View(nil)

	assert.Contains(t, out, "id: 1")
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "5")
	assert.Contains(t, out, "(no fields)")
}

func TestDocumentList_ViewUsesRenderForSelected(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDimensions(120, 40)
	l.SetDocuments(testDocs())

	out := l.View(func(doc domain.Document) (string, bool) { return "EDITING " + doc.ID, true })

	assert.Contains(t, out, "EDITING 1")
	assert.NotContains(t, out, "EDITING 2")
}

func TestDocumentList_ViewFallsBackWhenRenderDeclines(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDimensions(120, 40)
	l.SetDocuments(testDocs())

	out := l.View(func(domain.Document) (string, bool) { return "", false })

	assert.Contains(t, out, "id: 1")
}

func TestDocumentList_WindowFollowsCursor(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDimensions(120, 5)
	l.SetDocuments(testDocs())
	l.MoveDown()
	l.MoveDown()

	out := l.View(nil)

	assert.Contains(t, out, "id: 3")
	assert.NotContains(t, out, "id: 1")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	long := strings.Repeat("x", 30)
	assert.Equal(t, strings.Repeat("x", 17)+"...", truncate(long, 20))
	assert.Len(t, []rune(truncate(long, 2)), 10, "floor of ten runes")
}
