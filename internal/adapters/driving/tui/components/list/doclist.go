// Package list provides list display components for the TUI.
package list

import (
	"strings"

	"github.com/custodia-labs/docview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docview/internal/core/domain"
)

// EmptyMessage is shown for a collection without documents.
const EmptyMessage = "No documents in this collection"

// DocumentList displays the documents of one collection as a navigable
// list of cards, one per document.
type DocumentList struct {
	documents []domain.Document
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewDocumentList creates a new document list component.
func NewDocumentList(s *styles.Styles) *DocumentList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &DocumentList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// SetDocuments replaces the documents. The cursor stays on the same
// document id when it is still present, and is clamped otherwise.
func (l *DocumentList) SetDocuments(docs []domain.Document) {
	var current string
	if doc, ok := l.Selected(); ok {
		current = doc.ID
	}

	l.documents = docs
	for i, doc := range docs {
		if doc.ID == current {
			l.selected = i
			return
		}
	}
	l.clamp()
}

// Documents returns the documents shown.
func (l *DocumentList) Documents() []domain.Document {
	return l.documents
}

// Reset moves the cursor to the first document.
func (l *DocumentList) Reset() {
	l.selected = 0
}

// MoveUp moves the cursor up.
func (l *DocumentList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down.
func (l *DocumentList) MoveDown() {
	if l.selected < len(l.documents)-1 {
		l.selected++
	}
}

// SelectedIndex returns the cursor position.
func (l *DocumentList) SelectedIndex() int {
	return l.selected
}

// Selected returns the document under the cursor.
func (l *DocumentList) Selected() (domain.Document, bool) {
	if l.selected < 0 || l.selected >= len(l.documents) {
		return domain.Document{}, false
	}
	return l.documents[l.selected], true
}

// SetDimensions sets the space available to the list.
func (l *DocumentList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// View renders the visible window of documents. When render is not nil
// and reports ok, its output replaces the card under the cursor, so
// callers can swap in an edit form.
func (l *DocumentList) View(render func(domain.Document) (string, bool)) string {
	if len(l.documents) == 0 {
		return l.styles.Muted.Render(EmptyMessage)
	}

	start, end := l.window()
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		doc := l.documents[i]
		if i == l.selected && render != nil {
			if card, ok := render(doc); ok {
				cards = append(cards, card)
				continue
			}
		}
		cards = append(cards, l.renderCard(doc, i == l.selected))
	}
	return strings.Join(cards, "\n")
}

// window returns the range of documents that fit, keeping the cursor in view.
// Cards are assumed to take about five lines.
func (l *DocumentList) window() (int, int) {
	visible := l.height / 5
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.documents) {
		end = len(l.documents)
	}
	return start, end
}

func (l *DocumentList) renderCard(doc domain.Document, selected bool) string {
	lines := []string{l.styles.Muted.Render("id: " + doc.ID)}
	for _, f := range doc.DisplayFields() {
		lines = append(lines, l.styles.FieldName.Render(f.Name)+": "+truncate(f.Text, l.width-len(f.Name)-10))
	}
	if doc.Fields.Len() == 0 {
		lines = append(lines, l.styles.Muted.Render("(no fields)"))
	}

	body := strings.Join(lines, "\n")
	if selected {
		return l.styles.SelectedCard.Render(body)
	}
	return l.styles.Card.Render(body)
}

func (l *DocumentList) clamp() {
	if l.selected >= len(l.documents) {
		l.selected = len(l.documents) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

func truncate(s string, maxLen int) string {
	if maxLen < 10 {
		maxLen = 10
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
