// Package messages defines Bubbletea message types for the TUI.
// Requests flow from views to the app; results flow back from store calls.
package messages

import (
	"github.com/custodia-labs/docview/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDocuments is the collection selector and document list.
	ViewDocuments ViewType = iota
	// ViewDraft is the new-document form.
	ViewDraft
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDocuments:
		return "documents"
	case ViewDraft:
		return "draft"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ReloadRequested asks for every collection to be fetched again.
type ReloadRequested struct{}

// CollectionsLoaded carries the outcome of a full load.
type CollectionsLoaded struct {
	Report domain.LoadReport
}

// DraftSubmitRequested asks for the draft to be created in a collection.
type DraftSubmitRequested struct {
	Collection string
	Draft      domain.Draft
}

// DraftSubmitted carries the outcome of creating a document.
type DraftSubmitted struct {
	Result domain.Result
}

// EditSaveRequested asks for an edited document to be written back.
type EditSaveRequested struct {
	Collection string
	DocumentID string
	Fields     domain.Fields
}

// DocumentUpdated carries the outcome of saving an edit.
type DocumentUpdated struct {
	Result domain.Result
}

// DeleteRequested asks for a document to be removed.
type DeleteRequested struct {
	Collection string
	DocumentID string
}

// DocumentDeleted carries the outcome of a delete.
type DocumentDeleted struct {
	Result domain.Result
}

// NoticeExpired clears the status bar notice with the given sequence number.
type NoticeExpired struct {
	Seq int
}

// Quit signals the application should exit.
type Quit struct{}
