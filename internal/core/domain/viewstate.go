package domain

// ViewState is the complete state of the viewer. Every transition is a
// method that returns the next state and leaves the receiver unchanged,
// so the state can be driven and asserted without a rendering surface.
type ViewState struct {
	// Loading is true until the first load completes.
	Loading bool `json:"loading"`

	// Reloading is true while a reload after the first one is in flight.
	Reloading bool `json:"reloading"`

	// Collections holds the collections that loaded, in configured order.
	Collections []Collection `json:"collections"`

	// Unavailable names the configured collections that failed to load.
	Unavailable []string `json:"unavailable,omitempty"`

	// Selected is the name of the collection being shown.
	Selected string `json:"selected"`

	// Draft holds the new-document form.
	Draft Draft `json:"draft"`

	// Edit is the active edit session, if any.
	Edit *EditSession `json:"edit,omitempty"`
}

// NewViewState returns the initial state: loading, nothing selected.
func NewViewState() ViewState {
	return ViewState{Loading: true}
}

// BeginReload marks a reload as in flight.
func (s ViewState) BeginReload() ViewState {
	if !s.Loading {
		s.Reloading = true
	}
	return s
}

// ApplyLoad replaces the collections wholesale with a fresh load.
// The current selection is kept when it loaded again; otherwise the
// first loaded collection is selected. An edit session whose document
// did not load again is closed.
func (s ViewState) ApplyLoad(report LoadReport) ViewState {
	s.Loading = false
	s.Reloading = false
	s.Collections = report.Collections
	s.Unavailable = report.Failed()
	if _, ok := s.collection(s.Selected); !ok {
		s.Selected = ""
		if len(s.Collections) > 0 {
			s.Selected = s.Collections[0].Name
		}
	}
	if s.Edit != nil && !s.hasDocument(s.Edit.Collection, s.Edit.DocumentID) {
		s.Edit = nil
	}
	return s
}

func (s ViewState) hasDocument(collection, id string) bool {
	c, ok := s.collection(collection)
	if !ok {
		return false
	}
	_, ok = c.Document(id)
	return ok
}

// Select shows the named collection. Unknown names are ignored.
func (s ViewState) Select(name string) ViewState {
	if _, ok := s.collection(name); ok {
		s.Selected = name
	}
	return s
}

// SelectOffset moves the selection by delta positions, wrapping around.
func (s ViewState) SelectOffset(delta int) ViewState {
	n := len(s.Collections)
	if n == 0 {
		return s
	}
	i := 0
	for idx, c := range s.Collections {
		if c.Name == s.Selected {
			i = idx
			break
		}
	}
	i = ((i+delta)%n + n) % n
	s.Selected = s.Collections[i].Name
	return s
}

// SelectedCollection returns the collection being shown.
func (s ViewState) SelectedCollection() (Collection, bool) {
	return s.collection(s.Selected)
}

// AddDraftField adds or overwrites a draft field.
func (s ViewState) AddDraftField(name, value string) ViewState {
	s.Draft = s.Draft.WithField(name, value)
	return s
}

// RenameDraftField renames a draft field, keeping its value.
func (s ViewState) RenameDraftField(oldName, newName string) ViewState {
	s.Draft = s.Draft.Renamed(oldName, newName)
	return s
}

// SetDraftValue replaces the value of an existing draft field.
func (s ViewState) SetDraftValue(name, value string) ViewState {
	s.Draft = s.Draft.WithValue(name, value)
	return s
}

// RemoveDraftField removes a draft field.
func (s ViewState) RemoveDraftField(name string) ViewState {
	s.Draft = s.Draft.Without(name)
	return s
}

// ClearDraft empties the draft.
func (s ViewState) ClearDraft() ViewState {
	s.Draft = Draft{}
	return s
}

// BeginEdit opens an edit session on a document of the selected
// collection, replacing any other session. Unknown ids are ignored.
func (s ViewState) BeginEdit(documentID string) ViewState {
	c, ok := s.SelectedCollection()
	if !ok {
		return s
	}
	doc, ok := c.Document(documentID)
	if !ok {
		return s
	}
	session := NewEditSession(c.Name, doc)
	s.Edit = &session
	return s
}

// IsEditing reports whether documentID has the active edit session.
func (s ViewState) IsEditing(documentID string) bool {
	return s.Edit != nil && s.Edit.DocumentID == documentID
}

// SetEditText changes one field of the active edit session.
func (s ViewState) SetEditText(name, text string) ViewState {
	if s.Edit == nil {
		return s
	}
	session := s.Edit.WithText(name, text)
	s.Edit = &session
	return s
}

// CancelEdit discards the active edit session.
func (s ViewState) CancelEdit() ViewState {
	s.Edit = nil
	return s
}

// SaveEdit applies the outcome of saving an edit session. The session
// is closed only when the update for it succeeded; a failed save leaves
// it open so the edits are not lost.
func (s ViewState) SaveEdit(res Result) ViewState {
	if res.OK() && s.Edit != nil &&
		s.Edit.DocumentID == res.DocumentID && s.Edit.Collection == res.Collection {
		s.Edit = nil
	}
	return s
}

func (s ViewState) collection(name string) (Collection, bool) {
	for _, c := range s.Collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}
