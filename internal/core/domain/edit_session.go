package domain

// EditEntry is one field under edit. Kind is the field's original kind and
// decides how Text is parsed back when the session is saved.
type EditEntry struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	Text string `json:"text"`

	original Value
}

// EditSession is a text copy of one document's fields, pending save or cancel.
type EditSession struct {
	Collection string      `json:"collection"`
	DocumentID string      `json:"document_id"`
	Entries    []EditEntry `json:"entries"`
}

// NewEditSession copies every field of doc into a new session.
func NewEditSession(collection string, doc Document) EditSession {
	s := EditSession{
		Collection: collection,
		DocumentID: doc.ID,
		Entries:    make([]EditEntry, 0, doc.Fields.Len()),
	}
	doc.Fields.Each(func(name string, v Value) {
		s.Entries = append(s.Entries, EditEntry{Name: name, Kind: v.Kind(), Text: v.EditText(), original: v})
	})
	return s
}

// Text returns the current text of a field.
func (s EditSession) Text(name string) (string, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e.Text, true
		}
	}
	return "", false
}

// WithText returns a copy with the text of an existing field replaced.
// Names outside the session are ignored.
func (s EditSession) WithText(name, text string) EditSession {
	entries := make([]EditEntry, len(s.Entries))
	copy(entries, s.Entries)
	for i := range entries {
		if entries[i].Name == name {
			entries[i].Text = text
		}
	}
	s.Entries = entries
	return s
}

// Fields converts the session back into typed fields. Untouched fields
// keep their original value. Edited text is parsed as the field's original
// kind, with nested values conformed to the original, and text that no
// longer parses is kept as a string.
func (s EditSession) Fields() Fields {
	var f Fields
	for _, e := range s.Entries {
		f.Set(e.Name, e.value())
	}
	return f
}

func (e EditEntry) value() Value {
	if e.original.Kind() == e.Kind && e.Text == e.original.EditText() {
		return e.original
	}
	v, err := ParseText(e.Kind, e.Text)
	if err != nil {
		return StringValue(e.Text)
	}
	return Conform(v, e.original)
}
