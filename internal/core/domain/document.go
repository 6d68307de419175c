package domain

// CreatedAtField is the field stamped on every document created from a draft.
const CreatedAtField = "createdAt"

// Document is a single stored document.
type Document struct {
	// ID is the store-assigned identifier. It is never one of the Fields.
	ID string `json:"id"`

	// Fields holds the document's data in the order reported by the store.
	Fields Fields `json:"fields"`
}

// DisplayField is one rendered field of a document.
type DisplayField struct {
	Name string
	Text string
}

// DisplayFields returns every field rendered for viewing.
func (d Document) DisplayFields() []DisplayField {
	out := make([]DisplayField, 0, d.Fields.Len())
	d.Fields.Each(func(name string, v Value) {
		out = append(out, DisplayField{Name: name, Text: v.String()})
	})
	return out
}

// Collection is a named group of documents.
type Collection struct {
	// Name is one of the configured collection names.
	Name string `json:"name"`

	// Documents are the collection's documents in store order.
	Documents []Document `json:"documents"`
}

// Count returns the number of documents.
func (c Collection) Count() int {
	return len(c.Documents)
}

// Document finds a document by ID.
func (c Collection) Document(id string) (Document, bool) {
	for _, doc := range c.Documents {
		if doc.ID == id {
			return doc, true
		}
	}
	return Document{}, false
}

// CollectionFailure records a collection that could not be fetched.
type CollectionFailure struct {
	Name string
	Err  error
}

// LoadReport is the outcome of loading every configured collection.
// Failed collections are absent from Collections and listed in Failures.
type LoadReport struct {
	Collections []Collection
	Failures    []CollectionFailure
}

// Failed returns the names of the collections that failed to load.
func (r LoadReport) Failed() []string {
	names := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		names = append(names, f.Name)
	}
	return names
}

// Operation names a store call.
type Operation string

// Store operations.
const (
	OperationLoad   Operation = "load"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Result is the typed outcome of a single store call.
type Result struct {
	Op         Operation
	Collection string
	DocumentID string
	Err        error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Reason returns the failure reason, or an empty string on success.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// String summarises the result for notices and logs.
func (r Result) String() string {
	target := r.Collection
	if r.DocumentID != "" {
		target += "/" + r.DocumentID
	}
	if r.Err != nil {
		return string(r.Op) + " " + target + " failed: " + r.Err.Error()
	}
	return string(r.Op) + " " + target + " ok"
}
