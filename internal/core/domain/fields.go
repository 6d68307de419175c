package domain

import (
	"bytes"
	"encoding/json"
)

// Field is a single named value.
type Field struct {
	Name  string
	Value Value
}

// Fields is an ordered mapping of field name to Value. Iteration follows
// insertion order; overwriting an existing name keeps its position.
// The zero Fields is empty and ready to use.
type Fields struct {
	names  []string
	values map[string]Value
}

// NewFields builds Fields from the given entries in order.
// Later entries overwrite earlier ones with the same name.
func NewFields(entries ...Field) Fields {
	var f Fields
	for _, e := range entries {
		f.Set(e.Name, e.Value)
	}
	return f
}

// Len returns the number of fields.
func (f Fields) Len() int { return len(f.names) }

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// Get returns the value for name.
func (f Fields) Get(name string) (Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Has reports whether name is present.
func (f Fields) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Entries returns the fields in order.
func (f Fields) Entries() []Field {
	entries := make([]Field, 0, len(f.names))
	for _, name := range f.names {
		entries = append(entries, Field{Name: name, Value: f.values[name]})
	}
	return entries
}

// Each calls fn for every field in order.
func (f Fields) Each(fn func(name string, v Value)) {
	for _, name := range f.names {
		fn(name, f.values[name])
	}
}

// Set inserts or overwrites a field in place.
func (f *Fields) Set(name string, v Value) {
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = v
}

// Delete removes a field. Deleting an absent name is a no-op.
func (f *Fields) Delete(name string) {
	if _, ok := f.values[name]; !ok {
		return
	}
	delete(f.values, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	if len(f.names) == 0 {
		return Fields{}
	}
	c := Fields{
		names:  make([]string, len(f.names)),
		values: make(map[string]Value, len(f.values)),
	}
	copy(c.names, f.names)
	for k, v := range f.values {
		c.values[k] = v
	}
	return c
}

// With returns a copy with name set to v.
func (f Fields) With(name string, v Value) Fields {
	c := f.Clone()
	c.Set(name, v)
	return c
}

// Without returns a copy with name removed.
func (f Fields) Without(name string) Fields {
	c := f.Clone()
	c.Delete(name)
	return c
}

// Merge returns a copy with every field of other set on top.
func (f Fields) Merge(other Fields) Fields {
	c := f.Clone()
	other.Each(func(name string, v Value) {
		c.Set(name, v)
	})
	return c
}

// Equal reports whether both hold the same names, order and values.
func (f Fields) Equal(o Fields) bool {
	if len(f.names) != len(o.names) {
		return false
	}
	for i, name := range f.names {
		if o.names[i] != name {
			return false
		}
		if !f.values[name].Equal(o.values[name]) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the fields as a JSON object in field order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.values[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
