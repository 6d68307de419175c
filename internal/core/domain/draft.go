package domain

import "strconv"

// DraftField is one staged field of a draft.
type DraftField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Draft holds the string fields of a document that has not been created
// yet. All methods return a new Draft and leave the receiver untouched.
type Draft struct {
	Fields []DraftField `json:"fields"`
}

// NewDraft builds a draft from name/value pairs in order.
func NewDraft(fields ...DraftField) Draft {
	var d Draft
	for _, f := range fields {
		d = d.WithField(f.Name, f.Value)
	}
	return d
}

// Len returns the number of fields.
func (d Draft) Len() int { return len(d.Fields) }

// IsEmpty reports whether the draft has no fields.
func (d Draft) IsEmpty() bool { return len(d.Fields) == 0 }

// Get returns the value staged for name.
func (d Draft) Get(name string) (string, bool) {
	if i := d.index(name); i >= 0 {
		return d.Fields[i].Value, true
	}
	return "", false
}

// WithField adds a field. An existing field with the same name is
// overwritten in place.
func (d Draft) WithField(name, value string) Draft {
	c := d.clone()
	if i := c.index(name); i >= 0 {
		c.Fields[i].Value = value
		return c
	}
	c.Fields = append(c.Fields, DraftField{Name: name, Value: value})
	return c
}

// WithValue replaces the value of an existing field. Absent names are ignored.
func (d Draft) WithValue(name, value string) Draft {
	i := d.index(name)
	if i < 0 {
		return d
	}
	c := d.clone()
	c.Fields[i].Value = value
	return c
}

// Renamed moves the value held by oldName to newName. If newName already
// names a different field, that field's value is replaced and oldName is
// dropped.
func (d Draft) Renamed(oldName, newName string) Draft {
	i := d.index(oldName)
	if i < 0 || oldName == newName {
		return d
	}
	c := d.clone()
	value := c.Fields[i].Value
	if j := c.index(newName); j >= 0 {
		c.Fields[j].Value = value
		c.Fields = append(c.Fields[:i], c.Fields[i+1:]...)
		return c
	}
	c.Fields[i].Name = newName
	return c
}

// Without removes a field. Absent names are ignored.
func (d Draft) Without(name string) Draft {
	i := d.index(name)
	if i < 0 {
		return d
	}
	c := d.clone()
	c.Fields = append(c.Fields[:i], c.Fields[i+1:]...)
	return c
}

// NextFieldName returns the name given to a freshly added blank field.
func (d Draft) NextFieldName() string {
	n := len(d.Fields) + 1
	for {
		name := "field" + strconv.Itoa(n)
		if d.index(name) < 0 {
			return name
		}
		n++
	}
}

// ToFields converts the draft into string-valued document fields.
func (d Draft) ToFields() Fields {
	var f Fields
	for _, df := range d.Fields {
		f.Set(df.Name, StringValue(df.Value))
	}
	return f
}

func (d Draft) index(name string) int {
	for i, f := range d.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (d Draft) clone() Draft {
	if d.Fields == nil {
		return Draft{}
	}
	fields := make([]DraftField, len(d.Fields))
	copy(fields, d.Fields)
	return Draft{Fields: fields}
}
