package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// typedField and typedValue form a lossless JSON encoding of Fields that
// keeps both field order and value kinds. Scalars other than booleans are
// carried as their canonical text.
type typedField struct {
	Name  string     `json:"name"`
	Value typedValue `json:"value"`
}

type typedValue struct {
	Kind   Kind         `json:"kind"`
	Text   string       `json:"text,omitempty"`
	Bool   bool         `json:"bool,omitempty"`
	Fields []typedField `json:"fields,omitempty"`
	Items  []typedValue `json:"items,omitempty"`
}

// EncodeFields serialises fields with their kinds and order intact.
func EncodeFields(f Fields) ([]byte, error) {
	data, err := json.Marshal(toTypedFields(f))
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	return data, nil
}

// DecodeFields is the inverse of EncodeFields.
func DecodeFields(data []byte) (Fields, error) {
	var typed []typedField
	if err := json.Unmarshal(data, &typed); err != nil {
		return Fields{}, fmt.Errorf("decoding fields: %w", err)
	}
	return fromTypedFields(typed)
}

func toTypedFields(f Fields) []typedField {
	out := make([]typedField, 0, f.Len())
	f.Each(func(name string, v Value) {
		out = append(out, typedField{Name: name, Value: toTypedValue(v)})
	})
	return out
}

func toTypedValue(v Value) typedValue {
	tv := typedValue{Kind: v.kind}
	switch v.kind {
	case KindBoolean:
		tv.Bool = v.flag
	case KindString:
		tv.Text = v.str
	case KindInteger, KindDouble, KindTimestamp, KindBytes, KindReference, KindGeoPoint:
		tv.Text = v.String()
	case KindMap:
		tv.Fields = toTypedFields(v.m)
	case KindArray:
		tv.Items = make([]typedValue, len(v.arr))
		for i, item := range v.arr {
			tv.Items[i] = toTypedValue(item)
		}
	case KindNull:
	}
	return tv
}

func fromTypedFields(typed []typedField) (Fields, error) {
	var f Fields
	for _, tf := range typed {
		v, err := fromTypedValue(tf.Value)
		if err != nil {
			return Fields{}, fmt.Errorf("field %s: %w", strconv.Quote(tf.Name), err)
		}
		f.Set(tf.Name, v)
	}
	return f, nil
}

func fromTypedValue(tv typedValue) (Value, error) {
	switch tv.Kind {
	case KindNull:
		return NullValue(), nil
	case KindBoolean:
		return BoolValue(tv.Bool), nil
	case KindString, KindInteger, KindDouble, KindTimestamp, KindBytes, KindReference, KindGeoPoint:
		return ParseText(tv.Kind, tv.Text)
	case KindMap:
		f, err := fromTypedFields(tv.Fields)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindMap, m: f}, nil
	case KindArray:
		items := make([]Value, len(tv.Items))
		for i, item := range tv.Items {
			v, err := fromTypedValue(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindArray, arr: items}, nil
	}
	return Value{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidInput, tv.Kind)
}
