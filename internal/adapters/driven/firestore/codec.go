package firestore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	fsapi "google.golang.org/api/firestore/v1"

	"github.com/custodia-labs/docview/internal/core/domain"
)

const nullValue = "NULL_VALUE"

// toWire converts a domain value to the generated Firestore type. Zero
// scalars are listed in ForceSendFields so they are not dropped.
func toWire(v domain.Value) (*fsapi.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return &fsapi.Value{NullValue: nullValue}, nil
	case domain.KindString:
		s, _ := v.AsString()
		return &fsapi.Value{StringValue: s, ForceSendFields: []string{"StringValue"}}, nil
	case domain.KindInteger:
		n, _ := v.AsInteger()
		return &fsapi.Value{IntegerValue: n, ForceSendFields: []string{"IntegerValue"}}, nil
	case domain.KindDouble:
		f, _ := v.AsDouble()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %s cannot be stored", domain.ErrInvalidInput, v)
		}
		return &fsapi.Value{DoubleValue: f, ForceSendFields: []string{"DoubleValue"}}, nil
	case domain.KindBoolean:
		b, _ := v.AsBool()
		return &fsapi.Value{BooleanValue: b, ForceSendFields: []string{"BooleanValue"}}, nil
	case domain.KindTimestamp:
		t, _ := v.AsTimestamp()
		return &fsapi.Value{TimestampValue: t.UTC().Format(time.RFC3339Nano)}, nil
	case domain.KindBytes:
		b, _ := v.AsBytes()
		return &fsapi.Value{
			BytesValue:      base64.StdEncoding.EncodeToString(b),
			ForceSendFields: []string{"BytesValue"},
		}, nil
	case domain.KindReference:
		ref, _ := v.AsReference()
		return &fsapi.Value{ReferenceValue: ref}, nil
	case domain.KindGeoPoint:
		lat, lng, _ := v.AsGeoPoint()
		return &fsapi.Value{GeoPointValue: &fsapi.LatLng{
			Latitude:        lat,
			Longitude:       lng,
			ForceSendFields: []string{"Latitude", "Longitude"},
		}}, nil
	case domain.KindMap:
		m, _ := v.AsMap()
		fields, err := fieldsToWire(m)
		if err != nil {
			return nil, err
		}
		return &fsapi.Value{MapValue: &fsapi.MapValue{Fields: fields}}, nil
	case domain.KindArray:
		items, _ := v.AsArray()
		values := make([]*fsapi.Value, 0, len(items))
		for _, item := range items {
			wv, err := toWire(item)
			if err != nil {
				return nil, err
			}
			values = append(values, wv)
		}
		return &fsapi.Value{ArrayValue: &fsapi.ArrayValue{Values: values}}, nil
	}
	return nil, fmt.Errorf("%w: unknown value kind %s", domain.ErrInvalidInput, v.Kind())
}

func fieldsToWire(f domain.Fields) (map[string]fsapi.Value, error) {
	out := make(map[string]fsapi.Value, f.Len())
	for _, field := range f.Entries() {
		wv, err := toWire(field.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", strconv.Quote(field.Name), err)
		}
		out[field.Name] = *wv
	}
	return out, nil
}

// wireValue is a Firestore value read from a response body along with
// the name of the member that was set. The generated Value keeps scalars
// without pointers, so false, 0 and "" would read back as an empty value.
type wireValue struct {
	member string
	scalar fsapi.Value
	values []wireValue
	fields map[string]wireValue
}

func (w *wireValue) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for name, raw := range members {
		w.member = name
		switch name {
		case "arrayValue":
			var a struct {
				Values []wireValue `json:"values"`
			}
			if err := json.Unmarshal(raw, &a); err != nil {
				return err
			}
			w.values = a.Values
		case "mapValue":
			var m struct {
				Fields map[string]wireValue `json:"fields"`
			}
			if err := json.Unmarshal(raw, &m); err != nil {
				return err
			}
			w.fields = m.Fields
		default:
			if err := json.Unmarshal(data, &w.scalar); err != nil {
				return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, name, err)
			}
		}
	}
	return nil
}

func fromWire(w wireValue) (domain.Value, error) {
	switch w.member {
	case "", "nullValue":
		return domain.NullValue(), nil
	case "stringValue":
		return domain.StringValue(w.scalar.StringValue), nil
	case "booleanValue":
		return domain.BoolValue(w.scalar.BooleanValue), nil
	case "integerValue":
		return domain.IntegerValue(w.scalar.IntegerValue), nil
	case "doubleValue":
		return domain.DoubleValue(w.scalar.DoubleValue), nil
	case "timestampValue":
		t, err := time.Parse(time.RFC3339Nano, w.scalar.TimestampValue)
		if err != nil {
			return domain.Value{}, fmt.Errorf("%w: timestampValue %q", domain.ErrInvalidInput, w.scalar.TimestampValue)
		}
		return domain.TimestampValue(t), nil
	case "bytesValue":
		b, err := decodeBytes(w.scalar.BytesValue)
		if err != nil {
			return domain.Value{}, fmt.Errorf("%w: bytesValue: %v", domain.ErrInvalidInput, err)
		}
		return domain.BytesValue(b), nil
	case "referenceValue":
		return domain.ReferenceValue(w.scalar.ReferenceValue), nil
	case "geoPointValue":
		var lat, lng float64
		if gp := w.scalar.GeoPointValue; gp != nil {
			lat, lng = gp.Latitude, gp.Longitude
		}
		return domain.GeoPointValue(lat, lng), nil
	case "mapValue":
		fields, err := fieldsFromWire(w.fields)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.MapValue(fields), nil
	case "arrayValue":
		items := make([]domain.Value, 0, len(w.values))
		for _, item := range w.values {
			v, err := fromWire(item)
			if err != nil {
				return domain.Value{}, err
			}
			items = append(items, v)
		}
		return domain.ArrayValue(items...), nil
	}
	return domain.Value{}, fmt.Errorf("%w: unknown value member %q", domain.ErrInvalidInput, w.member)
}

// fieldsFromWire sorts fields by name since the wire form is a map.
func fieldsFromWire(m map[string]wireValue) (domain.Fields, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var f domain.Fields
	for _, name := range names {
		v, err := fromWire(m[name])
		if err != nil {
			return domain.Fields{}, fmt.Errorf("field %s: %w", strconv.Quote(name), err)
		}
		f.Set(name, v)
	}
	return f, nil
}

// decodeBytes accepts standard and URL-safe base64, as proto3 JSON does.
func decodeBytes(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}

// fieldPath renders a field name as a Firestore field path segment.
// Names other than simple identifiers are quoted with backticks.
func fieldPath(name string) string {
	if isSimpleName(name) {
		return name
	}
	escaped := strings.ReplaceAll(name, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "`", "\\`")
	return "`" + escaped + "`"
}

func isSimpleName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
