package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type held by a Value.
type Kind int

// Supported value kinds.
const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindDouble
	KindBoolean
	KindTimestamp
	KindMap
	KindArray
	KindBytes
	KindReference
	KindGeoPoint
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindBoolean:
		return "boolean"
	case KindTimestamp:
		return "timestamp"
	case KindMap:
		return "map"
	case KindArray:
		return "array"
	case KindBytes:
		return "bytes"
	case KindReference:
		return "reference"
	case KindGeoPoint:
		return "geopoint"
	default:
		return "unknown"
	}
}

// ParseKind returns the kind named by s.
func ParseKind(s string) (Kind, error) {
	for k := KindNull; k <= KindGeoPoint; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return KindNull, fmt.Errorf("%w: unknown value kind %q", ErrInvalidInput, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Value is a single field value. The zero Value is null.
// Values are immutable once constructed.
type Value struct {
	kind Kind
	str  string
	num  int64
	dbl  float64
	lng  float64
	flag bool
	raw  []byte
	ts   time.Time
	m    Fields
	arr  []Value
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntegerValue returns an integer value.
func IntegerValue(i int64) Value { return Value{kind: KindInteger, num: i} }

// DoubleValue returns a floating point value.
func DoubleValue(f float64) Value { return Value{kind: KindDouble, dbl: f} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBoolean, flag: b} }

// TimestampValue returns a timestamp value, normalised to UTC.
func TimestampValue(t time.Time) Value { return Value{kind: KindTimestamp, ts: t.UTC()} }

// MapValue returns a nested map value.
func MapValue(f Fields) Value { return Value{kind: KindMap, m: f.Clone()} }

// ArrayValue returns a list value.
func ArrayValue(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)
	return Value{kind: KindArray, arr: arr}
}

// BytesValue returns a binary value.
func BytesValue(b []byte) Value {
	raw := make([]byte, len(b))
	copy(raw, b)
	return Value{kind: KindBytes, raw: raw}
}

// ReferenceValue returns a reference to another document by its full path.
func ReferenceValue(path string) Value { return Value{kind: KindReference, str: path} }

// GeoPointValue returns a latitude/longitude pair.
func GeoPointValue(lat, lng float64) Value { return Value{kind: KindGeoPoint, dbl: lat, lng: lng} }

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by a string value.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInteger returns the integer held by an integer value.
func (v Value) AsInteger() (int64, bool) { return v.num, v.kind == KindInteger }

// AsDouble returns the float held by a double value.
func (v Value) AsDouble() (float64, bool) { return v.dbl, v.kind == KindDouble }

// AsBool returns the boolean held by a boolean value.
func (v Value) AsBool() (bool, bool) { return v.flag, v.kind == KindBoolean }

// AsTimestamp returns the time held by a timestamp value.
func (v Value) AsTimestamp() (time.Time, bool) { return v.ts, v.kind == KindTimestamp }

// AsBytes returns a copy of the bytes held by a bytes value.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	b := make([]byte, len(v.raw))
	copy(b, v.raw)
	return b, true
}

// AsReference returns the document path held by a reference value.
func (v Value) AsReference() (string, bool) { return v.str, v.kind == KindReference }

// AsGeoPoint returns the coordinates held by a geopoint value.
func (v Value) AsGeoPoint() (lat, lng float64, ok bool) {
	return v.dbl, v.lng, v.kind == KindGeoPoint
}

// AsMap returns a copy of the fields held by a map value.
func (v Value) AsMap() (Fields, bool) {
	if v.kind != KindMap {
		return Fields{}, false
	}
	return v.m.Clone(), true
}

// AsArray returns a copy of the items held by an array value.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	items := make([]Value, len(v.arr))
	copy(items, v.arr)
	return items, true
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindInteger:
		return v.num == o.num
	case KindDouble:
		return v.dbl == o.dbl || (math.IsNaN(v.dbl) && math.IsNaN(o.dbl))
	case KindBoolean:
		return v.flag == o.flag
	case KindTimestamp:
		return v.ts.Equal(o.ts)
	case KindBytes:
		return string(v.raw) == string(o.raw)
	case KindReference:
		return v.str == o.str
	case KindGeoPoint:
		return v.dbl == o.dbl && v.lng == o.lng
	case KindMap:
		return v.m.Equal(o.m)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value for display. Maps and arrays render as JSON
// text; everything else uses its plain string form.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindDouble:
		return formatDouble(v.dbl)
	case KindBoolean:
		return strconv.FormatBool(v.flag)
	case KindTimestamp:
		return v.ts.Format(time.RFC3339Nano)
	case KindBytes:
		return base64.StdEncoding.EncodeToString(v.raw)
	case KindReference:
		return v.str
	case KindGeoPoint:
		return formatDouble(v.dbl) + ", " + formatDouble(v.lng)
	case KindMap, KindArray:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("<%s>", v.kind)
		}
		return string(data)
	}
	return ""
}

// MarshalJSON renders the value as plain JSON. Timestamps become RFC 3339
// strings and maps keep their field order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindInteger:
		return []byte(strconv.FormatInt(v.num, 10)), nil
	case KindDouble:
		if math.IsNaN(v.dbl) || math.IsInf(v.dbl, 0) {
			return json.Marshal(formatDouble(v.dbl))
		}
		return json.Marshal(v.dbl)
	case KindBoolean:
		return json.Marshal(v.flag)
	case KindTimestamp:
		return json.Marshal(v.ts.Format(time.RFC3339Nano))
	case KindBytes:
		return json.Marshal(v.raw)
	case KindReference:
		return json.Marshal(v.str)
	case KindGeoPoint:
		return json.Marshal(struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}{v.dbl, v.lng})
	case KindMap:
		return v.m.MarshalJSON()
	case KindArray:
		if len(v.arr) == 0 {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	}
	return nil, fmt.Errorf("marshalling value: unknown kind %d", v.kind)
}

// Interface converts the value to plain Go types: nil, string, int64,
// float64, bool, time.Time, []byte, map[string]any or []any. References
// become their path and geopoints a latitude/longitude map.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return v.num
	case KindDouble:
		return v.dbl
	case KindBoolean:
		return v.flag
	case KindTimestamp:
		return v.ts
	case KindBytes:
		b, _ := v.AsBytes()
		return b
	case KindReference:
		return v.str
	case KindGeoPoint:
		return map[string]any{"latitude": v.dbl, "longitude": v.lng}
	case KindMap:
		out := make(map[string]any, v.m.Len())
		v.m.Each(func(name string, item Value) {
			out[name] = item.Interface()
		})
		return out
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	}
	return nil
}

// EditText returns the text shown when the value is edited.
func (v Value) EditText() string {
	return v.String()
}

// ParseText parses text back into a value of the given kind.
// It is the inverse of EditText.
func ParseText(kind Kind, text string) (Value, error) {
	switch kind {
	case KindString:
		return StringValue(text), nil
	case KindNull:
		if trimmed := strings.TrimSpace(text); trimmed == "" || trimmed == "null" {
			return NullValue(), nil
		}
	case KindInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err == nil {
			return IntegerValue(i), nil
		}
	case KindDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err == nil {
			return DoubleValue(f), nil
		}
	case KindBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err == nil {
			return BoolValue(b), nil
		}
	case KindTimestamp:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(text))
		if err == nil {
			return TimestampValue(t), nil
		}
	case KindBytes:
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err == nil {
			return BytesValue(b), nil
		}
	case KindReference:
		if path := strings.TrimSpace(text); path != "" && !strings.ContainsAny(path, " \t\n") {
			return ReferenceValue(path), nil
		}
	case KindGeoPoint:
		if v, ok := parseGeoPoint(text); ok {
			return v, nil
		}
	case KindMap, KindArray:
		parsed, err := ParseJSONValue([]byte(text))
		if err == nil && parsed.kind == kind {
			return parsed, nil
		}
	}
	return Value{}, fmt.Errorf("%w: %q is not a valid %s", ErrInvalidInput, text, kind)
}

// ParseTextOrString parses text into the given kind, falling back to a
// string value when the text does not parse.
func ParseTextOrString(kind Kind, text string) Value {
	v, err := ParseText(kind, text)
	if err != nil {
		return StringValue(text)
	}
	return v
}

// ParseJSONValue decodes plain JSON into a Value. Integral numbers become
// integers, other numbers doubles, and object keys are sorted.
func ParseJSONValue(data []byte) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return ValueFromAny(raw)
}

// ValueFromAny converts plain Go data (as produced by encoding/json) into
// a Value. Map keys are sorted since Go maps carry no order.
func ValueFromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case int:
		return IntegerValue(int64(x)), nil
	case int32:
		return IntegerValue(int64(x)), nil
	case int64:
		return IntegerValue(x), nil
	case float32:
		return numberValue(float64(x)), nil
	case float64:
		return numberValue(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return IntegerValue(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: bad number %q", ErrInvalidInput, x)
		}
		return DoubleValue(f), nil
	case time.Time:
		return TimestampValue(x), nil
	case []byte:
		return BytesValue(x), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var f Fields
		for _, k := range keys {
			item, err := ValueFromAny(x[k])
			if err != nil {
				return Value{}, err
			}
			f.Set(k, item)
		}
		return Value{kind: KindMap, m: f}, nil
	case []any:
		items := make([]Value, 0, len(x))
		for _, elem := range x {
			item, err := ValueFromAny(elem)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{kind: KindArray, arr: items}, nil
	}
	return Value{}, fmt.Errorf("%w: unsupported value type %T", ErrInvalidInput, raw)
}

// numberValue keeps integral floats as integers, matching how JSON
// numbers are stored by document databases.
func numberValue(f float64) Value {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return IntegerValue(int64(f))
	}
	return DoubleValue(f)
}

// parseGeoPoint reads "lat, lng" with both coordinates in range.
func parseGeoPoint(text string) (Value, bool) {
	latText, lngText, found := strings.Cut(text, ",")
	if !found {
		return Value{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Value{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil || lng < -180 || lng > 180 {
		return Value{}, false
	}
	return GeoPointValue(lat, lng), true
}

// Conform reshapes v, usually parsed from edited text, to match the kinds
// found at the same place in like. Integers stand in for doubles, strings
// for timestamps, bytes and references, and latitude/longitude maps for
// geopoints. Map entries present in like keep like's order; new entries
// follow.
func Conform(v, like Value) Value {
	if v.kind == like.kind {
		switch v.kind {
		case KindMap:
			var out Fields
			like.m.Each(func(name string, orig Value) {
				if item, ok := v.m.Get(name); ok {
					out.Set(name, Conform(item, orig))
				}
			})
			v.m.Each(func(name string, item Value) {
				if !like.m.Has(name) {
					out.Set(name, item)
				}
			})
			return Value{kind: KindMap, m: out}
		case KindArray:
			items := make([]Value, len(v.arr))
			for i, item := range v.arr {
				if i < len(like.arr) {
					item = Conform(item, like.arr[i])
				}
				items[i] = item
			}
			return Value{kind: KindArray, arr: items}
		}
		return v
	}

	switch like.kind {
	case KindDouble:
		if n, ok := v.AsInteger(); ok {
			return DoubleValue(float64(n))
		}
	case KindTimestamp, KindBytes, KindReference:
		if s, ok := v.AsString(); ok {
			if parsed, err := ParseText(like.kind, s); err == nil {
				return parsed
			}
		}
	case KindGeoPoint:
		if v.kind == KindMap && v.m.Len() == 2 {
			lat, latOK := v.m.Get("latitude")
			lng, lngOK := v.m.Get("longitude")
			if latOK && lngOK {
				if gp, ok := parseGeoPoint(lat.String() + "," + lng.String()); ok {
					return gp
				}
			}
		}
	}
	return v
}

func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
