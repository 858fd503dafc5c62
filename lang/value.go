package lang

import (
	"iter"
	"log/slog"
	"math"
	"sort"
)

// ValueKind indicates the type of a parsed value.
type ValueKind int

const (
	// KindNull represents the null literal.
	KindNull ValueKind = iota

	// KindBool represents a boolean literal value.
	KindBool

	// KindNumber represents a numeric literal value.
	KindNumber

	// KindString represents a string value.
	KindString

	// KindArray represents an ordered list of values.
	KindArray

	// KindMap represents a nested document.
	KindMap
)

// String returns a string representation of the value kind.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "Null"

	case KindBool:
		return "Bool"

	case KindNumber:
		return "Number"

	case KindString:
		return "String"

	case KindArray:
		return "Array"

	case KindMap:
		return "Map"

	default:
		return "Unknown"
	}
}

// Value represents any value in a slang document.
// Exactly one of the payload fields is meaningful, selected by Kind.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Num   float64
	Str   string
	Items []*Value // KindArray elements
	Doc   *Map     // KindMap document
}

// Null returns the null value.
func Null() *Value { return &Value{Kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// Number returns a numeric value.
func Number(f float64) *Value { return &Value{Kind: KindNumber, Num: f} }

// String returns a string value.
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Array returns an array value holding the given elements.
func Array(items ...*Value) *Value {
	return &Value{Kind: KindArray, Items: items}
}

// MapValue wraps a document as a value.
func MapValue(m *Map) *Value { return &Value{Kind: KindMap, Doc: m} }

// Equal reports structural equality of two values.
// Map equality is order-sensitive: the same keys bound to equal values
// in the same insertion order.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}

	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case KindNull:
		return true

	case KindBool:
		return v.Bool == other.Bool

	case KindNumber:
		return v.Num == other.Num ||
			(math.IsNaN(v.Num) && math.IsNaN(other.Num))

	case KindString:
		return v.Str == other.Str

	case KindArray:
		if len(v.Items) != len(other.Items) {
			return false
		}

		for i, item := range v.Items {
			if !item.Equal(other.Items[i]) {
				return false
			}
		}

		return true

	case KindMap:
		return v.Doc.Equal(other.Doc)

	default:
		return false
	}
}

// Map is an ordered string-keyed document. Keys preserve insertion order;
// assigning an existing key overwrites its value in place, keeping the
// key's original position.
type Map struct {
	keys []string
	vals map[string]*Value
}

// NewMap returns an empty document.
func NewMap() *Map {
	return &Map{vals: make(map[string]*Value)}
}

// Len returns the number of keys in the document.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Get retrieves the value bound to key.
// Returns (nil, false) if the key is not present.
func (m *Map) Get(key string) (*Value, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.vals[key]

	return v, ok
}

// Set binds key to value. A new key is appended; an existing key keeps
// its position and takes the new value.
func (m *Map) Set(key string, value *Value) {
	if m.vals == nil {
		m.vals = make(map[string]*Value)
	}

	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.vals[key] = value
}

// Keys returns the document's keys in insertion order.
// The returned slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	keys := make([]string, len(m.keys))
	copy(keys, m.keys)

	return keys
}

// All returns an iterator over key-value pairs in insertion order.
func (m *Map) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if m == nil {
			return
		}

		for _, key := range m.keys {
			if !yield(key, m.vals[key]) {
				return
			}
		}
	}
}

// Equal reports whether two documents hold equal values under the same
// keys in the same order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}

	for i, key := range m.keys {
		if other.keys[i] != key {
			return false
		}

		if !m.vals[key].Equal(other.vals[key]) {
			return false
		}
	}

	return true
}

// LogValue implements slog.LogValuer, summarizing the document.
func (m *Map) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("keys", m.Len()),
	)
}

// ToNative converts the value to its native Go representation:
// nil, bool, float64, string, []any, or map[string]any.
// Map order is lost in the native form.
func (v *Value) ToNative() any {
	switch v.Kind {
	case KindNull:
		return nil

	case KindBool:
		return v.Bool

	case KindNumber:
		return v.Num

	case KindString:
		return v.Str

	case KindArray:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.ToNative()
		}

		return items

	case KindMap:
		return v.Doc.ToNative()

	default:
		return nil
	}
}

// ToNative converts the document to a native map[string]any.
func (m *Map) ToNative() map[string]any {
	result := make(map[string]any, m.Len())

	for key, val := range m.All() {
		result[key] = val.ToNative()
	}

	return result
}

// FromNative converts a native Go value into a Value. Supported inputs
// are nil, bool, numeric types, string, []any, and map[string]any.
// Map keys are sorted for deterministic output.
func FromNative(native any) (*Value, error) {
	switch val := native.(type) {
	case nil:
		return Null(), nil

	case bool:
		return Bool(val), nil

	case float64:
		return Number(val), nil

	case float32:
		return Number(float64(val)), nil

	case int:
		return Number(float64(val)), nil

	case int32:
		return Number(float64(val)), nil

	case int64:
		return Number(float64(val)), nil

	case uint:
		return Number(float64(val)), nil

	case uint32:
		return Number(float64(val)), nil

	case uint64:
		return Number(float64(val)), nil

	case string:
		return String(val), nil

	case []any:
		items := make([]*Value, len(val))

		for i, item := range val {
			v, err := FromNative(item)
			if err != nil {
				return nil, err
			}

			items[i] = v
		}

		return &Value{Kind: KindArray, Items: items}, nil

	case map[string]any:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		m := NewMap()

		for _, key := range keys {
			v, err := FromNative(val[key])
			if err != nil {
				return nil, err
			}

			m.Set(key, v)
		}

		return MapValue(m), nil

	default:
		return nil, ErrInvalidNative.With(
			slog.String("type", typeName(native)),
		)
	}
}

// FromNativeMap converts a native map[string]any into a document.
func FromNativeMap(native map[string]any) (*Map, error) {
	v, err := FromNative(native)
	if err != nil {
		return nil, err
	}

	return v.Doc, nil
}
