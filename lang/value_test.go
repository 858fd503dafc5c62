package lang

import (
	"reflect"
	"testing"
)

func TestMap_Order(t *testing.T) {
	m := NewMap()
	m.Set("c", Number(1))
	m.Set("a", Number(2))
	m.Set("b", Number(3))

	want := []string{"c", "a", "b"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys: got %v, want %v", got, want)
	}

	// Overwriting keeps the original slot.
	m.Set("a", Number(9))

	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys after overwrite: got %v, want %v", got, want)
	}

	v, ok := m.Get("a")
	if !ok || !v.Equal(Number(9)) {
		t.Errorf("a: got %+v", v)
	}

	if m.Len() != 3 {
		t.Errorf("len: got %d, want 3", m.Len())
	}
}

func TestMap_All(t *testing.T) {
	m := NewMap()
	m.Set("x", Number(1))
	m.Set("y", Number(2))

	var keys []string

	for key, val := range m.All() {
		keys = append(keys, key)

		if val == nil {
			t.Errorf("nil value for %q", key)
		}
	}

	if !reflect.DeepEqual(keys, []string{"x", "y"}) {
		t.Errorf("iteration order: got %v", keys)
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"null equals null", Null(), Null(), true},
		{"null differs from false", Null(), Bool(false), false},
		{"bools", Bool(true), Bool(true), true},
		{"numbers", Number(1.5), Number(1.5), true},
		{"numbers differ", Number(1), Number(2), false},
		{"strings", String("a"), String("a"), true},
		{"arrays", Array(Number(1)), Array(Number(1)), true},
		{"array lengths differ", Array(Number(1)), Array(), false},
		{"number is not its string", Number(1), String("1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMap_Equal_OrderSensitive(t *testing.T) {
	a := NewMap()
	a.Set("x", Number(1))
	a.Set("y", Number(2))

	b := NewMap()
	b.Set("y", Number(2))
	b.Set("x", Number(1))

	if a.Equal(b) {
		t.Error("maps with different key order compare equal")
	}
}

func TestValue_ToNative(t *testing.T) {
	m := NewMap()
	m.Set("n", Null())
	m.Set("b", Bool(true))
	m.Set("f", Number(2.5))
	m.Set("s", String("str"))
	m.Set("a", Array(Number(1), String("x")))

	inner := NewMap()
	inner.Set("k", Number(3))
	m.Set("m", MapValue(inner))

	want := map[string]any{
		"n": nil,
		"b": true,
		"f": 2.5,
		"s": "str",
		"a": []any{1.0, "x"},
		"m": map[string]any{"k": 3.0},
	}

	if got := m.ToNative(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestFromNative(t *testing.T) {
	v, err := FromNative(map[string]any{
		"b": false,
		"a": int(7),
		"c": []any{nil, "s", 1.5},
	})
	if err != nil {
		t.Fatalf("convert error: %v", err)
	}

	if v.Kind != KindMap {
		t.Fatalf("expected map, got %v", v.Kind)
	}

	// Keys are sorted for deterministic output.
	if got := v.Doc.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("keys: got %v", got)
	}

	a, _ := v.Doc.Get("a")
	if !a.Equal(Number(7)) {
		t.Errorf("a: got %+v", a)
	}

	c, _ := v.Doc.Get("c")
	if !c.Equal(Array(Null(), String("s"), Number(1.5))) {
		t.Errorf("c: got %+v", c)
	}
}

func TestFromNative_Unsupported(t *testing.T) {
	if _, err := FromNative(struct{}{}); err == nil {
		t.Error("expected error for unsupported type")
	}
}
