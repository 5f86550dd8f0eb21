package ir

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the JSON shapes allowed in canonical
// records. Only String, Int, Bool, Array and Object implement it; there is
// no float and no null.
type Value interface {
	irValue() // Sealed - only these types implement it
}

// String is a JSON string. It is NFC-normalized when serialized.
type String string

func (String) irValue() {}

// Int is a JSON integer.
type Int int64

func (Int) irValue() {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) irValue() {}

// Array is a JSON array.
type Array []Value

func (Array) irValue() {}

// Object is a JSON object. Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) irValue() {}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// Go's native string order compares UTF-8 bytes, which differs for
// characters outside the Basic Multilingual Plane.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
