package anjit

import (
	"reflect"

	"github.com/olehluchkiv/anjit/jtype"
)

// TypeMap associates type markers with compiler types. A marker is any
// comparable value: a reflect.Type (the usual case for Go declarations),
// a string alias, or an already-native jtype.Type.
//
// A TypeMap is mutable by insertion and never implicitly cleared.
// Mutation affects subsequent resolutions only; signatures already built
// from it are immutable.
type TypeMap struct {
	entries map[any]jtype.Type
}

// NewTypeMap returns an empty mapping table.
func NewTypeMap() *TypeMap {
	return &TypeMap{entries: make(map[any]jtype.Type)}
}

// DefaultTypeMap returns a fresh table seeded with the Go builtin
// numeric, boolean and string types mapped to their compiler primitives.
func DefaultTypeMap() *TypeMap {
	tm := NewTypeMap()
	for marker, t := range map[any]jtype.Type{
		GoType[bool]():       jtype.Bool,
		GoType[int]():        jtype.Int64,
		GoType[int8]():       jtype.Int8,
		GoType[int16]():      jtype.Int16,
		GoType[int32]():      jtype.Int32,
		GoType[int64]():      jtype.Int64,
		GoType[uint]():       jtype.Uint64,
		GoType[uint8]():      jtype.Uint8,
		GoType[uint16]():     jtype.Uint16,
		GoType[uint32]():     jtype.Uint32,
		GoType[uint64]():     jtype.Uint64,
		GoType[float32]():    jtype.Float32,
		GoType[float64]():    jtype.Float64,
		GoType[complex64]():  jtype.Complex64,
		GoType[complex128](): jtype.Complex128,
		GoType[string]():     jtype.String,
	} {
		tm.entries[marker] = t
	}
	return tm
}

// DefaultMapping is the process-wide table used by the package-level
// BuildSignature when no Manager is involved. It is an explicit exported
// variable rather than hidden state so that callers who extend it can
// see exactly what they share.
var DefaultMapping = DefaultTypeMap()

// GoType returns the reflect.Type marker for T, for use as a TypeMap key.
func GoType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Insert associates marker with t, overwriting any existing entry.
func (tm *TypeMap) Insert(marker any, t jtype.Type) {
	tm.entries[marker] = t
}

// Resolve translates a marker into a compiler type. A marker that is
// already a compiler-native type is returned unchanged without consulting
// the table. A marker with no entry fails with *UnknownAnnotationError.
func (tm *TypeMap) Resolve(marker any) (jtype.Type, error) {
	if t, ok := marker.(jtype.Type); ok {
		if jtype.IsValid(t) {
			return t, nil
		}
		return nil, &NotCompilerTypeError{Marker: marker, Value: t}
	}
	if t, ok := tm.entries[marker]; ok {
		if !jtype.IsValid(t) {
			return nil, &NotCompilerTypeError{Marker: marker, Value: t}
		}
		return t, nil
	}
	return nil, &UnknownAnnotationError{Marker: marker}
}

// Len returns the number of entries in the table.
func (tm *TypeMap) Len() int { return len(tm.entries) }

// Clone returns an independent copy of the table.
func (tm *TypeMap) Clone() *TypeMap {
	out := NewTypeMap()
	for k, v := range tm.entries {
		out.entries[k] = v
	}
	return out
}

// Verify checks that every value in the table is a valid compiler type.
// It returns a *NotCompilerTypeError for the first invalid entry found,
// or nil when the whole table is suitable for building signatures.
func (tm *TypeMap) Verify() error {
	for k, v := range tm.entries {
		if !jtype.IsValid(v) {
			return &NotCompilerTypeError{Marker: k, Value: v}
		}
	}
	return nil
}
