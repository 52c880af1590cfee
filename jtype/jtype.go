// Package jtype defines the compiler-native type objects used to describe
// eager compilation signatures. Values of these types are what the mapping
// table resolves markers into and what a Compiler receives.
package jtype

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a compiler type.
type Kind uint8

const (
	Invalid Kind = iota
	KindVoid
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindString
	KindArray
	KindTuple
	KindFunction
)

// Type is a compiler-native type object.
type Type interface {
	Kind() Kind
	String() string
}

// Primitive is a scalar compiler type. Primitives are comparable values;
// two primitives are equal iff they have the same kind.
type Primitive struct {
	kind Kind
	name string
}

func (p Primitive) Kind() Kind     { return p.kind }
func (p Primitive) String() string { return p.name }

// The primitive compiler types.
var (
	Void       = Primitive{KindVoid, "void"}
	Bool       = Primitive{KindBool, "bool"}
	Int8       = Primitive{KindInt8, "int8"}
	Int16      = Primitive{KindInt16, "int16"}
	Int32      = Primitive{KindInt32, "int32"}
	Int64      = Primitive{KindInt64, "int64"}
	Uint8      = Primitive{KindUint8, "uint8"}
	Uint16     = Primitive{KindUint16, "uint16"}
	Uint32     = Primitive{KindUint32, "uint32"}
	Uint64     = Primitive{KindUint64, "uint64"}
	Float32    = Primitive{KindFloat32, "float32"}
	Float64    = Primitive{KindFloat64, "float64"}
	Complex64  = Primitive{KindComplex64, "complex64"}
	Complex128 = Primitive{KindComplex128, "complex128"}
	String     = Primitive{KindString, "string"}
)

// Array is a homogeneous n-dimensional array type.
type Array struct {
	elem Type
	ndim int
}

// ArrayOf returns the array type with the given element type and
// dimensionality. ndim values below 1 are treated as 1.
func ArrayOf(elem Type, ndim int) Array {
	if ndim < 1 {
		ndim = 1
	}
	return Array{elem: elem, ndim: ndim}
}

func (a Array) Kind() Kind { return KindArray }
func (a Array) Elem() Type { return a.elem }
func (a Array) Ndim() int  { return a.ndim }

func (a Array) String() string {
	var b strings.Builder
	b.WriteString(a.elem.String())
	b.WriteString("[")
	b.WriteString(strings.Repeat(",", a.ndim-1))
	b.WriteString("]")
	return b.String()
}

// Tuple is a fixed-arity heterogeneous tuple type.
type Tuple struct {
	elems []Type
}

func TupleOf(elems ...Type) Tuple {
	t := Tuple{elems: make([]Type, len(elems))}
	copy(t.elems, elems)
	return t
}

func (t Tuple) Kind() Kind    { return KindTuple }
func (t Tuple) Len() int      { return len(t.elems) }
func (t Tuple) At(i int) Type { return t.elems[i] }

func (t Tuple) String() string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Function is a first-class function type wrapping a full signature,
// used for parameters that are themselves functions.
type Function struct {
	sig Signature
}

func FunctionOf(sig Signature) Function { return Function{sig: sig} }

func (f Function) Kind() Kind           { return KindFunction }
func (f Function) Signature() Signature { return f.sig }

func (f Function) String() string {
	return fmt.Sprintf("func[%s]", f.sig)
}

// IsValid reports whether t is a usable compiler type: non-nil, with a
// valid kind and (for composites) valid components.
func IsValid(t Type) bool {
	switch v := t.(type) {
	case nil:
		return false
	case Primitive:
		return v.kind != Invalid && v.kind < KindArray
	case Array:
		return v.ndim >= 1 && IsValid(v.elem)
	case Tuple:
		for _, e := range v.elems {
			if !IsValid(e) {
				return false
			}
		}
		return true
	case Function:
		if !IsValid(v.sig.ret) {
			return false
		}
		for _, p := range v.sig.params {
			if !IsValid(p) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Equal reports whether two compiler types are structurally equal.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		return ok && av.ndim == bv.ndim && Equal(av.elem, bv.elem)
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok || len(av.elems) != len(bv.elems) {
			return false
		}
		for i := range av.elems {
			if !Equal(av.elems[i], bv.elems[i]) {
				return false
			}
		}
		return true
	case Function:
		bv, ok := b.(Function)
		return ok && av.sig.Equal(bv.sig)
	default:
		return false
	}
}
