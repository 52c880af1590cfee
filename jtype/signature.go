package jtype

import "strings"

// Signature is the fully resolved call signature handed to a Compiler's
// eager entry point: an ordered parameter type list plus a return type.
// A Signature is immutable once built.
type Signature struct {
	params []Type
	ret    Type
}

// NewSignature builds a signature from a return type and parameter types
// in declaration order. The numba-style rendering is ret(params...).
func NewSignature(ret Type, params ...Type) Signature {
	s := Signature{ret: ret, params: make([]Type, len(params))}
	copy(s.params, params)
	return s
}

// NumParams returns the number of parameters.
func (s Signature) NumParams() int { return len(s.params) }

// Param returns the i-th parameter type.
func (s Signature) Param(i int) Type { return s.params[i] }

// Params returns a copy of the parameter type list.
func (s Signature) Params() []Type {
	out := make([]Type, len(s.params))
	copy(out, s.params)
	return out
}

// Return returns the return type.
func (s Signature) Return() Type { return s.ret }

func (s Signature) String() string {
	parts := make([]string, len(s.params))
	for i, p := range s.params {
		parts[i] = p.String()
	}
	ret := "void"
	if s.ret != nil {
		ret = s.ret.String()
	}
	return ret + "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether two signatures are structurally equal.
func (s Signature) Equal(o Signature) bool {
	if len(s.params) != len(o.params) {
		return false
	}
	if !Equal(s.ret, o.ret) {
		return false
	}
	for i := range s.params {
		if !Equal(s.params[i], o.params[i]) {
			return false
		}
	}
	return true
}
