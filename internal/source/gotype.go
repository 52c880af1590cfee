package source

import (
	"fmt"
	"go/types"

	"github.com/olehluchkiv/anjit/jtype"
)

var basicKinds = map[types.BasicKind]jtype.Type{
	types.Bool:       jtype.Bool,
	types.Int:        jtype.Int64,
	types.Int8:       jtype.Int8,
	types.Int16:      jtype.Int16,
	types.Int32:      jtype.Int32,
	types.Int64:      jtype.Int64,
	types.Uint:       jtype.Uint64,
	types.Uint8:      jtype.Uint8,
	types.Uint16:     jtype.Uint16,
	types.Uint32:     jtype.Uint32,
	types.Uint64:     jtype.Uint64,
	types.Float32:    jtype.Float32,
	types.Float64:    jtype.Float64,
	types.Complex64:  jtype.Complex64,
	types.Complex128: jtype.Complex128,
	types.String:     jtype.String,
}

// MapGoType translates a go/types type into the equivalent compiler
// type, using the same structural rules the runtime resolver applies to
// reflect types. Named types are translated through their underlying
// type. Types with no compiler rendition produce an error.
func MapGoType(t types.Type) (jtype.Type, error) {
	switch v := t.(type) {
	case *types.Basic:
		if jt, ok := basicKinds[v.Kind()]; ok {
			return jt, nil
		}
		return nil, fmt.Errorf("no compiler type for %s", v)
	case *types.Slice:
		elem, err := MapGoType(v.Elem())
		if err != nil {
			return nil, err
		}
		return jtype.ArrayOf(elem, 1), nil
	case *types.Signature:
		return mapGoSignature(v)
	case *types.Named:
		return MapGoType(v.Underlying())
	case *types.Alias:
		return MapGoType(types.Unalias(v))
	default:
		return nil, fmt.Errorf("no compiler type for %s", t)
	}
}

// MapGoSignature translates a go/types function signature into a full
// compiler signature. Zero results map to void; multiple results and
// variadic signatures have no compiler rendition.
func MapGoSignature(sig *types.Signature) (jtype.Signature, error) {
	if sig.Variadic() {
		return jtype.Signature{}, fmt.Errorf("variadic functions have no compiler signature")
	}
	if sig.Results().Len() > 1 {
		return jtype.Signature{}, fmt.Errorf("multiple results have no compiler signature")
	}

	params := make([]jtype.Type, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		p, err := MapGoType(sig.Params().At(i).Type())
		if err != nil {
			return jtype.Signature{}, fmt.Errorf("parameter %d: %w", i, err)
		}
		params[i] = p
	}

	ret := jtype.Type(jtype.Void)
	if sig.Results().Len() == 1 {
		r, err := MapGoType(sig.Results().At(0).Type())
		if err != nil {
			return jtype.Signature{}, fmt.Errorf("return value: %w", err)
		}
		ret = r
	}
	return jtype.NewSignature(ret, params...), nil
}

func mapGoSignature(sig *types.Signature) (jtype.Type, error) {
	inner, err := MapGoSignature(sig)
	if err != nil {
		return nil, err
	}
	return jtype.FunctionOf(inner), nil
}
