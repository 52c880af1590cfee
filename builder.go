package anjit

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/olehluchkiv/anjit/internal/source"
	"github.com/olehluchkiv/anjit/jtype"
)

// builder resolves one function's declared types into a compiler
// signature through a mapping table. Resolution is pure: it never
// mutates the table.
type builder struct {
	cfg    config
	loader *source.Loader
	// lookup finds the descriptor of an already-decorated function for
	// lazy reference markers. nil when no registry is available.
	lookup func(fn any) (*Func, bool)
	logger *slog.Logger
}

// buildResult is the outcome of resolving one function.
type buildResult struct {
	sig    jtype.Signature
	name   string
	params []string
}

// build resolves fn's parameter and return types in declaration order
// and returns the assembled signature plus the declared names.
func (b *builder) build(fn any) (buildResult, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return buildResult{}, &InvalidFunctionError{
			Func:   fmt.Sprintf("%T", fn),
			Reason: "not a function",
		}
	}
	t := v.Type()

	info, err := b.loader.Describe(fn)
	if err != nil {
		return buildResult{}, err
	}
	fname := info.Name
	if fname == "" {
		fname = info.FullName
	}

	if t.IsVariadic() {
		return buildResult{}, &InvalidFunctionError{Func: fname, Reason: "variadic functions cannot be eagerly compiled"}
	}
	if t.NumOut() > 1 {
		return buildResult{}, &InvalidFunctionError{Func: fname, Reason: "functions with multiple results cannot be eagerly compiled"}
	}

	names := paramNamesFor(t, info)
	for name := range b.cfg.paramOverrides {
		if !slices.Contains(names, name) {
			return buildResult{}, fmt.Errorf("%s has no parameter %q to override", fname, name)
		}
	}

	params := make([]jtype.Type, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		name := names[i]

		var pt jtype.Type
		if marker, ok := b.cfg.paramOverrides[name]; ok {
			pt, err = b.resolveMarker(marker)
		} else {
			pt, err = b.resolveParam(t.In(i), name)
		}
		if err != nil {
			return buildResult{}, fmt.Errorf("argument %q of %s: %w", name, fname, err)
		}
		params[i] = pt
		b.logger.Debug("annotation resolved", "func", fname, "param", name, "type", pt.String())
	}

	ret, err := b.resolveReturn(t)
	if err != nil {
		return buildResult{}, fmt.Errorf("return value of %s: %w", fname, err)
	}

	sig := jtype.NewSignature(ret, params...)
	b.logger.Debug("signature built", "func", fname, "signature", sig.String())
	return buildResult{sig: sig, name: fname, params: names}, nil
}

// resolveParam translates one parameter's reflect type. A bare interface
// type carries no usable type information and takes the missing-
// annotation path.
func (b *builder) resolveParam(rt reflect.Type, name string) (jtype.Type, error) {
	if isUntyped(rt) {
		if b.cfg.onMissingArg == nil {
			return nil, &MissingAnnotationError{Name: name}
		}
		return b.resolveMarker(b.cfg.onMissingArg)
	}
	return b.resolveReflect(rt)
}

func (b *builder) resolveReturn(t reflect.Type) (jtype.Type, error) {
	if b.cfg.hasRetOverride {
		return b.resolveMarker(b.cfg.retOverride)
	}
	if t.NumOut() == 0 {
		return jtype.Void, nil
	}
	out := t.Out(0)
	if isUntyped(out) {
		if b.cfg.onMissingRet == nil {
			return nil, &MissingAnnotationError{Name: "return"}
		}
		return b.resolveMarker(b.cfg.onMissingRet)
	}
	return b.resolveReflect(out)
}

// resolveMarker translates an arbitrary marker: a lazy reference, a
// native compiler type, a reflect.Type, or a table key such as a string
// alias.
func (b *builder) resolveMarker(marker any) (jtype.Type, error) {
	switch m := marker.(type) {
	case argRef:
		f, err := b.resolveTarget(m.target)
		if err != nil {
			return nil, err
		}
		return f.Arg(m.name)
	case retRef:
		f, err := b.resolveTarget(m.target)
		if err != nil {
			return nil, err
		}
		return f.Return(), nil
	case sigRef:
		f, err := b.resolveTarget(m.target)
		if err != nil {
			return nil, err
		}
		return jtype.FunctionOf(f.Signature()), nil
	case reflect.Type:
		return b.resolveReflect(m)
	default:
		return b.cfg.mapping.Resolve(marker)
	}
}

// resolveReflect translates a Go type. An exact table entry wins, which
// lets named types carry their own mapping; otherwise function, slice
// and array types are translated structurally.
func (b *builder) resolveReflect(rt reflect.Type) (jtype.Type, error) {
	if t, err := b.cfg.mapping.Resolve(rt); err == nil {
		return t, nil
	}

	switch rt.Kind() {
	case reflect.Func:
		sig, err := b.reflectSignature(rt)
		if err != nil {
			return nil, err
		}
		return jtype.FunctionOf(sig), nil
	case reflect.Slice:
		elem, err := b.resolveReflect(rt.Elem())
		if err != nil {
			return nil, err
		}
		return jtype.ArrayOf(elem, 1), nil
	case reflect.Array:
		elem, err := b.resolveReflect(rt.Elem())
		if err != nil {
			return nil, err
		}
		return jtype.ArrayOf(elem, 1), nil
	default:
		return nil, &UnknownAnnotationError{Marker: rt}
	}
}

// reflectSignature builds the full signature of a function type, for
// parameters that are themselves functions.
func (b *builder) reflectSignature(rt reflect.Type) (jtype.Signature, error) {
	if rt.IsVariadic() {
		return jtype.Signature{}, &InvalidFunctionError{Func: rt.String(), Reason: "variadic functions cannot be eagerly compiled"}
	}
	if rt.NumOut() > 1 {
		return jtype.Signature{}, &InvalidFunctionError{Func: rt.String(), Reason: "functions with multiple results cannot be eagerly compiled"}
	}

	params := make([]jtype.Type, rt.NumIn())
	for i := 0; i < rt.NumIn(); i++ {
		p, err := b.resolveReflect(rt.In(i))
		if err != nil {
			return jtype.Signature{}, err
		}
		params[i] = p
	}
	ret := jtype.Type(jtype.Void)
	if rt.NumOut() == 1 {
		r, err := b.resolveReflect(rt.Out(0))
		if err != nil {
			return jtype.Signature{}, err
		}
		ret = r
	}
	return jtype.NewSignature(ret, params...), nil
}

// resolveTarget finds the descriptor a lazy reference points at. The
// target must already be resolved: either a *Func, or a function that
// was previously decorated through the Manager owning this builder.
func (b *builder) resolveTarget(target any) (*Func, error) {
	if f, ok := target.(*Func); ok {
		return f, nil
	}
	if b.lookup != nil {
		if f, ok := b.lookup(target); ok {
			return f, nil
		}
	}
	return nil, &NotResolvedError{Func: funcSymbol(target)}
}

// isUntyped reports whether a declared type carries no usable type
// information: the empty interface (any).
func isUntyped(rt reflect.Type) bool {
	return rt.Kind() == reflect.Interface && rt.NumMethod() == 0
}

func paramNamesFor(t reflect.Type, info *source.FuncInfo) []string {
	if info.FromSource && len(info.Params) == t.NumIn() {
		return info.Params
	}
	names := make([]string, t.NumIn())
	for i := range names {
		names[i] = fmt.Sprintf("arg%d", i)
	}
	return names
}
