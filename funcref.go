package anjit

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/olehluchkiv/anjit/jtype"
)

// Func is the descriptor produced by decorating a function: the original
// and compiled callables together with the resolved signature and the
// declared parameter names. All accessors are read-only; the signature
// is immutable once built.
type Func struct {
	name     string
	fn       any
	compiled any
	sig      jtype.Signature
	params   []string
	index    map[string]int
}

// Name returns the declared function name, when known.
func (f *Func) Name() string { return f.name }

// Fn returns the compiled callable (the original function when jitting
// is disabled). Use Compiled to recover it with its concrete type.
func (f *Func) Fn() any { return f.compiled }

// Signature returns the resolved call signature.
func (f *Func) Signature() jtype.Signature { return f.sig }

// Params returns the declared parameter names in order.
func (f *Func) Params() []string {
	out := make([]string, len(f.params))
	copy(out, f.params)
	return out
}

// Arg returns the resolved type of the named parameter.
func (f *Func) Arg(name string) (jtype.Type, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%s has no parameter %q", f.describe(), name)
	}
	return f.sig.Param(i), nil
}

// Return returns the resolved return type.
func (f *Func) Return() jtype.Type { return f.sig.Return() }

// Call invokes the compiled callable via reflection and returns its
// single result, or nil for a void function.
func (f *Func) Call(args ...any) (any, error) {
	v := reflect.ValueOf(f.compiled)
	t := v.Type()
	if len(args) != t.NumIn() {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", f.describe(), t.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		av := reflect.ValueOf(a)
		if !av.IsValid() || !av.Type().AssignableTo(t.In(i)) {
			return nil, fmt.Errorf("%s: argument %d must be %s", f.describe(), i, t.In(i))
		}
		in[i] = av
	}
	out := v.Call(in)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

func (f *Func) describe() string {
	if f.name != "" {
		return f.name
	}
	return "function"
}

// Compiled returns the compiled callable as F.
func Compiled[F any](f *Func) (F, error) {
	c, ok := f.compiled.(F)
	if !ok {
		var zero F
		return zero, fmt.Errorf("%s is %T, not %T", f.describe(), f.compiled, zero)
	}
	return c, nil
}

// Lazy reference markers. Each wraps a target (a *Func descriptor or a
// raw function decorated through the same Manager) and is evaluated when
// the referencing function's annotations are resolved, not when written.

type argRef struct {
	target any
	name   string
}

type retRef struct {
	target any
}

type sigRef struct {
	target any
}

// ArgOf returns a marker for the resolved type of the named parameter of
// fn. fn may be a *Func or a function already decorated by the Manager
// resolving the marker.
func ArgOf(fn any, name string) any { return argRef{target: fn, name: name} }

// ReturnOf returns a marker for the resolved return type of fn.
func ReturnOf(fn any) any { return retRef{target: fn} }

// FuncOf returns a marker for the full signature of fn as a first-class
// function type, for parameters that are themselves functions.
func FuncOf(fn any) any { return sigRef{target: fn} }

// funcSymbol names a function value for error messages.
func funcSymbol(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return fmt.Sprintf("%T", fn)
	}
	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		return rf.Name()
	}
	return v.Type().String()
}
