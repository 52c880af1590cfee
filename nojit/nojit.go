// Package nojit provides a reference Compiler that performs no actual
// compilation: the eager entry point validates that the function's
// shape is compatible with the resolved signature and returns it
// directly. It backs tests and serves callers who want eager signature
// checking while running on the plain Go runtime.
package nojit

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/olehluchkiv/anjit"
	"github.com/olehluchkiv/anjit/jtype"
)

// Compiler validates and passes functions through uncompiled.
type Compiler struct {
	logger *slog.Logger
}

// New returns a Compiler logging through the given logger, or the
// default logger when nil.
func New(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{logger: logger}
}

// CompileEager checks fn against sig and returns fn unchanged.
func (c *Compiler) CompileEager(fn any, sig jtype.Signature, opts anjit.Options) (any, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("nojit: not a function: %T", fn)
	}
	if t.NumIn() != sig.NumParams() {
		return nil, fmt.Errorf("nojit: %s declares %d parameters but signature %s has %d",
			t, t.NumIn(), sig, sig.NumParams())
	}
	for i := 0; i < t.NumIn(); i++ {
		if !compatible(t.In(i), sig.Param(i)) {
			return nil, fmt.Errorf("nojit: parameter %d of %s is %s, incompatible with %s",
				i, t, t.In(i), sig.Param(i))
		}
	}
	if err := checkReturn(t, sig.Return()); err != nil {
		return nil, err
	}

	c.logger.Debug("eager compilation accepted",
		"func", t.String(), "signature", sig.String(),
		"cache", opts.Cache, "parallel", opts.Parallel)
	return fn, nil
}

// CompileLazy returns fn unchanged; type checking happens on call.
func (c *Compiler) CompileLazy(fn any, opts anjit.Options) (any, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("nojit: not a function: %T", fn)
	}
	c.logger.Debug("lazy compilation accepted", "func", t.String(), "cache", opts.Cache)
	return fn, nil
}

func checkReturn(t reflect.Type, ret jtype.Type) error {
	if jtype.Equal(ret, jtype.Void) {
		if t.NumOut() != 0 {
			return fmt.Errorf("nojit: %s returns a value but signature is void", t)
		}
		return nil
	}
	if t.NumOut() != 1 {
		return fmt.Errorf("nojit: %s must return exactly one value for %s", t, ret)
	}
	if !compatible(t.Out(0), ret) {
		return fmt.Errorf("nojit: return type of %s is %s, incompatible with %s",
			t, t.Out(0), ret)
	}
	return nil
}

// compatible reports whether a Go type can carry values of a compiler
// type. Untyped (interface) declarations are compatible with anything:
// their type was resolved through a missing-annotation default or an
// override, and the plain Go runtime imposes no layout.
func compatible(rt reflect.Type, jt jtype.Type) bool {
	if rt.Kind() == reflect.Interface {
		return true
	}
	switch v := jt.(type) {
	case jtype.Primitive:
		k, ok := kindFor(rt.Kind())
		return ok && k == v.Kind()
	case jtype.Array:
		if rt.Kind() != reflect.Slice && rt.Kind() != reflect.Array {
			return false
		}
		return compatible(rt.Elem(), v.Elem())
	case jtype.Function:
		if rt.Kind() != reflect.Func {
			return false
		}
		sig := v.Signature()
		if rt.NumIn() != sig.NumParams() {
			return false
		}
		for i := 0; i < rt.NumIn(); i++ {
			if !compatible(rt.In(i), sig.Param(i)) {
				return false
			}
		}
		return checkReturn(rt, sig.Return()) == nil
	default:
		return false
	}
}

func kindFor(k reflect.Kind) (jtype.Kind, bool) {
	switch k {
	case reflect.Bool:
		return jtype.KindBool, true
	case reflect.Int, reflect.Int64:
		return jtype.KindInt64, true
	case reflect.Int8:
		return jtype.KindInt8, true
	case reflect.Int16:
		return jtype.KindInt16, true
	case reflect.Int32:
		return jtype.KindInt32, true
	case reflect.Uint, reflect.Uint64:
		return jtype.KindUint64, true
	case reflect.Uint8:
		return jtype.KindUint8, true
	case reflect.Uint16:
		return jtype.KindUint16, true
	case reflect.Uint32:
		return jtype.KindUint32, true
	case reflect.Float32:
		return jtype.KindFloat32, true
	case reflect.Float64:
		return jtype.KindFloat64, true
	case reflect.Complex64:
		return jtype.KindComplex64, true
	case reflect.Complex128:
		return jtype.KindComplex128, true
	case reflect.String:
		return jtype.KindString, true
	default:
		return jtype.Invalid, false
	}
}
