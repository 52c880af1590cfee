package anjit

import "fmt"

// UnknownAnnotationError reports a type marker that has no entry in the
// mapping table and is not already a compiler-native type. Insert a
// mapping for the marker to teach the resolver how to translate it.
type UnknownAnnotationError struct {
	Marker any
	// Context names the function and parameter being resolved, when known.
	Context string
}

func (e *UnknownAnnotationError) Error() string {
	msg := fmt.Sprintf("unknown annotation: cannot translate %v into a compiler type", e.Marker)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

// MissingAnnotationError reports a parameter or return value that carries
// no usable type information when eager compilation was requested.
type MissingAnnotationError struct {
	// Name is the parameter name, or "return" for the return value.
	Name string
	Func string
}

func (e *MissingAnnotationError) Error() string {
	msg := fmt.Sprintf("missing annotation for %s", e.Name)
	if e.Func != "" {
		msg += " of " + e.Func
	}
	return msg
}

// NotResolvedError reports a lazy reference to a function that has not
// been decorated yet, so no resolved types exist for it.
type NotResolvedError struct {
	Func string
}

func (e *NotResolvedError) Error() string {
	name := e.Func
	if name == "" {
		name = "function"
	}
	return fmt.Sprintf("%s has not been resolved yet: decorate it before referencing its types", name)
}

// NotCompilerTypeError reports a mapping table value that is not a valid
// compiler type and therefore cannot take part in a signature.
type NotCompilerTypeError struct {
	Marker any
	Value  any
}

func (e *NotCompilerTypeError) Error() string {
	return fmt.Sprintf("not a compiler type: %v (mapped from %v)", e.Value, e.Marker)
}

// InvalidFunctionError reports a value that cannot be eagerly compiled at
// all: not a function, variadic, or with multiple results.
type InvalidFunctionError struct {
	Func   string
	Reason string
}

func (e *InvalidFunctionError) Error() string {
	name := e.Func
	if name == "" {
		name = "value"
	}
	return fmt.Sprintf("cannot build signature for %s: %s", name, e.Reason)
}
