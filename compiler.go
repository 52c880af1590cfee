package anjit

import "github.com/olehluchkiv/anjit/jtype"

// Compiler is the surface of the wrapped just-in-time compiler. It is
// treated as an opaque external dependency: errors it returns are passed
// through to the caller unmodified.
type Compiler interface {
	// CompileEager compiles fn to a callable using the fully resolved
	// signature, at decoration time.
	CompileEager(fn any, sig jtype.Signature, opts Options) (any, error)

	// CompileLazy defers type inference to the first call.
	CompileLazy(fn any, opts Options) (any, error)
}

// Options are the jit options forwarded to the Compiler. They mirror the
// knobs of the wrapped compiler's entry points and are opaque to the
// signature resolver itself.
type Options struct {
	// Cache enables on-disk caching of compiled code.
	Cache bool
	// Parallel enables automatic parallelization.
	Parallel bool
	// FastMath relaxes IEEE 754 strictness.
	FastMath bool
	// BoundsCheck enables array bounds checking.
	BoundsCheck bool
}
