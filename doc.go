// Package anjit translates a Go function's declared parameter and
// return types into the type signature of a wrapped just-in-time
// compiler, so the compiler's eager (signature-specified) mode can be
// used without constructing signature objects by hand.
//
// A Manager owns a mutable TypeMap from type markers (reflect types,
// string aliases or native compiler types) to compiler types, plus
// default jit options. Anjit resolves a function's signature through
// the table and forwards it to the compiler's eager entry point; Njit
// passes through to the lazy entry point. Decorated functions yield
// Func descriptors whose resolved types can be referenced from later
// decorations with ArgOf, ReturnOf and FuncOf.
package anjit
