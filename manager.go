package anjit

import (
	"log/slog"
	"reflect"

	"github.com/olehluchkiv/anjit/internal/source"
	"github.com/olehluchkiv/anjit/jtype"
)

// Manager centralizes one mapping table and one set of default compiler
// options across many decorations. Mutating its table affects functions
// decorated afterwards; already-built signatures are immutable.
//
// A Manager is meant for single-threaded decoration-time use, the same
// way build-time tooling is set up before concurrent work begins.
type Manager struct {
	compiler Compiler
	defaults config
	loader   *source.Loader

	// funcs maps decorated functions (by code pointer) to descriptors,
	// so lazy references can target the raw function value.
	funcs map[uintptr]*Func
}

// New returns a Manager wrapping the given compiler. Each manager owns
// its own default mapping table unless WithMapping supplies one.
func New(compiler Compiler, opts ...Option) *Manager {
	cfg := config{
		mapping: DefaultTypeMap(),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return &Manager{
		compiler: compiler,
		defaults: cfg,
		loader:   source.NewLoader(cfg.logger),
		funcs:    make(map[uintptr]*Func),
	}
}

// Mapping returns the manager's mapping table for extension by insertion.
func (m *Manager) Mapping() *TypeMap { return m.defaults.mapping }

// Anjit performs annotation-aware eager compilation: it resolves fn's
// declared types into a signature, hands it to the compiler's eager
// entry point and returns the resulting descriptor. Per-call options are
// merged over the manager defaults. Compiler errors are returned
// unmodified.
func (m *Manager) Anjit(fn any, opts ...Option) (*Func, error) {
	cfg := m.merged(opts)

	b := m.builder(cfg)
	res, err := b.build(fn)
	if err != nil {
		return nil, err
	}

	compiled := fn
	if cfg.disabled {
		cfg.logger.Debug("jit disabled, returning function uncompiled", "func", res.name)
	} else {
		compiled, err = m.compiler.CompileEager(fn, res.sig, cfg.jit)
		if err != nil {
			return nil, err
		}
	}

	f := &Func{
		name:     res.name,
		fn:       fn,
		compiled: compiled,
		sig:      res.sig,
		params:   res.params,
		index:    indexNames(res.params),
	}
	m.funcs[reflect.ValueOf(fn).Pointer()] = f
	return f, nil
}

// Njit is a pass-through to the compiler's lazy entry point, for callers
// who want manager-level option reuse without annotation translation.
func (m *Manager) Njit(fn any, opts ...Option) (any, error) {
	cfg := m.merged(opts)
	if cfg.disabled {
		return fn, nil
	}
	return m.compiler.CompileLazy(fn, cfg.jit)
}

// BuildSignature resolves fn's signature without compiling it.
func (m *Manager) BuildSignature(fn any, opts ...Option) (jtype.Signature, error) {
	b := m.builder(m.merged(opts))
	res, err := b.build(fn)
	if err != nil {
		return jtype.Signature{}, err
	}
	return res.sig, nil
}

// Lookup returns the descriptor of a function previously decorated by
// this manager.
func (m *Manager) Lookup(fn any) (*Func, bool) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, false
	}
	f, ok := m.funcs[v.Pointer()]
	return f, ok
}

func (m *Manager) merged(opts []Option) config {
	cfg := m.defaults.clone()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

func (m *Manager) builder(cfg config) *builder {
	return &builder{
		cfg:    cfg,
		loader: m.loader,
		lookup: m.Lookup,
		logger: cfg.logger,
	}
}

func indexNames(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return idx
}

// defaultLoader backs the package-level BuildSignature.
var defaultLoader = source.NewLoader(slog.Default())

// BuildSignature resolves fn's signature against the process-wide
// DefaultMapping, for callers who build signatures without a Manager.
func BuildSignature(fn any, opts ...Option) (jtype.Signature, error) {
	cfg := config{mapping: DefaultMapping, logger: slog.Default()}
	for _, o := range opts {
		o(&cfg)
	}
	b := &builder{cfg: cfg, loader: defaultLoader, logger: cfg.logger}
	res, err := b.build(fn)
	if err != nil {
		return jtype.Signature{}, err
	}
	return res.sig, nil
}
