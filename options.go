package anjit

import "log/slog"

// config carries the merged settings for one decoration. A Manager holds
// its defaults as a config; per-call options are applied on a copy, so a
// call never mutates the manager.
type config struct {
	mapping      *TypeMap
	jit          Options
	onMissingArg any
	onMissingRet any
	disabled     bool
	logger       *slog.Logger

	// Per-call annotation overrides, keyed by parameter name.
	paramOverrides map[string]any
	retOverride    any
	hasRetOverride bool
}

func (c config) clone() config {
	out := c
	if c.paramOverrides != nil {
		out.paramOverrides = make(map[string]any, len(c.paramOverrides))
		for k, v := range c.paramOverrides {
			out.paramOverrides[k] = v
		}
	}
	return out
}

// Option configures a Manager or a single decoration. Options given to
// Anjit, Njit or BuildSignature are merged over the manager's defaults.
type Option func(*config)

// WithMapping sets the type mapping table to resolve markers through.
func WithMapping(tm *TypeMap) Option {
	return func(c *config) { c.mapping = tm }
}

// WithJitOptions replaces the full set of compiler options.
func WithJitOptions(opts Options) Option {
	return func(c *config) { c.jit = opts }
}

// WithCache toggles on-disk caching of compiled code.
func WithCache(on bool) Option {
	return func(c *config) { c.jit.Cache = on }
}

// WithParallel toggles automatic parallelization.
func WithParallel(on bool) Option {
	return func(c *config) { c.jit.Parallel = on }
}

// WithFastMath toggles relaxed IEEE 754 semantics.
func WithFastMath(on bool) Option {
	return func(c *config) { c.jit.FastMath = on }
}

// WithBoundsCheck toggles array bounds checking.
func WithBoundsCheck(on bool) Option {
	return func(c *config) { c.jit.BoundsCheck = on }
}

// OnMissingArg sets the marker substituted for parameters that carry no
// type information. Without it, such parameters fail resolution.
func OnMissingArg(marker any) Option {
	return func(c *config) { c.onMissingArg = marker }
}

// OnMissingRet sets the marker substituted for a return value that
// carries no type information. Without it, such returns fail resolution.
func OnMissingRet(marker any) Option {
	return func(c *config) { c.onMissingRet = marker }
}

// DisableJIT makes decoration a no-op: functions are returned uncompiled.
// Signatures are still resolved so descriptors and references keep working.
func DisableJIT() Option {
	return func(c *config) { c.disabled = true }
}

// WithLogger sets the logger used for resolution and compilation logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithParam overrides the annotation of the named parameter with marker.
// The marker may be anything the resolver accepts, including a lazy
// reference such as ArgOf or FuncOf.
func WithParam(name string, marker any) Option {
	return func(c *config) {
		if c.paramOverrides == nil {
			c.paramOverrides = make(map[string]any)
		}
		c.paramOverrides[name] = marker
	}
}

// WithReturn overrides the return annotation with marker.
func WithReturn(marker any) Option {
	return func(c *config) {
		c.retOverride = marker
		c.hasRetOverride = true
	}
}
