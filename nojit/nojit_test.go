package nojit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/anjit"
	"github.com/olehluchkiv/anjit/jtype"
)

func TestCompileEagerAccepts(t *testing.T) {
	c := New(nil)
	add := func(x, y float64) float64 { return x + y }
	sig := jtype.NewSignature(jtype.Float64, jtype.Float64, jtype.Float64)

	out, err := c.CompileEager(add, sig, anjit.Options{})
	require.NoError(t, err)

	got, ok := out.(func(float64, float64) float64)
	require.True(t, ok)
	assert.Equal(t, 5.0, got(2.0, 3.0))
}

func TestCompileEagerArityMismatch(t *testing.T) {
	c := New(nil)
	add := func(x, y float64) float64 { return x + y }
	sig := jtype.NewSignature(jtype.Float64, jtype.Float64)

	_, err := c.CompileEager(add, sig, anjit.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameters")
}

func TestCompileEagerKindMismatch(t *testing.T) {
	c := New(nil)
	add := func(x, y float64) float64 { return x + y }
	sig := jtype.NewSignature(jtype.Float64, jtype.Int64, jtype.Float64)

	_, err := c.CompileEager(add, sig, anjit.Options{})
	require.Error(t, err)
}

func TestCompileEagerReturnMismatch(t *testing.T) {
	c := New(nil)
	add := func(x, y float64) float64 { return x + y }

	_, err := c.CompileEager(add, jtype.NewSignature(jtype.Int64, jtype.Float64, jtype.Float64), anjit.Options{})
	require.Error(t, err)

	_, err = c.CompileEager(add, jtype.NewSignature(jtype.Void, jtype.Float64, jtype.Float64), anjit.Options{})
	require.Error(t, err)
}

func TestCompileEagerVoid(t *testing.T) {
	c := New(nil)
	sink := func(x int) {}

	_, err := c.CompileEager(sink, jtype.NewSignature(jtype.Void, jtype.Int64), anjit.Options{})
	require.NoError(t, err)
}

func TestCompileEagerCompositeTypes(t *testing.T) {
	c := New(nil)
	sum := func(xs []float64) float64 { return 0 }
	sig := jtype.NewSignature(jtype.Float64, jtype.ArrayOf(jtype.Float64, 1))
	_, err := c.CompileEager(sum, sig, anjit.Options{})
	require.NoError(t, err)

	apply := func(x float64, f func(float64) float64) float64 { return f(x) }
	inner := jtype.NewSignature(jtype.Float64, jtype.Float64)
	sig = jtype.NewSignature(jtype.Float64, jtype.Float64, jtype.FunctionOf(inner))
	_, err = c.CompileEager(apply, sig, anjit.Options{})
	require.NoError(t, err)
}

func TestCompileEagerUntypedParam(t *testing.T) {
	// An interface parameter was resolved through a default or an
	// override; the runtime accepts any value for it.
	c := New(nil)
	f := func(x any) float64 { return 0 }
	sig := jtype.NewSignature(jtype.Float64, jtype.Float64)
	_, err := c.CompileEager(f, sig, anjit.Options{})
	require.NoError(t, err)
}

func TestCompileEagerNotAFunction(t *testing.T) {
	c := New(nil)
	_, err := c.CompileEager(42, jtype.NewSignature(jtype.Void), anjit.Options{})
	require.Error(t, err)
}

func TestCompileLazy(t *testing.T) {
	c := New(nil)
	add := func(x, y float64) float64 { return x + y }

	out, err := c.CompileLazy(add, anjit.Options{Cache: true})
	require.NoError(t, err)
	_, ok := out.(func(float64, float64) float64)
	assert.True(t, ok)

	_, err = c.CompileLazy("nope", anjit.Options{})
	require.Error(t, err)
}
