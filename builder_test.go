package anjit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/anjit/jtype"
)

// Fixture functions must be declared at file scope so their parameter
// names can be recovered from source.

func addIntFloat(x int, y float64) float64 { return float64(x) + y }

func ignoreBoth(x int, y float64) {}

func sumSlice(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func applyTwice(x float64, f func(float64) float64) float64 { return f(f(x)) }

func missingArg(x int, y any) float64 { return float64(x) }

func missingRet(x int) any { return x }

func sumAll(xs ...float64) float64 { return 0 }

func twoResults(x int) (int, int) { return x, x }

type meters float64

func double(m meters) meters { return 2 * m }

func TestBuildSignatureDefaults(t *testing.T) {
	sig, err := BuildSignature(addIntFloat)
	require.NoError(t, err)
	assert.True(t, sig.Equal(jtype.NewSignature(jtype.Float64, jtype.Int64, jtype.Float64)))
	assert.Equal(t, "float64(int64, float64)", sig.String())
}

func TestBuildSignatureVoidReturn(t *testing.T) {
	sig, err := BuildSignature(ignoreBoth)
	require.NoError(t, err)
	assert.True(t, sig.Equal(jtype.NewSignature(jtype.Void, jtype.Int64, jtype.Float64)))
}

func TestBuildSignatureSliceParam(t *testing.T) {
	sig, err := BuildSignature(sumSlice)
	require.NoError(t, err)
	want := jtype.NewSignature(jtype.Float64, jtype.ArrayOf(jtype.Float64, 1))
	assert.True(t, sig.Equal(want))
	assert.Equal(t, "float64(float64[])", sig.String())
}

func TestBuildSignatureFunctionParam(t *testing.T) {
	sig, err := BuildSignature(applyTwice)
	require.NoError(t, err)
	inner := jtype.NewSignature(jtype.Float64, jtype.Float64)
	want := jtype.NewSignature(jtype.Float64, jtype.Float64, jtype.FunctionOf(inner))
	assert.True(t, sig.Equal(want))
}

func TestBuildSignatureNamedTypeMapping(t *testing.T) {
	tm := DefaultTypeMap()
	tm.Insert(GoType[meters](), jtype.Float32)

	sig, err := BuildSignature(double, WithMapping(tm))
	require.NoError(t, err)
	assert.True(t, sig.Equal(jtype.NewSignature(jtype.Float32, jtype.Float32)))
}

func TestBuildSignatureUnmappedNamedType(t *testing.T) {
	_, err := BuildSignature(double, WithMapping(DefaultTypeMap()))
	var unknown *UnknownAnnotationError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, err.Error(), "double")
}

func TestBuildSignatureStringAlias(t *testing.T) {
	tm := DefaultTypeMap()
	tm.Insert("a", jtype.Float64)

	sig, err := BuildSignature(addIntFloat, WithMapping(tm), WithParam("y", "a"))
	require.NoError(t, err)
	assert.True(t, sig.Equal(jtype.NewSignature(jtype.Float64, jtype.Int64, jtype.Float64)))
}

func TestBuildSignatureReturnOverride(t *testing.T) {
	sig, err := BuildSignature(addIntFloat, WithReturn(jtype.Float32))
	require.NoError(t, err)
	assert.True(t, sig.Equal(jtype.NewSignature(jtype.Float32, jtype.Int64, jtype.Float64)))
}

func TestBuildSignatureUnknownOverrideName(t *testing.T) {
	_, err := BuildSignature(addIntFloat, WithParam("z", jtype.Float64))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"z"`)
}

func TestBuildSignatureMissingArg(t *testing.T) {
	_, err := BuildSignature(missingArg)
	var missing *MissingAnnotationError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "y", missing.Name)
	assert.Contains(t, err.Error(), "missingArg")
}

func TestBuildSignatureOnMissingArg(t *testing.T) {
	sig, err := BuildSignature(missingArg, OnMissingArg(GoType[int]()))
	require.NoError(t, err)
	assert.True(t, sig.Equal(jtype.NewSignature(jtype.Float64, jtype.Int64, jtype.Int64)))
}

func TestBuildSignatureMissingRet(t *testing.T) {
	_, err := BuildSignature(missingRet)
	var missing *MissingAnnotationError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "return", missing.Name)
}

func TestBuildSignatureOnMissingRet(t *testing.T) {
	sig, err := BuildSignature(missingRet, OnMissingRet(jtype.Float64))
	require.NoError(t, err)
	assert.True(t, sig.Equal(jtype.NewSignature(jtype.Float64, jtype.Int64)))
}

func TestBuildSignatureVariadic(t *testing.T) {
	_, err := BuildSignature(sumAll)
	var invalid *InvalidFunctionError
	require.ErrorAs(t, err, &invalid)
}

func TestBuildSignatureMultipleResults(t *testing.T) {
	_, err := BuildSignature(twoResults)
	var invalid *InvalidFunctionError
	require.ErrorAs(t, err, &invalid)
}

func TestBuildSignatureNotAFunction(t *testing.T) {
	_, err := BuildSignature(42)
	var invalid *InvalidFunctionError
	require.ErrorAs(t, err, &invalid)
}

func TestBuildSignatureClosureFallbackNames(t *testing.T) {
	// Closures have no declaration to recover names from; parameters
	// become addressable as arg0..argN.
	add := func(x, y float64) float64 { return x + y }

	sig, err := BuildSignature(add, WithParam("arg1", jtype.Float32))
	require.NoError(t, err)
	assert.True(t, sig.Equal(jtype.NewSignature(jtype.Float64, jtype.Float64, jtype.Float32)))
}

func TestBuildSignaturePureResolution(t *testing.T) {
	tm := DefaultTypeMap()
	before := tm.Len()
	_, err := BuildSignature(addIntFloat, WithMapping(tm))
	require.NoError(t, err)
	assert.Equal(t, before, tm.Len())
}
