package source

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grouped(x, y float64, n int) float64 { return (x + y) * float64(n) }

func unnamed(_ int, y float64) float64 { return y }

func discardTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDescribeTopLevelFunction(t *testing.T) {
	l := NewLoader(discardTestLogger())

	info, err := l.Describe(grouped)
	require.NoError(t, err)
	assert.True(t, info.FromSource)
	assert.Equal(t, "grouped", info.Name)
	assert.Equal(t, []string{"x", "y", "n"}, info.Params)
}

func TestDescribeBlankParams(t *testing.T) {
	l := NewLoader(discardTestLogger())

	info, err := l.Describe(unnamed)
	require.NoError(t, err)
	assert.True(t, info.FromSource)
	assert.Equal(t, []string{"arg0", "y"}, info.Params)
}

func TestDescribeClosure(t *testing.T) {
	l := NewLoader(discardTestLogger())
	add := func(x, y float64) float64 { return x + y }

	info, err := l.Describe(add)
	require.NoError(t, err)
	assert.False(t, info.FromSource)
	assert.Empty(t, info.Params)
}

func TestDescribeNotAFunction(t *testing.T) {
	l := NewLoader(discardTestLogger())
	_, err := l.Describe("nope")
	require.Error(t, err)
}

func TestDescribeCachesPerFile(t *testing.T) {
	l := NewLoader(discardTestLogger())

	_, err := l.Describe(grouped)
	require.NoError(t, err)
	require.Len(t, l.cache, 1)

	_, err = l.Describe(unnamed)
	require.NoError(t, err)
	assert.Len(t, l.cache, 1)
}

func TestBareName(t *testing.T) {
	cases := []struct {
		symbol string
		want   string
	}{
		{"github.com/user/pkg.Add", "Add"},
		{"main.main", "main"},
		{"github.com/user/pkg.(*T).M-fm", "M"},
		{"github.com/user/pkg.TestX.func1", ""},
		{"github.com/user/pkg.TestX.func2.1", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, bareName(c.symbol), c.symbol)
	}
}
