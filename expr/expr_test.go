package expr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.expr")
	defer teardown()
	//
	ev := New()
	var tests = []struct {
		input  string
		result float64
	}{
		{"21 * 2", 42},
		{"21*2", 42},
		{"7 - 10", -3},
		{"1 < 3", 1},
		{"2 == 3", 0},
		{"(3 + 4) % 5 >= 2 && 1 != 0", 1},
		{"max(abs(-3), sqrt(4))", 3},
		{"pow(2, 10)", 1024},
	}
	for _, test := range tests {
		r, err := ev.Calculate(test.input)
		require.NoError(t, err, test.input)
		assert.InDelta(t, test.result, r, 1e-9, test.input)
	}
}

func TestCalculateErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.expr")
	defer teardown()
	//
	ev := New()
	for _, input := range []string{"", "   ", "1 +", "foo + 1", "'a' + 'b'", "sqrt(1, 2)",
		"1 / 0", "0 / 0", "-1 / 0", "sqrt(-1)"} {
		_, err := ev.Calculate(input)
		assert.Error(t, err, "expected error for %q", input)
	}
}

func TestCacheIsUsed(t *testing.T) {
	ev := New()
	_, err := ev.Calculate("1 + 1")
	require.NoError(t, err)
	assert.Len(t, ev.cache, 1)
	_, err = ev.Calculate("1 + 1")
	require.NoError(t, err)
	assert.Len(t, ev.cache, 1)
	ev.Func("twice", unary(func(x float64) float64 { return 2 * x }))
	assert.Len(t, ev.cache, 0)
	r, err := ev.Calculate("twice(4)")
	require.NoError(t, err)
	assert.Equal(t, 8.0, r)
}

func TestFormatAndTruthy(t *testing.T) {
	assert.Equal(t, "42.000000", Format(42))
	assert.Equal(t, "-0.500000", Format(-0.5))
	assert.True(t, Truthy(0.1))
	assert.False(t, Truthy(0))
	assert.False(t, Truthy(-1))
}
