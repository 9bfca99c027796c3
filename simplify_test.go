package stepcalc_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/stepcalc"
)

func TestSimplify_Trace(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"7", []string{"7"}},
		{"7/3", []string{"7/3"}},
		{"4/6", []string{"4/6", "2/3"}},
		{"1 + 7 * -4", []string{"1+7*-4", "1+-28", "-27"}},
		{"1 + 5/3 - 2", []string{"1+5/3-2", "1+-1/3", "2/3"}},
		{"(3 + 4*8)(2 - 1)", []string{"(3+4*8)*(2-1)", "(3+32)*(2-1)", "35*(2-1)", "35*1", "35"}},
		{"(1+2)*(3+4)", []string{"(1+2)*(3+4)", "3*(3+4)", "3*7", "21"}},
		{"8/2/2", []string{"8/2/2", "4/2", "2"}},
		{"1/3+1/6", []string{"1/3+1/6", "3/6", "1/2"}},
		{"2/3*3/2", []string{"2/3*3/2", "6/6", "1"}},
		{"(1/2)/(1/4)", []string{"1/2/(1/4)", "4/2", "2"}},
		{"-(2+3)", []string{"-1*(2+3)", "-1*5", "-5"}},
		{"6/-(2)", []string{"6/(-1*2)", "6/-2", "-3"}},
		{"(2*3)/4", []string{"(2*3)/4", "6/4", "3/2"}},
		{"(1+2)-3", []string{"(1+2)-3", "3-3", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := stepcalc.Parse(tt.input)
			require.NoError(t, err)
			res := stepcalc.Simplify(n)
			require.NoError(t, res.Err())
			if diff := cmp.Diff(tt.want, res.Trace); diff != "" {
				t.Errorf("trace mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimplify_TraceHasNoAdjacentDuplicates(t *testing.T) {
	for _, input := range []string{"7/3", "5/3-2", "(((4)))", "1*1*1", "2/4+1/4"} {
		n, err := stepcalc.Parse(input)
		require.NoError(t, err)
		trace := stepcalc.Simplify(n).Trace
		for i := 1; i < len(trace); i++ {
			assert.NotEqual(t, trace[i-1], trace[i], "%s: %v", input, trace)
		}
	}
}

func TestSimplify_Canonical(t *testing.T) {
	for input, want := range map[string]string{
		"-4/6":    "-2/3",
		"4/-6":    "-2/3",
		"-4/-6":   "2/3",
		"0/5":     "0",
		"100/7-3": "79/7",
		"1-2-3":   "-4",
		"2*3+4*5": "26",
		"6/(2*3)": "1",
		"1-(2+3)": "-4",
		"x":       "x",
	} {
		n, err := stepcalc.Parse(input)
		require.NoError(t, err, input)
		got, ok := stepcalc.Simplify(n).Canonical()
		require.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}
}

func TestSimplify_DivisionByZeroMessage(t *testing.T) {
	for input, want := range map[string]string{
		"5/0":       "Cannot divide 5 by 0",
		"(1/2)/0":   "Cannot divide 1/2 by 0",
		"1/(2-2)":   "Cannot divide 1 by 0",
		"3+2*(1/0)": "Cannot divide 1 by 0",
		"(4/0)-1":   "Cannot divide 4 by 0",
	} {
		n, err := stepcalc.Parse(input)
		require.NoError(t, err, input)
		res := stepcalc.Simplify(n)
		assert.ErrorIs(t, res.Err(), stepcalc.ErrDivisionByZero, input)
		assert.Equal(t, want, res.Node.String(), input)
		assert.Equal(t, []string{n.String()}, res.Trace, input)
	}
}

func TestSimplify_VariableUnsupported(t *testing.T) {
	for input, partial := range map[string]string{
		"2x":    "2*x",
		"-x":    "-1*x",
		"x+1":   "x+1",
		"3*x/2": "x/2",
	} {
		n, err := stepcalc.Parse(input)
		require.NoError(t, err, input)
		res := stepcalc.Simplify(n)
		assert.ErrorIs(t, res.Err(), stepcalc.ErrUnsupportedOperation, input)

		e, ok := res.Node.(*stepcalc.ErrorNode)
		require.True(t, ok, input)
		assert.Equal(t, "Variables unimplemented", e.Message())
		require.NotNil(t, e.Partial(), input)
		assert.Equal(t, partial, e.Partial().String(), input)
	}
}

func TestSimplify_LargeLiteralIsFast(t *testing.T) {
	n, err := stepcalc.Parse("9223372036854775783/2")
	require.NoError(t, err)

	start := time.Now()
	res := stepcalc.Simplify(n)
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	got, ok := res.Canonical()
	require.True(t, ok)
	assert.Equal(t, "9223372036854775783/2", got)
}
