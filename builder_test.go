package stepcalc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/stepcalc"
)

func TestParse_Structure(t *testing.T) {
	tests := []struct {
		input string
		want  stepcalc.Node
	}{
		{"7", stepcalc.N(7)},
		{"((7))", stepcalc.N(7)},
		{"x", stepcalc.V('x')},
		{"1-2-3", stepcalc.OpOf(stepcalc.OpSub,
			stepcalc.OpOf(stepcalc.OpSub, stepcalc.N(1), stepcalc.N(2)), stepcalc.N(3))},
		{"8/2/2", stepcalc.OpOf(stepcalc.OpDiv,
			stepcalc.OpOf(stepcalc.OpDiv, stepcalc.N(8), stepcalc.N(2)), stepcalc.N(2))},
		{"1+2-3", stepcalc.OpOf(stepcalc.OpAdd,
			stepcalc.N(1), stepcalc.OpOf(stepcalc.OpSub, stepcalc.N(2), stepcalc.N(3)))},
		{"2*3+4*5", stepcalc.OpOf(stepcalc.OpAdd,
			stepcalc.OpOf(stepcalc.OpMul, stepcalc.N(2), stepcalc.N(3)),
			stepcalc.OpOf(stepcalc.OpMul, stepcalc.N(4), stepcalc.N(5)))},
		{"1-(2+3)", stepcalc.OpOf(stepcalc.OpSub,
			stepcalc.N(1), stepcalc.OpOf(stepcalc.OpAdd, stepcalc.N(2), stepcalc.N(3)))},
		{"2x", stepcalc.OpOf(stepcalc.OpMul, stepcalc.N(2), stepcalc.V('x'))},
		{"-(4)", stepcalc.OpOf(stepcalc.OpMul, stepcalc.N(-1), stepcalc.N(4))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := stepcalc.Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParse_RendersMinimalParentheses(t *testing.T) {
	for input, want := range map[string]string{
		"(1+2)*3":     "(1+2)*3",
		"1+(2*3)":     "1+2*3",
		"1-(2+3)":     "1-(2+3)",
		"(1-2)+3":     "1-2+3",
		"6/(2*3)":     "6/(2*3)",
		"(6/2)*3":     "6/2*3",
		"2*(3-4)":     "2*(3-4)",
		"(1/2)/(1/4)": "1/2/(1/4)",
		"6/-(2)":      "6/(-1*2)",
		"(2*3)/4":     "(2*3)/4",
		"(1+2)-3":     "(1+2)-3",
		"2*(3*4)":     "2*(3*4)",
		"1+(2+3)":     "1+(2+3)",
		"(2*3)*4":     "2*3*4",
		"2*(3/4)":     "2*3/4",
	} {
		n, err := stepcalc.Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, n.String(), input)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, input := range []string{
		"1+7*-4", "(3+4*8)*(2-1)", "1-(2+3)", "6/(2*3)", "1/2/(1/4)", "2*x", "-5",
		"(2*3)/4", "(1+2)-3", "2*(3*4)", "1+(2+3)", "2*3/4", "1+2-3", "2/3*4", "1-2+3",
	} {
		n, err := stepcalc.Parse(input)
		require.NoError(t, err, input)
		again, err := stepcalc.Parse(n.String())
		require.NoError(t, err, input)
		assert.True(t, n.Equal(again), "%s: %s reparsed as %s", input, n, again)
	}
}

func TestParse_InvalidExpression(t *testing.T) {
	for _, input := range []string{"()", "2()", "(+)", "*3", "1+*2", "--3", "(*)1"} {
		t.Run(input, func(t *testing.T) {
			_, err := stepcalc.Parse(input)
			assert.ErrorIs(t, err, stepcalc.ErrInvalidExpression)
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	_, err := stepcalc.Build(nil)
	assert.ErrorIs(t, err, stepcalc.ErrInvalidExpression)
}

func TestLaTeX(t *testing.T) {
	for input, want := range map[string]string{
		"1/2":     `\frac{1}{2}`,
		"(1+2)*3": `\left(1 + 2\right) \cdot 3`,
		"1-(2+3)": `1 - \left(2 + 3\right)`,
	} {
		n, err := stepcalc.Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, n.LaTeX(), input)
	}
}
