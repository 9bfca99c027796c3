package stepcalc_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/stepcalc"
)

func TestPrimeFactors(t *testing.T) {
	tests := []struct {
		n    int64
		want []int64
	}{
		{12, []int64{2, 2, 3}},
		{-12, []int64{-1, 2, 2, 3}},
		{97, []int64{97}},
		{-1, []int64{-1}},
		{360, []int64{2, 2, 2, 3, 3, 5}},
		{2147483647, []int64{2147483647}},
		{9223372036854775783, []int64{9223372036854775783}},
		{998244359987710471, []int64{998244353, 1000000007}},
		{4611686014132420609, []int64{2147483647, 2147483647}},
		{-2 * 1000000007 * 1000000009, []int64{-1, 2, 1000000007, 1000000009}},
	}
	for _, tt := range tests {
		got, err := stepcalc.PrimeFactors(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "PrimeFactors(%d)", tt.n)
	}
}

func TestPrimeFactors_One(t *testing.T) {
	got, err := stepcalc.PrimeFactors(1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrimeFactors_MinInt64(t *testing.T) {
	got, err := stepcalc.PrimeFactors(math.MinInt64)
	require.NoError(t, err)
	require.Len(t, got, 64)
	assert.Equal(t, int64(-1), got[0])
	for _, f := range got[1:] {
		assert.Equal(t, int64(2), f)
	}
}

func TestPrimeFactors_Zero(t *testing.T) {
	_, err := stepcalc.PrimeFactors(0)
	assert.ErrorIs(t, err, stepcalc.ErrFactorZero)
}

func TestReduceFraction(t *testing.T) {
	tests := []struct {
		num, den         int64
		wantNum, wantDen int64
	}{
		{4, 6, 2, 3},
		{-4, 6, -2, 3},
		{4, -6, -2, 3},
		{-4, -6, 2, 3},
		{0, 5, 0, 1},
		{0, -5, 0, 1},
		{7, 7, 1, 1},
		{12, -4, -3, 1},
		{5, 3, 5, 3},
		{36, 48, 3, 4},
	}
	for _, tt := range tests {
		n, d := stepcalc.ReduceFraction(tt.num, tt.den)
		assert.Equal(t, tt.wantNum, n, "ReduceFraction(%d, %d) numerator", tt.num, tt.den)
		assert.Equal(t, tt.wantDen, d, "ReduceFraction(%d, %d) denominator", tt.num, tt.den)
	}
}

func TestReduceFraction_Idempotent(t *testing.T) {
	for a := int64(-30); a <= 30; a++ {
		for b := int64(-30); b <= 30; b++ {
			if b == 0 {
				continue
			}
			n, d := stepcalc.ReduceFraction(a, b)
			n2, d2 := stepcalc.ReduceFraction(n, d)
			if n != n2 || d != d2 {
				t.Fatalf("%d/%d: reduced to %d/%d then %d/%d", a, b, n, d, n2, d2)
			}
			if d <= 0 {
				t.Fatalf("%d/%d: denominator %d", a, b, d)
			}
		}
	}
}

func TestReduceFraction_ZeroDenominatorPanics(t *testing.T) {
	assert.Panics(t, func() { stepcalc.ReduceFraction(1, 0) })
}

func TestLeastCommonMultiple(t *testing.T) {
	assert.Equal(t, int64(12), stepcalc.LeastCommonMultiple(4, 6))
	assert.Equal(t, int64(3), stepcalc.LeastCommonMultiple(3, 1))
	assert.Equal(t, int64(3), stepcalc.LeastCommonMultiple(1, 3))
	assert.Equal(t, int64(6), stepcalc.LeastCommonMultiple(3, 6))
	assert.Equal(t, int64(-4), stepcalc.LeastCommonMultiple(-2, 4))

	for a := int64(-12); a <= 12; a++ {
		for b := int64(-12); b <= 12; b++ {
			if a == 0 || b == 0 {
				continue
			}
			m := stepcalc.LeastCommonMultiple(a, b)
			if m%a != 0 || m%b != 0 {
				t.Errorf("lcm(%d, %d) = %d is not a common multiple", a, b, m)
			}
		}
	}
}

func TestPrimeFactors_LargeOperandsAreFast(t *testing.T) {
	start := time.Now()
	for _, n := range []int64{
		9223372036854775783,
		-9223372036854775783,
		998244359987710471,
		4611686014132420609,
		math.MaxInt64,
	} {
		_, err := stepcalc.PrimeFactors(n)
		require.NoError(t, err)
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestReduceFraction_LargePrimeOverSmall(t *testing.T) {
	start := time.Now()
	n, d := stepcalc.ReduceFraction(9223372036854775783, 2)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, int64(9223372036854775783), n)
	assert.Equal(t, int64(2), d)

	n, d = stepcalc.ReduceFraction(2*998244353, -3*998244353)
	assert.Equal(t, int64(-2), n)
	assert.Equal(t, int64(3), d)
}
