package stepcalc

import (
	"errors"
	"math/big"
	"math/bits"
	"sort"
)

// ============================================================
// Rational arithmetic
// ============================================================

var ErrFactorZero = errors.New("stepcalc: zero has no prime factorization")

// trialLimit bounds trial division. A cofactor left over after it is either
// prime or split with Pollard's rho, so factoring any int64 stays fast.
const trialLimit = 1 << 16

// PrimeFactors returns the prime factors of n in non-decreasing order,
// repeats included. A negative n gets a leading -1. PrimeFactors(1) is empty.
func PrimeFactors(n int64) ([]int64, error) {
	if n == 0 {
		return nil, ErrFactorZero
	}
	var factors []int64
	if n < 0 {
		factors = append(factors, -1)
	}
	m := magnitude(n)
	for p := uint64(2); p < trialLimit && p*p <= m; p++ {
		for m%p == 0 {
			factors = append(factors, int64(p))
			m /= p
		}
	}
	if m > 1 {
		large := splitFactor(m)
		sort.Slice(large, func(i, j int) bool { return large[i] < large[j] })
		for _, p := range large {
			factors = append(factors, int64(p))
		}
	}
	return factors, nil
}

func magnitude(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

// splitFactor fully factors m, which has no prime factor below trialLimit.
func splitFactor(m uint64) []uint64 {
	if m < trialLimit*trialLimit || isPrime(m) {
		return []uint64{m}
	}
	d := pollardRho(m)
	return append(splitFactor(d), splitFactor(m/d)...)
}

// isPrime is exact for every uint64: ProbablyPrime is deterministic below 2^64.
func isPrime(m uint64) bool {
	return new(big.Int).SetUint64(m).ProbablyPrime(0)
}

// pollardRho returns a non-trivial divisor of the odd composite m.
func pollardRho(m uint64) uint64 {
	for c := uint64(1); ; c++ {
		f := func(v uint64) uint64 {
			hi, lo := bits.Mul64(v, v)
			v = bits.Rem64(hi, lo, m) + c
			if v >= m {
				v -= m
			}
			return v
		}
		x, y, d := uint64(2), uint64(2), uint64(1)
		for d == 1 {
			x = f(x)
			y = f(f(y))
			if x > y {
				d = gcd(x-y, m)
			} else {
				d = gcd(y-x, m)
			}
		}
		if d != m {
			return d
		}
	}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ReduceFraction cancels every prime factor shared by num and den and moves
// the sign to the numerator. Only the operand of smaller magnitude is
// factored; each of its primes is cancelled while it still divides the
// other. It panics if den is zero.
func ReduceFraction(num, den int64) (int64, int64) {
	if den == 0 {
		panic("stepcalc: denominator is zero")
	}
	if num == 0 {
		return 0, 1
	}
	small := num
	if magnitude(den) < magnitude(num) {
		small = den
	}
	factors, _ := PrimeFactors(small)
	for _, p := range factors {
		// the sign is settled below
		if p == -1 {
			continue
		}
		if num%p == 0 && den%p == 0 {
			num /= p
			den /= p
		}
	}
	if den < 0 {
		num, den = -num, -den
	}
	return num, den
}

// LeastCommonMultiple returns a multiple of both a and b carrying a's sign.
// b must be non-zero.
func LeastCommonMultiple(a, b int64) int64 {
	_, rb := ReduceFraction(a, b)
	return a * rb
}
