// Package num implements the full set of modular-arithmetic primitives this
// module needs over both machine integers and bigint.Int: residue reduction
// of signed inputs, overflow-safe modular add/double/multiply/power,
// Euclidean gcd, brute-force modular inverse, a primitive-root-of-prime
// test, and a uniform random integer generator.
package num

import (
	"errors"
	"fmt"

	"github.com/sp301415/primpoly/bigint"
	"github.com/sp301415/primpoly/csprng"
)

var (
	// ErrModulus is returned when a modulus is out of range for the
	// operation requested.
	ErrModulus = errors.New("num: invalid modulus")
	// ErrDomain is returned by PowerMod(0, 0, n): 0^0 is undefined here.
	ErrDomain = errors.New("num: 0^0 is undefined")
	// ErrNoInverse is returned when no modular inverse exists.
	ErrNoInverse = errors.New("num: no modular inverse exists")
)

// ModP reduces a signed v into [0, p): ((v mod p) + p) mod p. Requires p >= 1.
func ModP(v int64, p int64) (int64, error) {
	if p < 1 {
		return 0, fmt.Errorf("%w: p = %d", ErrModulus, p)
	}
	r := v % p
	if r < 0 {
		r += p
	}
	return r, nil
}

// GCD returns the Euclidean greatest common divisor of a and b.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// GCDBig is GCD over bigint.Int.
func GCDBig(a, b bigint.Int) bigint.Int {
	for !b.IsZero() {
		_, r, _ := a.DivMod(b)
		a, b = b, r
	}
	return a
}

// AddMod returns (a + b) mod n without risking overflow when a, b approach
// the machine word maximum: if a >= n-b, a+b would wrap, so we instead
// return a - (n - b), which is congruent and safe.
func AddMod(a, b, n uint64) uint64 {
	if a >= n-b {
		return a - (n - b)
	}
	return a + b
}

// DoubleMod returns 2*a mod n.
func DoubleMod(a, n uint64) uint64 {
	return AddMod(a, a, n)
}

// MulMod returns a*b mod n using Russian-peasant doubling: for each bit of
// b, lowest first, the running total gains a mod n via AddMod when that bit
// is set, and a is then doubled mod n via DoubleMod, so no intermediate
// value ever risks overflowing a machine word.
func MulMod(a, b, n uint64) uint64 {
	a %= n
	result := uint64(0)
	for b > 0 {
		if b&1 == 1 {
			result = AddMod(result, a, n)
		}
		a = DoubleMod(a, n)
		b >>= 1
	}
	return result
}

// PowerMod returns a^k mod n via right-to-left binary exponentiation (lowest
// bit of k first) built on MulMod. 0^0 is a domain error.
func PowerMod(a, k, n uint64) (uint64, error) {
	if a == 0 && k == 0 {
		return 0, ErrDomain
	}
	result := uint64(1) % n
	a %= n
	for k > 0 {
		if k&1 == 1 {
			result = MulMod(result, a, n)
		}
		a = MulMod(a, a, n)
		k >>= 1
	}
	return result, nil
}

// InverseMod searches i in [1, p) for i*a === 1 (mod p). A reference
// implementation prioritizing correctness over speed.
func InverseMod(a, p uint64) (uint64, error) {
	if p < 2 {
		return 0, fmt.Errorf("%w: p = %d", ErrModulus, p)
	}
	a %= p
	for i := uint64(1); i < p; i++ {
		if MulMod(i, a, p) == 1 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: a = %d, p = %d", ErrNoInverse, a, p)
}

// uniform is the package-level source backing UniformRandomIntegers.
var uniform = csprng.NewUniformSampler()

// UniformRandomIntegers returns a value sampled uniformly from [0, n).
// Successive calls are not reproducible across runs; only uniformity over
// the range is guaranteed.
func UniformRandomIntegers(n uint64) uint64 {
	return uniform.SampleN(n)
}

// UniformRandomBigInt is UniformRandomIntegers for n too large to fit a
// machine word.
func UniformRandomBigInt(n bigint.Int) bigint.Int {
	return uniform.SampleBigInt(n)
}

// PowerModBig is PowerMod over bigint.Int: a^k mod n via right-to-left
// binary exponentiation, reducing modulo n after every multiplication.
func PowerModBig(a, k, n bigint.Int) (bigint.Int, error) {
	if a.IsZero() && k.IsZero() {
		return bigint.Zero(), ErrDomain
	}
	_, a, _ = a.DivMod(n)
	result := bigint.FromUint64(1)
	if n.Cmp(bigint.FromUint64(1)) == 0 {
		result = bigint.Zero()
	}
	for i := 0; i <= k.CeilLog2(); i++ {
		if k.Bit(i) == 1 {
			result = result.Mul(a)
			_, result, _ = result.DivMod(n)
		}
		a = a.Mul(a)
		_, a, _ = a.DivMod(n)
	}
	return result, nil
}

// Factorizer is the minimal view of package factor that IsPrimitiveRoot
// needs, expressed as an interface so num does not import factor directly
// (factor in turn depends on num's GCDBig, PowerModBig and
// UniformRandomBigInt).
type Factorizer interface {
	DistinctPrimeFactors(n uint64) ([]uint64, error)
}

// IsPrimitiveRoot reports whether a's multiplicative order modulo p equals
// p-1, by factoring p-1 once and checking a^((p-1)/q) != 1 for every
// distinct prime q dividing p-1.
func IsPrimitiveRoot(f Factorizer, a, p uint64) (bool, error) {
	if p < 2 {
		return false, fmt.Errorf("%w: p = %d", ErrModulus, p)
	}
	primes, err := f.DistinctPrimeFactors(p - 1)
	if err != nil {
		return false, err
	}
	for _, q := range primes {
		e, err := PowerMod(a, (p-1)/q, p)
		if err != nil {
			return false, err
		}
		if e == 1 {
			return false, nil
		}
	}
	return true, nil
}
