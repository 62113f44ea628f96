package num_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp301415/primpoly/num"
)

func TestModP(t *testing.T) {
	v, err := num.ModP(-3, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 4, v)

	_, err = num.ModP(5, 0)
	require.ErrorIs(t, err, num.ErrModulus)
}

func TestAddMod(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("AddMod matches (a+b) mod n", prop.ForAll(
		func(a, b, n uint64) bool {
			if n == 0 {
				return true
			}
			a, b = a%n, b%n
			want := (a + b) % n
			return num.AddMod(a, b, n) == want
		},
		gen.UInt64Range(0, 1<<62),
		gen.UInt64Range(0, 1<<62),
		gen.UInt64Range(1, 1<<62),
	))

	properties.TestingRun(t)
}

func TestMulModOverflow(t *testing.T) {
	const n = uint64(18446744073709551557) // largest prime below 2^64
	a := n - 1
	b := n - 1
	// a*b overflows a uint64 directly; compute the expected value via
	// 128-bit-safe repeated addition semantics: (-1)*(-1) = 1 mod n.
	got := num.MulMod(a, b, n)
	assert.EqualValues(t, 1, got)
}

func TestPowerModKnownValues(t *testing.T) {
	got, err := num.PowerMod(2, 10, 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 24, got) // 1024 mod 1000

	_, err = num.PowerMod(0, 0, 5)
	require.ErrorIs(t, err, num.ErrDomain)
}

func TestInverseMod(t *testing.T) {
	inv, err := num.InverseMod(3, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 5, inv) // 3*5 = 15 = 1 mod 7

	got := num.MulMod(3, inv, 7)
	assert.EqualValues(t, 1, got)
}

type fakeFactorizer struct {
	primes map[uint64][]uint64
}

func (f fakeFactorizer) DistinctPrimeFactors(n uint64) ([]uint64, error) {
	return f.primes[n], nil
}

func TestIsPrimitiveRoot(t *testing.T) {
	fz := fakeFactorizer{primes: map[uint64][]uint64{
		6:  {2, 3}, // 7-1
		10: {2, 5}, // 11-1
	}}

	ok, err := num.IsPrimitiveRoot(fz, 3, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = num.IsPrimitiveRoot(fz, 2, 11)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = num.IsPrimitiveRoot(fz, 3, 11)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsPrimitiveRoot65003(t *testing.T) {
	// 65002 = 2 * 7 * 4643, all prime.
	fz := fakeFactorizer{primes: map[uint64][]uint64{
		65002: {2, 7, 4643},
	}}

	ok, err := num.IsPrimitiveRoot(fz, 5, 65003)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = num.IsPrimitiveRoot(fz, 8, 65003)
	require.NoError(t, err)
	assert.False(t, ok)
}
