package bigint_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp301415/primpoly/bigint"
)

func TestFromUint64RoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("FromUint64/Uint64 round-trips", prop.ForAll(
		func(v uint64) bool {
			n := bigint.FromUint64(v)
			got, err := n.Uint64()
			return err == nil && got == v
		},
		gen.UInt64Range(0, 1<<62),
	))

	properties.TestingRun(t)
}

func TestDecimalStringRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("parse(format(N)) == N", prop.ForAll(
		func(v uint64) bool {
			n := bigint.FromUint64(v)
			s := n.String()
			m, err := bigint.FromDecimalString(s)
			return err == nil && m.Cmp(n) == 0
		},
		gen.UInt64Range(0, 1<<62),
	))

	properties.TestingRun(t)
}

func TestArithmeticLaws(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("(a+b)-b == a", prop.ForAll(
		func(a, b uint64) bool {
			A, B := bigint.FromUint64(a), bigint.FromUint64(b)
			sum := A.Add(B)
			back, err := sum.Sub(B)
			return err == nil && back.Cmp(A) == 0
		},
		gen.UInt64Range(0, 1<<40),
		gen.UInt64Range(0, 1<<40),
	))

	properties.Property("(a*b)/b == a when b != 0", prop.ForAll(
		func(a, b uint64) bool {
			if b == 0 {
				return true
			}
			A, B := bigint.FromUint64(a), bigint.FromUint64(b)
			prod := A.Mul(B)
			q, r, err := prod.DivMod(B)
			return err == nil && q.Cmp(A) == 0 && r.IsZero()
		},
		gen.UInt64Range(0, 1<<32),
		gen.UInt64Range(1, 1<<20),
	))

	properties.Property("(a*b+rem) == ((a*b+rem)/b)*b + ((a*b+rem)%b)", prop.ForAll(
		func(a, b, rem uint64) bool {
			if b == 0 {
				return true
			}
			rem %= b
			A, B, R := bigint.FromUint64(a), bigint.FromUint64(b), bigint.FromUint64(rem)
			lhs := A.Mul(B).Add(R)
			q, r, err := lhs.DivMod(B)
			if err != nil {
				return false
			}
			rhs := q.Mul(B).Add(r)
			return lhs.Cmp(rhs) == 0 && r.Cmp(R) == 0
		},
		gen.UInt64Range(0, 1<<32),
		gen.UInt64Range(1, 1<<20),
		gen.UInt64Range(0, 1<<20),
	))

	properties.TestingRun(t)
}

func TestBaseIndependence(t *testing.T) {
	s := "123456789012345678901234567890"
	radices := []uint64{10, 1_000, 65536, 1_000_000_000}

	var values []string
	for _, r := range radices {
		bigint.SetRadix(r)
		n, err := bigint.FromDecimalString(s)
		require.NoError(t, err)
		values = append(values, n.String())
	}
	bigint.SetRadix(1_000_000_000)

	for _, v := range values {
		assert.Equal(t, s, v)
	}
}

func TestDivByZero(t *testing.T) {
	a := bigint.FromUint64(10)
	_, _, err := a.DivMod(bigint.Zero())
	require.ErrorIs(t, err, bigint.ErrDivByZero)
}

func TestSubUnderflow(t *testing.T) {
	a := bigint.FromUint64(1)
	b := bigint.FromUint64(2)
	_, err := a.Sub(b)
	require.ErrorIs(t, err, bigint.ErrUnderflow)
}

func TestDecZeroUnderflow(t *testing.T) {
	_, err := bigint.Zero().Dec()
	require.ErrorIs(t, err, bigint.ErrUnderflow)
}

func TestUint64Overflow(t *testing.T) {
	huge, err := bigint.FromDecimalString("123456789012345678901234567890")
	require.NoError(t, err)
	_, err = huge.Uint64()
	require.ErrorIs(t, err, bigint.ErrOverflow)
}

func TestBitAndCeilLog2(t *testing.T) {
	n := bigint.FromUint64(13) // 1101
	assert.Equal(t, uint64(1), n.Bit(0))
	assert.Equal(t, uint64(0), n.Bit(1))
	assert.Equal(t, uint64(1), n.Bit(2))
	assert.Equal(t, uint64(1), n.Bit(3))
	assert.Equal(t, uint64(0), n.Bit(4))
	assert.Equal(t, 4, n.CeilLog2())

	assert.Equal(t, 0, bigint.Zero().CeilLog2())
	assert.Equal(t, 3, bigint.FromUint64(8).CeilLog2()) // exact power of two
}

func TestPow(t *testing.T) {
	got := bigint.Pow(2, 64)
	want, err := bigint.FromDecimalString("18446744073709551616")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(want))
}

func TestIncDec(t *testing.T) {
	n := bigint.FromUint64(9)
	n = n.Inc()
	assert.Equal(t, "10", n.String())
	n, err := n.Dec()
	require.NoError(t, err)
	assert.Equal(t, "9", n.String())
}

func TestFromDecimalStringRejectsGarbage(t *testing.T) {
	_, err := bigint.FromDecimalString("12a3")
	require.ErrorIs(t, err, bigint.ErrRange)
}
