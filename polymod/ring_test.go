package polymod_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp301415/primpoly/bigint"
	"github.com/sp301415/primpoly/gfpoly"
	"github.com/sp301415/primpoly/polymod"
)

func TestFromPolyReducesHighDegree(t *testing.T) {
	f, err := gfpoly.Parse("x^2 + 1, 5")
	require.NoError(t, err)
	r := polymod.NewRing(f)

	x3, err := gfpoly.Parse("x^3, 5")
	require.NoError(t, err)

	got := r.FromPoly(x3)
	assert.EqualValues(t, []uint64{0, 4}, got.Coeffs) // x^3 = x*x^2 = x*(-1) = 4x mod 5
}

func TestTimesX(t *testing.T) {
	f, err := gfpoly.Parse("x^2 + 1, 5")
	require.NoError(t, err)
	r := polymod.NewRing(f)

	one := r.FromPoly(gfpoly.New(5, []uint64{1}))
	x := r.TimesX(one)
	assert.EqualValues(t, []uint64{0, 1}, x.Coeffs)

	x2 := r.TimesX(x)
	assert.EqualValues(t, []uint64{4, 0}, x2.Coeffs) // x^2 = -1 = 4 mod 5
}

func TestMulMatchesTimesX(t *testing.T) {
	f, err := gfpoly.Parse("x^2 + 1, 5")
	require.NoError(t, err)
	r := polymod.NewRing(f)

	x := r.FromPoly(gfpoly.New(5, []uint64{0, 1}))
	x2 := r.Mul(x, x)
	assert.EqualValues(t, []uint64{4, 0}, x2.Coeffs)

	x3 := r.Mul(x2, x)
	assert.EqualValues(t, []uint64{0, 4}, x3.Coeffs)
}

func TestSquareMatchesMul(t *testing.T) {
	f, err := gfpoly.Parse("x^4 + x^2 + 2 x + 3, 5")
	require.NoError(t, err)
	r := polymod.NewRing(f)

	g := r.FromPoly(gfpoly.New(5, []uint64{2, 1, 3, 4}))
	assert.EqualValues(t, r.Mul(g, g).Coeffs, r.Square(g).Coeffs)
}

func TestPowMatchesRepeatedMul(t *testing.T) {
	f, err := gfpoly.Parse("x^2 + 1, 5")
	require.NoError(t, err)
	r := polymod.NewRing(f)

	x := r.FromPoly(gfpoly.New(5, []uint64{0, 1}))
	got := r.Pow(x, bigint.FromUint64(3))
	assert.EqualValues(t, []uint64{0, 4}, got.Coeffs)

	gotZero := r.Pow(x, bigint.Zero())
	assert.EqualValues(t, r.One().Coeffs, gotZero.Coeffs)
}

func TestAccessorsAndString(t *testing.T) {
	f, err := gfpoly.Parse("x^2 + 1, 5")
	require.NoError(t, err)
	r := polymod.NewRing(f)

	assert.True(t, r.F().Equal(f))
	assert.EqualValues(t, 5, r.P())

	x := r.FromPoly(gfpoly.New(5, []uint64{0, 1}))
	assert.Equal(t, "x, 5", r.String(x))
}
