// Package polyorder decides whether a monic polynomial over GF(p) is
// primitive: irreducible via the nullity of the Berlekamp Q-I matrix, then
// primitive via the multiplicative order of x modulo f.
package polyorder

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/sp301415/primpoly/bigint"
	"github.com/sp301415/primpoly/gfpoly"
	"github.com/sp301415/primpoly/num"
	"github.com/sp301415/primpoly/polymod"
)

// QMinusI forms the n x n Berlekamp matrix Q - I over GF(p) for monic f of
// degree n: row i of Q is the coefficient vector of x^(p*i) mod f.
func QMinusI(f gfpoly.Poly) [][]uint64 {
	n := f.Degree()
	p := f.P
	r := polymod.NewRing(f)
	x := r.FromPoly(gfpoly.New(p, []uint64{0, 1}))

	rows := make([][]uint64, n)
	for i := 0; i < n; i++ {
		exp := bigint.FromUint64(p).MulDigit(uint64(i))
		row := r.Pow(x, exp).Coeffs

		out := make([]uint64, n)
		copy(out, row)
		out[i] = (out[i] + p - 1) % p
		rows[i] = out
	}
	return rows
}

// Nullity reduces the n x n matrix m over GF(p) to row-echelon form by
// Gaussian elimination, normalizing each pivot with num.InverseMod, and
// returns n - rank. Columns already claimed as pivots are tracked in a
// bitset rather than a second []bool, and the final nullity is read
// straight from the bitset's unset-bit count.
func Nullity(m [][]uint64, p uint64) int {
	n := len(m)
	a := make([][]uint64, n)
	for i, row := range m {
		a[i] = append([]uint64(nil), row...)
	}

	pivotCols := bitset.New(uint(n))
	rank := 0
	for col := 0; col < n && rank < n; col++ {
		pivotRow := -1
		for row := rank; row < n; row++ {
			if a[row][col] != 0 {
				pivotRow = row
				break
			}
		}
		if pivotRow == -1 {
			continue
		}
		a[rank], a[pivotRow] = a[pivotRow], a[rank]

		inv, err := num.InverseMod(a[rank][col], p)
		if err != nil {
			continue
		}
		for j := col; j < n; j++ {
			a[rank][j] = num.MulMod(a[rank][j], inv, p)
		}
		for row := 0; row < n; row++ {
			if row == rank || a[row][col] == 0 {
				continue
			}
			factor := a[row][col]
			for j := col; j < n; j++ {
				sub := num.MulMod(factor, a[rank][j], p)
				a[row][j] = (a[row][j] + p - sub) % p
			}
		}
		pivotCols.Set(uint(col))
		rank++
	}
	return n - int(pivotCols.Count())
}

// IsIrreducible reports whether f has exactly one irreducible factor over
// GF(p), i.e. nullity(Q - I) == 1.
func IsIrreducible(f gfpoly.Poly) bool {
	return Nullity(QMinusI(f), f.P) == 1
}
