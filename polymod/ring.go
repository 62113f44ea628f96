// Package polymod implements the residue ring GF(p)[x]/(f) for a monic
// modulus polynomial f of degree n: a modulus-owning Ring type, a
// coefficient-vector Elem value type, and a reduction table of x^j mod f
// (for j = n .. 2n-2) built once at construction so every later reduction
// is a table lookup plus a linear combination instead of a fresh long
// division.
package polymod

import (
	"strconv"
	"strings"

	"github.com/sp301415/primpoly/gfpoly"
	"github.com/sp301415/primpoly/num"
)

// Ring is GF(p)[x]/(f) for a fixed monic f of degree n.
type Ring struct {
	f Poly
	p uint64
	n int

	// reduceTable[j-n] = coefficient vector of x^j mod f, for j = n..2n-2.
	reduceTable [][]uint64
}

// Poly is an alias kept local so Ring's field doc reads naturally; it is
// exactly gfpoly.Poly.
type Poly = gfpoly.Poly

// Elem is an element of the ring: a coefficient vector of degree < n,
// always fully reduced modulo f.
type Elem struct {
	Coeffs []uint64
}

// NewRing builds the residue ring for monic f, precomputing x^j mod f for
// j = n, ..., 2n-2 so Mul/Square can reduce a length-(2n-1) convolution
// without repeated long division.
func NewRing(f Poly) *Ring {
	n := f.Degree()
	p := f.P

	r := &Ring{f: f, p: p, n: n}

	if n == 0 {
		return r
	}

	// x^n mod f = -sum_{i<n} a_i x^i (f is monic), a_i = f.Coeffs[i].
	xn := make([]uint64, n)
	for i := 0; i < n; i++ {
		xn[i] = (p - f.Coeffs[i]%p) % p
	}

	table := make([][]uint64, n-1) // j = n .. 2n-2 is n-1 entries
	cur := xn
	if n-1 > 0 {
		table[0] = append([]uint64(nil), xn...)
	}
	for j := n + 1; j <= 2*n-2; j++ {
		cur = r.timesXRaw(cur)
		table[j-n] = cur
	}
	r.reduceTable = table
	return r
}

// F returns the modulus polynomial.
func (r *Ring) F() Poly { return r.f }

// P returns the field characteristic.
func (r *Ring) P() uint64 { return r.p }

// timesXRaw multiplies a degree-<n coefficient vector by x and reduces the
// overflow term directly against f, without the reduction table; NewRing
// uses it to build reduceTable, and TimesX uses it as is.
func (r *Ring) timesXRaw(c []uint64) []uint64 {
	n := r.n
	overflow := c[n-1]
	out := make([]uint64, n)
	out[0] = 0
	for i := 1; i < n; i++ {
		out[i] = c[i-1]
	}
	if overflow == 0 {
		return out
	}
	// subtract overflow * f, i.e. add overflow * (-f) = overflow * xn row,
	// where xn = x^n mod f is table[0] once it exists; during its own
	// construction we derive it directly from f.
	for i := 0; i < n; i++ {
		contribution := num.MulMod(overflow, (r.p-r.f.Coeffs[i]%r.p)%r.p, r.p)
		out[i] = num.AddMod(out[i], contribution, r.p)
	}
	return out
}

// FromPoly reduces g modulo f by plain long division in GF(p)[x].
func (r *Ring) FromPoly(g Poly) Elem {
	n := r.n
	rem := make([]uint64, degreeOf(g)+1)
	copy(rem, g.Coeffs)

	for len(rem) > n && !allZero(rem) {
		deg := len(rem) - 1
		lead := rem[deg]
		if lead != 0 {
			shift := deg - n
			for i := 0; i <= n; i++ {
				contribution := num.MulMod(lead, r.f.Coeffs[i]%r.p, r.p)
				rem[shift+i] = (rem[shift+i] + r.p - contribution) % r.p
			}
		}
		rem = rem[:deg]
	}

	out := make([]uint64, n)
	copy(out, rem)
	return Elem{Coeffs: out}
}

func degreeOf(g Poly) int {
	d := g.Degree()
	if d < 0 {
		return 0
	}
	return d
}

func allZero(c []uint64) bool {
	for _, v := range c {
		if v != 0 {
			return false
		}
	}
	return true
}

// String renders g as a gfpoly-style residue string.
func (r *Ring) String(g Elem) string {
	p := r.p
	var sb strings.Builder
	first := true
	for i := len(g.Coeffs) - 1; i >= 0; i-- {
		c := g.Coeffs[i]
		if c == 0 {
			continue
		}
		if !first {
			sb.WriteString(" + ")
		}
		first = false
		switch i {
		case 0:
			sb.WriteString(strconv.FormatUint(c, 10))
		case 1:
			if c != 1 {
				sb.WriteString(strconv.FormatUint(c, 10))
				sb.WriteString(" ")
			}
			sb.WriteString("x")
		default:
			if c != 1 {
				sb.WriteString(strconv.FormatUint(c, 10))
				sb.WriteString(" ")
			}
			sb.WriteString("x^")
			sb.WriteString(strconv.Itoa(i))
		}
	}
	if first {
		sb.WriteString("0")
	}
	sb.WriteString(", ")
	sb.WriteString(strconv.FormatUint(p, 10))
	return sb.String()
}
