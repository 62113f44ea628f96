package polymod

import (
	"github.com/sp301415/primpoly/bigint"
	"github.com/sp301415/primpoly/num"
)

// TimesX returns g shifted up by one degree, reducing the single overflow
// term against f if the shift would reach degree n.
func (r *Ring) TimesX(g Elem) Elem {
	return Elem{Coeffs: r.timesXRaw(g.Coeffs)}
}

// Add returns g + h mod p; no reduction is needed since both operands
// already have degree < n.
func (r *Ring) Add(g, h Elem) Elem {
	n := r.n
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = num.AddMod(g.Coeffs[i], h.Coeffs[i], r.p)
	}
	return Elem{Coeffs: out}
}

// Mul returns g*h mod f: form the length-(2n-1) convolution of g and h,
// then reduce every term of degree >= n against the precomputed table
// x^j mod f.
func (r *Ring) Mul(g, h Elem) Elem {
	n := r.n
	p := r.p

	convLen := 2*n - 1
	if convLen < 1 {
		convLen = 1
	}
	conv := make([]uint64, convLen)
	for i := 0; i < n; i++ {
		if g.Coeffs[i] == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if h.Coeffs[j] == 0 {
				continue
			}
			conv[i+j] = num.AddMod(conv[i+j], num.MulMod(g.Coeffs[i], h.Coeffs[j], p), p)
		}
	}
	return r.reduceConvolution(conv)
}

// Square returns g*g mod f. The convolution is symmetric in g's two copies,
// but we compute it with the same general routine as Mul for clarity.
func (r *Ring) Square(g Elem) Elem {
	return r.Mul(g, g)
}

// reduceConvolution folds a length-(2n-1) convolution vector down to a
// degree-<n residue using the precomputed x^j mod f rows.
func (r *Ring) reduceConvolution(conv []uint64) Elem {
	n := r.n
	p := r.p

	out := make([]uint64, n)
	copy(out, conv[:min(n, len(conv))])

	for k := n; k < len(conv); k++ {
		c := conv[k]
		if c == 0 {
			continue
		}
		row := r.reduceTable[k-n]
		for i := 0; i < n; i++ {
			out[i] = num.AddMod(out[i], num.MulMod(c, row[i], p), p)
		}
	}
	return Elem{Coeffs: out}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// One returns the multiplicative identity of the ring.
func (r *Ring) One() Elem {
	out := make([]uint64, r.n)
	if r.n > 0 {
		out[0] = 1 % r.p
	}
	return Elem{Coeffs: out}
}

// Pow returns g^k mod f via left-to-right binary exponentiation: starting
// from bit CeilLog2(k), which is at or above the top set bit of k, square
// the accumulator at every step and multiply by g whenever that bit is set.
func (r *Ring) Pow(g Elem, k bigint.Int) Elem {
	result := r.One()
	if k.IsZero() {
		return result
	}
	for i := k.CeilLog2(); i >= 0; i-- {
		result = r.Square(result)
		if k.Bit(i) == 1 {
			result = r.Mul(result, g)
		}
	}
	return result
}
