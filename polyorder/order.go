package polyorder

import (
	"fmt"

	"github.com/sp301415/primpoly/bigint"
	"github.com/sp301415/primpoly/factor"
	"github.com/sp301415/primpoly/gfpoly"
	"github.com/sp301415/primpoly/polymod"
)

// Order owns a monic polynomial f over GF(p), the factorization of
// r = (p^n - 1)/(p - 1), and the residue ring used to test x's order.
// ResetPolynomial discards and rebuilds all of this when f changes, which
// lets a caller walking gfpoly's successor enumeration reuse one Order
// across many trial polynomials.
type Order struct {
	f    gfpoly.Poly
	ring *polymod.Ring
	r    bigint.Int
	fact factor.Factorization
}

// NewOrder builds an Order for f.
func NewOrder(f gfpoly.Poly) (*Order, error) {
	o := &Order{}
	if err := o.ResetPolynomial(f); err != nil {
		return nil, err
	}
	return o, nil
}

// ResetPolynomial discards cached state and re-initializes it for f.
func (o *Order) ResetPolynomial(f gfpoly.Poly) error {
	n := f.Degree()
	p := f.P
	if p < 2 {
		return fmt.Errorf("polyorder: invalid modulus p = %d", p)
	}

	pn := bigint.Pow(p, uint64(n))
	pnMinus1, err := pn.Dec()
	if err != nil {
		return err
	}
	pMinus1 := bigint.FromUint64(p - 1)
	r, rem, err := pnMinus1.DivMod(pMinus1)
	if err != nil {
		return err
	}
	if !rem.IsZero() {
		return fmt.Errorf("polyorder: (p^n-1) not divisible by (p-1)")
	}

	fz, err := factor.Factor(r, factor.Automatic, 0, 0)
	if err != nil {
		return err
	}

	o.f = f
	o.ring = polymod.NewRing(f)
	o.r = r
	o.fact = fz
	return nil
}

// IsPrimitive decides whether f is primitive: irreducible, then every
// x^(r/q) != 1 for the distinct primes q | r, and finally x^r equals
// (-1)^n * a0 in GF(p), where a0 is f's constant term.
func (o *Order) IsPrimitive() (bool, error) {
	if !IsIrreducible(o.f) {
		return false, nil
	}

	p := o.f.P
	n := o.f.Degree()
	x := o.ring.FromPoly(gfpoly.New(p, []uint64{0, 1}))

	for _, pf := range o.fact.Factors {
		q := pf.Prime
		quotient, rem, err := o.r.DivMod(q)
		if err != nil {
			return false, err
		}
		if !rem.IsZero() {
			return false, fmt.Errorf("polyorder: factorization of r is inconsistent")
		}
		residue := o.ring.Pow(x, quotient)
		if isOneElem(residue, p) {
			return false, nil
		}
	}

	xr := o.ring.Pow(x, o.r)

	a0 := o.f.Coeffs[0] % p
	if n%2 != 0 && a0 != 0 {
		a0 = p - a0
	}
	expected := make([]uint64, n)
	expected[0] = a0

	return equalCoeffs(xr.Coeffs, expected), nil
}

func isOneElem(e polymod.Elem, p uint64) bool {
	if len(e.Coeffs) == 0 {
		return false
	}
	if e.Coeffs[0]%p != 1 {
		return false
	}
	for _, c := range e.Coeffs[1:] {
		if c != 0 {
			return false
		}
	}
	return true
}

func equalCoeffs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CountPrimitivePolynomials returns phi(p^n - 1) / n, the number of
// primitive polynomials of degree n over GF(p).
func CountPrimitivePolynomials(p uint64, n int) (bigint.Int, error) {
	pn := bigint.Pow(p, uint64(n))
	m, err := pn.Dec()
	if err != nil {
		return bigint.Int{}, err
	}

	fz, err := factor.Factor(m, factor.Automatic, p, uint64(n))
	if err != nil {
		return bigint.Int{}, err
	}

	phi := bigint.FromUint64(1)
	for _, pf := range fz.Factors {
		qMinus1, err := pf.Prime.Dec()
		if err != nil {
			return bigint.Int{}, err
		}
		phi = phi.Mul(powBigInt(pf.Prime, pf.Mult-1)).Mul(qMinus1)
	}

	nBig := bigint.FromUint64(uint64(n))
	count, _, err := phi.DivMod(nBig)
	if err != nil {
		return bigint.Int{}, err
	}
	return count, nil
}

// powBigInt returns base^exp via repeated squaring, with no modulus.
func powBigInt(base bigint.Int, exp int) bigint.Int {
	result := bigint.FromUint64(1)
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(b)
		}
		b = b.Mul(b)
		exp >>= 1
	}
	return result
}
