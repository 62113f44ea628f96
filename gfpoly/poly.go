// Package gfpoly implements polynomials over GF(p) as dense coefficient
// vectors: parsing and canonical formatting, the arithmetic operations
// polynomial-order and primitivity testing build on, and the lexicographic
// successor walk over monic polynomials of a fixed degree.
package gfpoly

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sp301415/primpoly/num"
)

// ErrRange is returned when a coefficient or parsed field is out of range
// (negative, or not a valid non-negative integer).
var ErrRange = errors.New("gfpoly: value out of range")

// Poly is a polynomial over GF(p), Coeffs[i] the coefficient of x^i. The
// slice is always trimmed so the leading coefficient is non-zero, unless
// the polynomial is the single coefficient 0 (degree 0).
type Poly struct {
	P      uint64
	Coeffs []uint64
}

func trim(c []uint64) []uint64 {
	i := len(c)
	for i > 1 && c[i-1] == 0 {
		i--
	}
	return c[:i]
}

// New builds a Poly from coefficients (index = exponent), reducing each
// modulo p and trimming the leading zeros.
func New(p uint64, coeffs []uint64) Poly {
	c := make([]uint64, len(coeffs))
	for i, v := range coeffs {
		c[i] = v % p
	}
	if len(c) == 0 {
		c = []uint64{0}
	}
	return Poly{P: p, Coeffs: trim(c)}
}

// Degree returns the highest index with a non-zero coefficient (0 for the
// zero polynomial).
func (f Poly) Degree() int { return len(f.Coeffs) - 1 }

// IsInteger reports whether f has degree 0.
func (f Poly) IsInteger() bool { return f.Degree() == 0 }

// Equal requires identical modulus, degree, and coefficients.
func (f Poly) Equal(g Poly) bool {
	if f.P != g.P || len(f.Coeffs) != len(g.Coeffs) {
		return false
	}
	for i := range f.Coeffs {
		if f.Coeffs[i] != g.Coeffs[i] {
			return false
		}
	}
	return true
}

// Add returns f + g mod p. f and g must share a modulus.
func (f Poly) Add(g Poly) Poly {
	n := len(f.Coeffs)
	if len(g.Coeffs) > n {
		n = len(g.Coeffs)
	}
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(f.Coeffs) {
			a = f.Coeffs[i]
		}
		if i < len(g.Coeffs) {
			b = g.Coeffs[i]
		}
		out[i] = num.AddMod(a, b, f.P)
	}
	return Poly{P: f.P, Coeffs: trim(out)}
}

// ScalarMul returns c*f mod p.
func (f Poly) ScalarMul(c uint64) Poly {
	out := make([]uint64, len(f.Coeffs))
	for i, a := range f.Coeffs {
		out[i] = num.MulMod(a, c%f.P, f.P)
	}
	return Poly{P: f.P, Coeffs: trim(out)}
}

// Eval computes f(x0) in GF(p) via Horner's rule.
func (f Poly) Eval(x0 uint64) uint64 {
	result := uint64(0)
	for i := f.Degree(); i >= 0; i-- {
		result = num.AddMod(num.MulMod(result, x0, f.P), f.Coeffs[i]%f.P, f.P)
	}
	return result
}

// HasLinearFactor reports whether f(a) = 0 for some a in [0, p).
func (f Poly) HasLinearFactor() bool {
	for a := uint64(0); a < f.P; a++ {
		if f.Eval(a) == 0 {
			return true
		}
	}
	return false
}

// String renders f in canonical form "a_n x^n + ... + a_1 x + a_0, p".
func (f Poly) String() string {
	var sb strings.Builder
	first := true
	for i := f.Degree(); i >= 0; i-- {
		c := f.Coeffs[i]
		if c == 0 && f.Degree() != 0 {
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
				fmt.Fprintf(&sb, "%d ", c)
			}
			sb.WriteString("x")
		default:
			if c != 1 {
				fmt.Fprintf(&sb, "%d ", c)
			}
			fmt.Fprintf(&sb, "x^%d", i)
		}
	}
	fmt.Fprintf(&sb, ", %d", f.P)
	return sb.String()
}

// Parse reads the canonical form "a_n x ^ n + ... + a_1 x + a_0, p". A
// missing trailing ", p" defaults p to 2. Negative coefficients are a range
// error.
func Parse(s string) (Poly, error) {
	p := uint64(2)
	body := s
	if idx := strings.LastIndex(s, ","); idx >= 0 {
		body = s[:idx]
		modStr := strings.TrimSpace(s[idx+1:])
		v, err := strconv.ParseUint(modStr, 10, 64)
		if err != nil {
			return Poly{}, fmt.Errorf("%w: bad modulus %q", ErrRange, modStr)
		}
		p = v
	}

	terms := strings.Split(body, "+")
	coeffs := map[int]uint64{}
	maxDeg := 0
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		coeff, deg, err := parseTerm(term)
		if err != nil {
			return Poly{}, err
		}
		coeffs[deg] = coeff
		if deg > maxDeg {
			maxDeg = deg
		}
	}

	out := make([]uint64, maxDeg+1)
	for deg, c := range coeffs {
		out[deg] = c % p
	}
	return Poly{P: p, Coeffs: trim(out)}, nil
}

// parseTerm parses a single additive term like "3 x ^ 4", "3 * x^4", "x",
// or "7". '*' is accepted as a multiplication operator between a
// coefficient and x and is otherwise ignored.
func parseTerm(term string) (coeff uint64, deg int, err error) {
	term = strings.ReplaceAll(term, "*", " ")
	if strings.HasPrefix(term, "-") {
		return 0, 0, fmt.Errorf("%w: negative coefficient in %q", ErrRange, term)
	}

	xIdx := strings.Index(term, "x")
	if xIdx < 0 {
		v, perr := strconv.ParseUint(strings.TrimSpace(term), 10, 64)
		if perr != nil {
			return 0, 0, fmt.Errorf("%w: bad coefficient %q", ErrRange, term)
		}
		return v, 0, nil
	}

	coeffPart := strings.TrimSpace(term[:xIdx])
	if coeffPart == "" {
		coeff = 1
	} else {
		v, perr := strconv.ParseUint(coeffPart, 10, 64)
		if perr != nil {
			return 0, 0, fmt.Errorf("%w: bad coefficient %q", ErrRange, coeffPart)
		}
		coeff = v
	}

	rest := strings.TrimSpace(term[xIdx+1:])
	if rest == "" {
		return coeff, 1, nil
	}
	rest = strings.TrimPrefix(rest, "^")
	rest = strings.TrimSpace(rest)
	d, perr := strconv.Atoi(rest)
	if perr != nil || d < 0 {
		return 0, 0, fmt.Errorf("%w: bad exponent in %q", ErrRange, term)
	}
	return coeff, d, nil
}
