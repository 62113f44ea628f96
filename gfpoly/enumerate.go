package gfpoly

// InitialTrialPoly returns x^n, the first monic polynomial of degree n over
// GF(p) visited by the successor enumeration.
func InitialTrialPoly(n int, p uint64) Poly {
	coeffs := make([]uint64, n+1)
	coeffs[n] = 1
	return Poly{P: p, Coeffs: coeffs}
}

// NextTrialPoly increments f as if its coefficients c0, c1, ..., c(n-1) were
// an n-digit little-endian radix-p integer, holding the leading c_n fixed at
// 1 (monic). This visits every monic polynomial of degree n over GF(p)
// exactly once. ok is false once the increment overflows c(n-1), meaning the
// enumeration (p^n monic polynomials) is exhausted.
func (f Poly) NextTrialPoly() (Poly, bool) {
	n := f.Degree()
	next := make([]uint64, n+1)
	copy(next, f.Coeffs)

	for i := 0; i < n; i++ {
		next[i]++
		if next[i] < f.P {
			return Poly{P: f.P, Coeffs: next}, true
		}
		next[i] = 0
	}
	return Poly{}, false
}
