package factor

import (
	"github.com/sp301415/primpoly/bigint"
	"github.com/sp301415/primpoly/num"
)

// pollardRhoMaxCycles bounds a single Brent-rho run: past this many gcd
// rounds without finding a nontrivial splitter, the run gives up rather
// than spin forever on a pathological c.
const pollardRhoMaxCycles = 1 << 20

// pollardRhoBatch is Brent's "m" constant: the number of squarings batched
// between gcd computations.
const pollardRhoBatch = 128

// pollardRho fully factors f.remaining using Brent's variant of Pollard's
// rho with additive constant c, recursing on any composite splitter it
// finds. It reports false, leaving f.remaining and f.Factors untouched by
// the caller's bookkeeping (Factor resets both before trying another c),
// if any single rho run exhausts pollardRhoMaxCycles without splitting.
func (f *Factorization) pollardRho(c bigint.Int) bool {
	if f.remaining.Cmp(big1) == 0 {
		return true
	}
	factors, ok := f.rhoSplit(f.remaining, c)
	if !ok {
		return false
	}
	f.Factors = append(f.Factors, factors...)
	f.remaining = big1
	return true
}

// rhoSplit recursively factors n into primes, short-circuiting on n already
// prime and otherwise splitting n = d * (n/d) via brentRho and recursing on
// both halves.
func (f *Factorization) rhoSplit(n, c bigint.Int) ([]PrimeFactor, bool) {
	if n.Cmp(big1) == 0 {
		return nil, true
	}
	f.Stats.PrimalityTests++
	if IsAlmostSurelyPrime(n) {
		return []PrimeFactor{{Prime: n, Mult: 1}}, true
	}

	d, ok := brentRho(n, c, &f.Stats)
	if !ok {
		return nil, false
	}

	left, ok := f.rhoSplit(d, c)
	if !ok {
		return nil, false
	}
	cofactor, _, _ := n.DivMod(d)
	right, ok := f.rhoSplit(cofactor, c)
	if !ok {
		return nil, false
	}
	return append(left, right...), true
}

// brentRho searches for a single nontrivial factor of the composite n,
// following Brent's improvement of Pollard's rho: advance the tortoise in
// power-of-two jumps, batch pollardRhoBatch hare steps between each gcd so
// the gcd (the expensive step) runs far less often than the pseudo-random
// walk itself.
func brentRho(n, c bigint.Int, stats *Stats) (bigint.Int, bool) {
	if rem := modOf(n, big2); rem.IsZero() {
		return big2, true
	}

	y := big2
	r := uint64(1)
	d := big1
	var x, ys bigint.Int

	cycles := 0
	for d.Cmp(big1) == 0 {
		x = y
		for i := uint64(0); i < r; i++ {
			y = rhoStep(y, c, n)
		}

		q := big1
		k := uint64(0)
		for k < r && d.Cmp(big1) == 0 {
			ys = y
			batch := uint64(pollardRhoBatch)
			if rem := r - k; rem < batch {
				batch = rem
			}
			for i := uint64(0); i < batch; i++ {
				y = rhoStep(y, c, n)
				q = modOf(q.Mul(absDiff(x, y)), n)
				stats.Squarings++
			}
			d = num.GCDBig(q, n)
			stats.GCDs++
			k += batch

			cycles++
			if cycles > pollardRhoMaxCycles {
				return bigint.Zero(), false
			}
		}
		r *= 2
	}

	if d.Cmp(n) == 0 {
		for {
			ys = rhoStep(ys, c, n)
			d = num.GCDBig(absDiff(x, ys), n)
			stats.GCDs++
			if d.Cmp(big1) != 0 {
				break
			}
			cycles++
			if cycles > pollardRhoMaxCycles {
				return bigint.Zero(), false
			}
		}
	}

	if d.Cmp(n) == 0 || d.Cmp(big1) == 0 {
		return bigint.Zero(), false
	}
	return d, true
}

// rhoStep advances Pollard's pseudo-random walk: y -> y^2 + c (mod n).
func rhoStep(y, c, n bigint.Int) bigint.Int {
	return modOf(y.Mul(y).Add(c), n)
}

func modOf(a, n bigint.Int) bigint.Int {
	_, r, _ := a.DivMod(n)
	return r
}

func absDiff(a, b bigint.Int) bigint.Int {
	if a.Cmp(b) < 0 {
		d, _ := b.Sub(a)
		return d
	}
	d, _ := a.Sub(b)
	return d
}
