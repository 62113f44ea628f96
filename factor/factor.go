// Package factor factors non-negative arbitrary-precision integers into
// sorted, deduplicated prime powers, combining a packaged Cunningham-style
// factor table, Brent's variant of Pollard's rho, and trial division, all
// driven by a Miller-Rabin primality test. Grounded on the original
// Primpoly factoring engine (ppFactor.cpp): factorTable -> pollardRho(1) ->
// pollardRho(5) -> trialDivision in Automatic mode.
package factor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sp301415/primpoly/bigint"
)

// Mode selects which algorithm(s) Factor may use.
type Mode int

const (
	// Automatic tries FactorTable, then PollardRho with c=1, then c=5, and
	// finally falls back to TrialDivision, which always succeeds.
	Automatic Mode = iota
	FactorTable
	TrialDivisionMode
	PollardRhoMode
)

// ErrCorruptFactorTable is returned when a located factor-table entry's
// primes fail a primality check, or their product doesn't reconstruct
// p^m - 1.
var ErrCorruptFactorTable = errors.New("factor: corrupt factor table")

// PrimeFactor pairs a prime with its multiplicity (>= 1).
type PrimeFactor struct {
	Prime bigint.Int
	Mult  int
}

// Stats counts algorithmic work performed while factoring, reported for
// diagnostics but never affecting correctness.
type Stats struct {
	TrialDivides   int
	GCDs           int
	Squarings      int
	PrimalityTests int
}

// Factorization is the sorted, deduplicated multiset of prime-power factors
// of N: product of Prime^Mult over Factors equals N.
type Factorization struct {
	N       bigint.Int
	Factors []PrimeFactor
	Stats   Stats

	remaining bigint.Int // unfactored part; consumed by trialDivision/pollardRho
}

// NumDistinctFactors returns the number of distinct prime factors, always
// equal to len(Factors) after Factor returns.
func (f *Factorization) NumDistinctFactors() int { return len(f.Factors) }

// DistinctPrimes returns the distinct prime factors as machine integers.
// Returns an error wrapping bigint.ErrOverflow if a factor doesn't fit a
// uint64 (callers needing the full precision should read Factors directly).
func (f *Factorization) DistinctPrimes() ([]uint64, error) {
	out := make([]uint64, 0, len(f.Factors))
	for _, pf := range f.Factors {
		v, err := pf.Prime.Uint64()
		if err != nil {
			return nil, fmt.Errorf("factor: prime factor too large for uint64: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// DistinctPrimeFactors factors n with Automatic mode and returns its
// distinct prime factors. Its signature matches the method of
// num.Factorizer; as a package-level function it does not itself satisfy
// that interface.
func DistinctPrimeFactors(n uint64) ([]uint64, error) {
	fz, err := Factor(bigint.FromUint64(n), Automatic, 0, 0)
	if err != nil {
		return nil, err
	}
	return fz.DistinctPrimes()
}

// Factor factors n using the requested mode. p and m are only consulted by
// FactorTable (and Automatic's table-lookup step): the table is keyed by
// "n = p^m - 1", not by n itself.
func Factor(n bigint.Int, mode Mode, p, m uint64) (Factorization, error) {
	fz := Factorization{N: n, remaining: n}

	switch mode {
	case FactorTable:
		found, err := fz.factorTable(p, m)
		if err != nil {
			return Factorization{}, err
		}
		if !found {
			return Factorization{}, fmt.Errorf("factor: no table entry for p=%d m=%d", p, m)
		}
	case TrialDivisionMode:
		fz.trialDivision()
	case PollardRhoMode:
		if !fz.pollardRho(bigint.FromUint64(1)) {
			return Factorization{}, fmt.Errorf("factor: pollard rho failed to factor %s", n.String())
		}
	default: // Automatic
		found, err := fz.factorTable(p, m)
		if err != nil {
			return Factorization{}, err
		}
		if !found {
			if !fz.pollardRho(bigint.FromUint64(1)) {
				fz.remaining = n
				fz.Factors = nil
				if !fz.pollardRho(bigint.FromUint64(5)) {
					fz.remaining = n
					fz.Factors = nil
					fz.trialDivision()
				}
			}
		}
	}

	fz.finalize()
	return fz, nil
}

// finalize sorts factors by prime ascending, merges duplicate primes, and
// drops any factor with prime = 1 or multiplicity 0.
func (f *Factorization) finalize() {
	sort.SliceStable(f.Factors, func(i, j int) bool {
		return f.Factors[i].Prime.Cmp(f.Factors[j].Prime) < 0
	})

	merged := f.Factors[:0]
	for _, pf := range f.Factors {
		if len(merged) > 0 && merged[len(merged)-1].Prime.Cmp(pf.Prime) == 0 {
			merged[len(merged)-1].Mult += pf.Mult
			continue
		}
		merged = append(merged, pf)
	}

	out := merged[:0]
	one := bigint.FromUint64(1)
	for _, pf := range merged {
		if pf.Prime.Cmp(one) == 0 || pf.Mult == 0 {
			continue
		}
		out = append(out, pf)
	}
	f.Factors = out
}
