package factor

import "github.com/sp301415/primpoly/bigint"

// trialDivision exhaustively divides f.remaining by 2, then 3, then odd
// candidates 5, 7, 11, 13, ... via the mod-6 wheel (+2, +4, +2, +4, ...),
// recording each prime power it removes. It always terminates: once a
// candidate divisor d exceeds the current quotient, whatever remains is
// itself prime (or 1), since any smaller factor would already have been
// found.
func (f *Factorization) trialDivision() {
	n := f.remaining

	n = f.extractPower(n, big2)
	n = f.extractPower(n, big3)

	d := big5
	step := uint64(2)
	for n.Cmp(big1) != 0 {
		q, r, _ := n.DivMod(d)
		f.Stats.TrialDivides++
		if r.IsZero() {
			n = f.extractPower(n, d)
			continue
		}
		if q.Cmp(d) < 0 {
			break
		}
		d = d.Add(bigint.FromUint64(step))
		step = 6 - step
	}

	if n.Cmp(big1) != 0 {
		f.Factors = append(f.Factors, PrimeFactor{Prime: n, Mult: 1})
	}
	f.remaining = big1
}

// extractPower divides every copy of prime p out of n, records the
// multiplicity found (if any) as a PrimeFactor, and returns the reduced n.
func (f *Factorization) extractPower(n, p bigint.Int) bigint.Int {
	mult := 0
	for {
		q, r, _ := n.DivMod(p)
		f.Stats.TrialDivides++
		if !r.IsZero() {
			break
		}
		n = q
		mult++
	}
	if mult > 0 {
		f.Factors = append(f.Factors, PrimeFactor{Prime: p, Mult: mult})
	}
	return n
}
