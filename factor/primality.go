package factor

import (
	"github.com/sp301415/primpoly/bigint"
	"github.com/sp301415/primpoly/num"
)

// Primality is the three-valued result of a single Miller-Rabin trial.
type Primality int

const (
	Composite Primality = iota
	Prime
	ProbablyPrime
)

// numPrimeTestTrials bounds the false-positive probability of
// IsAlmostSurelyPrime at (1/4)^14, about 3.7e-9.
const numPrimeTestTrials = 14

var (
	big0 = bigint.FromUint64(0)
	big1 = bigint.FromUint64(1)
	big2 = bigint.FromUint64(2)
	big3 = bigint.FromUint64(3)
	big4 = bigint.FromUint64(4)
	big5 = bigint.FromUint64(5)
)

// IsProbablyPrime runs one Miller-Rabin trial with witness x against n.
func IsProbablyPrime(n, x bigint.Int) Primality {
	if n.Cmp(big0) == 0 || n.Cmp(big1) == 0 || n.Cmp(big4) == 0 {
		return Composite
	}
	if n.Cmp(big2) == 0 || n.Cmp(big3) == 0 || n.Cmp(big5) == 0 {
		return Prime
	}
	if isDivisibleBySmall(n) {
		return Composite
	}

	// n - 1 = 2^k * q, q odd.
	reduced, _ := n.Sub(big1)
	k := 0
	for {
		q, r, _ := reduced.DivMod(big2)
		if !r.IsZero() {
			break
		}
		reduced = q
		k++
	}
	q := reduced

	y, _ := num.PowerModBig(x, q, n)
	nMinus1, _ := n.Sub(big1)

	for j := 0; j < k; j++ {
		if j == 0 && y.Cmp(big1) == 0 {
			return ProbablyPrime
		}
		if y.Cmp(nMinus1) == 0 {
			return ProbablyPrime
		}
		if j > 0 && y.Cmp(big1) == 0 {
			return Composite
		}
		y, _ = num.PowerModBig(y, big2, n)
	}
	return Composite
}

func isDivisibleBySmall(n bigint.Int) bool {
	for _, d := range []bigint.Int{big2, big3, big5} {
		_, r, _ := n.DivMod(d)
		if r.IsZero() {
			return true
		}
	}
	return false
}

// IsAlmostSurelyPrime performs 14 independent Miller-Rabin trials with
// random witnesses drawn from [0, n), coercing x <= 1 to 3. Any composite
// verdict is conclusive; a small-case Prime verdict is conclusive;
// otherwise passing all trials returns true.
func IsAlmostSurelyPrime(n bigint.Int) bool {
	for trial := 0; trial < numPrimeTestTrials; trial++ {
		x := num.UniformRandomBigInt(n)
		if x.Cmp(big1) <= 0 {
			x = big3
		}
		switch IsProbablyPrime(n, x) {
		case Prime:
			return true
		case Composite:
			return false
		}
	}
	return true
}
