package factor

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sp301415/primpoly/bigint"
)

// tableFiles maps the base p of a packaged Cunningham-style "p^m - 1"
// factor table to the file that holds it. Bases without a maintained
// minus-table simply aren't listed here, and Automatic mode falls through
// to pollardRho/trialDivision for them.
var tableFiles = map[uint64]string{
	2:  "c02minus.txt",
	3:  "c03minus.txt",
	5:  "c05minus.txt",
	6:  "c06minus.txt",
	7:  "c07minus.txt",
	10: "c10minus.txt",
	11: "c11minus.txt",
	12: "c12minus.txt",
}

// tableHeader matches the column-header line("n  #Fac  Factorisation")
// repeated throughout a packaged table file.
var tableHeader = regexp.MustCompile(`^\s*n\s*#Fac\s+Factorisation`)

// factorTable looks up p^m - 1 in the packaged factor table for base p. It
// reports found=false with no error when no table exists for p, or no
// entry exists for exponent m, so Automatic mode can fall through to
// pollardRho/trialDivision. It returns ErrCorruptFactorTable when an entry
// is located but its declared factor count or reconstructed product
// doesn't check out.
func (f *Factorization) factorTable(p, m uint64) (bool, error) {
	filename, ok := tableFiles[p]
	if !ok || m == 0 {
		return false, nil
	}

	path, err := locateTableFile(filename)
	if err != nil {
		return false, nil
	}

	list, count, found, err := readTableEntry(path, m)
	if err != nil {
		return false, fmt.Errorf("factor: reading %s: %w", filename, err)
	}
	if !found {
		return false, nil
	}

	factors, err := parseFactorList(list)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCorruptFactorTable, err)
	}
	if len(factors) != count {
		return false, fmt.Errorf("%w: declared %d factors, parsed %d", ErrCorruptFactorTable, count, len(factors))
	}

	product := bigint.FromUint64(1)
	for _, pf := range factors {
		f.Stats.PrimalityTests++
		if !IsAlmostSurelyPrime(pf.Prime) {
			return false, fmt.Errorf("%w: %s is not prime", ErrCorruptFactorTable, pf.Prime.String())
		}
		product = product.Mul(powBigInt(pf.Prime, pf.Mult))
	}
	if product.Cmp(f.N) != 0 {
		return false, fmt.Errorf("%w: product %s != %s", ErrCorruptFactorTable, product.String(), f.N.String())
	}

	f.Factors = append(f.Factors, factors...)
	f.remaining = bigint.FromUint64(1)
	return true, nil
}

// locateTableFile searches the working directory tree for filename, since
// packaged tables may be installed alongside the binary or nested under a
// data directory rather than the current directory itself.
func locateTableFile(filename string) (string, error) {
	var found string
	err := filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil || found != "" {
			return nil
		}
		if !d.IsDir() && d.Name() == filename {
			found = path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("factor: table file %s not found", filename)
	}
	return found, nil
}

// readTableEntry scans path for the data line whose leading field equals m,
// joining backslash- or dot-continued lines, skipping header lines, blank
// lines, and lines marked "+" for an incompletely factored cofactor.
func readTableEntry(path string, m uint64) (list string, count int, found bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var pending string
	for scanner.Scan() {
		line := scanner.Text()
		if tableHeader.MatchString(line) || strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Contains(line, "+") {
			pending = ""
			continue
		}

		joined := pending + strings.TrimSpace(line)
		if strings.HasSuffix(joined, "\\") || strings.HasSuffix(joined, ".") {
			pending = strings.TrimSuffix(joined, "\\")
			continue
		}
		pending = ""

		fields := strings.Fields(joined)
		if len(fields) < 3 {
			continue
		}
		n, convErr := strconv.ParseUint(fields[0], 10, 64)
		if convErr != nil {
			continue
		}
		if n != m {
			continue
		}
		c, convErr := strconv.Atoi(fields[1])
		if convErr != nil {
			return "", 0, false, convErr
		}
		return strings.Join(fields[2:], ""), c, true, nil
	}
	if err := scanner.Err(); err != nil {
		return "", 0, false, err
	}
	return "", 0, false, nil
}

// parseFactorList parses a dot-separated "prime^exp.prime.prime^exp..."
// list into PrimeFactors. A bare prime with no "^" has multiplicity 1.
func parseFactorList(list string) ([]PrimeFactor, error) {
	terms := strings.Split(list, ".")
	out := make([]PrimeFactor, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		parts := strings.SplitN(term, "^", 2)
		prime, err := bigint.FromDecimalString(parts[0])
		if err != nil {
			return nil, fmt.Errorf("bad prime %q: %w", parts[0], err)
		}
		mult := 1
		if len(parts) == 2 {
			mult, err = strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("bad exponent %q: %w", parts[1], err)
			}
		}
		out = append(out, PrimeFactor{Prime: prime, Mult: mult})
	}
	return out, nil
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
