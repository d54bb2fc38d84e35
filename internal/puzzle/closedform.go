package puzzle

import (
	"context"
	"iter"
	"math/big"
	"math/bits"

	"github.com/agbru/puzzlebook/internal/seq"
)

// periodicTerms is the decomposition of [1, n] into q full periods of length
// P followed by a tail of r numbers.
type periodicTerms struct {
	n, period  int64
	count, sum int64 // multiples inside [1, P]
	q, r       int64
	tailCount  int64 // multiples inside [1, r]
	tailSum    int64
	full, tail *big.Int
	answer     *big.Int
}

// onePeriod counts and sums the multiples in [1, limit].
func onePeriod(p Params, limit int64) (count, sum int64) {
	matches := seq.Filter(seq.RangeFrom(int64(1), limit+1), p.Matches)
	return int64(seq.Count(matches)), seq.Sum(matches)
}

// decompose evaluates the closed form
//
//	q*s + P*c*q(q-1)/2 + tailSum + q*P*tailCount
//
// where period k (from 0) holds the multiples of period 0 shifted by k*P.
// period must not exceed the limit enforced by Options.
func decompose(p Params, period int64) periodicTerms {
	t := periodicTerms{n: max(p.Last(), 0), period: period}
	t.q, t.r = t.n/period, t.n%period
	t.count, t.sum = onePeriod(p, period)
	t.tailCount, t.tailSum = onePeriod(p, t.r)

	bigP := big.NewInt(period)
	bigQ := big.NewInt(t.q)

	// q*s
	t.full = new(big.Int).Mul(bigQ, big.NewInt(t.sum))
	// P*c*q(q-1)/2
	shift := new(big.Int).Sub(bigQ, big.NewInt(1))
	shift.Mul(shift, bigQ)
	shift.Rsh(shift, 1)
	shift.Mul(shift, bigP)
	shift.Mul(shift, big.NewInt(t.count))
	t.full.Add(t.full, shift)

	// tailSum + q*P*tailCount
	t.tail = new(big.Int).Mul(bigQ, bigP)
	t.tail.Mul(t.tail, big.NewInt(t.tailCount))
	t.tail.Add(t.tail, big.NewInt(t.tailSum))

	t.answer = new(big.Int).Add(t.full, t.tail)
	return t
}

// subset yields the divisors selected by the bits of mask.
func subset(divisors []int64, mask uint32) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for i, d := range divisors {
			if mask&(1<<i) != 0 && !yield(d) {
				return
			}
		}
	}
}

func lcmStep(acc *big.Int, d int64) *big.Int {
	bd := big.NewInt(d)
	g := new(big.Int).GCD(nil, nil, acc, bd)
	return new(big.Int).Mul(new(big.Int).Quo(acc, g), bd)
}

// sumOfMultiples returns L*m(m+1)/2 with m = n/L, the sum of the multiples
// of L in [1, n].
func sumOfMultiples(l, n *big.Int) *big.Int {
	m := new(big.Int).Quo(n, l)
	s := new(big.Int).Add(m, big.NewInt(1))
	s.Mul(s, m)
	s.Rsh(s, 1)
	return s.Mul(s, l)
}

// inclusionReportEvery is the number of subsets visited between progress
// reports and context checks.
const inclusionReportEvery = 1024

// inclusionExclusion sums the multiples in [1, Bound) as the alternating sum
// over all non-empty divisor subsets. It returns the sum and the number of
// subsets whose lcm is small enough to contribute.
func inclusionExclusion(ctx context.Context, p Params, report func(float64)) (*big.Int, int, error) {
	total := new(big.Int)
	n := p.Last()
	if n <= 0 {
		return total, 0, nil
	}
	bigN := big.NewInt(n)
	subsets := uint32(1)<<len(p.Divisors) - 1
	terms := 0

	for mask := uint32(1); mask <= subsets; mask++ {
		if mask%inclusionReportEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, terms, err
			}
			report(float64(mask) / float64(subsets))
		}
		l := seq.Reduce(subset(p.Divisors, mask), lcmStep, big.NewInt(1))
		if l.Cmp(bigN) > 0 {
			continue
		}
		terms++
		if bits.OnesCount32(mask)%2 == 1 {
			total.Add(total, sumOfMultiples(l, bigN))
		} else {
			total.Sub(total, sumOfMultiples(l, bigN))
		}
	}
	report(1)
	return total, terms, nil
}
