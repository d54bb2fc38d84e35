package puzzle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/agbru/puzzlebook/internal/seq"
)

// exampleBound is the bound used for the worked example in the description.
const exampleBound = 10

// Multiples is the sum of all natural numbers below a bound that are
// multiples of at least one divisor. With divisors 3 and 5 and bound 1000 it
// is Project Euler problem 1.
type Multiples struct{}

// Key implements Puzzle.
func (Multiples) Key() string { return "multiples" }

// Defaults implements Puzzle.
func (Multiples) Defaults() Params {
	return Params{Divisors: []int64{3, 5}, Bound: 1000}
}

// Title implements Puzzle.
func (Multiples) Title(p Params) string {
	return "Multiples of " + joinInts(p.Divisors, "and")
}

// Description implements Puzzle. The first paragraph is a worked example
// below 10, computed from the params.
func (Multiples) Description(p Params) []string {
	task := fmt.Sprintf("Find the sum of all the multiples of %s below %d.", joinInts(p.Divisors, "or"), p.Bound)
	if p.Validate() != nil {
		return []string{task}
	}

	ex := Params{Divisors: p.Divisors, Bound: exampleBound}
	found := slices.Collect(seq.Filter(seq.RangeFrom(int64(1), exampleBound), ex.Matches))
	var example string
	if len(found) == 0 {
		example = fmt.Sprintf("None of the natural numbers below %d is a multiple of %s, so their sum is 0.",
			exampleBound, joinInts(p.Divisors, "or"))
	} else {
		example = fmt.Sprintf("If we list all the natural numbers below %d that are multiples of %s, we get %s. The sum of these multiples is %d.",
			exampleBound, joinInts(p.Divisors, "or"), joinInts(found, "and"), seq.Sum(slices.Values(found)))
	}
	return []string{example, task}
}

// Explain implements Puzzle. Small periods are explained by splitting the
// range into whole periods; otherwise inclusion-exclusion is used.
func (m Multiples) Explain(ctx context.Context, p Params, opts Options) (*Explanation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	e := &Explanation{
		Puzzle:      m.Key(),
		Title:       m.Title(p),
		Description: m.Description(p),
		Params:      p.Clone(),
	}

	period, periodErr := p.Period()
	switch {
	case p.Bound <= 1:
		e.Answer = new(big.Int)
		e.Method = MethodPeriodic
		e.Steps = []string{fmt.Sprintf("There are no natural numbers below %d, so the sum is 0.", p.Bound)}
	case periodErr == nil && period <= opts.MaxPeriod:
		explainPeriodic(e, p, period)
	default:
		if err := explainInclusion(ctx, e, p, period, periodErr, opts); err != nil {
			return nil, err
		}
	}

	e.Tally, e.TallyTruncated = runningTally(p, opts)
	return e, nil
}

func explainPeriodic(e *Explanation, p Params, period int64) {
	t := decompose(p, period)
	e.Answer = t.answer
	e.Method = MethodPeriodic
	e.Period, e.PeriodCount, e.PeriodSum = period, t.count, t.sum
	e.FullPeriods, e.Remainder = t.q, t.r

	steps := []string{
		fmt.Sprintf("The natural numbers below %d are 1 through %d.", p.Bound, t.n),
		fmt.Sprintf("Divisibility by %s repeats every P = %s = %d numbers: v is a multiple exactly when v + %d is.",
			joinInts(p.Divisors, "or"), joinProduct(p.Divisors), period, period),
		fmt.Sprintf("One period, 1 through %d, holds c = %d multiples with sum s = %d.", period, t.count, t.sum),
		fmt.Sprintf("%d = %d x %d + %d, so there are q = %d full periods followed by a tail of r = %d numbers.",
			t.n, t.q, period, t.r, t.q, t.r),
		fmt.Sprintf("Period k (counting from 0) adds k x %d to each of its %d multiples, so the full periods sum to q*s + P*c*q(q-1)/2 = %s.",
			period, t.count, t.full),
	}
	if t.r == 0 {
		steps = append(steps, "There is no tail.")
	} else {
		steps = append(steps, fmt.Sprintf("The tail %d through %d holds %d multiples with sum %s.",
			t.q*period+1, t.n, t.tailCount, t.tail))
	}
	steps = append(steps, fmt.Sprintf("Answer: %s + %s = %s.", t.full, t.tail, t.answer))
	e.Steps = steps
}

func explainInclusion(ctx context.Context, e *Explanation, p Params, period int64, periodErr error, opts Options) error {
	total, terms, err := inclusionExclusion(ctx, p, func(float64) {})
	if err != nil {
		return err
	}
	e.Answer = total
	e.Method = MethodInclusion

	var why string
	if errors.Is(periodErr, ErrPeriodOverflow) {
		why = fmt.Sprintf("The period %s overflows a 64-bit integer, so the range is not split into periods.", joinProduct(p.Divisors))
	} else {
		why = fmt.Sprintf("The period P = %d is larger than %d, so the range is not split into periods.", period, opts.MaxPeriod)
	}
	n := p.Last()
	e.Steps = []string{
		fmt.Sprintf("The natural numbers below %d are 1 through %d.", p.Bound, n),
		why,
		fmt.Sprintf("By inclusion-exclusion the sum alternates over the %d non-empty subsets S of the divisors, adding L*m(m+1)/2 for odd |S| and subtracting it for even |S|, with L = lcm(S) and m = floor(%d / L).",
			uint32(1)<<len(p.Divisors)-1, n),
		fmt.Sprintf("%d of those subsets have an lcm no larger than %d and contribute a term.", terms, n),
		fmt.Sprintf("Answer: %s.", total),
	}
	return nil
}

// runningTally lists the first matching numbers with their cumulative sum.
// The second result reports whether matching numbers were left out.
func runningTally(p Params, opts Options) ([]TallyRow, bool) {
	scanEnd := p.Bound
	if p.Last() > opts.MaxTallyScan {
		scanEnd = opts.MaxTallyScan + 1
	}

	rows := make([]TallyRow, 0, min(opts.MaxTallyRows, 64))
	total := new(big.Int)
	matches := seq.Filter(seq.RangeFrom(int64(1), scanEnd), p.Matches)
	for v := range seq.Take(matches, opts.MaxTallyRows+1) {
		if len(rows) == opts.MaxTallyRows {
			return rows, true
		}
		total.Add(total, big.NewInt(v))
		rows = append(rows, TallyRow{Multiple: v, Tally: new(big.Int).Set(total)})
	}
	return rows, scanEnd < p.Bound && hasMatchIn(p, scanEnd, p.Last())
}

// hasMatchIn reports whether some multiple lies in [lo, hi].
func hasMatchIn(p Params, lo, hi int64) bool {
	if lo > hi {
		return false
	}
	for _, d := range p.Divisors {
		// first multiple of d at or above lo
		if first := lo + (d-lo%d)%d; first <= hi {
			return true
		}
	}
	return false
}

// joinInts renders 3 / "3 and 5" / "3, 5 and 7".
func joinInts(xs []int64, conj string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatInt(x, 10)
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " " + conj + " " + parts[len(parts)-1]
}

// joinProduct renders "3 x 5".
func joinProduct(xs []int64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatInt(x, 10)
	}
	return strings.Join(parts, " x ")
}
