package puzzle

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/seq"
)

// MaxDivisors bounds the divisor list. Inclusion-exclusion visits 2^k-1
// subsets, so the limit keeps every solver tractable.
const MaxDivisors = 16

// ErrPeriodOverflow is returned by Params.Period when the product of the
// divisors does not fit in an int64.
var ErrPeriodOverflow = errors.New("period overflows int64")

// Params are the inputs shared by every puzzle and solver: numbers in
// [1, Bound) that are divisible by at least one of Divisors.
type Params struct {
	Divisors []int64 `json:"divisors"`
	Bound    int64   `json:"bound"`
}

// Validate checks that the divisors are usable and the bound is non-negative.
func (p Params) Validate() error {
	if len(p.Divisors) == 0 {
		return apperrors.NewValidationError("divisors", "at least one divisor is required")
	}
	if len(p.Divisors) > MaxDivisors {
		return apperrors.NewValidationError("divisors", "at most %d divisors are supported, got %d", MaxDivisors, len(p.Divisors))
	}
	for _, d := range p.Divisors {
		if d < 1 {
			return apperrors.NewValidationError("divisors", "divisor %d must be at least 1", d)
		}
	}
	if p.Bound < 0 {
		return apperrors.NewValidationError("bound", "bound %d must not be negative", p.Bound)
	}
	return nil
}

// Matches reports whether v is a multiple of at least one divisor.
func (p Params) Matches(v int64) bool {
	for _, d := range p.Divisors {
		if v%d == 0 {
			return true
		}
	}
	return false
}

// Period returns the product of the divisors. Membership repeats with this
// period: v matches exactly when v+Period matches.
func (p Params) Period() (int64, error) {
	acc := uint64(1)
	for _, d := range p.Divisors {
		hi, lo := bits.Mul64(acc, uint64(d))
		if hi != 0 || lo > math.MaxInt64 {
			return 0, fmt.Errorf("divisors %s: %w", p.DivisorString(), ErrPeriodOverflow)
		}
		acc = lo
	}
	// No intermediate product can overflow once the check above has passed.
	return seq.Product(slices.Values(p.Divisors)), nil
}

// Last returns the largest number the puzzle considers, Bound-1.
func (p Params) Last() int64 {
	return p.Bound - 1
}

// DivisorString renders the divisors as a comma separated list ("3,5").
func (p Params) DivisorString() string {
	parts := make([]string, len(p.Divisors))
	for i, d := range p.Divisors {
		parts[i] = strconv.FormatInt(d, 10)
	}
	return strings.Join(parts, ",")
}

// CacheKey identifies the params for memoisation of rendered output.
func (p Params) CacheKey() string {
	return p.DivisorString() + "/" + strconv.FormatInt(p.Bound, 10)
}

// Clone returns a copy that does not share the divisor slice.
func (p Params) Clone() Params {
	return Params{Divisors: slices.Clone(p.Divisors), Bound: p.Bound}
}

// ParseDivisors parses a divisor list separated by commas and/or spaces,
// such as "3,5" or "3 5 7".
func ParseDivisors(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("divisors", "no divisors in %q", s)
	}
	divisors := make([]int64, 0, len(fields))
	for _, f := range fields {
		d, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, apperrors.NewValidationError("divisors", "%q is not an integer", f)
		}
		divisors = append(divisors, d)
	}
	return divisors, nil
}

// ParseBound parses a bound, accepting underscores as digit separators.
func ParseBound(s string) (int64, error) {
	b, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), "_", ""), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("bound", "%q is not an integer", s)
	}
	return b, nil
}
