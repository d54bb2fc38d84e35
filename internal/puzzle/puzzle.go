package puzzle

import (
	"context"
	"math/big"
	"slices"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
)

// Puzzle is one entry of the catalog. Implementations must be safe for
// concurrent use; all state lives in Params.
type Puzzle interface {
	// Key is the stable identifier used on the command line and in URLs.
	Key() string
	// Title is the heading shown in the puzzle list.
	Title(p Params) string
	// Description is the puzzle statement, one string per paragraph.
	Description(p Params) []string
	// Defaults are the params the puzzle is shown with initially.
	Defaults() Params
	// Explain computes the answer together with its derivation.
	Explain(ctx context.Context, p Params, opts Options) (*Explanation, error)
}

// Derivation methods reported in Explanation.Method.
const (
	MethodPeriodic  = "periodic"
	MethodInclusion = "inclusion-exclusion"
)

// TallyRow is one line of the running-tally table: a matching number and the
// sum of all matching numbers up to and including it.
type TallyRow struct {
	Multiple int64    `json:"multiple"`
	Tally    *big.Int `json:"tally"`
}

// Explanation is the rendered result of a puzzle for one set of params.
type Explanation struct {
	Puzzle      string   `json:"puzzle"`
	Title       string   `json:"title"`
	Description []string `json:"description"`
	Params      Params   `json:"params"`

	Answer *big.Int `json:"answer"`
	Method string   `json:"method"`

	// Period statistics. They are zero when the inclusion-exclusion method
	// was used.
	Period      int64 `json:"period,omitempty"`
	PeriodCount int64 `json:"periodCount,omitempty"`
	PeriodSum   int64 `json:"periodSum,omitempty"`
	FullPeriods int64 `json:"fullPeriods,omitempty"`
	Remainder   int64 `json:"remainder,omitempty"`

	Steps          []string   `json:"steps"`
	Tally          []TallyRow `json:"tally"`
	TallyTruncated bool       `json:"tallyTruncated"`
}

// Catalog is the ordered list of available puzzles.
type Catalog struct {
	puzzles []Puzzle
	byKey   map[string]int
}

// NewCatalog returns a catalog listing puzzles in the given order.
// A later puzzle with a duplicate key replaces the earlier lookup entry.
func NewCatalog(puzzles ...Puzzle) *Catalog {
	c := &Catalog{
		puzzles: slices.Clone(puzzles),
		byKey:   make(map[string]int, len(puzzles)),
	}
	for i, p := range puzzles {
		c.byKey[p.Key()] = i
	}
	return c
}

// DefaultCatalog returns the catalog of built-in puzzles.
func DefaultCatalog() *Catalog {
	return NewCatalog(Multiples{})
}

// List returns the puzzles in display order.
func (c *Catalog) List() []Puzzle {
	return slices.Clone(c.puzzles)
}

// Len returns the number of puzzles.
func (c *Catalog) Len() int {
	return len(c.puzzles)
}

// Keys returns the puzzle keys in display order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.puzzles))
	for i, p := range c.puzzles {
		keys[i] = p.Key()
	}
	return keys
}

// Get looks a puzzle up by key. Unknown keys yield a ConfigError that names
// the closest known key when there is one.
func (c *Catalog) Get(key string) (Puzzle, error) {
	if i, ok := c.byKey[key]; ok {
		return c.puzzles[i], nil
	}
	return nil, apperrors.NewConfigError("unknown puzzle %q%s", key, didYouMean(key, c.Keys()))
}

// At returns the puzzle at a zero-based position.
func (c *Catalog) At(index int) (Puzzle, error) {
	if index < 0 || index >= len(c.puzzles) {
		return nil, apperrors.NewConfigError("puzzle number %d out of range 1..%d", index+1, len(c.puzzles))
	}
	return c.puzzles[index], nil
}

// IndexOf returns the zero-based position of key, or -1.
func (c *Catalog) IndexOf(key string) int {
	if i, ok := c.byKey[key]; ok {
		return i
	}
	return -1
}
