// This file contains the environment and config-file overrides.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/puzzle"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// override declares a setting that can come from the environment or from
// the config file. key is the env suffix (after PUZZLEBOOK_); its lower-case
// form is the config-file key.
type override struct {
	key   string
	flags []string
	apply func(*AppConfig, string) error
}

func (o override) fileKey() string { return strings.ToLower(o.key) }

// overrides is the declarative table of settings shared by the environment
// and the config file.
var overrides = []override{
	// Puzzle params
	{"PUZZLE", []string{"puzzle", "p"}, func(c *AppConfig, v string) error {
		c.Puzzle = v
		return nil
	}},
	{"DIVISORS", []string{"divisors"}, func(c *AppConfig, v string) error {
		divs, err := puzzle.ParseDivisors(v)
		if err == nil {
			c.Divisors = divs
		}
		return err
	}},
	{"BOUND", []string{"bound", "b"}, func(c *AppConfig, v string) (err error) {
		c.Bound, err = puzzle.ParseBound(v)
		return err
	}},
	{"SOLVER", []string{"solver", "s"}, func(c *AppConfig, v string) error {
		c.Solver = v
		return nil
	}},

	// Limits
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) (err error) {
		c.Timeout, err = time.ParseDuration(v)
		return err
	}},
	{"TALLY_ROWS", []string{"tally-rows"}, func(c *AppConfig, v string) (err error) {
		c.MaxTallyRows, err = strconv.Atoi(v)
		return err
	}},
	{"MAX_PERIOD", []string{"max-period"}, func(c *AppConfig, v string) (err error) {
		c.MaxPeriod, err = strconv.ParseInt(v, 10, 64)
		return err
	}},
	{"MAX_ITERATIVE_BOUND", []string{"max-iterative-bound"}, func(c *AppConfig, v string) (err error) {
		c.MaxIterativeBound, err = strconv.ParseInt(v, 10, 64)
		return err
	}},

	// Output
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) error {
		c.OutputFile = v
		return nil
	}},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) error {
		c.Theme = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = v
		return nil
	}},
	{"SERVE", []string{"serve"}, func(c *AppConfig, v string) error {
		c.Serve = v
		return nil
	}},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, boolSetting(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolSetting(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"q", "quiet"}, boolSetting(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolSetting(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolSetting(func(c *AppConfig) *bool { return &c.TUI })},
}

func boolSetting(field func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		b, err := parseBool(v)
		if err == nil {
			*field(c) = b
		}
		return err
	}
}

// parseBool accepts "true", "1", "yes" as true and "false", "0", "no" as
// false (case-insensitive).
func parseBool(val string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, strconv.ErrSyntax
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range overrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.key); val != "" {
			if err := o.apply(config, val); err != nil {
				return apperrors.NewConfigError("invalid %s%s=%q: %v", EnvPrefix, o.key, val, err)
			}
		}
	}
	return nil
}
