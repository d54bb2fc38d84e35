package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
)

var solvers = []string{"inclusion", "iterative", "periodic"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("puzzlebook", args, io.Discard, solvers)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Puzzle != DefaultPuzzle || cfg.Solver != DefaultSolver || cfg.Bound != 1000 {
		t.Errorf("defaults = %+v", cfg)
	}
	if !slices.Equal(cfg.Divisors, []int64{3, 5}) {
		t.Errorf("Divisors = %v, want [3 5]", cfg.Divisors)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t, "-divisors", "3,5,7", "-b", "100", "-s", "periodic", "-v", "-o", "out.txt", "-tally-rows", "7")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if !slices.Equal(cfg.Divisors, []int64{3, 5, 7}) || cfg.Bound != 100 || cfg.Solver != "periodic" {
		t.Errorf("params = %v / %d / %s", cfg.Divisors, cfg.Bound, cfg.Solver)
	}
	if !cfg.Verbose || cfg.OutputFile != "out.txt" {
		t.Errorf("output flags = %+v", cfg)
	}
	if got := cfg.ToPuzzleOptions().MaxTallyRows; got != 7 {
		t.Errorf("MaxTallyRows = %d", got)
	}
	if p := cfg.Params(); p.Bound != 100 || len(p.Divisors) != 3 {
		t.Errorf("Params() = %+v", p)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
		user     bool
	}{
		{"unknown solver with suggestion", []string{"-solver", "periodc"}, `did you mean "periodic"`, true},
		{"zero divisor", []string{"-divisors", "3,0"}, "divisor 0", true},
		{"bad divisor syntax", []string{"-divisors", "3,x"}, "", false},
		{"negative bound", []string{"-bound", "-5"}, "bound", true},
		{"zero timeout", []string{"-timeout", "0s"}, "timeout", true},
		{"exclusive modes", []string{"-tui", "-serve", ":8080"}, "mutually exclusive", true},
		{"quiet and verbose", []string{"-q", "-v"}, "cannot be combined", true},
		{"unknown theme", []string{"-theme", "neon"}, "unknown theme", true},
		{"stray arguments", []string{"extra"}, "unexpected arguments", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error = %q, want it to contain %q", err, tt.contains)
			}
			if tt.user && !apperrors.IsUserError(err) {
				t.Errorf("error %v is not a user error", err)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := parse(t, "-h")
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error = %v, want flag.ErrHelp", err)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PUZZLEBOOK_BOUND", "10")
	t.Setenv("PUZZLEBOOK_DIVISORS", "2 7")
	t.Setenv("PUZZLEBOOK_DETAILS", "yes")
	t.Setenv("PUZZLEBOOK_TIMEOUT", "5s")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Bound != 10 || !slices.Equal(cfg.Divisors, []int64{2, 7}) || !cfg.Details || cfg.Timeout != 5*time.Second {
		t.Errorf("env not applied: %+v", cfg)
	}

	// Flags win over the environment.
	cfg, err = parse(t, "-bound", "20")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Bound != 20 {
		t.Errorf("Bound = %d, want the flag value 20", cfg.Bound)
	}
}

func TestParseConfig_InvalidEnv(t *testing.T) {
	t.Setenv("PUZZLEBOOK_BOUND", "lots")
	_, err := parse(t)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) || !strings.Contains(err.Error(), "PUZZLEBOOK_BOUND") {
		t.Errorf("error = %v, want ConfigError naming the variable", err)
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleTOML = `
divisors = [7, 11]
bound = 500
solver = "iterative"
verbose = true
theme = "light"
`

func TestParseConfig_File(t *testing.T) {
	path := writeConfig(t, "puzzlebook.toml", sampleTOML)

	cfg, err := parse(t, "-config", path)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if !slices.Equal(cfg.Divisors, []int64{7, 11}) || cfg.Bound != 500 || cfg.Solver != "iterative" {
		t.Errorf("file params not applied: %v / %d / %s", cfg.Divisors, cfg.Bound, cfg.Solver)
	}
	if !cfg.Verbose || cfg.Theme != "light" {
		t.Errorf("file flags not applied: %+v", cfg)
	}
}

func TestParseConfig_FilePriority(t *testing.T) {
	path := writeConfig(t, "config", sampleTOML) // no extension: TOML assumed
	t.Setenv("PUZZLEBOOK_CONFIG", path)
	t.Setenv("PUZZLEBOOK_BOUND", "42")

	cfg, err := parse(t, "-solver", "periodic")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q", cfg.ConfigFile)
	}
	if cfg.Bound != 42 {
		t.Errorf("Bound = %d, want env value 42 over the file", cfg.Bound)
	}
	if cfg.Solver != "periodic" {
		t.Errorf("Solver = %q, want flag value over the file", cfg.Solver)
	}
	if !slices.Equal(cfg.Divisors, []int64{7, 11}) {
		t.Errorf("Divisors = %v, want file value", cfg.Divisors)
	}
}

func TestParseConfig_FileErrors(t *testing.T) {
	if _, err := parse(t, "-config", filepath.Join(t.TempDir(), "missing.toml")); !apperrors.IsUserError(err) {
		t.Errorf("missing file: error = %v", err)
	}
	bad := writeConfig(t, "bad.toml", "bound = \"many\"\n")
	if _, err := parse(t, "-config", bad); err == nil || !strings.Contains(err.Error(), "bound") {
		t.Errorf("bad value: error = %v", err)
	}
}
