package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	tmpDir := t.TempDir()
	binName := "puzzlebook"
	if runtime.GOOS == "windows" {
		binName = "puzzlebook.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in test/e2e; build from the module root.
	rootDir := "../.."

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/puzzlebook")
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build puzzlebook: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		env      []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Default Puzzle",
			args:     nil,
			wantOut:  "Answer: 233,168",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     []string{"-b", "10", "--quiet"},
			wantOut:  "23",
			wantCode: 0,
		},
		{
			name:     "Three Divisors",
			args:     []string{"--divisors", "3,5,7", "-b", "20", "-q"},
			wantOut:  "99",
			wantCode: 0,
		},
		{
			name:     "Single Solver",
			args:     []string{"-s", "inclusion", "-b", "1000000000000"},
			wantOut:  "Single run with the",
			wantCode: 0,
		},
		{
			name:     "Verbose Derivation",
			args:     []string{"-v", "-d", "-b", "30"},
			wantOut:  "Running tally",
			wantCode: 0,
		},
		{
			name:     "Zero Bound",
			args:     []string{"-b", "0", "-q"},
			wantOut:  "0",
			wantCode: 0,
		},
		{
			name:     "Environment Override",
			env:      []string{"PUZZLEBOOK_BOUND=10"},
			args:     []string{"-q"},
			wantOut:  "23",
			wantCode: 0,
		},
		{
			name:     "Unknown Solver",
			args:     []string{"-s", "periodik"},
			wantOut:  "did you mean",
			wantCode: 4,
		},
		{
			name:     "Unknown Puzzle",
			args:     []string{"-p", "fizzbuzz"},
			wantOut:  "unknown puzzle",
			wantCode: 4,
		},
		{
			name:     "Negative Bound",
			args:     []string{"-b", "-1"},
			wantOut:  "bound",
			wantCode: 4,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "puzzlebook",
			wantCode: 0,
		},
		{
			name:     "Completion",
			args:     []string{"--completion", "zsh"},
			wantOut:  "#compdef puzzlebook",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), tt.env...)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			if err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("run failed: %v", err)
				}
				code = exitErr.ExitCode()
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}

			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
