package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/puzzlebook/internal/config"
	"github.com/agbru/puzzlebook/internal/orchestration"
	"github.com/agbru/puzzlebook/internal/puzzle"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{
		Divisors:  []int64{3, 5},
		Bound:     1000,
		Timeout:   time.Minute,
		MaxPeriod: 5000,
	}

	PrintExecutionConfig(cfg, &buf)

	output := buf.String()
	for _, want := range []string{"Execution Configuration", "multiples of 3,5 below 1,000", "1m0s", "period=5000"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := puzzle.NewDefaultFactory()

	t.Run("Single solver mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(orchestration.GetSolversToRun("periodic", factory), &buf)

		if !strings.Contains(buf.String(), "Single run with the Periodic (closed form) solver") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("Multiple solvers mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(orchestration.GetSolversToRun(orchestration.AllSolvers, factory), &buf)

		if !strings.Contains(buf.String(), "Parallel comparison of 3 solvers") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("No solver", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(nil, &buf)
		if !strings.Contains(buf.String(), "No solver selected") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})
}
