// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayExplanation], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteExplanationToFile].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"time"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/format"
	"github.com/agbru/puzzlebook/internal/puzzle"
	"github.com/agbru/puzzlebook/internal/ui"
)

// OutputConfig holds configuration for explanation output.
type OutputConfig struct {
	// OutputFile is the path to save the explanation (empty for no file output).
	OutputFile string
	// Quiet prints only the answer.
	Quiet bool
	// Verbose shows every derivation step instead of the summary.
	Verbose bool
	// Details adds the running-tally table.
	Details bool
}

// palette is the set of escape sequences used while rendering. The zero
// value renders plain text.
type palette struct {
	bold, title, answer, accent, dim, reset string
}

func themePalette() palette {
	return palette{
		bold:   ui.ColorBold(),
		title:  ui.ColorMagenta(),
		answer: ui.ColorGreen(),
		accent: ui.ColorBlue(),
		dim:    ui.ColorCyan(),
		reset:  ui.ColorReset(),
	}
}

// tallyAll renders every tally row; tallyNone renders no table.
const (
	tallyAll  = -1
	tallyNone = 0
)

// DisplayExplanation prints a puzzle pane: heading, statement, answer,
// derivation and, with cfg.Details, the running tally. number is the
// 1-based position of the puzzle in the catalog.
func DisplayExplanation(out io.Writer, number int, e *puzzle.Explanation, cfg OutputConfig) {
	rows := tallyNone
	if cfg.Details {
		rows = TallyPreviewRows
	}
	renderExplanation(out, number, e, cfg.Verbose, rows, themePalette())
}

func renderExplanation(w io.Writer, number int, e *puzzle.Explanation, verbose bool, tallyRows int, c palette) {
	fmt.Fprintf(w, "\n%s%sProblem %d: %s%s\n", c.bold, c.title, number, e.Title, c.reset)
	for _, para := range e.Description {
		fmt.Fprintf(w, "\n%s\n", para)
	}

	fmt.Fprintf(w, "\n%sAnswer:%s %s%s%s\n", c.bold, c.reset, c.answer, format.FormatNumberString(e.Answer.String()), c.reset)

	fmt.Fprintf(w, "\n%sDerivation%s %s(%s)%s\n", c.bold, c.reset, c.dim, e.Method, c.reset)
	steps := e.Steps
	if !verbose && len(steps) > 1 {
		steps = steps[len(steps)-1:]
	}
	for i, step := range steps {
		if verbose {
			fmt.Fprintf(w, "  %s%d.%s %s\n", c.accent, i+1, c.reset, step)
		} else {
			fmt.Fprintf(w, "  %s\n", step)
		}
	}

	if tallyRows != tallyNone {
		renderTally(w, e, tallyRows, c)
	}
}

// renderTally prints the running-tally table. When edge > 0 and the table
// is longer than 2*edge rows, only the first and last edge rows are shown.
func renderTally(w io.Writer, e *puzzle.Explanation, edge int, c palette) {
	fmt.Fprintf(w, "\n%sRunning tally%s\n", c.bold, c.reset)
	if len(e.Tally) == 0 {
		fmt.Fprintf(w, "  (no multiples below %d)\n", e.Params.Bound)
		return
	}

	multWidth := len("Multiple")
	tallyWidth := len("Tally")
	for _, row := range e.Tally {
		multWidth = max(multWidth, len(strconv.FormatInt(row.Multiple, 10)))
		tallyWidth = max(tallyWidth, len(row.Tally.String()))
	}

	fmt.Fprintf(w, "  %*s  %*s\n", multWidth, "Multiple", tallyWidth, "Tally")
	printRow := func(row puzzle.TallyRow) {
		fmt.Fprintf(w, "  %s%*d%s  %*s\n", c.accent, multWidth, row.Multiple, c.reset, tallyWidth, row.Tally.String())
	}

	if edge > 0 && len(e.Tally) > 2*edge {
		for _, row := range e.Tally[:edge] {
			printRow(row)
		}
		fmt.Fprintf(w, "  %s... %d rows omitted ...%s\n", c.dim, len(e.Tally)-2*edge, c.reset)
		for _, row := range e.Tally[len(e.Tally)-edge:] {
			printRow(row)
		}
	} else {
		for _, row := range e.Tally {
			printRow(row)
		}
	}
	if e.TallyTruncated {
		fmt.Fprintf(w, "  %s(table truncated after %d rows)%s\n", c.dim, len(e.Tally), c.reset)
	}
}

// WriteExplanationToFile writes the full plain-text explanation, including
// every derivation step and tally row, to cfg.OutputFile.
func WriteExplanationToFile(number int, e *puzzle.Explanation, solver string, duration time.Duration, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "create directory %s", dir)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "create output file")
	}
	defer file.Close()

	fmt.Fprintf(file, "# Puzzle: %s\n", e.Puzzle)
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Divisors: %s\n", e.Params.DivisorString())
	fmt.Fprintf(file, "# Bound: %d\n", e.Params.Bound)
	fmt.Fprintf(file, "# Method: %s\n", e.Method)
	if solver != "" {
		fmt.Fprintf(file, "# Solver: %s\n", solver)
		fmt.Fprintf(file, "# Duration: %s\n", duration)
	}
	renderExplanation(file, number, e, true, tallyAll, palette{})

	return file.Close()
}

// FormatQuietResult formats an answer for quiet mode: the bare decimal value.
func FormatQuietResult(answer *big.Int) string {
	return answer.String()
}

// DisplayQuietResult prints the bare answer followed by a newline.
func DisplayQuietResult(out io.Writer, answer *big.Int) {
	fmt.Fprintln(out, FormatQuietResult(answer))
}

// DisplayResultWithConfig displays an explanation according to cfg and
// saves it to cfg.OutputFile when set.
func DisplayResultWithConfig(out io.Writer, number int, e *puzzle.Explanation, solver string, duration time.Duration, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietResult(out, e.Answer)
	} else {
		DisplayExplanation(out, number, e, cfg)
	}

	if cfg.OutputFile != "" {
		if err := WriteExplanationToFile(number, e, solver, duration, cfg); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%s✓ Explanation saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
