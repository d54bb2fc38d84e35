package cli

import (
	"fmt"
	"io"
	"strings"
)

// argKind says what a flag's argument completes to.
type argKind int

const (
	argNone   argKind = iota // boolean flag
	argFree                  // takes a value, nothing to suggest
	argChoice                // one of completionFlag.values
	argSolver                // a registered solver name
	argFile                  // a path
)

// completionFlag describes one command-line flag for the completion
// scripts. group names the heading it is listed under in fish.
type completionFlag struct {
	long, short string
	help        string
	arg         argKind
	argName     string
	values      []string
	group       string
}

// flagRegistry lists every flag accepted by config.ParseConfig.
var flagRegistry = []completionFlag{
	{long: "help", short: "h", help: "Show help message", group: "General"},
	{long: "version", short: "V", help: "Show version information", group: "General"},
	{long: "puzzle", short: "p", help: "Puzzle to solve", arg: argChoice, argName: "puzzle", values: []string{"multiples"}, group: "Puzzle"},
	{long: "divisors", help: "Comma separated divisors", arg: argChoice, argName: "list", values: []string{"3,5", "3,5,7", "2,3,5,7"}, group: "Puzzle"},
	{long: "bound", short: "b", help: "Exclusive upper bound", arg: argFree, argName: "number", group: "Puzzle"},
	{long: "solver", short: "s", help: "Solver to use", arg: argSolver, argName: "solver", group: "Puzzle"},
	{long: "timeout", help: "Maximum execution time", arg: argChoice, argName: "duration", values: []string{"10s", "1m", "5m"}, group: "Puzzle"},
	{long: "tally-rows", help: "Maximum running-tally rows", arg: argChoice, argName: "rows", values: []string{"100", "1000", "10000"}, group: "Limits"},
	{long: "max-period", help: "Largest period walked by the periodic solver", arg: argChoice, argName: "number", values: []string{"1000000", "10000000"}, group: "Limits"},
	{long: "max-iterative-bound", help: "Largest bound for the iterative solver", arg: argChoice, argName: "number", values: []string{"10000000", "100000000"}, group: "Limits"},
	{long: "verbose", short: "v", help: "Show every derivation step", group: "Output"},
	{long: "details", short: "d", help: "Show the running tally and memory statistics", group: "Output"},
	{long: "quiet", short: "q", help: "Print only the answer", group: "Output"},
	{long: "output", short: "o", help: "Save the explanation to a file", arg: argFile, argName: "file", group: "Output"},
	{long: "theme", help: "Color theme", arg: argChoice, argName: "theme", values: []string{"dark", "light", "orange", "none"}, group: "Output"},
	{long: "no-color", help: "Disable colored output", group: "Output"},
	{long: "log-level", help: "Log level", arg: argChoice, argName: "level", values: []string{"debug", "info", "warn", "error"}, group: "Output"},
	{long: "interactive", short: "i", help: "Start the interactive REPL", group: "Modes"},
	{long: "tui", help: "Start the terminal dashboard", group: "Modes"},
	{long: "serve", help: "Serve the HTTP API on an address", arg: argChoice, argName: "addr", values: []string{":8080"}, group: "Modes"},
	{long: "config", help: "TOML config file", arg: argFile, argName: "file", group: "Modes"},
	{long: "completion", help: "Print a shell completion script", arg: argChoice, argName: "shell", values: []string{"bash", "zsh", "fish", "powershell"}, group: "Modes"},
}

// completionGroups is the order of the fish headings.
var completionGroups = []string{"General", "Puzzle", "Limits", "Output", "Modes"}

// GenerateCompletion writes a completion script for shell. solvers are the
// names offered after --solver, in addition to "all".
func GenerateCompletion(out io.Writer, shell string, solvers []string) error {
	var b strings.Builder
	switch shell {
	case "bash":
		writeBash(&b, solvers)
	case "zsh":
		writeZsh(&b, solvers)
	case "fish":
		writeFish(&b, solvers)
	case "powershell", "ps":
		writePowerShell(&b, solvers)
	default:
		return fmt.Errorf("unsupported shell %q (use bash, zsh, fish or powershell)", shell)
	}
	if _, err := io.WriteString(out, b.String()); err != nil {
		return fmt.Errorf("write %s completion: %w", shell, err)
	}
	return nil
}

// names returns the dashed spellings of f, long form first.
func (f completionFlag) names() []string {
	n := []string{"--" + f.long}
	if f.short != "" {
		n = append(n, "-"+f.short)
	}
	return n
}

func withAll(solvers []string) []string {
	return append(append([]string(nil), solvers...), "all")
}

func writeBash(b *strings.Builder, solvers []string) {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, f.names()...)
	}

	b.WriteString("# bash completion for puzzlebook\n")
	b.WriteString("# source this file from ~/.bashrc\n\n")
	b.WriteString("_puzzlebook() {\n")
	b.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\" prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(b, "    local solvers=%q\n", strings.Join(withAll(solvers), " "))
	b.WriteString("    COMPREPLY=()\n\n")
	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range flagRegistry {
		var reply string
		switch f.arg {
		case argSolver:
			reply = `COMPREPLY=( $(compgen -W "${solvers}" -- "${cur}") )`
		case argFile:
			reply = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case argChoice:
			reply = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.values, " "))
		case argFree:
			reply = ":"
		default:
			continue
		}
		fmt.Fprintf(b, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(f.names(), "|"), reply)
	}
	b.WriteString("    esac\n\n")
	fmt.Fprintf(b, "    COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(opts, " "))
	b.WriteString("}\n\ncomplete -F _puzzlebook puzzlebook\n")
}

func writeZsh(b *strings.Builder, solvers []string) {
	b.WriteString("#compdef puzzlebook\n\n")
	b.WriteString("# zsh completion for puzzlebook; place it in a directory on $fpath\n\n")
	b.WriteString("_puzzlebook() {\n")
	fmt.Fprintf(b, "    local -a solvers=(%s)\n", strings.Join(withAll(solvers), " "))
	b.WriteString("    _arguments -s")
	for _, f := range flagRegistry {
		var action string
		switch f.arg {
		case argSolver:
			action = ":" + f.argName + ":($solvers)"
		case argFile:
			action = ":" + f.argName + ":_files"
		case argChoice:
			action = ":" + f.argName + ":(" + strings.Join(f.values, " ") + ")"
		case argFree:
			action = ":" + f.argName + ":"
		}
		if f.short == "" {
			fmt.Fprintf(b, " \\\n        '--%s[%s]%s'", f.long, f.help, action)
		} else {
			fmt.Fprintf(b, " \\\n        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.short, f.long, f.short, f.long, f.help, action)
		}
	}
	b.WriteString("\n}\n\n_puzzlebook \"$@\"\n")
}

func writeFish(b *strings.Builder, solvers []string) {
	b.WriteString("# fish completion for puzzlebook\n")
	b.WriteString("# save as ~/.config/fish/completions/puzzlebook.fish\n\n")
	b.WriteString("complete -c puzzlebook -f\n")
	for _, group := range completionGroups {
		fmt.Fprintf(b, "\n# %s\n", group)
		for _, f := range flagRegistry {
			if f.group != group {
				continue
			}
			b.WriteString("complete -c puzzlebook")
			if f.short != "" {
				fmt.Fprintf(b, " -s %s", f.short)
			}
			fmt.Fprintf(b, " -l %s -d '%s'", f.long, f.help)
			switch f.arg {
			case argSolver:
				fmt.Fprintf(b, " -xa '%s'", strings.Join(withAll(solvers), " "))
			case argFile:
				b.WriteString(" -rF")
			case argChoice:
				fmt.Fprintf(b, " -xa '%s'", strings.Join(f.values, " "))
			case argFree:
				b.WriteString(" -x")
			}
			b.WriteString("\n")
		}
	}
}

// psList renders values as a PowerShell array literal body.
func psList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

func writePowerShell(b *strings.Builder, solvers []string) {
	b.WriteString("# PowerShell completion for puzzlebook; dot-source it from $PROFILE\n\n")
	b.WriteString("Register-ArgumentCompleter -CommandName 'puzzlebook' -Native -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $values = @{\n")
	for _, f := range flagRegistry {
		switch f.arg {
		case argSolver:
			fmt.Fprintf(b, "        '--%s' = @(%s)\n", f.long, psList(withAll(solvers)))
		case argChoice:
			fmt.Fprintf(b, "        '--%s' = @(%s)\n", f.long, psList(f.values))
		}
	}
	b.WriteString("    }\n")
	b.WriteString("    $options = @(\n")
	for _, f := range flagRegistry {
		for _, n := range f.names() {
			fmt.Fprintf(b, "        @{ Name = '%s'; Help = '%s' }\n", n, f.help)
		}
	}
	b.WriteString("    )\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements\n")
	b.WriteString("    $prev = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }\n")
	b.WriteString("    if ($wordToComplete -ne '' -and $elements.Count -gt 2) { $prev = $elements[-2].ToString() }\n\n")
	b.WriteString("    if ($values.ContainsKey($prev)) {\n")
	b.WriteString("        $values[$prev] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n        return\n    }\n\n")
	b.WriteString("    $options | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Help)\n")
	b.WriteString("    }\n}\n")
}
