package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/cp-helper/judge/pkg/solution"
	"github.com/fatih/color"
)

const previewWidth = 24

// stdout translates color codes on windows consoles.
var stdout io.Writer = color.Output

var statusColors = map[solution.Status]*color.Color{
	solution.Accepted:                  color.New(color.FgGreen),
	solution.WrongAnswer:               color.New(color.FgRed),
	solution.TimeLimitExceeded:         color.New(color.FgYellow),
	solution.CompilationError:          color.New(color.FgMagenta),
	solution.RuntimeErrorLaunchFailure: color.New(color.FgRed),
	solution.RuntimeErrorNonZeroExit:   color.New(color.FgRed),
}

func printVerdicts(w io.Writer, verdicts []solution.Verdict) {
	if len(verdicts) == 0 {
		fmt.Fprintln(w, "No tests to run.")
		return
	}

	// A compile error is the same for every test, print it once.
	if verdicts[0].StatusID == solution.CompilationError {
		fmt.Fprintln(w, statusColors[solution.CompilationError].Sprint(verdicts[0].Status))
		fmt.Fprintln(w, verdicts[0].Output)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTATUS\tTIME\tINPUT\tEXPECTED\tOUTPUT")
	accepted := 0
	for i, v := range verdicts {
		if v.StatusID == solution.Accepted {
			accepted++
		}
		fmt.Fprintf(tw, "%d\t%s\t%.1fms\t%s\t%s\t%s\n",
			i+1, colorStatus(v), v.TimeMs, preview(v.Input), preview(v.Answer), preview(v.Output))
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "%d/%d accepted\n", accepted, len(verdicts))
}

func colorStatus(v solution.Verdict) string {
	if c, ok := statusColors[v.StatusID]; ok {
		return c.Sprint(v.Status)
	}
	return v.Status
}

// preview shortens text to its first line, capped at previewWidth runes.
func preview(text string) string {
	text = strings.TrimSpace(text)
	line, _, multiline := strings.Cut(text, "\n")
	line = strings.TrimRight(line, "\r")
	if utf8.RuneCountInString(line) > previewWidth {
		runes := []rune(line)
		return string(runes[:previewWidth-3]) + "..."
	}
	if multiline {
		return line + " ..."
	}
	return line
}
