package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var bundleOutput string

// testCmd judges the current solution once
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Bundle the current solution and run it against the problem tests",
	Long: `Bundles the solution of the current problem, compiles it once and runs every
test in order. Prints one verdict per test. When every test is accepted and
submit_on_ac is on, the bundle is handed to the relay for submission.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

// bundleCmd prints the merged source
var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Print the solution merged with the libraries it uses",
	Args:  cobra.NoArgs,
	RunE:  runBundle,
}

func runTest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.loadProblem()
	if err != nil {
		return err
	}
	path, err := a.solutionPath(p)
	if err != nil {
		return err
	}

	bundled, target, err := a.bundle(path)
	if err != nil {
		return err
	}
	j, err := a.newJudge(target)
	if err != nil {
		return err
	}

	a.logger.Infof("Judging %s with %d tests", path, len(p.Tests))
	verdicts, err := j.RunJudgeSession(cmd.Context(), newRequest(target, bundled, p))
	return a.report(cmd.Context(), p, path, bundled, verdicts, err)
}

func runBundle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	path := sourceFile
	if path == "" {
		p, err := a.loadProblem()
		if err != nil {
			return err
		}
		if path, err = a.solutionPath(p); err != nil {
			return err
		}
	}

	bundled, _, err := a.bundle(path)
	if err != nil {
		return err
	}

	if bundleOutput == "" {
		_, err = fmt.Fprint(os.Stdout, bundled)
		return err
	}
	return os.WriteFile(bundleOutput, []byte(bundled), 0o644)
}
