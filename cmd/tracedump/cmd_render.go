package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/flowtrace/flowtrace/pkg/playground"
	"github.com/flowtrace/flowtrace/pkg/tracefmt"
	"github.com/flowtrace/flowtrace/treeexec"
)

var (
	renderIndent int
	renderAlign  bool
	renderColor  string
)

// renderCmd reconstructs and prints a decision tree
var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Reconstruct and print the decision tree for an event log",
	Long: `Reconstruct the decision tree for a recorded event log and print it.

Reads from the given file, or from stdin when no file is provided.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderIndent, "indent", 2, "spaces per nesting level")
	renderCmd.Flags().BoolVar(&renderAlign, "align", false, "align outcome annotations")
	renderCmd.Flags().StringVar(&renderColor, "color", "auto", "colorize output: auto, always, never")
}

func runRender(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	log, err := playground.ParseLog(input)
	if err != nil {
		return err
	}

	opts := treeexec.DefaultOptions()
	opts.StrictMode = strict
	opts.EnableDiagnostics = true
	opts.Logger = treeexec.NewZapLogger(logger)

	rec, err := treeexec.Reconstruct(context.Background(), log, opts)
	if err != nil {
		return fmt.Errorf("reconstruction failed: %w", err)
	}

	cfg := tracefmt.Config{
		Indent:        renderIndent,
		AlignOutcomes: renderAlign,
		Color:         useColor(),
	}
	out, err := tracefmt.Format(rec.Tree, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if rec.Partial {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: partial reconstruction (%d diagnostics)\n", len(rec.Diagnostics))
		for _, d := range rec.Diagnostics {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", d)
		}
	}
	return nil
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func useColor() bool {
	switch renderColor {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
