// Package playground provides utilities for parsing event logs and rendering
// their reconstructed decision trees, backing the interactive playground.
package playground

import (
	"fmt"
	"strings"

	"github.com/flowtrace/flowtrace/treeexec"
)

// FormatTraceDiagnostics turns low-level engine diagnostics into a
// user-facing message.
func FormatTraceDiagnostics(diags []treeexec.Diagnostic) string {
	if len(diags) == 0 {
		return "Reconstruction failed, but no additional details were provided."
	}

	var b strings.Builder
	b.WriteString("Reconstruction produced a partial tree (strict mode).\n")

	for _, d := range diags {
		msg, hint := classifyAndHint(d)

		fmt.Fprintf(&b, "- %s\n", msg)
		fmt.Fprintf(&b, "  Location: event #%d\n", d.Seq)
		if hint != "" {
			fmt.Fprintf(&b, "  How to fix: %s\n", hint)
		}
		if d.Message != "" {
			fmt.Fprintf(&b, "  Details: %s\n", d.Message)
		}
	}

	return b.String()
}

func classifyAndHint(d treeexec.Diagnostic) (msg, hint string) {
	switch d.Code {
	case treeexec.DiagUnsupportedOp:
		msg = `Unsupported operator in a tainted expression. The affected subexpression was replaced with "<unknown>".`
		hint = `Re-record the trace with a supported binary operator, or run without strict mode to accept the placeholder.`
		return
	case treeexec.DiagImplicitReturn:
		msg = `The event log ended without an explicit return. The tree was closed with "return <undefined>".`
		hint = `Make sure the traced call runs to completion before the log is finalized.`
		return
	}
	// Future: add other classifications here.
	return "Reconstruction diagnostic.", ""
}
