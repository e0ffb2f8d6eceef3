package treeexec

import (
	"fmt"

	"github.com/flowtrace/flowtrace"
)

// Options configures trace reconstruction behavior.
type Options struct {
	// Behavior flags
	StrictMode        bool // If true, fail on unsupported operations; if false, degrade to <unknown> (default: false)
	EnableDiagnostics bool // If true, collect degradation diagnostics on the Result (default: true)

	// Limits
	MaxEvents int // Safeguard against runaway logs (default: 1_000_000)

	// Logging configuration
	LogLevel          string // Log level: "error", "warn", "info", "debug" (default: "warn")
	LogExprPreviewLen int    // Max characters of expression previews in logs (default: 60)

	// Logger overrides the logger built from LogLevel when set
	// (e.g. the zap adapter from NewZapLogger).
	Logger Logger
}

// DefaultOptions returns the default configuration for reconstruction.
func DefaultOptions() Options {
	return Options{
		StrictMode:        false,
		EnableDiagnostics: true,
		MaxEvents:         1_000_000,
		LogLevel:          "warn",
		LogExprPreviewLen: 60,
	}
}

// Diagnostic describes a degradation that occurred during reconstruction.
// A Result carrying diagnostics is partial: some subexpression was replaced
// by the opaque <unknown> placeholder or the terminal return was implicit.
type Diagnostic struct {
	Seq     int    // Sequence number of the offending event
	Code    string // Stable machine-readable code (e.g. "unsupported-op")
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("seq %d [%s]: %s", d.Seq, d.Code, d.Message)
}

const (
	// DiagUnsupportedOp marks a subexpression degraded because of an
	// unrecognized operator.
	DiagUnsupportedOp = "unsupported-op"

	// DiagImplicitReturn marks a log that ended without an explicit return.
	DiagImplicitReturn = "implicit-return"
)

// Result contains the reconstructed decision IR and diagnostic information
// for a single call. Results are independent: nothing is retained between
// reconstructions.
type Result struct {
	Tree        flowtrace.Node // Root of the decision chain; never nil
	Diagnostics []Diagnostic   // Degradations encountered, in log order
	Partial     bool           // True when any diagnostic was recorded
	ExecID      string         // Unique reconstruction ID (for log correlation)
}

// Render returns the canonical textual rendering of the reconstructed tree.
func (r *Result) Render() string {
	return flowtrace.Render(r.Tree)
}

// String returns a short representation of the result for debugging.
func (r *Result) String() string {
	if r == nil {
		return "<nil>"
	}
	diags := ""
	if len(r.Diagnostics) > 0 {
		diags = fmt.Sprintf(" (diagnostics: %d)", len(r.Diagnostics))
	}
	return fmt.Sprintf("Result{exec: %s, nodes: %d%s}", r.ExecID, chainLen(r.Tree), diags)
}

func chainLen(n flowtrace.Node) int {
	count := 0
	flowtrace.Walk(n, func(flowtrace.Node, int) bool {
		count++
		return true
	})
	return count
}
