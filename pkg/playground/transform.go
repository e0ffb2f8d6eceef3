package playground

import (
	"context"
	"fmt"

	"github.com/flowtrace/flowtrace/pkg/tracefmt"
	"github.com/flowtrace/flowtrace/treeexec"
)

// TraceResult contains the three panels shown in the playground: the
// normalized log, the canonical decision tree, and the pretty-printed tree.
type TraceResult struct {
	Panel1   string   `json:"panel1"` // normalized event log (YAML)
	Panel2   string   `json:"panel2"` // canonical decision tree
	Panel3   string   `json:"panel3"` // formatted decision tree
	Partial  bool     `json:"partial"`
	Warnings []string `json:"warnings"`
}

// RenderTrace parses a serialized event log, reconstructs its decision tree,
// and renders both the canonical and formatted forms.
func RenderTrace(ctx context.Context, logYAML string, strict bool) (*TraceResult, error) {
	result := &TraceResult{
		Warnings: []string{},
	}

	normalized, err := NormalizeLog(logYAML)
	if err != nil {
		return nil, err
	}
	result.Panel1 = normalized

	log, err := ParseLog(logYAML)
	if err != nil {
		return nil, err
	}

	opts := treeexec.DefaultOptions()
	opts.StrictMode = strict
	opts.EnableDiagnostics = true

	rec, err := treeexec.Reconstruct(ctx, log, opts)
	if err != nil {
		return nil, fmt.Errorf("reconstruction failed: %w", err)
	}

	result.Panel2 = rec.Render()
	result.Partial = rec.Partial
	for _, d := range rec.Diagnostics {
		result.Warnings = append(result.Warnings, d.String())
	}
	if strict && rec.Partial {
		return nil, fmt.Errorf("%s", FormatTraceDiagnostics(rec.Diagnostics))
	}

	cfg := tracefmt.DefaultConfig()
	cfg.AlignOutcomes = true
	pretty, err := tracefmt.Format(rec.Tree, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to format decision tree: %w", err)
	}
	result.Panel3 = pretty

	return result, nil
}
