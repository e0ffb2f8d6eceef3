// Package tracefmt renders decision trees for presentation. The canonical
// bit-for-bit rendering lives in the flowtrace package (Render); this package
// layers display options on top: wider indents, aligned outcome annotations
// and optional color. None of these affect the canonical form.
package tracefmt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/flowtrace/flowtrace"
)

// Config controls presentation rendering.
type Config struct {
	Indent        int  // Spaces per nesting level (default: 2)
	AlignOutcomes bool // Pad conditions so (=True)/(=False) annotations line up
	Color         bool // Style output with lipgloss
}

// DefaultConfig returns the configuration matching the canonical rendering.
func DefaultConfig() Config {
	return Config{Indent: 2}
}

// ValidateConfig normalizes and validates a configuration.
func ValidateConfig(cfg Config) (Config, error) {
	if cfg.Indent == 0 {
		cfg.Indent = 2
	}
	if cfg.Indent < 1 || cfg.Indent > 8 {
		return cfg, fmt.Errorf("invalid indent %d; must be between 1 and 8", cfg.Indent)
	}
	return cfg, nil
}

var (
	keywordStyle = lipgloss.NewStyle().Bold(true)
	condStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
	trueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	falseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

type line struct {
	depth   int
	keyword string // "if" or "return"
	body    string // condition or return expression
	outcome string // "(=True):" / "(=False):" for branches, "" for returns
	isTrue  bool
}

// Format renders the chain rooted at root according to cfg.
func Format(root flowtrace.Node, cfg Config) (string, error) {
	cfg, err := ValidateConfig(cfg)
	if err != nil {
		return "", err
	}
	if root == nil {
		return "", fmt.Errorf("cannot format a nil tree")
	}

	var lines []line
	flowtrace.Walk(root, func(n flowtrace.Node, depth int) bool {
		switch t := n.(type) {
		case *flowtrace.BranchNode:
			outcome := "(=False):"
			if t.Outcome {
				outcome = "(=True):"
			}
			lines = append(lines, line{
				depth:   depth,
				keyword: "if",
				body:    t.Condition.String(),
				outcome: outcome,
				isTrue:  t.Outcome,
			})
		case *flowtrace.ReturnNode:
			lines = append(lines, line{
				depth:   depth,
				keyword: "return",
				body:    t.Expr.String(),
			})
		}
		return true
	})

	// Compute the padded width of "if <cond>" prefixes when aligning.
	alignWidth := 0
	if cfg.AlignOutcomes {
		for _, l := range lines {
			if l.outcome == "" {
				continue
			}
			w := l.depth*cfg.Indent + runewidth.StringWidth("if "+l.body)
			if w > alignWidth {
				alignWidth = w
			}
		}
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		indent := strings.Repeat(" ", l.depth*cfg.Indent)
		b.WriteString(indent)

		keyword, body, outcome := l.keyword, l.body, l.outcome
		if cfg.Color {
			keyword = keywordStyle.Render(keyword)
			body = condStyle.Render(body)
			if outcome != "" {
				if l.isTrue {
					outcome = trueStyle.Render(outcome)
				} else {
					outcome = falseStyle.Render(outcome)
				}
			}
		}

		b.WriteString(keyword)
		b.WriteByte(' ')
		b.WriteString(body)
		if l.outcome != "" {
			pad := 1
			if cfg.AlignOutcomes {
				// Pad against the unstyled width so colored output aligns too.
				w := l.depth*cfg.Indent + runewidth.StringWidth("if "+l.body)
				pad = alignWidth - w + 1
			}
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(outcome)
		}
	}

	return b.String(), nil
}
