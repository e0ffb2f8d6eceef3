package treeexec

import (
	"strings"
	"testing"

	"github.com/flowtrace/flowtrace"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelWarn},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultLogger_LevelFilteringAndFields(t *testing.T) {
	var buf strings.Builder
	logger := NewLogger(LevelInfo, &buf)

	logger.Debugf("should be dropped")
	logger.With(map[string]any{"exec": "abc123", "seq": 4}).Infof("replaying event")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("debug line must be filtered at info level")
	}
	if !strings.Contains(out, "[INFO]") || !strings.Contains(out, "replaying event") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "exec=abc123") || !strings.Contains(out, "seq=4") {
		t.Errorf("fields missing from output: %q", out)
	}
}

func TestDefaultLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf strings.Builder
	parent := NewLogger(LevelInfo, &buf)
	parent.With(map[string]any{"child": "yes"})

	parent.Infof("plain")
	if strings.Contains(buf.String(), "child=yes") {
		t.Errorf("parent logger leaked child fields: %q", buf.String())
	}
}

func TestExprPreview_Truncation(t *testing.T) {
	expr := flowtrace.NewInfix(flowtrace.OpMul,
		flowtrace.NewName("a_rather_long_variable_name"),
		flowtrace.NewName("another_long_variable_name"))

	full := exprPreview(expr, 0)
	if full != expr.String() {
		t.Errorf("preview without limit = %q", full)
	}

	short := exprPreview(expr, 10)
	if len(short) != 13 || !strings.HasSuffix(short, "...") {
		t.Errorf("truncated preview = %q", short)
	}

	if exprPreview(nil, 10) != "<nil>" {
		t.Error("nil expression must preview as <nil>")
	}
}
