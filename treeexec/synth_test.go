package treeexec

import (
	"context"
	"errors"
	"testing"

	"github.com/flowtrace/flowtrace"
)

func TestSynth_FoldsUntaintedSubexpression(t *testing.T) {
	rec := flowtrace.NewRecorder()
	x := rec.Input(flowtrace.Slot{ID: 1, Name: "x"}, flowtrace.IntValue(10))

	// (2 + 3) is fully untainted and must fold to the literal 5 inside the
	// surviving tainted product.
	five := rec.BinOp(flowtrace.OpAdd, rec.Constant(flowtrace.IntValue(2)), rec.Constant(flowtrace.IntValue(3)), flowtrace.IntValue(5))
	prod := rec.BinOp(flowtrace.OpMul, x, five, flowtrace.IntValue(50))
	rec.Return(prod)

	result, err := Reconstruct(context.Background(), rec.Log())
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}

	term := flowtrace.Terminal(result.Tree)
	if term == nil {
		t.Fatal("expected terminal return")
	}
	want := flowtrace.NewInfix(flowtrace.OpMul, flowtrace.NewName("x"), flowtrace.NewLiteral(flowtrace.IntValue(5)))
	if !term.Expr.Equal(want) {
		t.Errorf("expr = %s, want %s", term.Expr, want)
	}
}

func TestSynth_CopyKeepsName(t *testing.T) {
	rec := flowtrace.NewRecorder()
	hrSlot := flowtrace.Slot{ID: 1, Name: "heart_rate"}
	aliasSlot := flowtrace.Slot{ID: 2, Name: "hr"}

	hr := rec.Input(hrSlot, flowtrace.IntValue(90))
	rec.Store(aliasSlot, hr)
	alias, _ := rec.Load(aliasSlot)
	rec.Return(alias)

	result, err := Reconstruct(context.Background(), rec.Log())
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}

	// An unmodified copy resolves to the original input's name, not the
	// alias slot's.
	if got := result.Render(); got != "return heart_rate" {
		t.Errorf("Render() = %q, want %q", got, "return heart_rate")
	}
}

func TestSynth_ComputedStoreReExpands(t *testing.T) {
	rec := flowtrace.NewRecorder()
	x := rec.Input(flowtrace.Slot{ID: 1, Name: "x"}, flowtrace.IntValue(4))
	doubled := rec.BinOp(flowtrace.OpMul, x, rec.Constant(flowtrace.IntValue(2)), flowtrace.IntValue(8))

	tmp := flowtrace.Slot{ID: 2, Name: "tmp"}
	rec.Store(tmp, doubled)
	loaded, _ := rec.Load(tmp)
	rec.Return(loaded)

	result, err := Reconstruct(context.Background(), rec.Log())
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}

	// Loads of a computed store re-expand to the stored expression, not the
	// slot name.
	if got := result.Render(); got != "return (x * 2)" {
		t.Errorf("Render() = %q, want %q", got, "return (x * 2)")
	}
}

func TestSynth_UnsupportedOpDegrades(t *testing.T) {
	rec := flowtrace.NewRecorder()
	x := rec.Input(flowtrace.Slot{ID: 1, Name: "x"}, flowtrace.IntValue(3))

	// An operator outside the supported set, applied to tainted data.
	bad := rec.BinOp(flowtrace.Op(99), x, rec.Constant(flowtrace.IntValue(2)), flowtrace.IntValue(9))
	sum := rec.BinOp(flowtrace.OpAdd, bad, rec.Constant(flowtrace.IntValue(1)), flowtrace.IntValue(10))
	rec.Return(sum)

	result, err := Reconstruct(context.Background(), rec.Log())
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}

	if !result.Partial {
		t.Error("degraded reconstruction must be flagged partial")
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != DiagUnsupportedOp {
		t.Errorf("diagnostics = %v", result.Diagnostics)
	}
	if got := result.Render(); got != "return (<unknown> + 1)" {
		t.Errorf("Render() = %q, want %q", got, "return (<unknown> + 1)")
	}
}

func TestSynth_UnsupportedOpStrictModeFails(t *testing.T) {
	rec := flowtrace.NewRecorder()
	x := rec.Input(flowtrace.Slot{ID: 1, Name: "x"}, flowtrace.IntValue(3))
	bad := rec.BinOp(flowtrace.Op(99), x, rec.Constant(flowtrace.IntValue(2)), flowtrace.IntValue(9))
	rec.Return(bad)

	opts := DefaultOptions()
	opts.StrictMode = true

	_, err := Reconstruct(context.Background(), rec.Log(), opts)
	var unsupported *flowtrace.UnsupportedOperationError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedOperationError, got %v", err)
	}
}

func TestSynth_UnsupportedOpOnUntaintedDataFolds(t *testing.T) {
	rec := flowtrace.NewRecorder()

	// Untainted result folds to its literal without inspecting the operator,
	// so the unknown op never surfaces.
	v := rec.BinOp(flowtrace.Op(99), rec.Constant(flowtrace.IntValue(2)), rec.Constant(flowtrace.IntValue(3)), flowtrace.IntValue(6))
	rec.Return(v)

	result, err := Reconstruct(context.Background(), rec.Log())
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	if result.Partial {
		t.Errorf("unexpected partial result: %v", result.Diagnostics)
	}
	if got := result.Render(); got != "return 6" {
		t.Errorf("Render() = %q, want %q", got, "return 6")
	}
}
