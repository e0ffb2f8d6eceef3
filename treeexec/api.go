package treeexec

import (
	"context"
	"fmt"

	"github.com/flowtrace/flowtrace"
)

// Reconstruct replays a completed event log and returns the minimal decision
// IR for that call: branches whose conditions depend on traceable inputs,
// with untainted sub-computation folded to literals.
//
// Example:
//
//	rec := flowtrace.NewRecorder()
//	temp := rec.Input(flowtrace.Slot{ID: 1, Name: "temperature"}, flowtrace.FloatValue(38.0))
//	crit := rec.BinOp(flowtrace.OpGt, temp, rec.Constant(flowtrace.FloatValue(37.5)), flowtrace.BoolValue(true))
//	rec.Return(crit)
//	result, err := treeexec.Reconstruct(context.Background(), rec.Log())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Render()) // return (temperature > 37.5000)
func Reconstruct(ctx context.Context, log *flowtrace.EventLog, opts ...Options) (*Result, error) {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	if err := validateLog(log); err != nil {
		return nil, err
	}

	env := newTraceEnv(ctx, opt)
	return env.execute(log)
}

// validateLog performs ingestion validation before replay begins.
func validateLog(log *flowtrace.EventLog) error {
	if log == nil {
		return fmt.Errorf("event log cannot be nil")
	}
	if err := log.Validate(); err != nil {
		return fmt.Errorf("invalid event log: %w", err)
	}
	return nil
}
