package treeexec

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowtrace/flowtrace"
)

// traceEnv is the execution environment for one reconstruction. It owns a
// private synthesizer and node stack; nothing is shared across calls.
type traceEnv struct {
	ctx    context.Context
	opts   Options
	synth  *synthesizer
	stack  *nodeStack
	logger Logger
	execID string

	diags    []Diagnostic
	partial  bool
	steps    int
	terminal *flowtrace.ReturnNode
}

// newTraceEnv creates a fresh reconstruction environment.
func newTraceEnv(ctx context.Context, opts Options) *traceEnv {
	logger := opts.Logger
	if logger == nil {
		if opts.LogLevel != "" {
			logger = NewLogger(ParseLogLevel(opts.LogLevel), nil)
		} else {
			logger = newNoopLogger()
		}
	}

	return &traceEnv{
		ctx:    ctx,
		opts:   opts,
		synth:  newSynthesizer(),
		stack:  newNodeStack(),
		logger: logger,
		execID: uuid.NewString()[:8],
	}
}

func (env *traceEnv) addDiagnostic(seq int, code, msg string) {
	env.partial = true
	if !env.opts.EnableDiagnostics {
		return
	}
	env.diags = append(env.diags, Diagnostic{Seq: seq, Code: code, Message: msg})
}

// execute replays a completed log and returns the decision IR.
func (env *traceEnv) execute(l *flowtrace.EventLog) (*Result, error) {
	events := l.Events()

	env.logger.With(map[string]any{
		"exec":   env.execID,
		"events": len(events),
	}).Infof("Starting trace reconstruction")

	for _, ev := range events {
		// Check context cancellation
		select {
		case <-env.ctx.Done():
			return nil, env.ctx.Err()
		default:
		}

		done, err := env.step(ev)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}

	return env.finalize(), nil
}

// step interprets one event. It returns done=true on the terminal Return.
func (env *traceEnv) step(ev flowtrace.Event) (bool, error) {
	env.steps++
	if env.opts.MaxEvents > 0 && env.steps > env.opts.MaxEvents {
		return false, fmt.Errorf("exceeded maximum events (%d) - runaway log", env.opts.MaxEvents)
	}
	if env.terminal != nil {
		return false, &flowtrace.LogConsistencyError{Seq: ev.Seq, Msg: "event after terminal return"}
	}

	switch ev.Kind {
	case flowtrace.EvStore:
		env.synth.store(ev)

	case flowtrace.EvLoad:
		if err := env.synth.load(ev); err != nil {
			return false, err
		}

	case flowtrace.EvBinOp:
		if err := env.synth.binOp(ev); err != nil {
			var unsupported *flowtrace.UnsupportedOperationError
			if !errors.As(err, &unsupported) || env.opts.StrictMode {
				return false, err
			}
			// Degrade the result to the opaque placeholder and continue;
			// the Result is flagged partial.
			env.synth.degrade(ev.Val)
			env.addDiagnostic(ev.Seq, DiagUnsupportedOp, unsupported.Error())
			env.logger.With(map[string]any{
				"exec": env.execID,
				"seq":  ev.Seq,
			}).Warnf("Unsupported operation degraded to <unknown>")
		}

	case flowtrace.EvBranch:
		cond := env.synth.condition(ev)
		if !cond.Tainted {
			// Spurious branch: the condition does not depend on traceable
			// data, so the scope is spliced away entirely.
			env.logger.With(map[string]any{
				"exec": env.execID,
				"seq":  ev.Seq,
				"cond": exprPreview(cond.Expr, env.opts.LogExprPreviewLen),
			}).Debugf("Suppressing untainted branch")
			break
		}
		env.stack.push(cond.Expr, ev.Outcome)
		env.logger.With(map[string]any{
			"exec":    env.execID,
			"seq":     ev.Seq,
			"depth":   env.stack.len(),
			"outcome": ev.Outcome,
		}).Debugf("Opened branch scope")

	case flowtrace.EvReturn:
		env.terminal = &flowtrace.ReturnNode{Expr: env.synth.returnExpr(ev)}
		return true, nil

	default:
		return false, &flowtrace.LogConsistencyError{Seq: ev.Seq, Msg: "invalid event kind"}
	}

	return false, nil
}

// finalize closes open scopes around the terminal node and assembles the
// Result. A log without an explicit Return gets the undefined terminal plus
// a diagnostic rather than a guessed value.
func (env *traceEnv) finalize() *Result {
	if env.terminal == nil {
		env.terminal = &flowtrace.ReturnNode{
			Expr:     flowtrace.NewLiteral(flowtrace.UndefinedValue()),
			Implicit: true,
		}
		env.addDiagnostic(env.steps, DiagImplicitReturn, "log ended without an explicit return; result value is undefined")
	}

	tree := env.stack.chain(env.terminal)

	env.logger.With(map[string]any{
		"exec":  env.execID,
		"nodes": chainLen(tree),
	}).Infof("Reconstruction complete")

	return &Result{
		Tree:        tree,
		Diagnostics: env.diags,
		Partial:     env.partial,
		ExecID:      env.execID,
	}
}
