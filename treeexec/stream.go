package treeexec

import (
	"context"
	"fmt"

	"github.com/flowtrace/flowtrace"
)

// Reconstructor consumes events incrementally, in strict log order, for
// callers that reconstruct while the traced function is still executing. Its
// only suspension point is "wait for next event": everything consumed so far
// obeys the same ordering guarantees as a batch replay, and Result returns
// the same IR the batch API would produce for the same events.
//
// A Reconstructor serves exactly one call and is not safe for concurrent use.
type Reconstructor struct {
	env     *traceEnv
	prevSeq int
	stores  map[flowtrace.SlotID]struct{}
	done    bool
	result  *Result
}

// NewReconstructor creates an incremental reconstructor.
func NewReconstructor(ctx context.Context, opts ...Options) *Reconstructor {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	return &Reconstructor{
		env:     newTraceEnv(ctx, opt),
		prevSeq: -1,
		stores:  make(map[flowtrace.SlotID]struct{}),
	}
}

// Feed consumes the next event. Ingestion invariants are enforced as events
// arrive: ordering, dominating stores, and nothing after the terminal
// Return.
func (r *Reconstructor) Feed(ev flowtrace.Event) error {
	if r.done {
		return &flowtrace.LogConsistencyError{Seq: ev.Seq, Msg: "event after terminal return"}
	}
	if ev.Seq < r.prevSeq {
		return &flowtrace.LogConsistencyError{Seq: ev.Seq, Msg: "events out of order"}
	}
	r.prevSeq = ev.Seq

	switch ev.Kind {
	case flowtrace.EvStore:
		r.stores[ev.Slot.ID] = struct{}{}
	case flowtrace.EvLoad:
		if _, ok := r.stores[ev.Slot.ID]; !ok {
			return &flowtrace.LogConsistencyError{Seq: ev.Seq, Msg: "load with no dominating store for slot " + ev.Slot.Name}
		}
	}

	done, err := r.env.step(ev)
	if err != nil {
		return err
	}
	r.done = done
	return nil
}

// Done reports whether the terminal Return has been consumed.
func (r *Reconstructor) Done() bool { return r.done }

// Result finalizes and returns the reconstruction. Calling it before the
// terminal Return yields the implicit fall-through terminal for whatever has
// been consumed so far. The result is computed once; later calls return the
// same value.
func (r *Reconstructor) Result() (*Result, error) {
	if r.result == nil {
		r.result = r.env.finalize()
	}
	return r.result, nil
}

// Remaining feeds every event from a completed log that has not been
// consumed yet, by sequence number. Convenience for switching from
// streaming to batch completion.
func (r *Reconstructor) Remaining(log *flowtrace.EventLog) error {
	if log == nil {
		return fmt.Errorf("event log cannot be nil")
	}
	for _, ev := range log.Events() {
		if ev.Seq <= r.prevSeq {
			continue
		}
		if err := r.Feed(ev); err != nil {
			return err
		}
	}
	return nil
}
