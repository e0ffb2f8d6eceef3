package flowtrace

import "fmt"

// LogConsistencyError reports a malformed event log: a Load with no
// dominating Store, events after the terminal Return, or a non-final Return.
// It is fatal for that call's reconstruction.
type LogConsistencyError struct {
	Seq int
	Msg string
}

func (e *LogConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent event log at seq %d: %s", e.Seq, e.Msg)
}

// UnsupportedOperationError reports an operator the synthesizer does not
// recognize. It is recoverable: the affected subexpression degrades to an
// opaque tainted placeholder and reconstruction continues with a diagnostic.
type UnsupportedOperationError struct {
	Seq int
	Op  Op
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %q at seq %d", e.Op.Mnemonic(), e.Seq)
}

// AmbiguousNameResolutionError reports more than one equally eligible
// dominating store for a load, which can only happen when the producing
// layer emitted duplicate sequence numbers. It is surfaced, never guessed
// around.
type AmbiguousNameResolutionError struct {
	Seq  int
	Slot Slot
}

func (e *AmbiguousNameResolutionError) Error() string {
	return fmt.Sprintf("ambiguous dominating store for slot %q (id %d) at seq %d",
		e.Slot.Name, e.Slot.ID, e.Seq)
}
