// Package flowtrace defines the data model shared by the instrumentation
// boundary and the reconstruction engine: runtime values, trace events, the
// event log, symbolic expressions and the decision IR.
//
// The event log records one concrete execution of an instrumented function.
// The treeexec package replays it into a minimal decision tree that keeps
// only the branches whose conditions depend on traceable inputs.
package flowtrace

// EventKind discriminates the five primitive trace events.
type EventKind uint8

const (
	EvInvalid EventKind = iota
	EvStore
	EvLoad
	EvBinOp
	EvBranch
	EvReturn
)

func (k EventKind) String() string {
	switch k {
	case EvStore:
		return "store"
	case EvLoad:
		return "load"
	case EvBinOp:
		return "binop"
	case EvBranch:
		return "branch"
	case EvReturn:
		return "return"
	default:
		return "invalid"
	}
}

// Event is one primitive observation emitted during execution. Fields beyond
// Seq/Kind/Tainted are populated per kind:
//
//	Store:  Slot, Val (stored value), optionally Expr
//	Load:   Slot, Val (loaded value)
//	BinOp:  Op, Left, Right, Val (result)
//	Branch: Val (condition value), Outcome
//	Return: Val (returned value)
//
// Tainted is the taint of the produced value (for Branch, of the condition).
type Event struct {
	Seq     int
	Kind    EventKind
	Tainted bool

	Slot Slot
	Val  Ref

	Op    Op
	Left  Ref
	Right Ref

	Outcome bool

	// Expr optionally carries a pre-synthesized expression for a Store.
	// The Recorder seeds traceable inputs this way; when nil the engine
	// synthesizes the expression from the stored value's provenance.
	// Expr does not survive serialization.
	Expr Expression
}

// StoreEvent builds a Store event. Seq is assigned on append.
func StoreEvent(slot Slot, val Ref, tainted bool, expr Expression) Event {
	return Event{Kind: EvStore, Slot: slot, Val: val, Tainted: tainted, Expr: expr}
}

// LoadEvent builds a Load event reading the dominating store of slot.
func LoadEvent(slot Slot, val Ref, tainted bool) Event {
	return Event{Kind: EvLoad, Slot: slot, Val: val, Tainted: tainted}
}

// BinOpEvent builds a BinOp event producing result from left and right.
func BinOpEvent(op Op, left, right, result Ref, tainted bool) Event {
	return Event{Kind: EvBinOp, Op: op, Left: left, Right: right, Val: result, Tainted: tainted}
}

// BranchEvent builds a Branch event for an evaluated condition and the arm
// about to execute.
func BranchEvent(cond Ref, outcome bool, tainted bool) Event {
	return Event{Kind: EvBranch, Val: cond, Outcome: outcome, Tainted: tainted}
}

// ReturnEvent builds the terminal Return event.
func ReturnEvent(val Ref, tainted bool) Event {
	return Event{Kind: EvReturn, Val: val, Tainted: tainted}
}
