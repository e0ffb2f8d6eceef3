package treeexec

import "github.com/flowtrace/flowtrace"

// synthesizer turns runtime values into symbolic expressions as the replay
// walks the log. It owns the per-call value and slot tables; nothing here is
// shared across calls.
//
// Folding is immediate and unconditional: the moment a value's taint
// resolves to false its expression collapses to the literal scalar the log
// recorded, regardless of how it was computed.
type synthesizer struct {
	values valueTable
	slots  map[flowtrace.SlotID]AValue
}

func newSynthesizer() *synthesizer {
	return &synthesizer{
		values: make(valueTable),
		slots:  make(map[flowtrace.SlotID]AValue),
	}
}

// store binds a slot to its abstract value. Name recovery happens here: a
// tainted store whose value has no recorded producer is a taint source, so
// it surfaces as the slot's display name. Copies keep whatever expression
// the dominating store carried; computed stores carry their full tree, which
// is what later loads re-expand to.
func (s *synthesizer) store(ev flowtrace.Event) {
	var av AValue
	switch {
	case !ev.Tainted:
		av = literalValue(ev.Val.Value)
	case ev.Expr != nil:
		av = taintedValue(ev.Expr)
	default:
		if known, ok := s.values[ev.Val.ID]; ok && ev.Val.ID != 0 {
			av = known
		} else {
			av = taintedValue(flowtrace.NewName(ev.Slot.Name))
		}
	}
	s.slots[ev.Slot.ID] = av
	if ev.Val.ID != 0 {
		s.values[ev.Val.ID] = av
	}
}

// load resolves a slot read to the dominating store's expression.
func (s *synthesizer) load(ev flowtrace.Event) error {
	av, ok := s.slots[ev.Slot.ID]
	if !ok {
		return &flowtrace.LogConsistencyError{Seq: ev.Seq, Msg: "load with no dominating store for slot " + ev.Slot.Name}
	}
	if !ev.Tainted {
		av = literalValue(ev.Val.Value)
	}
	if ev.Val.ID != 0 {
		s.values[ev.Val.ID] = av
	}
	return nil
}

// binOp synthesizes the result of a binary operation. An untainted result
// folds to its recorded literal without inspecting the operator at all. A
// tainted result with an unrecognized operator returns
// UnsupportedOperationError; the caller decides between failing (strict
// mode) and degrading to the opaque placeholder.
func (s *synthesizer) binOp(ev flowtrace.Event) error {
	if !ev.Tainted {
		if ev.Val.ID != 0 {
			s.values[ev.Val.ID] = literalValue(ev.Val.Value)
		}
		return nil
	}
	if !ev.Op.Known() {
		return &flowtrace.UnsupportedOperationError{Seq: ev.Seq, Op: ev.Op}
	}
	left := s.values.resolve(ev.Left)
	right := s.values.resolve(ev.Right)
	expr := flowtrace.NewInfix(ev.Op, left.Expr, right.Expr)
	if ev.Val.ID != 0 {
		s.values[ev.Val.ID] = taintedValue(expr)
	}
	return nil
}

// degrade records the opaque placeholder for a value the synthesizer could
// not reconstruct. The placeholder is tainted so surviving structure above
// it is preserved.
func (s *synthesizer) degrade(ref flowtrace.Ref) {
	if ref.ID != 0 {
		s.values[ref.ID] = taintedValue(flowtrace.UnknownExpr())
	}
}

// condition resolves a branch condition value.
func (s *synthesizer) condition(ev flowtrace.Event) AValue {
	if !ev.Tainted {
		return literalValue(ev.Val.Value)
	}
	return s.values.resolve(ev.Val)
}

// returnExpr resolves the returned value: a literal when untainted, the
// full synthesized expression when tainted.
func (s *synthesizer) returnExpr(ev flowtrace.Event) flowtrace.Expression {
	if !ev.Tainted {
		return flowtrace.NewLiteral(ev.Val.Value)
	}
	return s.values.resolve(ev.Val).Expr
}
