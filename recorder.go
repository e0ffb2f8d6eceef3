package flowtrace

// Recorder builds a well-formed event log at the instrumentation boundary.
// It assigns value identities, seeds taint for designated traceable inputs
// and propagates taint through every recorded operation, so producers only
// report what happened.
//
// A Recorder belongs to exactly one call; it is not safe for concurrent use
// and holds no state beyond the log it is building.
type Recorder struct {
	log    *EventLog
	nextID ValueID
	taint  map[ValueID]bool

	// Per-slot shadow of the dominating store, so loads can recover the
	// stored value and taint without rescanning the log.
	slotVal   map[SlotID]Value
	slotTaint map[SlotID]bool
}

// NewRecorder returns a Recorder with a fresh, empty log.
func NewRecorder() *Recorder {
	return &Recorder{
		log:       NewEventLog(),
		nextID:    1,
		taint:     make(map[ValueID]bool),
		slotVal:   make(map[SlotID]Value),
		slotTaint: make(map[SlotID]bool),
	}
}

// Log returns the log built so far.
func (r *Recorder) Log() *EventLog { return r.log }

func (r *Recorder) fresh(v Value, tainted bool) Ref {
	ref := Ref{ID: r.nextID, Value: v}
	r.nextID++
	r.taint[ref.ID] = tainted
	return ref
}

func (r *Recorder) taintOf(ref Ref) bool {
	if ref.ID == 0 {
		return false
	}
	return r.taint[ref.ID]
}

// Constant introduces a literal with no provenance. Constants are untainted
// and need no event.
func (r *Recorder) Constant(v Value) Ref { return ConstRef(v) }

// Input binds a traceable input to its slot: a tainted Store pre-seeded with
// the slot's display name.
func (r *Recorder) Input(slot Slot, v Value) Ref {
	ref := r.fresh(v, true)
	r.slotVal[slot.ID] = v
	r.slotTaint[slot.ID] = true
	r.log.Append(StoreEvent(slot, ref, true, NewName(slot.Name)))
	return ref
}

// Store binds a slot to a previously produced value.
func (r *Recorder) Store(slot Slot, val Ref) {
	tainted := r.taintOf(val)
	r.slotVal[slot.ID] = val.Value
	r.slotTaint[slot.ID] = tainted
	r.log.Append(StoreEvent(slot, val, tainted, nil))
}

// Load reads the most recent store to slot. The returned Ref carries a fresh
// identity, like a compiler temporary.
func (r *Recorder) Load(slot Slot) (Ref, error) {
	v, ok := r.slotVal[slot.ID]
	if !ok {
		return Ref{}, &LogConsistencyError{Seq: r.log.Len(), Msg: "load with no dominating store for slot " + slot.Name}
	}
	tainted := PropagateLoad(r.slotTaint[slot.ID])
	ref := r.fresh(v, tainted)
	r.log.Append(LoadEvent(slot, ref, tainted))
	return ref, nil
}

// BinOp records a binary operation and its observed result.
func (r *Recorder) BinOp(op Op, left, right Ref, result Value) Ref {
	tainted := Propagate(op, r.taintOf(left), r.taintOf(right))
	ref := r.fresh(result, tainted)
	r.log.Append(BinOpEvent(op, left, right, ref, tainted))
	return ref
}

// Branch records an evaluated condition and which arm is about to execute.
func (r *Recorder) Branch(cond Ref, outcome bool) {
	r.log.Append(BranchEvent(cond, outcome, PropagateBranch(r.taintOf(cond))))
}

// Return records the terminal event.
func (r *Recorder) Return(val Ref) {
	r.log.Append(ReturnEvent(val, r.taintOf(val)))
}
