package flowtrace

import (
	"errors"
	"strings"
	"testing"
)

func TestEventLog_AppendAssignsSequence(t *testing.T) {
	l := NewEventLog()
	slot := Slot{ID: 1, Name: "x"}
	l.Append(StoreEvent(slot, Ref{ID: 1, Value: IntValue(1)}, false, nil))
	l.Append(LoadEvent(slot, Ref{ID: 2, Value: IntValue(1)}, false))

	events := l.Events()
	if len(events) != 2 {
		t.Fatalf("Len = %d, want 2", len(events))
	}
	if events[0].Seq != 0 || events[1].Seq != 1 {
		t.Errorf("seqs = %d, %d; want 0, 1", events[0].Seq, events[1].Seq)
	}
}

func TestValidate_WellFormed(t *testing.T) {
	rec := NewRecorder()
	x := rec.Input(Slot{ID: 1, Name: "x"}, IntValue(5))
	cond := rec.BinOp(OpGt, x, rec.Constant(IntValue(0)), BoolValue(true))
	rec.Branch(cond, true)
	rec.Return(x)

	if err := rec.Log().Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !rec.Log().Terminated() {
		t.Error("log ending in return must report Terminated")
	}
}

func TestValidate_OutOfOrder(t *testing.T) {
	slot := Slot{ID: 1, Name: "x"}
	l := FromEvents([]Event{
		{Seq: 5, Kind: EvStore, Slot: slot, Val: Ref{ID: 1, Value: IntValue(1)}},
		{Seq: 2, Kind: EvLoad, Slot: slot, Val: Ref{ID: 2, Value: IntValue(1)}},
	})

	err := l.Validate()
	var lce *LogConsistencyError
	if !errors.As(err, &lce) {
		t.Fatalf("expected LogConsistencyError, got %v", err)
	}
	if lce.Seq != 2 {
		t.Errorf("error seq = %d, want 2", lce.Seq)
	}
}

func TestValidate_LoadWithoutStore(t *testing.T) {
	l := FromEvents([]Event{
		{Seq: 0, Kind: EvLoad, Slot: Slot{ID: 9, Name: "ghost"}, Val: Ref{ID: 1, Value: IntValue(0)}},
	})

	err := l.Validate()
	var lce *LogConsistencyError
	if !errors.As(err, &lce) {
		t.Fatalf("expected LogConsistencyError, got %v", err)
	}
	if !strings.Contains(lce.Error(), "ghost") {
		t.Errorf("error should name the slot: %v", lce)
	}
}

func TestValidate_AmbiguousDuplicateStores(t *testing.T) {
	slot := Slot{ID: 1, Name: "x"}
	l := FromEvents([]Event{
		{Seq: 0, Kind: EvStore, Slot: slot, Val: Ref{ID: 1, Value: IntValue(1)}},
		{Seq: 0, Kind: EvStore, Slot: slot, Val: Ref{ID: 2, Value: IntValue(2)}},
		{Seq: 1, Kind: EvLoad, Slot: slot, Val: Ref{ID: 3, Value: IntValue(2)}},
	})

	err := l.Validate()
	var amb *AmbiguousNameResolutionError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguousNameResolutionError, got %v", err)
	}
	if amb.Slot.Name != "x" {
		t.Errorf("error slot = %q, want x", amb.Slot.Name)
	}
}

func TestValidate_EventAfterReturn(t *testing.T) {
	l := FromEvents([]Event{
		{Seq: 0, Kind: EvReturn, Val: Ref{ID: 1, Value: IntValue(1)}},
		{Seq: 1, Kind: EvStore, Slot: Slot{ID: 1, Name: "x"}, Val: Ref{ID: 2, Value: IntValue(2)}},
	})

	var lce *LogConsistencyError
	if !errors.As(l.Validate(), &lce) {
		t.Fatal("expected LogConsistencyError for event after return")
	}
}

func TestValidate_UnterminatedLogIsValid(t *testing.T) {
	l := FromEvents([]Event{
		{Seq: 0, Kind: EvStore, Slot: Slot{ID: 1, Name: "x"}, Val: Ref{ID: 1, Value: IntValue(1)}},
	})

	if err := l.Validate(); err != nil {
		t.Errorf("unterminated log must validate: %v", err)
	}
	if l.Terminated() {
		t.Error("log without return must not report Terminated")
	}
}

func TestFromEvents_PreservesSequences(t *testing.T) {
	l := FromEvents([]Event{
		{Seq: 10, Kind: EvStore, Slot: Slot{ID: 1, Name: "x"}, Val: Ref{ID: 1, Value: IntValue(1)}},
	})
	l.Append(ReturnEvent(Ref{ID: 1, Value: IntValue(1)}, false))

	events := l.Events()
	if events[0].Seq != 10 || events[1].Seq != 11 {
		t.Errorf("seqs = %d, %d; want 10, 11", events[0].Seq, events[1].Seq)
	}
}
