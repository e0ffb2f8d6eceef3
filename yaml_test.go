package flowtrace

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"
)

func TestEventLogYAML_RoundTrip(t *testing.T) {
	rec := NewRecorder()
	x := rec.Input(Slot{ID: 1, Name: "x"}, FloatValue(1.5))
	cond := rec.BinOp(OpGt, x, rec.Constant(IntValue(1)), BoolValue(true))
	rec.Branch(cond, true)
	rec.Return(cond)

	data, err := yaml.Marshal(rec.Log())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded EventLog
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	// Expressions are engine-internal and never serialized.
	diff := cmp.Diff(rec.Log().Events(), decoded.Events(),
		cmpopts.IgnoreFields(Event{}, "Expr"))
	if diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEventLogYAML_HandEditedLog(t *testing.T) {
	input := `events:
  - seq: 0
    kind: store
    tainted: true
    slot: {id: 1, name: temperature}
    val: {id: 1, v: 38.2}
  - seq: 1
    kind: binop
    tainted: true
    op: gt
    left: {id: 1, v: 38.2}
    right: {v: 37.5}
    val: {id: 2, v: true}
  - seq: 2
    kind: return
    tainted: true
    val: {id: 2, v: true}
`

	var log EventLog
	if err := yaml.Unmarshal([]byte(input), &log); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if err := log.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	events := log.Events()
	if events[1].Op != OpGt {
		t.Errorf("op = %v, want OpGt", events[1].Op)
	}
	if events[1].Right.ID != 0 {
		t.Errorf("constant operand ID = %d, want 0", events[1].Right.ID)
	}
	if !events[0].Val.Value.Equal(FloatValue(38.2)) {
		t.Errorf("stored value = %v", events[0].Val.Value)
	}
}

func TestEventLogYAML_UnknownMnemonicDecodesToInvalid(t *testing.T) {
	input := `events:
  - seq: 0
    kind: binop
    tainted: true
    op: matmul
    left: {id: 1, v: 1}
    right: {v: 2}
    val: {id: 2, v: 3}
`

	var log EventLog
	if err := yaml.Unmarshal([]byte(input), &log); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if log.Events()[0].Op != OpInvalid {
		t.Errorf("op = %v, want OpInvalid", log.Events()[0].Op)
	}
}

func TestEventLogYAML_RejectsUnknownKind(t *testing.T) {
	input := `events:
  - seq: 0
    kind: teleport
    val: {v: 1}
`

	var log EventLog
	err := yaml.Unmarshal([]byte(input), &log)
	if err == nil || !strings.Contains(err.Error(), "teleport") {
		t.Fatalf("expected unknown-kind error, got %v", err)
	}
}
