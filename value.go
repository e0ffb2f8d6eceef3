package flowtrace

import (
	"fmt"
	"strconv"
)

// ValueKind classifies runtime scalars carried by events.
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindInt
	KindFloat
	KindBool

	// KindUnknown is the opaque placeholder substituted when a subexpression
	// could not be synthesized (e.g. an unrecognized operator). It is always
	// treated as tainted so reconstruction can continue.
	KindUnknown

	// KindUndefined marks the result of a call that fell through without an
	// explicit return. The engine signals it instead of guessing a value.
	KindUndefined
)

// Value is a scalar observed during execution. Only one of the payload
// fields is meaningful, selected by Kind.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
}

func IntValue(i int64) Value     { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func BoolValue(b bool) Value     { return Value{Kind: KindBool, Bool: b} }

// UnknownValue returns the opaque placeholder scalar.
func UnknownValue() Value { return Value{Kind: KindUnknown} }

// UndefinedValue returns the fall-through result marker.
func UndefinedValue() Value { return Value{Kind: KindUndefined} }

// Equal compares two values for exact equality, kind included.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindBool:
		return v.Bool == o.Bool
	default:
		return true
	}
}

// String renders the value in the canonical textual form: integers plain,
// floats with four decimal places, booleans as True/False.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', 4, 64)
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindUnknown:
		return "<unknown>"
	case KindUndefined:
		return "<undefined>"
	default:
		return fmt.Sprintf("<invalid kind %d>", v.Kind)
	}
}

// ValueID is the identity of a produced value within a single event log.
// The instrumentation layer assigns a fresh ID to every value it materializes
// (loads, operation results, input bindings); ID 0 means "no provenance",
// i.e. a bare constant operand.
type ValueID uint64

// Ref is a value occurrence: the scalar plus its provenance identity.
type Ref struct {
	ID    ValueID
	Value Value
}

// ConstRef wraps a constant with no provenance.
func ConstRef(v Value) Ref { return Ref{Value: v} }

// SlotID identifies a storage location. Slots are distinguished by identity,
// not display name; inlined callee parameters get slots of their own.
type SlotID uint64

// Slot is a storage location together with its preferred display name.
// The name may be synthetic (e.g. "$tmp3") for compiler temporaries.
type Slot struct {
	ID   SlotID
	Name string
}
