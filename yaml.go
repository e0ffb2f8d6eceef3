package flowtrace

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML wire format for event logs. Values are encoded as native scalars so
// logs stay hand-editable; expressions never survive serialization (the
// engine re-synthesizes them from provenance).

type refYAML struct {
	ID uint64 `yaml:"id,omitempty"`
	V  any    `yaml:"v"`
}

type slotYAML struct {
	ID   uint64 `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

type eventYAML struct {
	Seq     int       `yaml:"seq"`
	Kind    string    `yaml:"kind"`
	Tainted bool      `yaml:"tainted,omitempty"`
	Slot    *slotYAML `yaml:"slot,omitempty"`
	Val     *refYAML  `yaml:"val,omitempty"`
	Op      string    `yaml:"op,omitempty"`
	Left    *refYAML  `yaml:"left,omitempty"`
	Right   *refYAML  `yaml:"right,omitempty"`
	Outcome *bool     `yaml:"outcome,omitempty"`
}

type logYAML struct {
	Events []eventYAML `yaml:"events"`
}

func valueToAny(v Value) any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	case KindUnknown:
		return "<unknown>"
	case KindUndefined:
		return "<undefined>"
	default:
		return nil
	}
}

func valueFromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case int:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint64:
		return IntValue(int64(t)), nil
	case float64:
		return FloatValue(t), nil
	case bool:
		return BoolValue(t), nil
	case string:
		switch t {
		case "<unknown>":
			return UnknownValue(), nil
		case "<undefined>":
			return UndefinedValue(), nil
		}
		return Value{}, fmt.Errorf("unsupported string value %q", t)
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

func refToYAML(r Ref) *refYAML {
	return &refYAML{ID: uint64(r.ID), V: valueToAny(r.Value)}
}

func refFromYAML(r *refYAML) (Ref, error) {
	if r == nil {
		return Ref{}, nil
	}
	v, err := valueFromAny(r.V)
	if err != nil {
		return Ref{}, err
	}
	return Ref{ID: ValueID(r.ID), Value: v}, nil
}

// MarshalYAML implements yaml.Marshaler.
func (l *EventLog) MarshalYAML() (any, error) {
	out := logYAML{Events: make([]eventYAML, 0, len(l.events))}
	for _, ev := range l.events {
		w := eventYAML{
			Seq:     ev.Seq,
			Kind:    ev.Kind.String(),
			Tainted: ev.Tainted,
		}
		switch ev.Kind {
		case EvStore, EvLoad:
			w.Slot = &slotYAML{ID: uint64(ev.Slot.ID), Name: ev.Slot.Name}
			w.Val = refToYAML(ev.Val)
		case EvBinOp:
			w.Op = ev.Op.Mnemonic()
			w.Left = refToYAML(ev.Left)
			w.Right = refToYAML(ev.Right)
			w.Val = refToYAML(ev.Val)
		case EvBranch:
			w.Val = refToYAML(ev.Val)
			outcome := ev.Outcome
			w.Outcome = &outcome
		case EvReturn:
			w.Val = refToYAML(ev.Val)
		default:
			return nil, fmt.Errorf("cannot serialize event of kind %d at seq %d", ev.Kind, ev.Seq)
		}
		out.Events = append(out.Events, w)
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *EventLog) UnmarshalYAML(node *yaml.Node) error {
	var in logYAML
	if err := node.Decode(&in); err != nil {
		return fmt.Errorf("decoding event log: %w", err)
	}

	events := make([]Event, 0, len(in.Events))
	for i, w := range in.Events {
		ev := Event{Seq: w.Seq, Tainted: w.Tainted}

		switch w.Kind {
		case "store":
			ev.Kind = EvStore
		case "load":
			ev.Kind = EvLoad
		case "binop":
			ev.Kind = EvBinOp
		case "branch":
			ev.Kind = EvBranch
		case "return":
			ev.Kind = EvReturn
		default:
			return fmt.Errorf("event %d: unknown kind %q", i, w.Kind)
		}

		var err error
		if ev.Val, err = refFromYAML(w.Val); err != nil {
			return fmt.Errorf("event %d: val: %w", i, err)
		}

		switch ev.Kind {
		case EvStore, EvLoad:
			if w.Slot == nil {
				return fmt.Errorf("event %d: %s requires a slot", i, w.Kind)
			}
			ev.Slot = Slot{ID: SlotID(w.Slot.ID), Name: w.Slot.Name}
		case EvBinOp:
			// Unknown mnemonics decode to OpInvalid; the engine degrades
			// them per its unsupported-operation policy instead of the
			// codec rejecting the whole log.
			ev.Op, _ = ParseOp(w.Op)
			if ev.Left, err = refFromYAML(w.Left); err != nil {
				return fmt.Errorf("event %d: left: %w", i, err)
			}
			if ev.Right, err = refFromYAML(w.Right); err != nil {
				return fmt.Errorf("event %d: right: %w", i, err)
			}
		case EvBranch:
			if w.Outcome == nil {
				return fmt.Errorf("event %d: branch requires an outcome", i)
			}
			ev.Outcome = *w.Outcome
		}

		events = append(events, ev)
	}

	*l = *FromEvents(events)
	return nil
}
