package treeexec

import "github.com/flowtrace/flowtrace"

// AValue is the abstract value tracked during replay: the synthesized
// expression for a runtime value plus its taint.
type AValue struct {
	Expr    flowtrace.Expression
	Tainted bool
}

func literalValue(v flowtrace.Value) AValue {
	return AValue{Expr: flowtrace.NewLiteral(v)}
}

func taintedValue(e flowtrace.Expression) AValue {
	return AValue{Expr: e, Tainted: true}
}

// valueTable maps value identities to their abstract values. One table per
// call; identities are unique within a single log.
type valueTable map[flowtrace.ValueID]AValue

// resolve returns the abstract value for a value occurrence. Occurrences
// with no provenance (ID 0) and occurrences the table has never seen are
// constants: untainted literals of the recorded scalar.
func (t valueTable) resolve(ref flowtrace.Ref) AValue {
	if ref.ID != 0 {
		if av, ok := t[ref.ID]; ok {
			return av
		}
	}
	return literalValue(ref.Value)
}
