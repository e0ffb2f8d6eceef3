package flowtrace

// Taint propagation rules. Taint is sticky: any operation with at least one
// tainted operand produces a tainted result. Constants and loads of
// non-traceable slots are untainted. These are total functions with no state;
// seeding happens at the input boundary (see Recorder.Input).

// Propagate returns the taint of a value produced by op over the given
// operand taints. The operator never affects the result; it is accepted so
// the contract stays total over every recorded operation.
func Propagate(op Op, operands ...bool) bool {
	_ = op
	for _, t := range operands {
		if t {
			return true
		}
	}
	return false
}

// PropagateLoad returns the taint of a load: the taint of the dominating
// store's value.
func PropagateLoad(source bool) bool { return source }

// PropagateBranch returns the taint of a branch condition.
func PropagateBranch(cond bool) bool { return cond }
