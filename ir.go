package flowtrace

import "strings"

// Node is a node of the decision IR. Because the log records one concrete
// execution, the IR is always a single chain of BranchNodes ending in a
// ReturnNode, never a tree with two live arms.
type Node interface {
	isNode()

	// String renders the subtree canonically with two-space indentation.
	String() string
}

// BranchNode is a surviving conditional: its condition depends on traceable
// data. Outcome records which arm actually executed.
type BranchNode struct {
	Condition Expression
	Outcome   bool
	Body      Node
}

// ReturnNode terminates the chain. Implicit marks a call that fell through
// without an explicit return; its expression is the undefined marker.
type ReturnNode struct {
	Expr     Expression
	Implicit bool
}

func (*BranchNode) isNode() {}
func (*ReturnNode) isNode() {}

func (r *ReturnNode) String() string {
	return "return " + r.Expr.String()
}

func (b *BranchNode) String() string {
	var parts []string
	outcome := "False"
	if b.Outcome {
		outcome = "True"
	}
	parts = append(parts, "if "+b.Condition.String()+" (="+outcome+"):")
	if b.Body != nil {
		for _, line := range strings.Split(b.Body.String(), "\n") {
			parts = append(parts, "  "+line)
		}
	}
	return strings.Join(parts, "\n")
}

// Render returns the canonical textual rendering of the IR rooted at n.
// The output is reproducible bit-for-bit for a given IR.
func Render(n Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}

// Walk visits the chain from root to leaf, calling fn with each node and its
// nesting depth. It stops early if fn returns false.
func Walk(n Node, fn func(n Node, depth int) bool) {
	depth := 0
	for n != nil {
		if !fn(n, depth) {
			return
		}
		b, ok := n.(*BranchNode)
		if !ok {
			return
		}
		n = b.Body
		depth++
	}
}

// Terminal returns the leaf ReturnNode of the chain, or nil if the chain is
// malformed (a branch with no body).
func Terminal(n Node) *ReturnNode {
	for n != nil {
		switch t := n.(type) {
		case *ReturnNode:
			return t
		case *BranchNode:
			n = t.Body
		default:
			return nil
		}
	}
	return nil
}
