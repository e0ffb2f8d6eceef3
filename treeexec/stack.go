package treeexec

import "github.com/flowtrace/flowtrace"

// branchFrame is one surviving conditional scope opened during replay.
type branchFrame struct {
	cond    flowtrace.Expression
	outcome bool
}

// nodeStack tracks the open branch scopes from root to innermost.
type nodeStack struct {
	frames []branchFrame
}

func newNodeStack() *nodeStack {
	return &nodeStack{
		frames: make([]branchFrame, 0, 8),
	}
}

// push opens a new innermost scope.
func (s *nodeStack) push(cond flowtrace.Expression, outcome bool) {
	s.frames = append(s.frames, branchFrame{cond: cond, outcome: outcome})
}

// len returns the number of open scopes.
func (s *nodeStack) len() int { return len(s.frames) }

// chain closes every open scope around the terminal node and returns the
// root of the decision chain. Frames nest outermost-first, so the chain is
// built from the inside out.
func (s *nodeStack) chain(terminal flowtrace.Node) flowtrace.Node {
	node := terminal
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		node = &flowtrace.BranchNode{Condition: f.cond, Outcome: f.outcome, Body: node}
	}
	return node
}
