package treeexec

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"sync"

	"github.com/flowtrace/flowtrace"
)

// Fingerprinter provides deterministic hashing of expressions and decision
// trees with caching. Two structurally equal values always produce the same
// fingerprint, which gives a cheap equality fast path and backs the
// determinism guarantee tests.
type Fingerprinter struct {
	mu    sync.RWMutex
	cache map[flowtrace.Expression]string // Expression pointer → fingerprint hex
}

// NewFingerprinter creates a new fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{
		cache: make(map[flowtrace.Expression]string, 256),
	}
}

// FingerprintExpr returns a deterministic hex fingerprint for an expression.
func (fp *Fingerprinter) FingerprintExpr(e flowtrace.Expression) string {
	if e == nil {
		return "nil"
	}

	// Check cache (keyed by node identity; expressions are immutable)
	fp.mu.RLock()
	if sum, ok := fp.cache[e]; ok {
		fp.mu.RUnlock()
		return sum
	}
	fp.mu.RUnlock()

	h := sha256.New()
	hashExpr(h, e)
	hex := fmt.Sprintf("%x", h.Sum(nil))

	fp.mu.Lock()
	fp.cache[e] = hex
	fp.mu.Unlock()

	return hex
}

// FingerprintTree returns a deterministic hex fingerprint for a decision
// chain. Tree fingerprints are not cached; chains are short.
func (fp *Fingerprinter) FingerprintTree(n flowtrace.Node) string {
	if n == nil {
		return "nil"
	}
	h := sha256.New()
	hashNode(h, n)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Reset clears the cache.
func (fp *Fingerprinter) Reset() {
	fp.mu.Lock()
	fp.cache = make(map[flowtrace.Expression]string, 256)
	fp.mu.Unlock()
}

func hashExpr(h hash.Hash, e flowtrace.Expression) {
	switch t := e.(type) {
	case *flowtrace.Literal:
		h.Write([]byte{'L', byte(t.Value.Kind)})
		switch t.Value.Kind {
		case flowtrace.KindInt:
			binary.Write(h, binary.LittleEndian, t.Value.Int)
		case flowtrace.KindFloat:
			binary.Write(h, binary.LittleEndian, math.Float64bits(t.Value.Float))
		case flowtrace.KindBool:
			if t.Value.Bool {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	case *flowtrace.Name:
		h.Write([]byte{'N'})
		h.Write([]byte(t.Ident))
	case *flowtrace.Infix:
		h.Write([]byte{'I'})
		binary.Write(h, binary.LittleEndian, uint16(t.Op))
		hashExpr(h, t.Left)
		hashExpr(h, t.Right)
	default:
		h.Write([]byte{'?'})
	}
}

func hashNode(h hash.Hash, n flowtrace.Node) {
	switch t := n.(type) {
	case *flowtrace.BranchNode:
		h.Write([]byte{'B'})
		if t.Outcome {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		hashExpr(h, t.Condition)
		if t.Body != nil {
			hashNode(h, t.Body)
		}
	case *flowtrace.ReturnNode:
		h.Write([]byte{'R'})
		if t.Implicit {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		hashExpr(h, t.Expr)
	}
}
