package flowtrace

// Op identifies a binary operator recorded by the instrumentation layer.
// The set mirrors the operators the tracing compiler pass can emit; anything
// outside this set is reported as unsupported during reconstruction.
type Op int

const (
	OpInvalid Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpGt
	OpGe
	OpLt
	OpLe
	OpEq
	OpNe
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLshift
	OpRshift
)

// Known reports whether the operator is one the engine understands.
func (op Op) Known() bool {
	return op > OpInvalid && op <= OpRshift
}

// String returns the infix symbol used in canonical rendering.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpLshift:
		return "<<"
	case OpRshift:
		return ">>"
	default:
		return "?"
	}
}

// Mnemonic returns the wire name used in serialized event logs.
func (op Op) Mnemonic() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpFloorDiv:
		return "floordiv"
	case OpMod:
		return "mod"
	case OpPow:
		return "pow"
	case OpGt:
		return "gt"
	case OpGe:
		return "ge"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpBitAnd:
		return "bitand"
	case OpBitOr:
		return "bitor"
	case OpBitXor:
		return "bitxor"
	case OpLshift:
		return "lshift"
	case OpRshift:
		return "rshift"
	default:
		return "invalid"
	}
}

var opMnemonics = map[string]Op{
	"add":      OpAdd,
	"sub":      OpSub,
	"mul":      OpMul,
	"div":      OpDiv,
	"truediv":  OpDiv, // alias emitted by some frontends
	"floordiv": OpFloorDiv,
	"mod":      OpMod,
	"pow":      OpPow,
	"gt":       OpGt,
	"ge":       OpGe,
	"lt":       OpLt,
	"le":       OpLe,
	"eq":       OpEq,
	"ne":       OpNe,
	"bitand":   OpBitAnd,
	"bitor":    OpBitOr,
	"bitxor":   OpBitXor,
	"lshift":   OpLshift,
	"rshift":   OpRshift,
}

// ParseOp resolves a wire mnemonic to an Op.
// Unrecognized mnemonics return OpInvalid and false; the reconstruction
// engine turns those into UnsupportedOperationError diagnostics rather than
// rejecting the whole log.
func ParseOp(s string) (Op, bool) {
	op, ok := opMnemonics[s]
	if !ok {
		return OpInvalid, false
	}
	return op, true
}
