package flowtrace

import "strings"

// Expression is a symbolic expression synthesized from a trace. Expressions
// are immutable and compared structurally.
type Expression interface {
	isExpression()

	// Equal reports structural equality.
	Equal(Expression) bool

	// String renders the expression canonically: operators space-separated,
	// sub-expressions parenthesized, floats with four decimal places.
	String() string
}

// Literal is a concrete scalar. Any untainted value folds to a Literal
// regardless of how it was computed.
type Literal struct {
	Value Value
}

// Name is a recovered source-level variable name. Only traceable inputs and
// unmodified copies of them surface as names.
type Name struct {
	Ident string
}

// Infix is a binary operation over two subexpressions.
type Infix struct {
	Op    Op
	Left  Expression
	Right Expression
}

func NewLiteral(v Value) *Literal { return &Literal{Value: v} }
func NewName(ident string) *Name  { return &Name{Ident: ident} }
func NewInfix(op Op, l, r Expression) *Infix {
	return &Infix{Op: op, Left: l, Right: r}
}

// UnknownExpr returns the opaque placeholder expression substituted for
// subexpressions the synthesizer could not reconstruct.
func UnknownExpr() *Literal { return NewLiteral(UnknownValue()) }

func (*Literal) isExpression() {}
func (*Name) isExpression()    {}
func (*Infix) isExpression()   {}

func (l *Literal) Equal(o Expression) bool {
	ol, ok := o.(*Literal)
	return ok && l.Value.Equal(ol.Value)
}

func (n *Name) Equal(o Expression) bool {
	on, ok := o.(*Name)
	return ok && n.Ident == on.Ident
}

func (i *Infix) Equal(o Expression) bool {
	oi, ok := o.(*Infix)
	return ok && i.Op == oi.Op && i.Left.Equal(oi.Left) && i.Right.Equal(oi.Right)
}

func (l *Literal) String() string { return l.Value.String() }

func (n *Name) String() string { return n.Ident }

func (i *Infix) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(i.Left.String())
	b.WriteByte(' ')
	b.WriteString(i.Op.String())
	b.WriteByte(' ')
	b.WriteString(i.Right.String())
	b.WriteByte(')')
	return b.String()
}

// IsConcreteBool reports whether the expression is a boolean literal. A
// branch condition that folds to a concrete boolean never depends on
// traceable data and is elided from the decision IR.
func IsConcreteBool(e Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.Value.Kind == KindBool
}
