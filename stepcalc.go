// Package stepcalc provides an exact, step-by-step arithmetic kernel for Go.
//
// Design goals:
//   - Exact integer and rational results (lowest-terms fractions, never floats)
//   - Every rewrite recorded as a human-readable trace
//   - Immutable expression trees: simplification builds new trees
//   - AI/LLM friendly: JSON, LaTeX, and tool-call APIs
//   - Embeddable in Go services, CLI tools, and agent backends
package stepcalc

import (
	"strconv"
)

// Variable is the only variable symbol accepted by the parser.
const Variable = 'x'

// ============================================================
// Core Interface
// ============================================================

// Kind tags the concrete variant behind a Node.
type Kind int

const (
	KindNum Kind = iota
	KindVar
	KindOp
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNum:
		return "num"
	case KindVar:
		return "var"
	case KindOp:
		return "op"
	case KindError:
		return "error"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is one vertex of an expression tree. The set of implementations is
// closed: *Num, *Var, *BinOp and *ErrorNode.
type Node interface {
	Kind() Kind
	String() string
	LaTeX() string
	Equal(other Node) bool
	toJSON() map[string]interface{}
}

// ============================================================
// Operators
// ============================================================

// OpKind enumerates the binary operators. The numeric order doubles as the
// tier order used by the tree builder: higher values are folded first.
type OpKind int

const (
	OpAdd OpKind = iota
	OpSub
	OpMul
	OpDiv
)

const operatorChars = "+-*/"

func (k OpKind) String() string {
	if k < OpAdd || k > OpDiv {
		return "?"
	}
	return operatorChars[k : k+1]
}

// Precedence ranks the operator: Add and Sub bind looser than Mul and Div.
func (k OpKind) Precedence() int {
	if k == OpMul || k == OpDiv {
		return 2
	}
	return 1
}

func (k OpKind) additive() bool { return k == OpAdd || k == OpSub }

func opKindOf(c rune) (OpKind, bool) {
	switch c {
	case '+':
		return OpAdd, true
	case '-':
		return OpSub, true
	case '*':
		return OpMul, true
	case '/':
		return OpDiv, true
	}
	return 0, false
}

// ============================================================
// Num
// ============================================================

type Num struct{ val int64 }

func N(v int64) *Num { return &Num{val: v} }

func (n *Num) Kind() Kind            { return KindNum }
func (n *Num) Value() int64          { return n.val }
func (n *Num) String() string        { return strconv.FormatInt(n.val, 10) }
func (n *Num) LaTeX() string         { return n.String() }
func (n *Num) Equal(other Node) bool { o, ok := other.(*Num); return ok && n.val == o.val }
func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

// ============================================================
// Var
// ============================================================

type Var struct{ symbol rune }

func V(symbol rune) *Var { return &Var{symbol: symbol} }

func (v *Var) Kind() Kind            { return KindVar }
func (v *Var) Symbol() rune          { return v.symbol }
func (v *Var) String() string        { return string(v.symbol) }
func (v *Var) LaTeX() string         { return v.String() }
func (v *Var) Equal(other Node) bool { o, ok := other.(*Var); return ok && v.symbol == o.symbol }
func (v *Var) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "var", "name": v.String()}
}

// ============================================================
// BinOp
// ============================================================

type BinOp struct {
	op          OpKind
	left, right Node
}

// OpOf builds an operator node. Both children are required.
func OpOf(op OpKind, left, right Node) *BinOp {
	if left == nil || right == nil {
		panic("stepcalc: operator node requires two children")
	}
	return &BinOp{op: op, left: left, right: right}
}

// FracOf builds the fraction leaf pair num/den without reducing it.
func FracOf(num, den int64) *BinOp { return OpOf(OpDiv, N(num), N(den)) }

func (b *BinOp) Kind() Kind  { return KindOp }
func (b *BinOp) Op() OpKind  { return b.op }
func (b *BinOp) Left() Node  { return b.left }
func (b *BinOp) Right() Node { return b.right }

// Operators of one precedence level fold highest kind first, so "a*b/c" is
// a*(b/c) and "a+b-c" is a+(b-c). The wrap rules below keep every tree's
// text reparsing to the same shape.
func (b *BinOp) wrapLeft() bool {
	switch b.op {
	case OpDiv:
		return isAdditive(b.left) || isOp(b.left, OpMul)
	case OpMul:
		return isAdditive(b.left)
	case OpSub:
		return isOp(b.left, OpAdd)
	}
	return false
}

func (b *BinOp) wrapRight() bool {
	switch b.op {
	case OpDiv:
		return IsOperator(b.right)
	case OpMul:
		return isAdditive(b.right) || isOp(b.right, OpMul)
	case OpSub:
		return isAdditive(b.right)
	case OpAdd:
		return isOp(b.right, OpAdd)
	}
	return false
}

func (b *BinOp) String() string {
	l, r := b.left.String(), b.right.String()
	if b.wrapLeft() {
		l = "(" + l + ")"
	}
	if b.wrapRight() {
		r = "(" + r + ")"
	}
	return l + b.op.String() + r
}

func (b *BinOp) LaTeX() string {
	if b.op == OpDiv {
		return "\\frac{" + b.left.LaTeX() + "}{" + b.right.LaTeX() + "}"
	}
	l, r := b.left.LaTeX(), b.right.LaTeX()
	if b.wrapLeft() {
		l = "\\left(" + l + "\\right)"
	}
	if b.wrapRight() {
		r = "\\left(" + r + "\\right)"
	}
	switch b.op {
	case OpMul:
		return l + " \\cdot " + r
	case OpSub:
		return l + " - " + r
	}
	return l + " + " + r
}

func (b *BinOp) Equal(other Node) bool {
	o, ok := other.(*BinOp)
	return ok && b.op == o.op && b.left.Equal(o.left) && b.right.Equal(o.right)
}

func (b *BinOp) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":  "op",
		"op":    b.op.String(),
		"left":  b.left.toJSON(),
		"right": b.right.toJSON(),
	}
}

// ============================================================
// ErrorNode
// ============================================================

// ErrorNode replaces a subtree whose simplification failed. It propagates to
// the root unchanged.
type ErrorNode struct {
	msg     string
	err     error
	partial Node
}

func (e *ErrorNode) Kind() Kind      { return KindError }
func (e *ErrorNode) Message() string { return e.msg }
func (e *ErrorNode) String() string  { return e.msg }
func (e *ErrorNode) LaTeX() string   { return "\\text{" + e.msg + "}" }

// Err returns the sentinel describing the failure, e.g. ErrDivisionByZero.
func (e *ErrorNode) Err() error { return e.err }

// Partial is the operator tree that could not be reduced, if any.
func (e *ErrorNode) Partial() Node { return e.partial }

func (e *ErrorNode) Equal(other Node) bool {
	o, ok := other.(*ErrorNode)
	return ok && e.msg == o.msg
}

func (e *ErrorNode) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "error", "message": e.msg}
	for kind, sentinel := range errorKinds {
		if e.err == sentinel {
			m["kind"] = kind
		}
	}
	return m
}

// ============================================================
// Capabilities
// ============================================================

func IsOperator(n Node) bool { return n.Kind() == KindOp }
func IsVariable(n Node) bool { return n.Kind() == KindVar }
func IsError(n Node) bool    { return n.Kind() == KindError }
func IsLeaf(n Node) bool     { return n.Kind() != KindOp }

func isAdditive(n Node) bool {
	b, ok := n.(*BinOp)
	return ok && b.op.additive()
}

func isOp(n Node, op OpKind) bool {
	b, ok := n.(*BinOp)
	return ok && b.op == op
}

// ContainsVariable reports whether the variable symbol occurs anywhere in n.
func ContainsVariable(n Node) bool {
	switch v := n.(type) {
	case *Var:
		return true
	case *BinOp:
		return ContainsVariable(v.left) || ContainsVariable(v.right)
	case *ErrorNode:
		return v.partial != nil && ContainsVariable(v.partial)
	}
	return false
}

// AsFraction views n as num/den. A bare number is value/1 and a fraction
// leaf pair is its two numbers; anything else is not a fraction.
func AsFraction(n Node) (num, den int64, ok bool) {
	switch v := n.(type) {
	case *Num:
		return v.val, 1, true
	case *BinOp:
		if v.op != OpDiv {
			return 0, 0, false
		}
		l, lok := v.left.(*Num)
		r, rok := v.right.(*Num)
		if lok && rok {
			return l.val, r.val, true
		}
	}
	return 0, 0, false
}

// Depth is the number of levels in the tree rooted at n.
func Depth(n Node) int {
	b, ok := n.(*BinOp)
	if !ok {
		return 1
	}
	return 1 + max(Depth(b.left), Depth(b.right))
}

func String(n Node) string { return n.String() }
func LaTeX(n Node) string  { return n.LaTeX() }
