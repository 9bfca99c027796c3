package stepcalc

// ============================================================
// Simplification
// ============================================================

// Result is a simplified tree and the trace of textual states that led to
// it. Trace[0] is the original text of the input tree. When Node is not an
// *ErrorNode the last entry is its canonical text; a failed simplification
// keeps only Trace[0].
type Result struct {
	Node  Node
	Trace []string
}

// Err returns the failure carried by an *ErrorNode result, or nil.
func (r Result) Err() error {
	if e, ok := r.Node.(*ErrorNode); ok {
		return e.err
	}
	return nil
}

// Canonical returns the reduced text of the result. ok is false when the
// simplification failed.
func (r Result) Canonical() (text string, ok bool) {
	if IsError(r.Node) {
		return "", false
	}
	return r.Node.String(), true
}

// Simplify reduces n to an integer or a lowest-terms fraction. It never
// fails outright: division by zero and arithmetic on the variable come back
// as an *ErrorNode in Result.Node. n itself is not modified.
func Simplify(n Node) Result {
	d := simplify(n)
	trace := make([]string, len(d.steps))
	for i, s := range d.steps {
		trace[i] = s.String()
	}
	return Result{Node: d.node, Trace: trace}
}

// derivation is the working form of a Result: the trace is kept as
// snapshot trees so parentheses are always derived from structure.
type derivation struct {
	node  Node
	steps []Node
}

func leafDerivation(n Node) derivation { return derivation{node: n, steps: []Node{n}} }

func failed(orig, err Node) derivation { return derivation{node: err, steps: []Node{orig}} }

// push appends a snapshot unless it reads the same as the previous one.
func (d *derivation) push(n Node) {
	if len(d.steps) > 0 && d.steps[len(d.steps)-1].String() == n.String() {
		return
	}
	d.steps = append(d.steps, n)
}

func (d *derivation) pushAll(steps []Node) {
	for _, s := range steps {
		d.push(s)
	}
}

func simplify(n Node) derivation {
	b, ok := n.(*BinOp)
	if !ok {
		return leafDerivation(n)
	}

	left := simplify(b.left)
	right := simplify(b.right)
	if IsError(left.node) {
		return failed(n, left.node)
	}
	if IsError(right.node) {
		return failed(n, right.node)
	}

	d := derivation{steps: []Node{n}}
	d.pushAll(mergeSteps(b.op, left, right, b.right))

	l, r := left.node, right.node
	if ContainsVariable(l) || ContainsVariable(r) {
		return failed(n, unsupported(OpOf(b.op, l, r)))
	}

	res := apply(b.op, l, r)
	if IsError(res.node) {
		return failed(n, res.node)
	}
	d.pushAll(res.steps)
	d.node = res.node
	return d
}

// mergeSteps lays the children's rewrites out as rewrites of the parent:
// first every left step beside the untouched right operand, then every right
// step beside the final left operand. The children's initial snapshots are
// skipped since they only restate the parent's original text.
func mergeSteps(op OpKind, left, right derivation, origRight Node) []Node {
	steps := make([]Node, 0, len(left.steps)+len(right.steps))
	for _, s := range left.steps[1:] {
		steps = append(steps, OpOf(op, s, origRight))
	}
	for _, s := range right.steps[1:] {
		steps = append(steps, OpOf(op, left.node, s))
	}
	return steps
}

// apply performs op on two already simplified, variable-free operands. The
// returned steps are the rewrites after the operator itself was evaluated.
func apply(op OpKind, l, r Node) derivation {
	ln, lok := l.(*Num)
	rn, rok := r.(*Num)
	if lok && rok {
		return applyIntegers(op, ln.val, rn.val, l)
	}

	lnum, lden, lok := AsFraction(l)
	rnum, rden, rok := AsFraction(r)
	if !lok || !rok {
		return leafDerivation(&ErrorNode{msg: "A problem occurred.", err: ErrUnsupportedOperation, partial: OpOf(op, l, r)})
	}

	var top, bottom int64
	switch op {
	case OpAdd, OpSub:
		lcm := LeastCommonMultiple(lden, rden)
		lt, rt := lnum*(lcm/lden), rnum*(lcm/rden)
		if op == OpAdd {
			top = lt + rt
		} else {
			top = lt - rt
		}
		bottom = lcm
	case OpMul:
		top, bottom = lnum*rnum, lden*rden
	case OpDiv:
		if rnum == 0 {
			return leafDerivation(divisionByZero(l))
		}
		top, bottom = lnum*rden, lden*rnum
	}
	return simplify(FracOf(top, bottom))
}

func applyIntegers(op OpKind, a, b int64, left Node) derivation {
	switch op {
	case OpAdd:
		return leafDerivation(N(a + b))
	case OpSub:
		return leafDerivation(N(a - b))
	case OpMul:
		return leafDerivation(N(a * b))
	}
	if b == 0 {
		return leafDerivation(divisionByZero(left))
	}
	if a%b == 0 {
		return leafDerivation(N(a / b))
	}
	num, den := ReduceFraction(a, b)
	return leafDerivation(FracOf(num, den))
}
