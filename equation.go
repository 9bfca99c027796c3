package stepcalc

import (
	"strings"
)

// ============================================================
// Equations
// ============================================================

// Verdict is the outcome of comparing the two sides of an equation.
type Verdict int

const (
	// Undecided means one side failed to simplify.
	Undecided Verdict = iota
	Valid
	NotValid
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case NotValid:
		return "invalid"
	}
	return "undecided"
}

// Equation holds both sides of an "=" input before and after simplification.
type Equation struct {
	Left, Right             Node
	LeftResult, RightResult Result
	Verdict                 Verdict
}

// Err returns the evaluation error of the left side, else of the right
// side, else nil.
func (e *Equation) Err() error {
	if err := e.LeftResult.Err(); err != nil {
		return err
	}
	return e.RightResult.Err()
}

// ErrorMessage is the message of the first failing side, left first.
func (e *Equation) ErrorMessage() string {
	if en, ok := e.LeftResult.Node.(*ErrorNode); ok {
		return en.msg
	}
	if en, ok := e.RightResult.Node.(*ErrorNode); ok {
		return en.msg
	}
	return ""
}

// Key is the simplified equation text "<left>=<right>". It is empty when
// the verdict is Undecided.
func (e *Equation) Key() string {
	if e.Verdict == Undecided {
		return ""
	}
	return e.LeftResult.Node.String() + "=" + e.RightResult.Node.String()
}

// CompareTrees simplifies both sides independently and compares their
// canonical text.
func CompareTrees(left, right Node) *Equation {
	eq := &Equation{
		Left:        left,
		Right:       right,
		LeftResult:  Simplify(left),
		RightResult: Simplify(right),
	}
	lt, lok := eq.LeftResult.Canonical()
	rt, rok := eq.RightResult.Canonical()
	switch {
	case !lok || !rok:
		eq.Verdict = Undecided
	case lt == rt:
		eq.Verdict = Valid
	default:
		eq.Verdict = NotValid
	}
	return eq
}

// CompareEquation parses both sides and compares them. Only parse failures
// are returned as errors; evaluation failures leave the verdict Undecided.
func CompareEquation(leftText, rightText string) (*Equation, error) {
	if strings.Count(leftText+rightText, string(Variable)) > 1 {
		return nil, parseErr(MultipleVariables, "")
	}
	left, err := Parse(leftText)
	if err != nil {
		return nil, err
	}
	right, err := Parse(rightText)
	if err != nil {
		return nil, err
	}
	return CompareTrees(left, right), nil
}

// ParseEquation splits "<left>=<right>" into its sides.
func ParseEquation(text string) (left, right string, err error) {
	switch strings.Count(text, "=") {
	case 0:
		return "", "", parseErr(InvalidExpression, "missing '='")
	case 1:
		i := strings.IndexByte(text, '=')
		return text[:i], text[i+1:], nil
	}
	return "", "", parseErr(TooManyEqualSigns, "")
}

// ============================================================
// Free-form input
// ============================================================

// Outcome is the result of Evaluate. Exactly one of Expression and
// Equation is set.
type Outcome struct {
	Input      string
	Expression *Expression
	Equation   *Equation
}

// Expression is a parsed single expression and its simplification.
type Expression struct {
	Tree   Node
	Result Result
}

// Evaluate parses input as an equation when it contains '=' and as a single
// expression otherwise, then simplifies it.
func Evaluate(input string) (*Outcome, error) {
	if strings.Count(input, string(Variable)) > 1 {
		return nil, parseErr(MultipleVariables, "")
	}
	out := &Outcome{Input: input}
	if strings.ContainsRune(input, '=') {
		left, right, err := ParseEquation(input)
		if err != nil {
			return nil, err
		}
		eq, err := CompareEquation(left, right)
		if err != nil {
			return nil, err
		}
		out.Equation = eq
		return out, nil
	}
	tree, err := Parse(input)
	if err != nil {
		return nil, err
	}
	out.Expression = &Expression{Tree: tree, Result: Simplify(tree)}
	return out, nil
}
