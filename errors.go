package stepcalc

import (
	"errors"
	"fmt"
)

// ============================================================
// Parse errors
// ============================================================

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	InvalidCharacter ErrorKind = iota + 1
	MismatchedParentheses
	TrailingOperator
	MultipleVariables
	TooManyEqualSigns
	InvalidExpression
	NumberTooLarge
)

// Sentinels matched by errors.Is against a *ParseError of the same kind.
var (
	ErrInvalidCharacter      = errors.New("invalid character")
	ErrMismatchedParentheses = errors.New("mismatched parentheses")
	ErrTrailingOperator      = errors.New("expression ends with an operator")
	ErrMultipleVariables     = fmt.Errorf("only one %c symbol is allowed", Variable)
	ErrTooManyEqualSigns     = errors.New("too many equal signs")
	ErrInvalidExpression     = errors.New("invalid expression")
	ErrNumberTooLarge        = errors.New("number too large")
)

var kindSentinels = map[ErrorKind]error{
	InvalidCharacter:      ErrInvalidCharacter,
	MismatchedParentheses: ErrMismatchedParentheses,
	TrailingOperator:      ErrTrailingOperator,
	MultipleVariables:     ErrMultipleVariables,
	TooManyEqualSigns:     ErrTooManyEqualSigns,
	InvalidExpression:     ErrInvalidExpression,
	NumberTooLarge:        ErrNumberTooLarge,
}

func (k ErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case MismatchedParentheses:
		return "MismatchedParentheses"
	case TrailingOperator:
		return "TrailingOperator"
	case MultipleVariables:
		return "MultipleVariables"
	case TooManyEqualSigns:
		return "TooManyEqualSigns"
	case InvalidExpression:
		return "InvalidExpression"
	case NumberTooLarge:
		return "NumberTooLarge"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError reports why an input could not be turned into a tree.
type ParseError struct {
	Kind   ErrorKind
	Char   rune   // offending character for InvalidCharacter
	Detail string // optional extra context
}

func (e *ParseError) Error() string {
	msg := kindSentinels[e.Kind].Error()
	if e.Kind == InvalidCharacter {
		msg = fmt.Sprintf("%s: '%c'", msg, e.Char)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ParseError) Unwrap() error { return kindSentinels[e.Kind] }

func parseErr(kind ErrorKind, detail string) *ParseError {
	return &ParseError{Kind: kind, Detail: detail}
}

// ============================================================
// Evaluation errors (carried inside ErrorNode)
// ============================================================

var (
	ErrDivisionByZero       = errors.New("division by zero")
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// errorKinds names the evaluation sentinels in the JSON tree codec.
var errorKinds = map[string]error{
	"division_by_zero":      ErrDivisionByZero,
	"unsupported_operation": ErrUnsupportedOperation,
}

func divisionByZero(left Node) *ErrorNode {
	return &ErrorNode{msg: "Cannot divide " + left.String() + " by 0", err: ErrDivisionByZero}
}

func unsupported(partial Node) *ErrorNode {
	return &ErrorNode{msg: "Variables unimplemented", err: ErrUnsupportedOperation, partial: partial}
}
