package stepcalc

import (
	"strconv"
	"strings"
	"unicode"
)

// ============================================================
// Tokens
// ============================================================

type TokenKind int

const (
	TokNumber TokenKind = iota
	TokVariable
	TokOperator
	TokOpenParen
	TokCloseParen
)

// Token is one lexical unit. Only the field matching Kind is meaningful.
type Token struct {
	Kind   TokenKind
	Value  int64
	Symbol rune
	Op     OpKind
}

func NumberToken(v int64) Token     { return Token{Kind: TokNumber, Value: v} }
func VariableToken(s rune) Token    { return Token{Kind: TokVariable, Symbol: s} }
func OperatorToken(op OpKind) Token { return Token{Kind: TokOperator, Op: op} }
func OpenParen() Token              { return Token{Kind: TokOpenParen} }
func CloseParen() Token             { return Token{Kind: TokCloseParen} }

func (t Token) IsOperator() bool { return t.Kind == TokOperator }
func (t Token) IsParen() bool    { return t.Kind == TokOpenParen || t.Kind == TokCloseParen }
func (t Token) isSub() bool      { return t.Kind == TokOperator && t.Op == OpSub }

func (t Token) String() string {
	switch t.Kind {
	case TokNumber:
		return strconv.FormatInt(t.Value, 10)
	case TokVariable:
		return string(t.Symbol)
	case TokOperator:
		return t.Op.String()
	case TokOpenParen:
		return "("
	case TokCloseParen:
		return ")"
	}
	return "?"
}

// TokensString joins tokens back into text, mostly for diagnostics.
func TokensString(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.String())
	}
	return sb.String()
}

// ============================================================
// Lexer
// ============================================================

// StripSpace removes every whitespace character from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

// Tokenize validates text and splits it into raw tokens. Whitespace is
// ignored. The returned tokens have not been normalized.
func Tokenize(text string) ([]Token, error) {
	input := StripSpace(text)
	if input == "" {
		return nil, parseErr(InvalidExpression, "expression is empty")
	}
	if err := validate(input); err != nil {
		return nil, err
	}

	tokens := make([]Token, 0, len(input))
	digits := 0
	flush := func(end int) error {
		if digits == 0 {
			return nil
		}
		run := input[end-digits : end]
		digits = 0
		v, err := strconv.ParseInt(run, 10, 64)
		if err != nil {
			return parseErr(NumberTooLarge, run)
		}
		tokens = append(tokens, NumberToken(v))
		return nil
	}

	for i, c := range input {
		if isDigit(c) {
			digits++
			continue
		}
		if err := flush(i); err != nil {
			return nil, err
		}
		switch {
		case c == Variable:
			tokens = append(tokens, VariableToken(c))
		case c == '(':
			tokens = append(tokens, OpenParen())
		case c == ')':
			tokens = append(tokens, CloseParen())
		default:
			op, _ := opKindOf(c)
			tokens = append(tokens, OperatorToken(op))
		}
	}
	if err := flush(len(input)); err != nil {
		return nil, err
	}
	return tokens, nil
}

func validate(input string) error {
	depth := 0
	for _, c := range input {
		if _, isOp := opKindOf(c); !isOp && !isDigit(c) && c != Variable && c != '(' && c != ')' {
			return &ParseError{Kind: InvalidCharacter, Char: c}
		}
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return parseErr(MismatchedParentheses, "')' before matching '('")
			}
		}
	}
	if depth != 0 {
		return parseErr(MismatchedParentheses, "")
	}
	if _, isOp := opKindOf(rune(input[len(input)-1])); isOp {
		return parseErr(TrailingOperator, "")
	}
	if strings.Count(input, string(Variable)) > 1 {
		return parseErr(MultipleVariables, "")
	}
	return nil
}
