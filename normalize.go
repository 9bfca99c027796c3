package stepcalc

// ============================================================
// Token normalization
// ============================================================

// Normalize folds unary minus into the following operand and then makes
// implied multiplication explicit. The passes must run in that order: a
// folded "-x" becomes a parenthesized group that the second pass may need
// to multiply against its neighbours.
func Normalize(tokens []Token) []Token {
	return insertImplicitMul(foldUnaryMinus(tokens))
}

// unaryPosition reports whether a '-' appended after out is a sign rather
// than a subtraction.
func unaryPosition(out []Token) bool {
	if len(out) == 0 {
		return true
	}
	prev := out[len(out)-1]
	return prev.Kind == TokOpenParen || prev.IsOperator()
}

func foldUnaryMinus(in []Token) []Token {
	out := make([]Token, 0, len(in)+4)
	// extra closing parens owed after the token at a given index
	owed := map[int]int{}

	for i := 0; i < len(in); i++ {
		t := in[i]
		var next Token
		if i+1 < len(in) {
			next = in[i+1]
		}
		switch {
		case !t.isSub() || i+1 == len(in) || !unaryPosition(out):
			out = append(out, t)
		case next.Kind == TokNumber:
			out = append(out, NumberToken(-next.Value))
			i++
		case next.Kind == TokVariable:
			out = append(out, OpenParen(), NumberToken(-1), OperatorToken(OpMul), next, CloseParen())
			i++
		case next.Kind == TokOpenParen:
			// -( ... ) becomes (-1*( ... ))
			if j := matchingClose(in, i+1); j > 0 {
				out = append(out, OpenParen(), NumberToken(-1), OperatorToken(OpMul))
				owed[j]++
			} else {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
		for ; owed[i] > 0; owed[i]-- {
			out = append(out, CloseParen())
		}
	}
	return out
}

// matchingClose returns the index of the ')' closing the '(' at open, or -1.
func matchingClose(tokens []Token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case TokOpenParen:
			depth++
		case TokCloseParen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func insertImplicitMul(in []Token) []Token {
	out := make([]Token, 0, len(in)*2)
	for i, t := range in {
		out = append(out, t)
		if i+1 == len(in) {
			break
		}
		next := in[i+1]
		if t.Kind == TokOpenParen || t.IsOperator() || next.IsOperator() || next.Kind == TokCloseParen {
			continue
		}
		out = append(out, OperatorToken(OpMul))
	}
	return out
}
