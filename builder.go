package stepcalc

// ============================================================
// Tree builder
// ============================================================

// item is a slot in the builder's working list: either a finished operand
// or a token still waiting to be consumed.
type item struct {
	node Node
	tok  Token
}

func leafItem(t Token) item {
	switch t.Kind {
	case TokNumber:
		return item{node: N(t.Value)}
	case TokVariable:
		return item{node: V(t.Symbol)}
	}
	return item{tok: t}
}

func (it item) operand() bool { return it.node != nil }

func (it item) pending(op OpKind) bool {
	return it.node == nil && it.tok.Kind == TokOperator && it.tok.Op == op
}

func (it item) is(kind TokenKind) bool { return it.node == nil && it.tok.Kind == kind }

type builder struct{ items []item }

// Parse turns expression text into a tree.
func Parse(text string) (Node, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return Build(Normalize(tokens))
}

// Build reduces a normalized token sequence to a single root node.
func Build(tokens []Token) (Node, error) {
	if len(tokens) == 0 {
		return nil, parseErr(InvalidExpression, "expression is empty")
	}
	b := &builder{items: make([]item, len(tokens))}
	for i, t := range tokens {
		b.items[i] = leafItem(t)
	}
	if err := b.resolve(0, len(b.items)); err != nil {
		return nil, err
	}
	if len(b.items) != 1 {
		return nil, parseErr(InvalidExpression, "")
	}
	return b.items[0].node, nil
}

func (b *builder) remove(i int) { b.items = append(b.items[:i], b.items[i+1:]...) }

// resolve collapses items[start:end] into exactly one operand. Parenthesized
// groups are resolved innermost-first; a group-free window is folded by
// operator tier.
func (b *builder) resolve(start, end int) error {
	for end-start > 1 {
		before := end - start

		closing := -1
		for i := start; i < end; i++ {
			if b.items[i].is(TokCloseParen) {
				closing = i
				break
			}
		}

		if closing >= 0 {
			opening := -1
			for i := closing - 1; i >= start; i-- {
				if b.items[i].is(TokOpenParen) {
					opening = i
					break
				}
			}
			if opening < 0 {
				return parseErr(MismatchedParentheses, "")
			}
			b.remove(closing)
			b.remove(opening)
			if closing-1 == opening {
				return parseErr(InvalidExpression, "empty parentheses")
			}
			if err := b.resolve(opening, closing-1); err != nil {
				return err
			}
			end -= closing - opening
		} else {
			end = b.foldTiers(start, end)
		}

		if end-start == before {
			return parseErr(InvalidExpression, "")
		}
	}
	if end-start != 1 || !b.items[start].operand() {
		return parseErr(InvalidExpression, "")
	}
	return nil
}

// foldTiers folds operators from the highest OpKind down to the lowest,
// left to right within a kind, and returns the new window end.
func (b *builder) foldTiers(start, end int) int {
	for op := OpDiv; op >= OpAdd; op-- {
		for i := start; i < end; i++ {
			if !b.items[i].pending(op) {
				continue
			}
			if i == start || i+1 >= end || !b.items[i-1].operand() || !b.items[i+1].operand() {
				continue
			}
			b.items[i-1] = item{node: OpOf(op, b.items[i-1].node, b.items[i+1].node)}
			b.remove(i + 1)
			b.remove(i)
			end -= 2
			i--
		}
	}
	return end
}
