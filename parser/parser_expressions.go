/*
File    : goml/parser/parser_expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/akashmaji946/goml/lexer"

// readBtreeExpression builds a single atom plus its postfix chain of
// Deref/Index attachments. firstToken, when non-nil, is a token the
// caller already consumed (e.g. the identifier that led read_line to
// suspect an assignment); otherwise the next token is read here.
func (p *Parser) readBtreeExpression(firstToken *lexer.Token) (Expr, error) {
	var tok lexer.Token
	if firstToken != nil {
		tok = *firstToken
	} else {
		var err error
		tok, err = p.next()
		if err != nil {
			return nil, err
		}
	}

	var lhs Expr
	switch tok.Kind {
	case lexer.KindSeparator:
		if tok.Separator != lexer.SepParenLeft {
			return nil, errorf(tok.Line, "invalid token while scanning expression: %s", tok.String())
		}
		inner, trailingOp, hasTrailing, err := p.readBinaryTree(nil, false, 0)
		if err != nil {
			return nil, err
		}
		closeTok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !(closeTok.Kind == lexer.KindSeparator && closeTok.Separator == lexer.SepParenRight) {
			return nil, errorf(tok.Line, "unclosed parenthesis in expression")
		}
		if hasTrailing {
			return nil, errorf(tok.Line, "stray operator %q in expression", string(trailingOp))
		}
		lhs = inner

	case lexer.KindOperator:
		switch tok.Operator {
		case lexer.OpAdd, lexer.OpSubtract, lexer.OpNot, lexer.OpComplement:
			child, err := p.readBtreeExpression(nil)
			if err != nil {
				return nil, err
			}
			lhs = &Unary{Op: tok.Operator, Child: child}
		default:
			return nil, errorf(tok.Line, "invalid unary operator %q in expression", string(tok.Operator))
		}

	case lexer.KindIdentifier:
		peeked, err := p.peek()
		if err != nil {
			return nil, err
		}
		if peeked.Kind == lexer.KindSeparator && peeked.Separator == lexer.SepParenLeft {
			lhs, err = p.readFunctionCall(tok.Identifier)
			if err != nil {
				return nil, err
			}
		} else {
			lhs = &LiteralIdentifier{Name: tok.Identifier}
		}

	case lexer.KindReal:
		lhs = &LiteralReal{Value: tok.Real}

	case lexer.KindString:
		lhs = &LiteralString{Content: tok.String}

	case lexer.KindEOF:
		return nil, errorf(tok.Line, "unexpected end of input while reading expression")

	default:
		return nil, errorf(tok.Line, "invalid token while scanning expression: %s", tok.String())
	}

	for {
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case next.Kind == lexer.KindSeparator && next.Separator == lexer.SepBracketLeft:
			if _, err := p.next(); err != nil {
				return nil, err
			}
			dims, err := p.readIndexDimensions()
			if err != nil {
				return nil, err
			}
			lhs = &Binary{Op: lexer.OpIndex, Left: lhs, Right: &Group{Children: dims}}

		case next.Kind == lexer.KindSeparator && next.Separator == lexer.SepPeriod:
			if _, err := p.next(); err != nil {
				return nil, err
			}
			idTok, err := p.next()
			if err != nil {
				return nil, err
			}
			if idTok.Kind != lexer.KindIdentifier {
				return nil, errorf(idTok.Line, "expected identifier following '.', found %s", idTok.String())
			}
			lhs = &Binary{Op: lexer.OpDeref, Left: lhs, Right: &LiteralIdentifier{Name: idTok.Identifier}}

		default:
			return lhs, nil
		}
	}
}

// readIndexDimensions reads the contents of a "[...]" accessor after the
// opening bracket has already been consumed: zero, one, or two
// comma-separated expressions with an optional trailing comma.
func (p *Parser) readIndexDimensions() ([]Expr, error) {
	peeked, err := p.peek()
	if err != nil {
		return nil, err
	}
	if peeked.Kind == lexer.KindSeparator && peeked.Separator == lexer.SepBracketRight {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var dims []Expr
	for {
		dim, trailingOp, hasTrailing, err := p.readBinaryTree(nil, false, 0)
		if err != nil {
			return nil, err
		}
		if hasTrailing {
			panic("readBinaryTree returned a trailing operator " + string(trailingOp) + " inside an index accessor")
		}
		dims = append(dims, dim)

		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind == lexer.KindSeparator && tok.Separator == lexer.SepBracketRight:
			return dims, nil
		case tok.Kind == lexer.KindSeparator && tok.Separator == lexer.SepComma:
			after, err := p.peek()
			if err != nil {
				return nil, err
			}
			if after.Kind == lexer.KindSeparator && after.Separator == lexer.SepBracketRight {
				if _, err := p.next(); err != nil {
					return nil, err
				}
				return dims, nil
			}
			if len(dims) == 2 {
				return nil, errorf(after.Line, "too many array dimensions, expected at most 2")
			}
		default:
			return nil, errorf(tok.Line, "expected expression, found %s", tok.String())
		}
	}
}

// readFunctionCall reads "(args...)" after a bare identifier has already
// been consumed as the call's name.
func (p *Parser) readFunctionCall(name string) (Expr, error) {
	if err := p.expectSeparator(lexer.SepParenLeft); err != nil {
		return nil, err
	}

	peeked, err := p.peek()
	if err != nil {
		return nil, err
	}
	if peeked.Kind == lexer.KindSeparator && peeked.Separator == lexer.SepParenRight {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &Function{Name: name}, nil
	}

	var params []Expr
	for {
		param, trailingOp, hasTrailing, err := p.readBinaryTree(nil, false, 0)
		if err != nil {
			return nil, err
		}
		if hasTrailing {
			panic("readBinaryTree returned a trailing operator " + string(trailingOp) + " inside a function call")
		}
		params = append(params, param)

		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind == lexer.KindSeparator && tok.Separator == lexer.SepParenRight:
			return &Function{Name: name, Params: params}, nil
		case tok.Kind == lexer.KindSeparator && tok.Separator == lexer.SepComma:
			after, err := p.peek()
			if err != nil {
				return nil, err
			}
			if after.Kind == lexer.KindSeparator && after.Separator == lexer.SepParenRight {
				if _, err := p.next(); err != nil {
					return nil, err
				}
				return &Function{Name: name, Params: params}, nil
			}
		default:
			return nil, errorf(tok.Line, "expected expression, found %s", tok.String())
		}
	}
}

// readBinaryTree is the precedence-climbing core. firstToken, when
// non-nil, is a token read_line already consumed and determined must
// begin an expression. expectAssignment is true only for the outermost
// call made from an identifier-led or parenthesized-LHS statement;
// lowestPrec is the binding-strength floor below which an operator must
// be handed back to the caller instead of consumed.
//
// The third and fourth return values carry the "trailing operator"
// protocol from the reference parser: hasTrailing is true exactly when
// an operator was read but could not be folded into this call's tree
// because its precedence fell below lowestPrec, in which case
// trailingOp holds it and the caller is responsible for consuming it.
func (p *Parser) readBinaryTree(firstToken *lexer.Token, expectAssignment bool, lowestPrec int) (lhs Expr, trailingOp lexer.Operator, hasTrailing bool, err error) {
	lhs, err = p.readBtreeExpression(firstToken)
	if err != nil {
		return nil, "", false, err
	}

	next, err := p.peek()
	if err != nil {
		return nil, "", false, err
	}
	if next.Kind != lexer.KindOperator {
		if expectAssignment {
			return nil, "", false, errorf(next.Line, "expected assignment operator, found %s", next.String())
		}
		return lhs, "", false, nil
	}

	opTok, err := p.next()
	if err != nil {
		return nil, "", false, err
	}
	op := opTok.Operator
	// '=' is assignment only where one is syntactically expected;
	// everywhere else it is the equality comparator.
	if op == lexer.OpAssign && !expectAssignment {
		op = lexer.OpEqual
	}

	for {
		if prec, ranked := getPrecedence(op); ranked {
			if expectAssignment {
				return nil, "", false, errorf(opTok.Line, "invalid operator %q, expected assignment", string(op))
			}
			if prec < lowestPrec {
				return lhs, op, true, nil
			}
			// prec+1, not prec, on the right-hand recursion: this is what
			// makes same-precedence chains left-associative, e.g. 1/2/3
			// builds as (1/2)/3 rather than 1/(2/3).
			rhs, nextOp, rhsHasTrailing, err := p.readBinaryTree(nil, false, prec+1)
			if err != nil {
				return nil, "", false, err
			}
			if rhsHasTrailing {
				nextPrec, nextRanked := getPrecedence(nextOp)
				if !nextRanked {
					panic("readBinaryTree returned an unranked trailing operator " + string(nextOp))
				}
				if nextPrec < lowestPrec {
					return &Binary{Op: op, Left: lhs, Right: rhs}, nextOp, true, nil
				}
				lhs = &Binary{Op: op, Left: lhs, Right: rhs}
				op = nextOp
				continue
			}
			return &Binary{Op: op, Left: lhs, Right: rhs}, "", false, nil
		}

		// op has no numeric precedence: it is either assignment-class, or
		// a unary-only token showing up where a binary op was expected.
		if !expectAssignment || !isAssignmentClass(op) {
			return nil, "", false, errorf(opTok.Line, "invalid operator %q, expected a value", string(op))
		}
		rhs, nextOp, rhsHasTrailing, err := p.readBinaryTree(nil, false, lowestPrec)
		if err != nil {
			return nil, "", false, err
		}
		if rhsHasTrailing {
			return nil, "", false, errorf(opTok.Line, "stray operator %q in expression", string(nextOp))
		}
		return &Binary{Op: op, Left: lhs, Right: rhs}, "", false, nil
	}
}
