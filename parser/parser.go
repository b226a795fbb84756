/*
File    : goml/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/akashmaji946/goml/lexer"

// Parser is a recursive-descent reader over a one-token-peekable Lexer.
// It holds no state beyond its own call stack and the lexer's cursor, so
// distinct Parser values over distinct inputs never interfere - there is
// nothing here to make concurrent.
type Parser struct {
	lex *lexer.Lexer
}

// NewParser constructs a Parser over source. Most callers want the
// package-level Parse function instead; NewParser exists for callers
// that need to drive read_line-equivalent logic themselves (none do
// today, but it mirrors go-mix/parser.NewParser's shape).
func NewParser(source string) *Parser {
	return &Parser{lex: lexer.NewLexer(source)}
}

func (p *Parser) next() (lexer.Token, error) { return p.lex.Next() }
func (p *Parser) peek() (lexer.Token, error) { return p.lex.Peek() }

func (p *Parser) expectSeparator(sep lexer.Separator) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != lexer.KindSeparator || tok.Separator != sep {
		return errorf(tok.Line, "expected %q, found %s", string(sep), tok.String())
	}
	return nil
}

func (p *Parser) expectKeyword(kw lexer.Keyword) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != lexer.KindKeyword || tok.Keyword != kw {
		return errorf(tok.Line, "expected keyword %q, found %s", string(kw), tok.String())
	}
	return nil
}

// requireLine reads one statement and turns "no more input" into a
// ParseError, since every call site needs exactly one statement to
// continue (a loop body, an if-arm, a for clause, ...).
func (p *Parser) requireLine(context string) (Expr, error) {
	expr, atEOF, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if atEOF {
		return nil, errorf(p.lex.Line(), "unexpected end of input %s", context)
	}
	return expr, nil
}

// readLine consumes tokens until one full statement is produced. The
// returned bool reports whether the input ended before any statement
// started (a legitimate, non-error condition at the top level).
func (p *Parser) readLine() (Expr, bool, error) {
	tok, err := p.next()
	if err != nil {
		return nil, false, err
	}

	switch tok.Kind {
	case lexer.KindEOF:
		return nil, true, nil
	case lexer.KindKeyword:
		expr, err := p.readKeywordLine(tok)
		return expr, false, err
	case lexer.KindIdentifier:
		expr, err := p.readIdentifierLine(tok)
		return expr, false, err
	case lexer.KindSeparator:
		return p.readSeparatorLine(tok)
	default:
		return nil, false, errorf(tok.Line, "invalid token at beginning of expression: %s", tok.String())
	}
}

func (p *Parser) readKeywordLine(tok lexer.Token) (Expr, error) {
	switch tok.Keyword {
	case lexer.KeywordVar:
		return p.readVar()

	case lexer.KeywordDo:
		body, err := p.requireLine("after 'do' keyword")
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(lexer.KeywordUntil); err != nil {
			return nil, err
		}
		cond, err := p.readCondition()
		if err != nil {
			return nil, err
		}
		return &DoUntil{Cond: cond, Body: body}, nil

	case lexer.KeywordIf:
		cond, err := p.readCondition()
		if err != nil {
			return nil, err
		}
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Kind == lexer.KindSeparator && next.Separator == lexer.SepThen {
			if _, err := p.next(); err != nil {
				return nil, err
			}
		}
		body, err := p.requireLine("after 'if' condition")
		if err != nil {
			return nil, err
		}
		elseTok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var elseBody Expr
		if elseTok.Kind == lexer.KindKeyword && elseTok.Keyword == lexer.KeywordElse {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			elseBody, err = p.requireLine("after 'else'")
			if err != nil {
				return nil, err
			}
		}
		return &If{Cond: cond, Body: body, Else: elseBody}, nil

	case lexer.KeywordFor:
		if err := p.expectSeparator(lexer.SepParenLeft); err != nil {
			return nil, err
		}
		start, err := p.requireLine("during 'for' parameters")
		if err != nil {
			return nil, err
		}
		if err := p.consumeOptional(lexer.SepSemicolon); err != nil {
			return nil, err
		}
		cond, err := p.readCondition()
		if err != nil {
			return nil, err
		}
		if err := p.consumeOptional(lexer.SepSemicolon); err != nil {
			return nil, err
		}
		step, err := p.requireLine("during 'for' parameters")
		if err != nil {
			return nil, err
		}
		for {
			consumed, err := p.tryConsume(lexer.SepSemicolon)
			if err != nil {
				return nil, err
			}
			if !consumed {
				break
			}
		}
		if err := p.expectSeparator(lexer.SepParenRight); err != nil {
			return nil, err
		}
		body, err := p.requireLine("after 'for' parameters")
		if err != nil {
			return nil, err
		}
		return &For{Start: start, Cond: cond, Step: step, Body: body}, nil

	case lexer.KeywordRepeat:
		count, err := p.readCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.requireLine("after 'repeat' count")
		if err != nil {
			return nil, err
		}
		return &Repeat{Count: count, Body: body}, nil

	case lexer.KeywordSwitch:
		input, err := p.readCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.requireLine("after 'switch' subject")
		if err != nil {
			return nil, err
		}
		return &Switch{Input: input, Body: body}, nil

	case lexer.KeywordWith:
		target, err := p.readCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.requireLine("after 'with' target")
		if err != nil {
			return nil, err
		}
		return &With{Target: target, Body: body}, nil

	case lexer.KeywordWhile:
		cond, err := p.readCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.requireLine("after 'while' condition")
		if err != nil {
			return nil, err
		}
		return &While{Cond: cond, Body: body}, nil

	case lexer.KeywordCase:
		expr, err := p.readCondition()
		if err != nil {
			return nil, err
		}
		if err := p.expectSeparator(lexer.SepColon); err != nil {
			return nil, err
		}
		return &Case{Expr: expr}, nil

	case lexer.KeywordDefault:
		if err := p.expectSeparator(lexer.SepColon); err != nil {
			return nil, err
		}
		return &Default{}, nil

	case lexer.KeywordBreak:
		return &Break{}, nil
	case lexer.KeywordContinue:
		return &Continue{}, nil
	case lexer.KeywordExit:
		return &Exit{}, nil

	case lexer.KeywordReturn:
		val, err := p.readCondition()
		if err != nil {
			return nil, err
		}
		return &Return{Value: val}, nil

	default:
		return nil, errorf(tok.Line, "invalid keyword at beginning of expression: %q", string(tok.Keyword))
	}
}

func (p *Parser) readVar() (Expr, error) {
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Kind != lexer.KindIdentifier {
		return &Var{}, nil
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}
	names := []string{next.Identifier}
	for {
		comma, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !(comma.Kind == lexer.KindSeparator && comma.Separator == lexer.SepComma) {
			break
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		id, err := p.peek()
		if err != nil {
			return nil, err
		}
		if id.Kind != lexer.KindIdentifier {
			break
		}
		names = append(names, id.Identifier)
		if _, err := p.next(); err != nil {
			return nil, err
		}
	}
	return &Var{Names: names}, nil
}

func (p *Parser) readIdentifierLine(tok lexer.Token) (Expr, error) {
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Kind == lexer.KindEOF {
		return nil, errorf(next.Line, "stray identifier %q at end of input", tok.Identifier)
	}
	if next.Kind == lexer.KindSeparator && next.Separator == lexer.SepParenLeft {
		return p.readFunctionCall(tok.Identifier)
	}
	expr, trailingOp, hasTrailing, err := p.readBinaryTree(&tok, true, 0)
	if err != nil {
		return nil, err
	}
	if hasTrailing {
		return nil, errorf(tok.Line, "stray operator %q in expression", string(trailingOp))
	}
	return expr, nil
}

func (p *Parser) readSeparatorLine(tok lexer.Token) (Expr, bool, error) {
	switch tok.Separator {
	case lexer.SepBraceLeft:
		var children []Expr
		for {
			peeked, err := p.peek()
			if err != nil {
				return nil, false, err
			}
			if peeked.Kind == lexer.KindSeparator && peeked.Separator == lexer.SepBraceRight {
				if _, err := p.next(); err != nil {
					return nil, false, err
				}
				return &Group{Children: children}, false, nil
			}
			expr, atEOF, err := p.readLine()
			if err != nil {
				return nil, false, err
			}
			if atEOF {
				return nil, false, errorf(p.lex.Line(), "unclosed brace at end of input")
			}
			if isNop(expr) {
				continue
			}
			children = append(children, expr)
		}

	case lexer.SepParenLeft:
		expr, trailingOp, hasTrailing, err := p.readBinaryTree(&tok, true, 0)
		if err != nil {
			return nil, false, err
		}
		if hasTrailing {
			return nil, false, errorf(tok.Line, "stray operator %q in expression", string(trailingOp))
		}
		return expr, false, nil

	case lexer.SepSemicolon:
		return &Nop{}, false, nil

	default:
		return nil, false, errorf(tok.Line, "invalid separator at beginning of expression: %s", tok.String())
	}
}

// readCondition reads the control-expression that follows a keyword like
// if/while/for's middle clause/repeat/switch/with/case/return. These all
// call read_binary_tree with no assignment expected and no precedence
// floor; the result can never legitimately carry a trailing operator,
// since the caller always stops at the lowest precedence level - if it
// ever did, that would indicate a parser bug, not malformed input, which
// is why this panics rather than returning a ParseError (matching the
// reference implementation's own unreachable! assertions at each of
// these call sites).
func (p *Parser) readCondition() (Expr, error) {
	expr, trailingOp, hasTrailing, err := p.readBinaryTree(nil, false, 0)
	if err != nil {
		return nil, err
	}
	if hasTrailing {
		panic("readBinaryTree returned a trailing operator " + string(trailingOp) + " to a zero-floor caller")
	}
	return expr, nil
}

func (p *Parser) consumeOptional(sep lexer.Separator) error {
	_, err := p.tryConsume(sep)
	return err
}

func (p *Parser) tryConsume(sep lexer.Separator) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	if tok.Kind == lexer.KindSeparator && tok.Separator == sep {
		if _, err := p.next(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
