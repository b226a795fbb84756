package parser

// AST is the parsed product of a GML source string: a flat list of
// top-level expressions in source order. It never contains a Nop - a
// bare ";" at the top level is discarded, matching the reference parser.
type AST struct {
	source string
	exprs  []Expr
}

// Empty returns the AST produced by parsing the empty string: zero
// expressions, never a nil AST.
func Empty() *AST {
	return &AST{}
}

// Expressions returns the top-level expression list. The returned slice
// must not be mutated by callers.
func (a *AST) Expressions() []Expr { return a.exprs }

// Source returns the original string the AST's identifiers and string
// literals were sliced from. It must outlive any Expr obtained from this
// AST, since LiteralIdentifier.Name and LiteralString.Content are
// substrings of it, not copies.
func (a *AST) Source() string { return a.source }

// Parse tokenizes and parses source into an AST, or returns the first
// error encountered. There is no partial-AST recovery: on error the
// returned AST is nil.
func Parse(source string) (*AST, error) {
	p := NewParser(source)
	var exprs []Expr
	for {
		expr, atEOF, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if atEOF {
			break
		}
		if isNop(expr) {
			continue
		}
		exprs = append(exprs, expr)
	}
	return &AST{source: source, exprs: exprs}, nil
}
