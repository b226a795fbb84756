package parser

import (
	"testing"

	"github.com/akashmaji946/goml/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(name string) *LiteralIdentifier   { return &LiteralIdentifier{Name: name} }
func num(v float64) *LiteralReal          { return &LiteralReal{Value: v} }
func str(s string) *LiteralString         { return &LiteralString{Content: s} }
func grp(children ...Expr) *Group         { return &Group{Children: children} }
func bin(op lexer.Operator, l, r Expr) *Binary {
	return &Binary{Op: op, Left: l, Right: r}
}
func una(op lexer.Operator, c Expr) *Unary { return &Unary{Op: op, Child: c} }

func assertParses(t *testing.T, input string, want []Expr) {
	t.Helper()
	ast, err := Parse(input)
	require.NoError(t, err, "input %q", input)
	assert.Equal(t, want, ast.Expressions(), "input %q", input)
}

func assertParseError(t *testing.T, input string) {
	t.Helper()
	_, err := Parse(input)
	require.Error(t, err, "input %q should fail to parse", input)
}

func TestParse_EmptySource(t *testing.T) {
	ast, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, ast.Expressions())
}

func TestEmpty(t *testing.T) {
	ast := Empty()
	assert.Empty(t, ast.Expressions())
}

func TestParse_SimpleAssign(t *testing.T) {
	assertParses(t, "a = 1", []Expr{bin(lexer.OpAssign, id("a"), num(1))})
}

func TestParse_AssignAssignEqual(t *testing.T) {
	assertParses(t, "a=b=c", []Expr{
		bin(lexer.OpAssign, id("a"), bin(lexer.OpEqual, id("b"), id("c"))),
	})
}

func TestParse_CompoundAssignments(t *testing.T) {
	cases := []struct {
		input string
		op    lexer.Operator
	}{
		{"b += 2", lexer.OpAssignAdd},
		{"c -= 3", lexer.OpAssignSubtract},
		{"d *= 4", lexer.OpAssignMultiply},
		{"e /= 5", lexer.OpAssignDivide},
		{"f &= 6", lexer.OpAssignAnd},
		{"g |= 7", lexer.OpAssignOr},
		{"h ^= 8", lexer.OpAssignXor},
	}
	for _, c := range cases {
		ast, err := Parse(c.input)
		require.NoError(t, err, c.input)
		require.Len(t, ast.Expressions(), 1)
		b, ok := ast.Expressions()[0].(*Binary)
		require.True(t, ok, c.input)
		assert.Equal(t, c.op, b.Op, c.input)
	}
}

func TestParse_AssignmentLHSWithDerefAndIndex(t *testing.T) {
	assertParses(t, "a.b[c] += d;", []Expr{
		bin(lexer.OpAssignAdd,
			bin(lexer.OpIndex,
				bin(lexer.OpDeref, id("a"), id("b")),
				grp(id("c")),
			),
			id("d"),
		),
	})
}

func TestParse_Assignment2DIndexChains(t *testing.T) {
	assertParses(t, "a.b[c].d.e[f,g]=h[i,j].k", []Expr{
		bin(lexer.OpAssign,
			bin(lexer.OpIndex,
				bin(lexer.OpDeref,
					bin(lexer.OpDeref,
						bin(lexer.OpIndex,
							bin(lexer.OpDeref, id("a"), id("b")),
							grp(id("c")),
						),
						id("d"),
					),
					id("e"),
				),
				grp(id("f"), id("g")),
			),
			bin(lexer.OpDeref,
				bin(lexer.OpIndex, id("h"), grp(id("i"), id("j"))),
				id("k"),
			),
		),
	})
}

func TestParse_AssignmentLHSIsParenthesizedExpression(t *testing.T) {
	assertParses(t, "(a + 1).x = 400;", []Expr{
		bin(lexer.OpAssign,
			bin(lexer.OpDeref, bin(lexer.OpAdd, id("a"), num(1)), id("x")),
			num(400),
		),
	})
}

func TestParse_AssignEqualComplex(t *testing.T) {
	assertParses(t, "(a=b).c[d=e]=f[g=h]=i", []Expr{
		bin(lexer.OpAssign,
			bin(lexer.OpIndex,
				bin(lexer.OpDeref, bin(lexer.OpEqual, id("a"), id("b")), id("c")),
				grp(bin(lexer.OpEqual, id("d"), id("e"))),
			),
			bin(lexer.OpEqual,
				bin(lexer.OpIndex, id("f"), grp(bin(lexer.OpEqual, id("g"), id("h")))),
				id("i"),
			),
		),
	})
}

func TestParse_UnaryOperators(t *testing.T) {
	cases := []struct {
		input string
		op    lexer.Operator
	}{
		{"a=+1", lexer.OpAdd},
		{"a=-1", lexer.OpSubtract},
		{"a=~1", lexer.OpComplement},
		{"a=!1", lexer.OpNot},
	}
	for _, c := range cases {
		assertParses(t, c.input, []Expr{
			bin(lexer.OpAssign, id("a"), una(c.op, num(1))),
		})
	}
}

func TestParse_UnaryGrouping(t *testing.T) {
	assertParses(t, "a = ~(b + 1)", []Expr{
		bin(lexer.OpAssign, id("a"), una(lexer.OpComplement, bin(lexer.OpAdd, id("b"), num(1)))),
	})
}

func TestParse_UnarySyntaxChain(t *testing.T) {
	assertParses(t, "a = 1+!~-b.c[+d]-2--3", []Expr{
		bin(lexer.OpAssign, id("a"),
			bin(lexer.OpSubtract,
				bin(lexer.OpSubtract,
					bin(lexer.OpAdd,
						num(1),
						una(lexer.OpNot, una(lexer.OpComplement, una(lexer.OpSubtract,
							bin(lexer.OpIndex,
								bin(lexer.OpDeref, id("b"), id("c")),
								grp(una(lexer.OpAdd, id("d"))),
							),
						))),
					),
					num(2),
				),
				una(lexer.OpSubtract, num(3)),
			),
		),
	})
}

func TestParse_FunctionCallSyntax(t *testing.T) {
	assertParses(t, "instance_create(random(800), random(608,), apple);", []Expr{
		&Function{Name: "instance_create", Params: []Expr{
			&Function{Name: "random", Params: []Expr{num(800)}},
			&Function{Name: "random", Params: []Expr{num(608)}},
			id("apple"),
		}},
	})
}

func TestParse_FunctionCallNoParams(t *testing.T) {
	assertParses(t, "foo()", []Expr{&Function{Name: "foo"}})
}

func TestParse_ForLoopStandard(t *testing.T) {
	assertParses(t, "for(i = 0; i < 10; i += 1) { a = 1; b = c;}", []Expr{
		&For{
			Start: bin(lexer.OpAssign, id("i"), num(0)),
			Cond:  bin(lexer.OpLessThan, id("i"), num(10)),
			Step:  bin(lexer.OpAssignAdd, id("i"), num(1)),
			Body: grp(
				bin(lexer.OpAssign, id("a"), num(1)),
				bin(lexer.OpAssign, id("b"), id("c")),
			),
		},
	})
}

func TestParse_ForLoopNoSeparators(t *testing.T) {
	assertParses(t, "for(i=0 i<10 i+=1) c=3", []Expr{
		&For{
			Start: bin(lexer.OpAssign, id("i"), num(0)),
			Cond:  bin(lexer.OpLessThan, id("i"), num(10)),
			Step:  bin(lexer.OpAssignAdd, id("i"), num(1)),
			Body:  bin(lexer.OpAssign, id("c"), num(3)),
		},
	})
}

func TestParse_ForLoopRandomSeparators(t *testing.T) {
	assertParses(t, "for(i=0; i<10 i+=1; ;) {d=4}", []Expr{
		&For{
			Start: bin(lexer.OpAssign, id("i"), num(0)),
			Cond:  bin(lexer.OpLessThan, id("i"), num(10)),
			Step:  bin(lexer.OpAssignAdd, id("i"), num(1)),
			Body:  grp(bin(lexer.OpAssign, id("d"), num(4))),
		},
	})
}

func TestParse_VarSyntax(t *testing.T) {
	assertParses(t, "var a; var b, c", []Expr{
		&Var{Names: []string{"a"}},
		&Var{Names: []string{"b", "c"}},
	})
}

func TestParse_VarSyntaxComplex(t *testing.T) {
	assertParses(t, "var; var a,b,; var c,var", []Expr{
		&Var{},
		&Var{Names: []string{"a", "b"}},
		&Var{Names: []string{"c"}},
		&Var{},
	})
}

func TestParse_IfWithoutElse(t *testing.T) {
	assertParses(t, "if a == 1 b = 2", []Expr{
		&If{Cond: bin(lexer.OpEqual, id("a"), num(1)), Body: bin(lexer.OpAssign, id("b"), num(2))},
	})
}

func TestParse_IfWithThenAndElse(t *testing.T) {
	assertParses(t, "if a then b = 1 else b = 2", []Expr{
		&If{
			Cond: id("a"),
			Body: bin(lexer.OpAssign, id("b"), num(1)),
			Else: bin(lexer.OpAssign, id("b"), num(2)),
		},
	})
}

func TestParse_WhileLoop(t *testing.T) {
	assertParses(t, "while a < 10 a += 1", []Expr{
		&While{Cond: bin(lexer.OpLessThan, id("a"), num(10)), Body: bin(lexer.OpAssignAdd, id("a"), num(1))},
	})
}

func TestParse_DoUntil(t *testing.T) {
	assertParses(t, "do a += 1 until a == 10", []Expr{
		&DoUntil{Body: bin(lexer.OpAssignAdd, id("a"), num(1)), Cond: bin(lexer.OpEqual, id("a"), num(10))},
	})
}

func TestParse_Repeat(t *testing.T) {
	assertParses(t, "repeat 5 a += 1", []Expr{
		&Repeat{Count: num(5), Body: bin(lexer.OpAssignAdd, id("a"), num(1))},
	})
}

func TestParse_With(t *testing.T) {
	assertParses(t, "with other x = 1", []Expr{
		&With{Target: id("other"), Body: bin(lexer.OpAssign, id("x"), num(1))},
	})
}

func TestParse_SwitchCaseDefault(t *testing.T) {
	assertParses(t, "switch x { case 1: break; default: break; }", []Expr{
		&Switch{
			Input: id("x"),
			Body: grp(
				&Case{Expr: num(1)},
				&Break{},
				&Default{},
				&Break{},
			),
		},
	})
}

func TestParse_BreakContinueExitReturn(t *testing.T) {
	assertParses(t, "break; continue; exit; return 5;", []Expr{
		&Break{}, &Continue{}, &Exit{}, &Return{Value: num(5)},
	})
}

func TestParse_StringLiteralPrintsQuoted(t *testing.T) {
	ast, err := Parse(`a = "hi"`)
	require.NoError(t, err)
	require.Len(t, ast.Expressions(), 1)
	assert.Equal(t, `(= a "hi")`, ast.Expressions()[0].String())
}

func TestParse_EmptyBracketIndex(t *testing.T) {
	assertParses(t, "a[]=1;", []Expr{
		bin(lexer.OpAssign, bin(lexer.OpIndex, id("a"), grp()), num(1)),
	})
}

// Negative cases - these must all produce a parse error, matching both
// the distilled spec's §8 negative list and the reference implementation's
// own should_panic tests.
func TestParse_NegativeCases(t *testing.T) {
	cases := []string{
		"i * 9",
		"j ! 10",
		"k ~ 11",
		"var, a;",
		"a..=1",
	}
	for _, c := range cases {
		assertParseError(t, c)
	}
}

func TestParse_UnclosedBraceIsAnError(t *testing.T) {
	assertParseError(t, "{ a = 1;")
}

func TestParse_UnclosedParenIsAnError(t *testing.T) {
	assertParseError(t, "(a + 1")
}

func TestParse_InvalidFirstTokenIsAnError(t *testing.T) {
	assertParseError(t, "+ 1")
}

func TestParse_NoPartialASTOnError(t *testing.T) {
	ast, err := Parse("a = 1; i * 9")
	require.Error(t, err)
	assert.Nil(t, ast)
}
