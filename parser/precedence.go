package parser

import "github.com/akashmaji946/goml/lexer"

// precedence maps a ranked binary operator to its binding strength; lower
// binds looser. Operators absent from this table are either assignment-
// class (no numeric precedence - they only ever sit at the top of a
// statement) or pseudo-operators attached exclusively by the postfix
// loop, never by the precedence climber.
var precedence = map[lexer.Operator]int{
	lexer.OpAnd: 0,
	lexer.OpOr:  0,
	lexer.OpXor: 0,

	lexer.OpLessThan:           1,
	lexer.OpGreaterThan:        1,
	lexer.OpEqual:              1,
	lexer.OpNotEqual:           1,
	lexer.OpLessThanOrEqual:    1,
	lexer.OpGreaterThanOrEqual: 1,

	lexer.OpBinaryAnd: 2,
	lexer.OpBinaryOr:  2,
	lexer.OpBinaryXor: 2,

	lexer.OpShiftLeft:  3,
	lexer.OpShiftRight: 3,

	lexer.OpAdd:      4,
	lexer.OpSubtract: 4,

	lexer.OpMultiply: 5,
	lexer.OpDivide:   5,
	lexer.OpIntDiv:   5,
	lexer.OpModulo:   5,
}

// getPrecedence reports the binding strength of op, and whether op is
// ranked at all (false for assignment-class and pseudo-operators).
func getPrecedence(op lexer.Operator) (int, bool) {
	p, ok := precedence[op]
	return p, ok
}

// isAssignmentClass reports whether op may only appear at the top of a
// statement as its outermost node.
func isAssignmentClass(op lexer.Operator) bool {
	switch op {
	case lexer.OpAssign, lexer.OpAssignAdd, lexer.OpAssignSubtract, lexer.OpAssignMultiply,
		lexer.OpAssignDivide, lexer.OpAssignAnd, lexer.OpAssignOr, lexer.OpAssignXor:
		return true
	}
	return false
}
