package parser_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkeylang/lattice/ast"
	"github.com/monkeylang/lattice/parser"
)

func TestParseLetStatements(t *testing.T) {
	program, err := parser.Parse("let x = 5; let y = 10; let foobar = 838383;")
	require.Nil(t, err)
	require.Len(t, program.Statements, 3)

	names := []string{"x", "y", "foobar"}
	for i, name := range names {
		stmt, ok := program.Statements[i].(*ast.LetStatement)
		require.True(t, ok)
		assert.Equal(t, name, stmt.Name.Name)
	}
}

func TestParseReturnStatement(t *testing.T) {
	program, err := parser.Parse("return 5; return 10;")
	require.Nil(t, err)
	require.Len(t, program.Statements, 2)

	for _, s := range program.Statements {
		_, ok := s.(*ast.ReturnStatement)
		assert.True(t, ok)
	}
}

func TestOperatorPrecedenceRoundTrips(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
	}

	for _, tt := range tests {
		program, err := parser.Parse(tt.input)
		require.Nilf(t, err, "input %q", tt.input)
		assert.Equalf(t, tt.expected, program.String(), "input %q", tt.input)
	}
}

// TestInfixPrecedencePairwise checks every pair of infix operators: the
// printed AST of `x a y b z` parenthesises the higher-precedence group,
// and equal precedence left-associates.
func TestInfixPrecedencePairwise(t *testing.T) {
	ops := []struct {
		op   string
		prec int
	}{
		{"==", 1}, {"!=", 1},
		{"<", 2}, {">", 2},
		{"+", 3}, {"-", 3},
		{"*", 4}, {"/", 4},
	}

	for _, a := range ops {
		for _, b := range ops {
			input := fmt.Sprintf("x %s y %s z", a.op, b.op)
			var expected string
			if a.prec >= b.prec {
				expected = fmt.Sprintf("((x %s y) %s z)", a.op, b.op)
			} else {
				expected = fmt.Sprintf("(x %s (y %s z))", a.op, b.op)
			}

			program, err := parser.Parse(input)
			require.Nilf(t, err, "input %q", input)
			assert.Equalf(t, expected, program.String(), "input %q", input)
		}
	}
}

func TestRoundTripPrettyPrintReparses(t *testing.T) {
	inputs := []string{
		"5 + 5 * 2",
		"if (10 > 1) { if (10 > 1) { return 10; } return 1; }",
		"let newAdder = fn(x) { fn(y) { (x + y) } }; newAdder(2)",
	}

	for _, in := range inputs {
		program, err := parser.Parse(in)
		require.Nil(t, err)
		printed := program.String()

		reparsed, err2 := parser.Parse(printed)
		require.Nilf(t, err2, "reparsing %q", printed)
		assert.Equal(t, printed, reparsed.String())
	}
}

func TestParseErrorOnMissingAssign(t *testing.T) {
	program, err := parser.Parse("let x 5;")
	assert.Nil(t, program)
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrUnexpectedToken, err.Kind)
}

func TestParseErrorOnUnterminatedBlock(t *testing.T) {
	program, err := parser.Parse("if (true) { let x = 1;")
	assert.Nil(t, program)
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrUnexpectedToken, err.Kind)
}

// TestParseErrorInsideFunctionBody exercises the failure path of a
// production that has already allocated intermediate nodes (the function
// literal, its parameters, a partial block): the error propagates out and
// the caller receives no partially populated tree.
func TestParseErrorInsideFunctionBody(t *testing.T) {
	program, err := parser.Parse("fn(a, b, c){let b c}")
	assert.Nil(t, program)
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrUnexpectedToken, err.Kind)
}

func TestParseErrorOnMissingPrefixFunction(t *testing.T) {
	program, err := parser.Parse(";")
	assert.Nil(t, program)
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrNotAnExpression, err.Kind)
}

func TestIfElseEmptyAlternativeIsPresentButEmpty(t *testing.T) {
	program, err := parser.Parse("if (x) { y }")
	require.Nil(t, err)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	ifExpr := stmt.Expression.(*ast.IfExpression)
	require.NotNil(t, ifExpr.Alternative)
	assert.Empty(t, ifExpr.Alternative.Statements)
}

func TestFunctionLiteralParsesParameters(t *testing.T) {
	program, err := parser.Parse("fn(x, y) { x + y; }")
	require.Nil(t, err)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	fn := stmt.Expression.(*ast.FunctionLiteral)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "x", fn.Parameters[0].Name)
	assert.Equal(t, "y", fn.Parameters[1].Name)
}
