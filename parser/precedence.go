/*
File   : lattice/parser/precedence.go
*/

package parser

import "github.com/monkeylang/lattice/token"

// Precedence levels, lowest to highest. This is a trimmed rung ladder: the
// lineage this parser descends from ranks assignment, logical &&/||,
// bitwise operators, ranges, and member access too, but this grammar has
// no corresponding operators, so those rungs are simply unused.
const (
	_ int = iota
	LOWEST
	EQUALS      // == or !=
	LESSGREATER // > or <
	SUM         // + or -
	PRODUCT     // * or /
	PREFIX      // -x or !x
	CALL        // myFunction(x)
)

var precedences = map[token.TokenType]int{
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.LPAREN:   CALL,
}

func precedenceOf(tok token.TokenType) int {
	if p, ok := precedences[tok]; ok {
		return p
	}
	return LOWEST
}
