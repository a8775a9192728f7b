package parser

import "github.com/hdahiru/decafc/internal/lexer"

// Precedence is a binary-operator binding strength. Assignment is not part
// of the expression grammar at all (it is a statement form), so the
// weakest level here is logical or.
//
// DESIGN CHOICE: integer levels rather than a per-operator table of
// functions, so parsePrecedence's comparison stays a single <= test.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecCall
)

func getPrecedence(t lexer.TokenType) Precedence {
	switch t {
	case lexer.TokenOr:
		return PrecOr
	case lexer.TokenAnd:
		return PrecAnd
	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality
	case lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual, lexer.TokenInstanceof:
		return PrecComparison
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecFactor
	case lexer.TokenDot, lexer.TokenLeftParen, lexer.TokenLeftBracket:
		return PrecCall
	default:
		return PrecNone
	}
}
