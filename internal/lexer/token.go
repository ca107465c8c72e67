package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Layout tokens
	INDENT TokenType = iota
	DEDENT
	NEWLINE
	ENDMARKER

	// Content tokens
	IDENT
	NUMBER
	STRING
	OP
	KEYWORD
	COMMENT
)

// SourceLocation is a 1-based position in the source text
type SourceLocation struct {
	Line   int
	Column int
}

// Token represents a lexical token
type Token struct {
	Type   TokenType
	Lexeme string
	Loc    SourceLocation
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case INDENT:
		return "INDENT"
	case DEDENT:
		return "DEDENT"
	case NEWLINE:
		return "NEWLINE"
	case ENDMARKER:
		return "ENDMARKER"
	case IDENT:
		return "IDENT"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case OP:
		return "OP"
	case KEYWORD:
		return "KEYWORD"
	case COMMENT:
		return "COMMENT"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// String renders a token for the diagnostic token printer,
// e.g. `KEYWORD ('def') @1:1`.
func (tok Token) String() string {
	if tok.Lexeme == "" {
		return fmt.Sprintf("%s @%d:%d", tok.Type, tok.Loc.Line, tok.Loc.Column)
	}
	return fmt.Sprintf("%s ('%s') @%d:%d", tok.Type, tok.Lexeme, tok.Loc.Line, tok.Loc.Column)
}

// keywords is the reserved-word set of the language
var keywords = map[string]bool{
	"def":      true,
	"return":   true,
	"if":       true,
	"elif":     true,
	"else":     true,
	"for":      true,
	"while":    true,
	"in":       true,
	"import":   true,
	"from":     true,
	"as":       true,
	"pass":     true,
	"break":    true,
	"continue": true,
	"class":    true,
	"and":      true,
	"or":       true,
	"not":      true,
	"True":     true,
	"False":    true,
	"None":     true,
}

// IsKeyword checks if an identifier is a reserved word
func IsKeyword(ident string) bool {
	return keywords[ident]
}
