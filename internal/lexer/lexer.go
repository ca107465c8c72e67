package lexer

import "strings"

// twoCharOps are matched before falling back to single-char operators
var twoCharOps = []string{
	"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "//", "**", "->", "::", "<<", ">>",
}

// Lex scans source text into a token sequence terminated by ENDMARKER.
// The scan is line-oriented: indentation is tracked per line and emitted
// as synthetic INDENT/DEDENT tokens, and each lexed line ends with NEWLINE.
// Lexing is total and never fails; unrecognized characters become
// single-char OP tokens.
func Lex(source string) []Token {
	var out []Token
	indentStack := []int{0}
	lineno := 0

	lineStart := 0
	for lineStart < len(source) {
		lineno++

		lineEnd := strings.IndexByte(source[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(source)
		} else {
			lineEnd += lineStart
		}
		line := expandTabs(source[lineStart:lineEnd])
		lineStart = lineEnd + 1

		// Count leading spaces
		pos := 0
		for pos < len(line) && line[pos] == ' ' {
			pos++
		}

		// Blank and comment-only lines do not affect the indent stack
		if pos >= len(line) {
			continue
		}
		if line[pos] == '#' {
			continue
		}

		indent := pos
		if indent > indentStack[len(indentStack)-1] {
			indentStack = append(indentStack, indent)
			out = append(out, Token{Type: INDENT, Loc: SourceLocation{lineno, 1}})
		} else {
			for indent < indentStack[len(indentStack)-1] {
				indentStack = indentStack[:len(indentStack)-1]
				out = append(out, Token{Type: DEDENT, Loc: SourceLocation{lineno, 1}})
			}
		}

		out = append(out, lexLine(line, pos, lineno)...)
		out = append(out, Token{Type: NEWLINE, Loc: SourceLocation{lineno, len(line) + 1}})
	}

	// Close remaining indent levels
	for len(indentStack) > 1 {
		indentStack = indentStack[:len(indentStack)-1]
		out = append(out, Token{Type: DEDENT, Loc: SourceLocation{len(indentStack), 1}})
	}

	out = append(out, Token{Type: ENDMARKER, Loc: SourceLocation{lineno + 1, 1}})
	return out
}

// lexLine tokenizes one tab-expanded line starting after its indentation
func lexLine(line string, pos, lineno int) []Token {
	var out []Token
	i := pos
	col := pos + 1

	for i < len(line) {
		c := line[i]

		if c == ' ' || c == '\r' || c == '\n' {
			i++
			col++
			continue
		}

		// Inline comment: the rest of the line becomes one COMMENT token
		if c == '#' {
			out = append(out, Token{Type: COMMENT, Lexeme: line[i:], Loc: SourceLocation{lineno, col}})
			break
		}

		if isAlpha(c) {
			j := i + 1
			for j < len(line) && isAlnum(line[j]) {
				j++
			}
			ident := line[i:j]
			tt := IDENT
			if IsKeyword(ident) {
				tt = KEYWORD
			}
			out = append(out, Token{Type: tt, Lexeme: ident, Loc: SourceLocation{lineno, col}})
			col += j - i
			i = j
			continue
		}

		if isDigit(c) {
			j := i + 1
			hasDot := false
			for j < len(line) && (isDigit(line[j]) || (!hasDot && line[j] == '.')) {
				if line[j] == '.' {
					hasDot = true
				}
				j++
			}
			out = append(out, Token{Type: NUMBER, Lexeme: line[i:j], Loc: SourceLocation{lineno, col}})
			col += j - i
			i = j
			continue
		}

		if c == '"' || c == '\'' {
			tok, consumed := lexString(line, i, lineno, col)
			out = append(out, tok)
			col += consumed
			i += consumed
			continue
		}

		// Operators: two-char table first, then single char
		if i+1 < len(line) {
			two := line[i : i+2]
			matched := false
			for _, op := range twoCharOps {
				if op == two {
					out = append(out, Token{Type: OP, Lexeme: two, Loc: SourceLocation{lineno, col}})
					i += 2
					col += 2
					matched = true
					break
				}
			}
			if matched {
				continue
			}
		}
		out = append(out, Token{Type: OP, Lexeme: line[i : i+1], Loc: SourceLocation{lineno, col}})
		i++
		col++
	}

	return out
}

// lexString scans a quote-delimited string starting at line[i].
// The raw lexeme keeps its quotes; a backslash prevents the following
// character from terminating the string; an unterminated string runs to
// the end of the line.
func lexString(line string, i, lineno, col int) (Token, int) {
	quote := line[i]
	var buf strings.Builder
	buf.WriteByte(quote)

	j := i + 1
	for j < len(line) {
		c := line[j]
		buf.WriteByte(c)
		if c == quote {
			j++
			break
		}
		if c == '\\' && j+1 < len(line) {
			buf.WriteByte(line[j+1])
			j += 2
			continue
		}
		j++
	}

	return Token{Type: STRING, Lexeme: buf.String(), Loc: SourceLocation{lineno, col}}, j - i
}

// expandTabs rewrites each tab as 4 spaces before indentation counting
func expandTabs(line string) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	return strings.ReplaceAll(line, "\t", "    ")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
