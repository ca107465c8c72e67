package parser

import (
	"github.com/Chris-debuggs/cimple/internal/ast"
	"github.com/Chris-debuggs/cimple/internal/lexer"
)

// Parser builds a Module from a token sequence by recursive descent.
// Parsing is best-effort: on a genuinely unrecognized token it stops and
// returns the statements accumulated so far instead of failing.
type Parser struct {
	ts *lexer.TokenStream
}

// New creates a parser over a lexed token sequence
func New(tokens []lexer.Token) *Parser {
	return &Parser{ts: lexer.NewStream(tokens)}
}

// ParseSource lexes and parses source text in one step
func ParseSource(source string) *ast.Module {
	return New(lexer.Lex(source)).Parse()
}

// Parse parses the token stream into a Module
func (p *Parser) Parse() *ast.Module {
	m := &ast.Module{}
	for !p.ts.EOF() {
		t := p.ts.Peek(0)
		if t.Type == lexer.ENDMARKER {
			break
		}
		// Skip blank lines, indentation tokens, and comments at module level
		if t.Type == lexer.NEWLINE || t.Type == lexer.INDENT ||
			t.Type == lexer.DEDENT || t.Type == lexer.COMMENT {
			p.ts.Next()
			continue
		}
		s := p.parseStatement()
		if s == nil {
			break // genuinely unrecognized token; stop parsing
		}
		m.Body = append(m.Body, s)
	}
	return m
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (p *Parser) parseStatement() ast.Stmt {
	t := p.ts.Peek(0)
	if t.Type == lexer.KEYWORD {
		switch t.Lexeme {
		case "def":
			return p.parseFuncDef()
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "return":
			p.ts.Next()
			val := p.parseExpression() // nil for a bare return
			p.eatNewline()
			return &ast.ReturnStmt{Value: val}
		case "break":
			p.ts.Next()
			p.eatNewline()
			return &ast.BreakStmt{}
		case "continue":
			p.ts.Next()
			p.eatNewline()
			return &ast.ContinueStmt{}
		}
	}
	return p.parseSimpleStatement()
}

// parseBlock parses an indented block: NEWLINE, optional INDENT, zero or
// more statements, then an optional trailing DEDENT. The DEDENT may already
// have been consumed by recovery inside a nested block, so it is tolerated
// rather than required.
func (p *Parser) parseBlock() []ast.Stmt {
	// Skip any trailing content on the header line up to NEWLINE
	for !p.ts.EOF() && p.ts.Peek(0).Type != lexer.NEWLINE && p.ts.Peek(0).Type != lexer.INDENT {
		p.ts.Next()
	}
	p.eatNewline()
	if p.ts.Peek(0).Type == lexer.INDENT {
		p.ts.Next()
	}

	var body []ast.Stmt
	for !p.ts.EOF() && p.ts.Peek(0).Type != lexer.DEDENT {
		t := p.ts.Peek(0)
		if t.Type == lexer.NEWLINE || t.Type == lexer.COMMENT || t.Type == lexer.INDENT {
			p.ts.Next()
			continue
		}
		if t.Type == lexer.ENDMARKER {
			break
		}
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		body = append(body, stmt)
	}
	if p.ts.Peek(0).Type == lexer.DEDENT {
		p.ts.Next()
	}
	return body
}

func (p *Parser) parseFuncDef() ast.Stmt {
	p.ts.Next() // def
	nameTok := p.ts.Next()
	if nameTok.Type != lexer.IDENT {
		return nil
	}

	if p.peekOp("(") {
		p.ts.Next()
	}
	var params []string
	for !p.ts.EOF() && !p.peekOp(")") {
		tok := p.ts.Next()
		if tok.Type == lexer.IDENT {
			params = append(params, tok.Lexeme)
		}
		if p.peekOp(",") {
			p.ts.Next()
		}
	}
	if p.peekOp(")") {
		p.ts.Next()
	}

	return &ast.FuncDef{
		Name:   nameTok.Lexeme,
		Params: params,
		Body:   p.parseBlock(),
	}
}

// if <cond>: BLOCK (elif <cond>: BLOCK)* (else: BLOCK)?
func (p *Parser) parseIf() ast.Stmt {
	stmt := &ast.IfStmt{}

	p.ts.Next() // if
	cond := p.parseExpression()
	p.eatOp(":")
	stmt.Branches = append(stmt.Branches, ast.IfBranch{Condition: cond, Body: p.parseBlock()})

	for !p.ts.EOF() && p.peekKeyword("elif") {
		p.ts.Next()
		cond := p.parseExpression()
		p.eatOp(":")
		stmt.Branches = append(stmt.Branches, ast.IfBranch{Condition: cond, Body: p.parseBlock()})
	}

	if !p.ts.EOF() && p.peekKeyword("else") {
		p.ts.Next()
		p.eatOp(":")
		stmt.Branches = append(stmt.Branches, ast.IfBranch{Condition: nil, Body: p.parseBlock()})
	}

	return stmt
}

// while <cond>: BLOCK
func (p *Parser) parseWhile() ast.Stmt {
	p.ts.Next() // while
	cond := p.parseExpression()
	p.eatOp(":")
	return &ast.WhileStmt{Condition: cond, Body: p.parseBlock()}
}

func (p *Parser) parseSimpleStatement() ast.Stmt {
	switch p.ts.Peek(0).Type {
	case lexer.NEWLINE, lexer.INDENT, lexer.DEDENT, lexer.COMMENT:
		p.ts.Next()
		return nil
	case lexer.ENDMARKER:
		return nil
	}

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	// An assignment only when the LHS parsed as a bare variable reference
	if p.peekOp("=") {
		if v, ok := expr.(*ast.VarRef); ok {
			p.ts.Next() // =
			val := p.parseExpression()
			p.eatNewline()
			return &ast.AssignStmt{Target: v.Name, Value: val}
		}
	}
	p.eatNewline()
	return &ast.ExprStmt{Expr: expr}
}

// ---------------------------------------------------------------------------
// Expressions (precedence low -> high)
// expression := or
// or         := and ('or' and)*
// and        := comparison ('and' comparison)*
// comparison := additive (('==' | '!=' | '<' | '>' | '<=' | '>=') additive)*
// additive   := term (('+' | '-') term)*
// term       := unary (('*' | '/') unary)*
// unary      := 'not' comparison | '-' unary | factor
// factor     := NUMBER | STRING | 'True' | 'False'
//             | IDENT ['(' arglist ')'] | '(' expression ')'
// ---------------------------------------------------------------------------

func (p *Parser) parseExpression() ast.Expr { return p.parseOr() }

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for left != nil && p.peekKeyword("or") {
		p.ts.Next()
		right := p.parseAnd()
		if right == nil {
			return left
		}
		left = &ast.LogicalExpr{Op: "or", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseComparison()
	for left != nil && p.peekKeyword("and") {
		p.ts.Next()
		right := p.parseComparison()
		if right == nil {
			return left
		}
		left = &ast.LogicalExpr{Op: "and", Left: left, Right: right}
	}
	return left
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for left != nil && p.ts.Peek(0).Type == lexer.OP && isComparisonOp(p.ts.Peek(0).Lexeme) {
		op := p.ts.Next().Lexeme
		right := p.parseAdditive()
		if right == nil {
			return left
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseTerm()
	for left != nil && (p.peekOp("+") || p.peekOp("-")) {
		op := p.ts.Next().Lexeme
		right := p.parseTerm()
		if right == nil {
			return left
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseTerm() ast.Expr {
	left := p.parseUnary()
	for left != nil && (p.peekOp("*") || p.peekOp("/")) {
		op := p.ts.Next().Lexeme
		right := p.parseUnary()
		if right == nil {
			return left
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	t := p.ts.Peek(0)
	// 'not' binds looser than comparisons: not (x < y)
	if t.Type == lexer.KEYWORD && t.Lexeme == "not" {
		p.ts.Next()
		operand := p.parseComparison()
		if operand == nil {
			return nil
		}
		return &ast.UnaryOp{Op: "not", Operand: operand}
	}
	// Unary minus recurses into itself for chaining: --x
	if t.Type == lexer.OP && t.Lexeme == "-" {
		p.ts.Next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryOp{Op: "-", Operand: operand}
	}
	return p.parseFactor()
}

func (p *Parser) parseFactor() ast.Expr {
	t := p.ts.Peek(0)

	switch t.Type {
	case lexer.NUMBER:
		p.ts.Next()
		return &ast.NumberLiteral{Value: t.Lexeme}

	case lexer.STRING:
		p.ts.Next()
		return &ast.StringLiteral{Value: t.Lexeme}

	case lexer.KEYWORD:
		if t.Lexeme == "True" || t.Lexeme == "False" {
			p.ts.Next()
			return &ast.BoolLiteral{Value: t.Lexeme == "True"}
		}

	case lexer.IDENT:
		p.ts.Next()
		if p.peekOp("(") {
			p.ts.Next()
			call := &ast.CallExpr{
				Callee: &ast.VarRef{Name: t.Lexeme},
				Args:   p.parseArglist(),
			}
			if p.peekOp(")") {
				p.ts.Next()
			}
			return call
		}
		return &ast.VarRef{Name: t.Lexeme}

	case lexer.OP:
		if t.Lexeme == "(" {
			p.ts.Next()
			e := p.parseExpression()
			if p.peekOp(")") {
				p.ts.Next()
			}
			return e
		}
	}

	// Unknown token: do NOT consume it, let the caller decide
	return nil
}

// parseArglist tolerates stray and extra commas
func (p *Parser) parseArglist() []ast.Expr {
	var args []ast.Expr
	for !p.ts.EOF() && !p.peekOp(")") {
		if p.peekOp(",") {
			p.ts.Next()
			continue
		}
		arg := p.parseExpression()
		if arg == nil {
			break // unknown token in arg list
		}
		args = append(args, arg)
	}
	return args
}

// ---------------------------------------------------------------------------
// Token helpers
// ---------------------------------------------------------------------------

func (p *Parser) peekOp(op string) bool {
	t := p.ts.Peek(0)
	return t.Type == lexer.OP && t.Lexeme == op
}

func (p *Parser) peekKeyword(kw string) bool {
	t := p.ts.Peek(0)
	return t.Type == lexer.KEYWORD && t.Lexeme == kw
}

func (p *Parser) eatOp(op string) {
	if p.peekOp(op) {
		p.ts.Next()
	}
}

func (p *Parser) eatNewline() {
	if p.ts.Peek(0).Type == lexer.NEWLINE {
		p.ts.Next()
	}
}
