package ast

// Node is the base interface for all AST nodes
type Node interface {
	String() string
}

// Expr is the closed set of expression nodes
type Expr interface {
	Node
	exprNode()
}

// Stmt is the closed set of statement nodes
type Stmt interface {
	Node
	stmtNode()
}

// Module represents one parsed source unit: an ordered statement list
type Module struct {
	Body []Stmt
}

// NumberLiteral holds the raw lexeme of a numeric literal. A lexeme
// containing '.' is a float, otherwise an int.
type NumberLiteral struct {
	Value string
}

// StringLiteral holds the raw lexeme of a string literal, quotes included
type StringLiteral struct {
	Value string
}

// BoolLiteral represents True or False
type BoolLiteral struct {
	Value bool
}

// VarRef is a reference to a variable by name
type VarRef struct {
	Name string
}

// UnaryOp is a prefix operator application ("not" or "-")
type UnaryOp struct {
	Op      string
	Operand Expr
}

// BinaryOp is an arithmetic or comparison operator application
type BinaryOp struct {
	Op    string
	Left  Expr
	Right Expr
}

// LogicalExpr is an "and"/"or" expression. It is distinct from BinaryOp
// because the right operand may never be evaluated.
type LogicalExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

// CallExpr is a function invocation
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

func (*NumberLiteral) exprNode() {}
func (*StringLiteral) exprNode() {}
func (*BoolLiteral) exprNode()   {}
func (*VarRef) exprNode()        {}
func (*UnaryOp) exprNode()       {}
func (*BinaryOp) exprNode()      {}
func (*LogicalExpr) exprNode()   {}
func (*CallExpr) exprNode()      {}

// ExprStmt is an expression evaluated for its side effects
type ExprStmt struct {
	Expr Expr
}

// AssignStmt binds the value of an expression to a name
type AssignStmt struct {
	Target string
	Value  Expr
}

// ReturnStmt exits the enclosing function, optionally with a value
type ReturnStmt struct {
	Value Expr // nil for a bare return
}

// BreakStmt exits the nearest enclosing while loop
type BreakStmt struct{}

// ContinueStmt skips to the next iteration of the nearest enclosing while loop
type ContinueStmt struct{}

// FuncDef declares a function
type FuncDef struct {
	Name   string
	Params []string
	Body   []Stmt
}

// IfBranch is one arm of an if/elif/else chain.
// A nil Condition marks the else branch.
type IfBranch struct {
	Condition Expr
	Body      []Stmt
}

// IfStmt holds the ordered branches of an if/elif/else chain;
// branches are tried in order and the first match wins.
type IfStmt struct {
	Branches []IfBranch
}

// WhileStmt loops while its condition is truthy
type WhileStmt struct {
	Condition Expr
	Body      []Stmt
}

func (*ExprStmt) stmtNode()     {}
func (*AssignStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*FuncDef) stmtNode()      {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
