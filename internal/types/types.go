// Package types defines the static type lattice of the language.
package types

// TypeKind identifies one of the language's static types. Unknown is the
// permissive bottom of the lattice: inference never fails, it produces
// Unknown where it runs out of information.
type TypeKind int

const (
	Unknown TypeKind = iota
	Int
	Float
	String
	Bool
	Void
)

// String returns the user-facing spelling of a type
func (t TypeKind) String() string {
	switch t {
	case Unknown:
		return "Unknown"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Void:
		return "void"
	default:
		return "?"
	}
}

// IsNumeric reports whether a type is Int or Float
func (t TypeKind) IsNumeric() bool {
	return t == Int || t == Float
}

// TypeEnv is the result of type inference: variable types of the global
// scope and the inferred return type of every declared function.
type TypeEnv struct {
	Vars      map[string]TypeKind
	Functions map[string]TypeKind
}

// NewTypeEnv creates an empty environment
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{
		Vars:      make(map[string]TypeKind),
		Functions: make(map[string]TypeKind),
	}
}

// Unify merges two types. Unknown and Void yield to the other operand,
// equal kinds unify to themselves, Int and Float widen to Float, and any
// other mismatch is Unknown, never an error. Unify is commutative.
func Unify(a, b TypeKind) TypeKind {
	if a == Unknown {
		return b
	}
	if b == Unknown {
		return a
	}
	if a == Void {
		return b
	}
	if b == Void {
		return a
	}
	if a == b {
		return a
	}
	if (a == Int && b == Float) || (a == Float && b == Int) {
		return Float
	}
	return Unknown
}
