// Package eval implements the tree-walking evaluator: a depth-first,
// single-threaded walk over the AST using a shared scope stack. Expression
// failure is signalled by absence (a false second return), never by panic,
// and control flow is carried as explicit statement results.
package eval

import (
	"strconv"
	"strings"
)

// ValueKind identifies the runtime type of a Value
type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

// String returns the user-facing name of a value kind
func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a runtime value: an int, float, string, or bool. The zero
// Value has KindUnknown and is never produced by successful evaluation.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func IntValue(n int64) Value      { return Value{Kind: KindInt, Int: n} }
func FloatValue(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }

// Truthy reports the boolean conversion of a value: nonzero numbers,
// non-empty strings, and Bool as itself. Unknown is always false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Float != 0
	case KindString:
		return v.Str != ""
	case KindBool:
		return v.Bool
	default:
		return false
	}
}

// AsFloat widens an Int or Float to float64
func (v Value) AsFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// IsNumeric reports whether a value is an Int or Float
func (v Value) IsNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// Render returns the printed form of a value. Floats always carry a
// fractional marker so "4.0" does not print as "4"; bools print
// capitalized.
func (v Value) Render() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case KindString:
		return v.Str
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	default:
		return "unknown"
	}
}

// Equal compares two values of the same kind. Numeric values compare
// after widening, so Int(2) equals Float(2.0).
func (v Value) Equal(other Value) bool {
	if v.IsNumeric() && other.IsNumeric() {
		if v.Kind == KindInt && other.Kind == KindInt {
			return v.Int == other.Int
		}
		return v.AsFloat() == other.AsFloat()
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindBool:
		return v.Bool == other.Bool
	}
	return false
}
