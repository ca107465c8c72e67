package types

import (
	"testing"
)

var allKinds = []TypeKind{Unknown, Int, Float, String, Bool, Void}

func TestUnify_Commutative(t *testing.T) {
	for _, a := range allKinds {
		for _, b := range allKinds {
			if Unify(a, b) != Unify(b, a) {
				t.Errorf("Unify(%v, %v)=%v but Unify(%v, %v)=%v",
					a, b, Unify(a, b), b, a, Unify(b, a))
			}
		}
	}
}

func TestUnify_Idempotent(t *testing.T) {
	for _, a := range allKinds {
		if got := Unify(a, a); got != a {
			t.Errorf("Unify(%v, %v) - expected=%v, got=%v", a, a, a, got)
		}
	}
}

func TestUnify_Rules(t *testing.T) {
	tests := []struct {
		name     string
		a, b     TypeKind
		expected TypeKind
	}{
		{"unknown yields", Unknown, Int, Int},
		{"void yields", Void, String, String},
		{"numeric widening", Int, Float, Float},
		{"mismatch is unknown", Int, String, Unknown},
		{"bool mismatch is unknown", Bool, Float, Unknown},
		{"unknown with void", Unknown, Void, Void},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unify(tt.a, tt.b); got != tt.expected {
				t.Errorf("Unify(%v, %v) - expected=%v, got=%v", tt.a, tt.b, tt.expected, got)
			}
		})
	}
}

func TestTypeKind_IsNumeric(t *testing.T) {
	for _, k := range allKinds {
		want := k == Int || k == Float
		if k.IsNumeric() != want {
			t.Errorf("%v.IsNumeric() - expected=%v, got=%v", k, want, k.IsNumeric())
		}
	}
}

func TestNewTypeEnv(t *testing.T) {
	env := NewTypeEnv()
	if env.Vars == nil || env.Functions == nil {
		t.Error("NewTypeEnv returned nil maps")
	}
}
