package eval

import (
	"testing"
)

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected bool
	}{
		{"nonzero int", IntValue(3), true},
		{"zero int", IntValue(0), false},
		{"negative int", IntValue(-1), true},
		{"nonzero float", FloatValue(0.5), true},
		{"zero float", FloatValue(0), false},
		{"non-empty string", StringValue("x"), true},
		{"empty string", StringValue(""), false},
		{"true", BoolValue(true), true},
		{"false", BoolValue(false), false},
		{"zero value", Value{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Truthy(); got != tt.expected {
				t.Errorf("Truthy() - expected=%v, got=%v", tt.expected, got)
			}
		})
	}
}

func TestValue_Render(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"int", IntValue(42), "42"},
		{"negative int", IntValue(-7), "-7"},
		{"float with fraction", FloatValue(3.5), "3.5"},
		{"whole float keeps marker", FloatValue(4), "4.0"},
		{"large float", FloatValue(1e21), "1e+21"},
		{"string is raw", StringValue("hi"), "hi"},
		{"true", BoolValue(true), "True"},
		{"false", BoolValue(false), "False"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Render(); got != tt.expected {
				t.Errorf("Render() - expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}

func TestValue_Equal(t *testing.T) {
	if !IntValue(2).Equal(FloatValue(2.0)) {
		t.Error("Int(2) != Float(2.0)")
	}
	if IntValue(2).Equal(StringValue("2")) {
		t.Error("Int(2) == String(\"2\")")
	}
	if !StringValue("a").Equal(StringValue("a")) {
		t.Error("equal strings compared unequal")
	}
	if !BoolValue(true).Equal(BoolValue(true)) {
		t.Error("equal bools compared unequal")
	}
}
