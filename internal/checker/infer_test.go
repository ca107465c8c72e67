package checker

import (
	"testing"

	"github.com/Chris-debuggs/cimple/internal/parser"
	"github.com/Chris-debuggs/cimple/internal/types"
)

func inferSource(source string) *types.TypeEnv {
	return Infer(parser.ParseSource(source))
}

func TestInfer_GlobalLiterals(t *testing.T) {
	env := inferSource("a = 1\nb = 2.5\nc = \"hi\"\nd = True\n")
	tests := []struct {
		name     string
		expected types.TypeKind
	}{
		{"a", types.Int},
		{"b", types.Float},
		{"c", types.String},
		{"d", types.Bool},
	}
	for _, tt := range tests {
		if got := env.Vars[tt.name]; got != tt.expected {
			t.Errorf("var %s - wrong type. expected=%v, got=%v", tt.name, tt.expected, got)
		}
	}
}

func TestInfer_ArithmeticTypes(t *testing.T) {
	env := inferSource("a = 1 + 2\nb = 1 + 2.0\nc = 6 / 2\nd = \"x\" + \"y\"\n")
	if env.Vars["a"] != types.Int {
		t.Errorf("a - wrong type. expected=int, got=%v", env.Vars["a"])
	}
	if env.Vars["b"] != types.Float {
		t.Errorf("b - wrong type. expected=float, got=%v", env.Vars["b"])
	}
	// Division is statically Float even when it might stay integral.
	if env.Vars["c"] != types.Float {
		t.Errorf("c - wrong type. expected=float, got=%v", env.Vars["c"])
	}
	if env.Vars["d"] != types.String {
		t.Errorf("d - wrong type. expected=string, got=%v", env.Vars["d"])
	}
}

func TestInfer_ComparisonsAreBool(t *testing.T) {
	env := inferSource("a = 1 < 2\nb = True and False\n")
	if env.Vars["a"] != types.Bool {
		t.Errorf("a - wrong type. expected=bool, got=%v", env.Vars["a"])
	}
	if env.Vars["b"] != types.Bool {
		t.Errorf("b - wrong type. expected=bool, got=%v", env.Vars["b"])
	}
}

func TestInfer_FunctionReturnTypes(t *testing.T) {
	env := inferSource("def f():\n    return 1\ndef g():\n    return \"s\"\ndef h():\n    x = 1\n")
	if env.Functions["f"] != types.Int {
		t.Errorf("f - wrong type. expected=int, got=%v", env.Functions["f"])
	}
	if env.Functions["g"] != types.String {
		t.Errorf("g - wrong type. expected=string, got=%v", env.Functions["g"])
	}
	if env.Functions["h"] != types.Void {
		t.Errorf("h - wrong type. expected=void, got=%v", env.Functions["h"])
	}
}

func TestInfer_FixpointThroughCallChain(t *testing.T) {
	// f's type depends on g, which depends on h; the fixpoint must
	// propagate Int through the whole chain regardless of order.
	src := "def f():\n    return g()\ndef g():\n    return h()\ndef h():\n    return 7\n"
	env := inferSource(src)
	for _, name := range []string{"f", "g", "h"} {
		if env.Functions[name] != types.Int {
			t.Errorf("%s - wrong type. expected=int, got=%v", name, env.Functions[name])
		}
	}
}

func TestInfer_MergedReturnTypes(t *testing.T) {
	src := "def f(x):\n    if x:\n        return 1\n    return 2.0\n"
	env := inferSource(src)
	if env.Functions["f"] != types.Float {
		t.Errorf("f - wrong type. expected=float, got=%v", env.Functions["f"])
	}
}

func TestInfer_GlobalsRecomputedAfterFixpoint(t *testing.T) {
	src := "def f():\n    return 3\ny = f()\n"
	env := inferSource(src)
	if env.Vars["y"] != types.Int {
		t.Errorf("y - wrong type. expected=int, got=%v", env.Vars["y"])
	}
}

func TestInfer_UnknownCallIsUnknown(t *testing.T) {
	env := inferSource("x = mystery()\n")
	if env.Vars["x"] != types.Unknown {
		t.Errorf("x - wrong type. expected=Unknown, got=%v", env.Vars["x"])
	}
}

func TestInfer_PrintIsVoid(t *testing.T) {
	env := inferSource("x = print(1)\n")
	if env.Vars["x"] != types.Void {
		t.Errorf("x - wrong type. expected=void, got=%v", env.Vars["x"])
	}
}

func TestInfer_BlockLocalsDoNotLeak(t *testing.T) {
	src := "if True:\n    inner = 1\nouter = 2\n"
	env := inferSource(src)
	if _, ok := env.Vars["inner"]; ok {
		t.Error("block-local binding leaked into globals")
	}
	if env.Vars["outer"] != types.Int {
		t.Errorf("outer - wrong type. expected=int, got=%v", env.Vars["outer"])
	}
}

func TestInfer_ReassignmentWidens(t *testing.T) {
	env := inferSource("x = 1\nx = 2.5\n")
	if env.Vars["x"] != types.Float {
		t.Errorf("x - wrong type. expected=float, got=%v", env.Vars["x"])
	}
}

func TestInfer_NeverPanicsOnTruncatedInput(t *testing.T) {
	env := inferSource("x = 1\n]]]\n")
	if env.Vars["x"] != types.Int {
		t.Errorf("x - wrong type. expected=int, got=%v", env.Vars["x"])
	}
}
