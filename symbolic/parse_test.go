package symbolic_test

import (
	"testing"

	"github.com/njchilds90/gosignal/symbolic"
)

// ============================================================
// Parse tests
// ============================================================

var testTable = symbolic.SymbolTable{
	"t": {Value: tv},
	"sin": {
		Fn:      func(args ...symbolic.Expr) (symbolic.Expr, error) { return symbolic.SinOf(args[0]), nil },
		MinArgs: 1,
		MaxArgs: 1,
	},
	"exp": {
		Fn:      func(args ...symbolic.Expr) (symbolic.Expr, error) { return symbolic.ExpOf(args[0]), nil },
		MinArgs: 1,
		MaxArgs: 1,
	},
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sin(2*t) + 1", "sin(2*t) + 1"},
		{"t**2", "t^2"},
		{"t^2", "t^2"},
		{"0.5*t", "1/2*t"},
		{"2.5", "5/2"},
		{"-t", "-1*t"},
		{"+t", "t"},
		{"t/4", "1/4*t"},
		{"exp(-t)", "exp(-1*t)"},
		{"(t + 1) * 2", "2*(t + 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := symbolic.Parse(tt.in, testTable)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("want %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo(t)", "name 'foo' is not defined"},
		{"x + 1", "name 'x' is not defined"},
		{"sin(t, t)", "sin() takes exactly 1 argument (2 given)"},
		{"1/0", "division by zero"},
		{"sin", "'sin' is a function and must be called"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := symbolic.Parse(tt.in, testTable)
			if err == nil || err.Error() != tt.want {
				t.Errorf("want %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParse_RejectsSyntax(t *testing.T) {
	for _, in := range []string{"t +", "t t", `"text"`, "t % 2", "[t]"} {
		if _, err := symbolic.Parse(in, testTable); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}
