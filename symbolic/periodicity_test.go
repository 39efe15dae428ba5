package symbolic_test

import (
	"errors"
	"testing"

	"github.com/njchilds90/gosignal/symbolic"
)

// ============================================================
// Periodicity tests
// ============================================================

func TestPeriodicity(t *testing.T) {
	half := symbolic.MulOf(symbolic.F(1, 2), tv)
	tests := []struct {
		name string
		expr symbolic.Expr
		want string
	}{
		{"sin", symbolic.SinOf(tv), "2*pi"},
		{"cos squared", symbolic.PowOf(symbolic.CosOf(tv), symbolic.N(2)), "pi"},
		{"slow sin", symbolic.SinOf(half), "4*pi"},
		{"sum lcm", symbolic.AddOf(symbolic.SinOf(symbolic.MulOf(symbolic.N(2), tv)), symbolic.SinOf(symbolic.MulOf(symbolic.N(3), tv))), "2*pi"},
		{"phase shift", symbolic.CosOf(symbolic.AddOf(symbolic.MulOf(symbolic.N(4), tv), symbolic.N(1))), "1/2*pi"},
		{"function of periodic", symbolic.ExpOf(symbolic.SinOf(tv)), "2*pi"},
		{"product", symbolic.MulOf(symbolic.SinOf(tv), symbolic.CosOf(tv)), "pi"},
		{"divisor above twelve", cos15Disguised(), "2/15*pi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := symbolic.Periodicity(tt.expr, "t")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatalf("want %s, got non-periodic", tt.want)
			}
			if got.String() != tt.want {
				t.Errorf("want %s, got %s", tt.want, got.String())
			}
		})
	}
}

// 4*cos(5t)^3 - 3*cos(5t) + sin(t)^2 + cos(t)^2, which is cos(15t) + 1.
// Its structural period 2*pi is 15 times too long.
func cos15Disguised() symbolic.Expr {
	c5 := symbolic.CosOf(symbolic.MulOf(symbolic.N(5), tv))
	return symbolic.AddOf(
		symbolic.MulOf(symbolic.N(4), symbolic.PowOf(c5, symbolic.N(3))),
		symbolic.MulOf(symbolic.N(-3), c5),
		symbolic.PowOf(symbolic.SinOf(tv), symbolic.N(2)),
		symbolic.PowOf(symbolic.CosOf(tv), symbolic.N(2)),
	)
}

func TestPeriodicity_NonPeriodic(t *testing.T) {
	tests := map[string]symbolic.Expr{
		"constant":     symbolic.N(5),
		"exp":          symbolic.ExpOf(tv),
		"sinc":         symbolic.SincOf(tv),
		"rect":         rectT(),
		"sin plus t":   symbolic.AddOf(symbolic.SinOf(tv), tv),
		"chirp":        symbolic.SinOf(symbolic.PowOf(tv, symbolic.N(2))),
		"gated cosine": symbolic.MulOf(symbolic.CosOf(tv), symbolic.HeavisideOf(tv)),
	}
	for name, e := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := symbolic.Periodicity(e, "t")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != nil {
				t.Errorf("want non-periodic, got %s", got.String())
			}
		})
	}
}

func TestPeriodicity_Undecidable(t *testing.T) {
	_, err := symbolic.Periodicity(symbolic.PowOf(tv, tv), "t")
	if !errors.Is(err, symbolic.ErrUnsupported) {
		t.Errorf("want ErrUnsupported, got %v", err)
	}
}
