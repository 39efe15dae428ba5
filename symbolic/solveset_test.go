package symbolic_test

import (
	"errors"
	"math"
	"testing"

	"github.com/njchilds90/gosignal/symbolic"
)

// ============================================================
// SolveSet tests
// ============================================================

func TestSolveSet(t *testing.T) {
	tests := []struct {
		name string
		cond symbolic.Cond
		want string
	}{
		{"true", symbolic.True, "Reals"},
		{"false", symbolic.False, "EmptySet"},
		{"ray", symbolic.RelOf(tv, symbolic.GT, symbolic.N(0)), "(0, oo)"},
		{"swapped", symbolic.RelOf(symbolic.N(1), symbolic.LT, tv), "(1, oo)"},
		{"negative slope", symbolic.RelOf(symbolic.MulOf(symbolic.N(-2), tv), symbolic.LE, symbolic.N(4)), "[-2, oo)"},
		{"abs window", symbolic.RelOf(symbolic.AbsOf(tv), symbolic.LE, symbolic.F(1, 2)), "[-0.5, 0.5]"},
		{"abs outside", symbolic.RelOf(symbolic.AbsOf(tv), symbolic.GE, symbolic.N(1)), "(-oo, -1] U [1, oo)"},
		{"abs negative radius", symbolic.RelOf(symbolic.AbsOf(tv), symbolic.LE, symbolic.N(-1)), "EmptySet"},
		{"equality", symbolic.RelOf(tv, symbolic.EQ, symbolic.N(3)), "{3}"},
		{
			"and",
			symbolic.AndOf(symbolic.RelOf(tv, symbolic.GE, symbolic.N(0)), symbolic.RelOf(tv, symbolic.LE, symbolic.N(2))),
			"[0, 2]",
		},
		{
			"or disjoint",
			symbolic.OrOf(symbolic.RelOf(tv, symbolic.LT, symbolic.N(-1)), symbolic.RelOf(tv, symbolic.GT, symbolic.N(1))),
			"(-oo, -1) U (1, oo)",
		},
		{
			"or covering",
			symbolic.OrOf(symbolic.RelOf(tv, symbolic.LE, symbolic.N(1)), symbolic.RelOf(tv, symbolic.GT, symbolic.N(0))),
			"Reals",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := symbolic.SolveSet(tt.cond, "t")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("want %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestSolveSet_Quadratic(t *testing.T) {
	t2 := symbolic.PowOf(tv, symbolic.N(2))
	shifted := symbolic.AddOf(t2, symbolic.N(-4))
	tests := []struct {
		name string
		cond symbolic.Cond
		want string
	}{
		{"inside roots", symbolic.RelOf(t2, symbolic.LT, symbolic.N(4)), "(-2, 2)"},
		{"outside roots", symbolic.RelOf(t2, symbolic.GE, symbolic.N(1)), "(-oo, -1] U [1, oo)"},
		{"no real roots", symbolic.RelOf(t2, symbolic.LE, symbolic.N(-1)), "EmptySet"},
		{"always true", symbolic.RelOf(t2, symbolic.GT, symbolic.N(-1)), "Reals"},
		{"double root", symbolic.RelOf(t2, symbolic.LE, symbolic.N(0)), "{0}"},
		{"opening downward", symbolic.RelOf(symbolic.MulOf(symbolic.N(-1), t2), symbolic.GE, symbolic.N(-9)), "[-3, 3]"},
		{"roots", symbolic.RelOf(symbolic.AddOf(t2, symbolic.MulOf(symbolic.N(-3), tv)), symbolic.EQ, symbolic.N(-2)), "{1, 2}"},
		{"rect of t squared", symbolic.RelOf(symbolic.AbsOf(t2), symbolic.LE, symbolic.F(1, 2)), "[-0.7071067811865476, 0.7071067811865476]"},
		{"abs band", symbolic.RelOf(symbolic.AbsOf(shifted), symbolic.LE, symbolic.N(5)), "[-3, 3]"},
		{"abs two bands", symbolic.RelOf(symbolic.AbsOf(shifted), symbolic.LE, symbolic.F(1, 2)), "[-2.1213203435596424, -1.8708286933869707] U [1.8708286933869707, 2.1213203435596424]"},
		{"abs outside", symbolic.RelOf(symbolic.AbsOf(shifted), symbolic.GT, symbolic.N(5)), "(-oo, -3) U (3, oo)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := symbolic.SolveSet(tt.cond, "t")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("want %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestSolveSet_NonLinearUnsupported(t *testing.T) {
	_, err := symbolic.SolveSet(symbolic.RelOf(symbolic.PowOf(tv, symbolic.N(3)), symbolic.GT, symbolic.N(1)), "t")
	if !errors.Is(err, symbolic.ErrUnsupported) {
		t.Errorf("want ErrUnsupported, got %v", err)
	}
}

func TestInterval_Bounded(t *testing.T) {
	if !(symbolic.Interval{Lo: -1, Hi: 1}).Bounded() {
		t.Errorf("[-1, 1] should be bounded")
	}
	if (symbolic.Interval{Lo: 0, Hi: math.Inf(1), RightOpen: true}).Bounded() {
		t.Errorf("[0, oo) should not be bounded")
	}
}

func TestUnionOf_MergesOverlap(t *testing.T) {
	got := symbolic.UnionOf(symbolic.Interval{Lo: 0, Hi: 2}, symbolic.Interval{Lo: 1, Hi: 3})
	if got.String() != "[0, 3]" {
		t.Errorf("want [0, 3], got %s", got.String())
	}
}

func TestUnionOf_KeepsOpenGap(t *testing.T) {
	got := symbolic.UnionOf(
		symbolic.Interval{Lo: 0, Hi: 1, RightOpen: true},
		symbolic.Interval{Lo: 1, Hi: 2, LeftOpen: true},
	)
	if got.String() != "[0, 1) U (1, 2]" {
		t.Errorf("want [0, 1) U (1, 2], got %s", got.String())
	}
	if got.Contains(1) {
		t.Errorf("1 is excluded from both halves")
	}
}

func TestIntersectionOf(t *testing.T) {
	got := symbolic.IntersectionOf(symbolic.Reals{}, symbolic.Interval{Lo: -1, Hi: 1, LeftOpen: true})
	if got.String() != "(-1, 1]" {
		t.Errorf("want (-1, 1], got %s", got.String())
	}
}

func TestBreakpoints(t *testing.T) {
	e := symbolic.AddOf(rectT(), symbolic.HeavisideOf(symbolic.AddOf(tv, symbolic.N(-3))))
	got := symbolic.Breakpoints(e, "t")
	want := []float64{-0.5, 0.5, 3}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("want %v, got %v", want, got)
		}
	}
}
