package symbolic_test

import (
	"math"
	"testing"

	"github.com/njchilds90/gosignal/symbolic"
)

var tv = symbolic.S("t")

// ============================================================
// Num tests
// ============================================================

func TestNum_Rational(t *testing.T) {
	n := symbolic.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNFloat_NonFinite(t *testing.T) {
	if symbolic.NFloat(math.Inf(1)) != nil {
		t.Errorf("NFloat(+Inf) should be nil")
	}
	if symbolic.NFloat(math.NaN()) != nil {
		t.Errorf("NFloat(NaN) should be nil")
	}
}

// ============================================================
// Add / Mul / Pow tests
// ============================================================

func TestAdd_LikeTerms(t *testing.T) {
	result := symbolic.AddOf(tv, tv)
	if result.String() != "2*t" {
		t.Errorf("want 2*t, got %s", result.String())
	}
}

func TestAdd_CollapseToZero(t *testing.T) {
	result := symbolic.AddOf(tv, symbolic.MulOf(symbolic.N(-1), tv))
	if result.String() != "0" {
		t.Errorf("want 0, got %s", result.String())
	}
}

func TestMul_MergesBases(t *testing.T) {
	result := symbolic.MulOf(tv, tv)
	if result.String() != "t^2" {
		t.Errorf("want t^2, got %s", result.String())
	}
}

func TestMul_CoefficientFirst(t *testing.T) {
	result := symbolic.MulOf(tv, symbolic.N(3))
	if result.String() != "3*t" {
		t.Errorf("want 3*t, got %s", result.String())
	}
}

func TestPow_NumericFold(t *testing.T) {
	result := symbolic.PowOf(symbolic.N(2), symbolic.N(-3))
	if result.String() != "1/8" {
		t.Errorf("want 1/8, got %s", result.String())
	}
}

func TestPow_ZeroToNegativeStaysUnevaluated(t *testing.T) {
	result := symbolic.PowOf(symbolic.N(0), symbolic.N(-1))
	if result.String() != "0^(-1)" {
		t.Errorf("want 0^(-1), got %s", result.String())
	}
	if _, ok := result.Eval(); ok {
		t.Errorf("0^(-1) should not evaluate")
	}
}

func TestExpand_Square(t *testing.T) {
	result := symbolic.Expand(symbolic.PowOf(symbolic.AddOf(tv, symbolic.N(1)), symbolic.N(2)))
	if result.String() != "2*t + t^2 + 1" {
		t.Errorf("want 2*t + t^2 + 1, got %s", result.String())
	}
}

func TestLinear(t *testing.T) {
	a, b, ok := symbolic.Linear(symbolic.AddOf(symbolic.MulOf(symbolic.N(3), tv), symbolic.N(2)), "t")
	if !ok || a.String() != "3" || b.String() != "2" {
		t.Errorf("want 3*t + 2, got ok=%v a=%v b=%v", ok, a, b)
	}
}

func TestLinear_RejectsSquare(t *testing.T) {
	if _, _, ok := symbolic.Linear(symbolic.PowOf(tv, symbolic.N(2)), "t"); ok {
		t.Errorf("t^2 is not linear")
	}
}

func TestFreeSymbols_Piecewise(t *testing.T) {
	pw := symbolic.PiecewiseOf(
		symbolic.Branch{Value: symbolic.N(1), Cond: symbolic.RelOf(tv, symbolic.GT, symbolic.N(0))},
		symbolic.Branch{Value: symbolic.N(0), Cond: symbolic.True},
	)
	if !symbolic.DependsOn(pw, "t") {
		t.Errorf("piecewise condition on t should count as a free t")
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_HeavisideAtZero(t *testing.T) {
	result := symbolic.HeavisideOf(symbolic.N(0))
	if result.String() != "1/2" {
		t.Errorf("want 1/2, got %s", result.String())
	}
}

func TestFunc_SincAtZero(t *testing.T) {
	result := symbolic.SincOf(symbolic.N(0))
	if result.String() != "1" {
		t.Errorf("want 1, got %s", result.String())
	}
}

func TestFunc_LogOfExp(t *testing.T) {
	result := symbolic.LogOf(symbolic.ExpOf(tv))
	if result.String() != "t" {
		t.Errorf("want t, got %s", result.String())
	}
}

func TestFunc_AbsPullsNegativeCoefficient(t *testing.T) {
	result := symbolic.AbsOf(symbolic.MulOf(symbolic.N(-2), tv))
	if result.String() != "2*abs(t)" {
		t.Errorf("want 2*abs(t), got %s", result.String())
	}
}

// ============================================================
// Piecewise tests
// ============================================================

func rectT() symbolic.Expr {
	return symbolic.PiecewiseOf(
		symbolic.Branch{Value: symbolic.N(1), Cond: symbolic.RelOf(symbolic.AbsOf(tv), symbolic.LE, symbolic.F(1, 2))},
		symbolic.Branch{Value: symbolic.N(0), Cond: symbolic.True},
	)
}

func TestPiecewise_String(t *testing.T) {
	want := "Piecewise((1, abs(t) <= 1/2), (0, True))"
	if got := rectT().String(); got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestPiecewise_Sub(t *testing.T) {
	if got := rectT().Sub("t", symbolic.N(0)).String(); got != "1" {
		t.Errorf("rect(0): want 1, got %s", got)
	}
	if got := rectT().Sub("t", symbolic.N(2)).String(); got != "0" {
		t.Errorf("rect(2): want 0, got %s", got)
	}
}

func TestPiecewise_TrueFirstCollapses(t *testing.T) {
	result := symbolic.PiecewiseOf(symbolic.Branch{Value: tv, Cond: symbolic.True})
	if result.String() != "t" {
		t.Errorf("want t, got %s", result.String())
	}
}

func TestPow_MapsOverPiecewise(t *testing.T) {
	result := symbolic.PowOf(rectT(), symbolic.N(2))
	if !result.Equal(rectT()) {
		t.Errorf("rect^2 should equal rect, got %s", result.String())
	}
}

// ============================================================
// Lambdify tests
// ============================================================

func TestLambdify(t *testing.T) {
	e := symbolic.AddOf(symbolic.MulOf(symbolic.N(3), tv), symbolic.SinOf(tv))
	f, err := symbolic.Lambdify(e, "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 3*1.5 + math.Sin(1.5)
	if got := f(1.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestLambdify_Piecewise(t *testing.T) {
	f, err := symbolic.Lambdify(rectT(), "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f(0.25) != 1 || f(0.5) != 1 || f(0.75) != 0 {
		t.Errorf("rect samples wrong: %v %v %v", f(0.25), f(0.5), f(0.75))
	}
}

func TestLambdify_RejectsOtherSymbols(t *testing.T) {
	if _, err := symbolic.Lambdify(symbolic.S("x"), "t"); err == nil {
		t.Errorf("expected error for free symbol x")
	}
}
