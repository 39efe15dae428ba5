package symbolic

import "math"

// ============================================================
// Func: named function applications
// ============================================================

// Function names known to the kernel.
const (
	FuncSin       = "sin"
	FuncCos       = "cos"
	FuncExp       = "exp"
	FuncLog       = "log"
	FuncSinc      = "sinc"
	FuncHeaviside = "heaviside"
	FuncAbs       = "abs"
)

// HeavisideAtZero is the value of the unit step at its discontinuity.
const HeavisideAtZero = 0.5

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr { return funcOf(FuncSin, arg).Simplify() }
func CosOf(arg Expr) Expr { return funcOf(FuncCos, arg).Simplify() }
func ExpOf(arg Expr) Expr { return funcOf(FuncExp, arg).Simplify() }
func LogOf(arg Expr) Expr { return funcOf(FuncLog, arg).Simplify() }
func AbsOf(arg Expr) Expr { return funcOf(FuncAbs, arg).Simplify() }

// SincOf is the normalized sinc, sin(pi*x)/(pi*x) with sinc(0) = 1.
func SincOf(arg Expr) Expr { return funcOf(FuncSinc, arg).Simplify() }

// HeavisideOf is the unit step; see HeavisideAtZero.
func HeavisideOf(arg Expr) Expr { return funcOf(FuncHeaviside, arg).Simplify() }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		switch f.name {
		case FuncAbs:
			return numAbs(n)
		case FuncHeaviside:
			switch {
			case n.IsPositive():
				return N(1)
			case n.IsNegative():
				return N(0)
			default:
				return F(1, 2)
			}
		}
		if v, ok2 := applyFloat(f.name, n.Float64()); ok2 {
			if folded, ok3 := floatExpr(v); ok3 {
				return folded
			}
		}
	}
	switch f.name {
	case FuncLog:
		if inner, ok := arg.(*Func); ok && inner.name == FuncExp {
			return inner.arg
		}
	case FuncExp:
		if inner, ok := arg.(*Func); ok && inner.name == FuncLog {
			return inner.arg
		}
	case FuncAbs:
		if m, ok := arg.(*Mul); ok && len(m.factors) >= 2 {
			if coeff, ok2 := m.factors[0].(*Num); ok2 && coeff.IsNegative() {
				return MulOf(numAbs(coeff), AbsOf(MulOf(m.factors[1:]...)))
			}
		}
	}
	return &Func{name: f.name, arg: arg}
}

// applyFloat evaluates a named function on a float argument.
func applyFloat(name string, v float64) (float64, bool) {
	switch name {
	case FuncSin:
		return math.Sin(v), true
	case FuncCos:
		return math.Cos(v), true
	case FuncExp:
		return math.Exp(v), true
	case FuncLog:
		if v > 0 {
			return math.Log(v), true
		}
		return math.NaN(), false
	case FuncSinc:
		if v == 0 {
			return 1, true
		}
		return math.Sin(math.Pi*v) / (math.Pi * v), true
	case FuncHeaviside:
		switch {
		case v > 0:
			return 1, true
		case v < 0:
			return 0, true
		}
		return HeavisideAtZero, true
	case FuncAbs:
		return math.Abs(v), true
	}
	return math.NaN(), false
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	v, ok := applyFloat(f.name, n.Float64())
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return NFloat(v), true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }
