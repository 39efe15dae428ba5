package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// Periodicity
// ============================================================

// periodInfo is the structural period of a subtree. Periods are rational
// multiples of pi; k holds the multiplier.
type periodInfo struct {
	constant bool
	periodic bool
	k        *big.Rat
}

var nonPeriodic = periodInfo{}

// Periodicity returns the minimal period of expr in varName, or nil when expr
// is not periodic (constants included). Expressions the analysis cannot decide
// return an error wrapping ErrUnsupported.
func Periodicity(expr Expr, varName string) (Expr, error) {
	e := expr.Simplify()
	info, err := structuralPeriod(e, varName)
	if err != nil {
		return nil, err
	}
	if !info.periodic {
		return nil, nil
	}
	k := refinePeriod(e, varName, info.k)
	return MulOf(NRat(k), Pi), nil
}

func structuralPeriod(e Expr, varName string) (periodInfo, error) {
	if !DependsOn(e, varName) {
		return periodInfo{constant: true}, nil
	}
	switch v := e.(type) {
	case *Sym:
		return nonPeriodic, nil
	case *Add:
		return combinePeriods(v.terms, varName)
	case *Mul:
		return combinePeriods(v.factors, varName)
	case *Pow:
		if DependsOn(v.base, varName) && DependsOn(v.exp, varName) {
			return periodInfo{}, fmt.Errorf("period of %s: variable in base and exponent: %w", e, ErrUnsupported)
		}
		return combinePeriods([]Expr{v.base, v.exp}, varName)
	case *Func:
		if v.name == FuncSin || v.name == FuncCos {
			if a, _, ok := Linear(v.arg, varName); ok && !a.IsZero() {
				k := new(big.Rat).Quo(big.NewRat(2, 1), a.Rat())
				return periodInfo{periodic: true, k: k.Abs(k)}, nil
			}
			if hasConst(v.arg) {
				return periodInfo{}, fmt.Errorf("period of %s: irrational frequency: %w", e, ErrUnsupported)
			}
		}
		return structuralPeriod(v.arg, varName)
	case *Piecewise:
		var parts []Expr
		for _, b := range v.branches {
			parts = append(parts, b.Value)
			parts = append(parts, condOperands(b.Cond)...)
		}
		return combinePeriods(parts, varName)
	}
	return periodInfo{}, fmt.Errorf("period of %T: %w", e, ErrUnsupported)
}

// combinePeriods takes the LCM of the parts' periods. Any non-periodic part
// makes the whole non-periodic; errors win over both.
func combinePeriods(parts []Expr, varName string) (periodInfo, error) {
	acc := periodInfo{constant: true}
	aperiodic := false
	for _, p := range parts {
		info, err := structuralPeriod(p, varName)
		if err != nil {
			return periodInfo{}, err
		}
		switch {
		case info.constant:
		case !info.periodic:
			aperiodic = true
		case acc.constant:
			acc = info
		default:
			acc.k = lcmRat(acc.k, info.k)
		}
	}
	if aperiodic {
		return nonPeriodic, nil
	}
	return acc, nil
}

// lcmRat is the least common multiple of two positive rationals:
// lcm(a/b, c/d) = lcm(a, c) / gcd(b, d).
func lcmRat(x, y *big.Rat) *big.Rat {
	a, b := x.Num(), x.Denom()
	c, d := y.Num(), y.Denom()
	g := new(big.Int).GCD(nil, nil, a, c)
	l := new(big.Int).Mul(a, c)
	l.Quo(l, g)
	den := new(big.Int).GCD(nil, nil, b, d)
	return new(big.Rat).SetFrac(l, den)
}

func hasConst(e Expr) bool {
	switch v := e.(type) {
	case *Const:
		return true
	case *Add:
		for _, t := range v.terms {
			if hasConst(t) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if hasConst(f) {
				return true
			}
		}
	case *Pow:
		return hasConst(v.base) || hasConst(v.exp)
	case *Func:
		return hasConst(v.arg)
	}
	return false
}

func condOperands(c Cond) []Expr {
	switch v := c.(type) {
	case *Rel:
		return []Expr{v.LHS, v.RHS}
	case *And:
		var out []Expr
		for _, a := range v.args {
			out = append(out, condOperands(a)...)
		}
		return out
	case *Or:
		var out []Expr
		for _, a := range v.args {
			out = append(out, condOperands(a)...)
		}
		return out
	}
	return nil
}

// Sample points for period refinement. Irregular spacing avoids landing on
// a common zero pattern of the candidate shifts.
var periodSamples = []float64{
	0.1234, 0.5711, 0.9876, 1.4142, 1.7321, 2.2361, 2.7183, 3.0103,
	3.6055, 4.1231, 4.7958, 5.3852, 5.9161, 6.4807, 7.1414, 7.7459,
}

const (
	maxPeriodDivisor = 12
	// Bounds the refinement of expressions that are constant in disguise.
	maxRefineRounds = 6
)

// refinePeriod divides k by the largest d in [2, maxPeriodDivisor] such that
// shifting by k*pi/d leaves the expression unchanged at every sample, and
// repeats on the result until no divisor applies. Repeating reaches
// composite factors such as 15 = 5*3.
func refinePeriod(e Expr, varName string, k *big.Rat) *big.Rat {
	f, err := Lambdify(e, varName)
	if err != nil {
		return k
	}
	period := new(big.Rat).Set(k)
	for round := 0; round < maxRefineRounds; round++ {
		d := bestDivisor(f, period)
		if d == 1 {
			break
		}
		period.Quo(period, big.NewRat(int64(d), 1))
	}
	return period
}

func bestDivisor(f func(float64) float64, period *big.Rat) int {
	pf, _ := period.Float64()
	for d := maxPeriodDivisor; d >= 2; d-- {
		if invariantUnder(f, pf*math.Pi/float64(d)) {
			return d
		}
	}
	return 1
}

func invariantUnder(f func(float64) float64, shift float64) bool {
	compared := 0
	for _, x := range periodSamples {
		a, b := f(x), f(x+shift)
		aBad := math.IsNaN(a) || math.IsInf(a, 0)
		bBad := math.IsNaN(b) || math.IsInf(b, 0)
		switch {
		case aBad && bBad:
			continue
		case aBad || bBad:
			return false
		}
		if math.Abs(a-b) > 1e-9*(1+math.Abs(a)) {
			return false
		}
		compared++
	}
	return compared >= len(periodSamples)/2
}
