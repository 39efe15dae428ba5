package signal

import (
	"context"
	"fmt"
	"math"

	"github.com/njchilds90/gosignal/symbolic"
)

// Formulas named by IntegrationError.
const (
	FormulaPower  = "power"
	FormulaMean   = "mean"
	FormulaEnergy = "energy"
)

// Evaluate computes the metrics of expr for its regime:
//
//	Periodic(T)  energy "infinity", power (1/T)∫₀ᵀ f², mean (1/T)∫₀ᵀ f
//	Decaying     energy ∫ f² over the reals, power and mean undefined
//	NonDecaying  energy "infinity", power and mean undefined
//
// Numbers are rounded to Precision places. Context errors are returned
// unwrapped; every other failure is an *IntegrationError.
func Evaluate(ctx context.Context, expr symbolic.Expr, r Regime) (res Result, err error) {
	formula := ""
	defer func() {
		if rec := recover(); rec != nil {
			res, err = Result{}, &IntegrationError{Formula: formula, Err: fmt.Errorf("%v", rec)}
		}
	}()
	squared := symbolic.PowOf(expr, symbolic.N(2))
	integral := func(name string, e symbolic.Expr, a, b float64) (float64, error) {
		formula = name
		v, ierr := symbolic.DefiniteIntegrate(ctx, e, Var, a, b)
		if ierr != nil {
			if cerr := ctx.Err(); cerr != nil {
				return 0, cerr
			}
			return 0, &IntegrationError{Formula: name, Err: ierr}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &IntegrationError{Formula: name, Err: ErrNotFinite}
		}
		return v, nil
	}

	res.Regime = r.Kind.String()
	switch r.Kind {
	case Periodic:
		T := r.PeriodValue
		p, err := integral(FormulaPower, squared, 0, T)
		if err != nil {
			return Result{}, err
		}
		m, err := integral(FormulaMean, expr, 0, T)
		if err != nil {
			return Result{}, err
		}
		res.Period = &T
		res.Energy = valuePtr(Sentinel(Infinity))
		res.Power = valuePtr(Number(p / T))
		res.Mean = valuePtr(Number(m / T))
	case Decaying:
		e, err := integral(FormulaEnergy, squared, math.Inf(-1), math.Inf(1))
		if err != nil {
			return Result{}, err
		}
		res.Energy = valuePtr(Number(e))
		res.Power = valuePtr(Sentinel(UndefinedNonPeriodic))
		res.Mean = valuePtr(Sentinel(UndefinedNonPeriodic))
	default:
		res.Energy = valuePtr(Sentinel(Infinity))
		res.Power = valuePtr(Sentinel(UndefinedNonDecaying))
		res.Mean = valuePtr(Sentinel(UndefinedNonDecaying))
	}
	return res, nil
}
