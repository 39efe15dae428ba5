package signal

import (
	"fmt"
	"math"

	"github.com/njchilds90/gosignal/symbolic"
)

// ClassifyPeriod returns the minimal period of expr, or nil when it is not
// periodic. Undecidable expressions give a *PeriodicityError.
func ClassifyPeriod(expr symbolic.Expr) (period symbolic.Expr, value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			period, value, err = nil, 0, &PeriodicityError{Err: fmt.Errorf("%v", r)}
		}
	}()
	p, perr := symbolic.Periodicity(expr, Var)
	if perr != nil {
		return nil, 0, &PeriodicityError{Err: perr}
	}
	if p == nil {
		return nil, 0, nil
	}
	n, ok := p.Eval()
	if !ok {
		return nil, 0, &PeriodicityError{Err: fmt.Errorf("period %s is not numeric", p)}
	}
	v := n.Float64()
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, 0, &PeriodicityError{Err: fmt.Errorf("period %s is not positive", p)}
	}
	return p, v, nil
}
