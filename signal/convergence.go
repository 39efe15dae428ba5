package signal

import (
	"github.com/sirupsen/logrus"

	"github.com/njchilds90/gosignal/symbolic"
)

// Decays reports whether expr vanishes toward both -oo and +oo.
//
// A top-level piecewise expression decays when the set where it is non-zero
// is bounded. Anything else decays when both limits at infinity exist and are
// zero. Every failure along the way means "does not decay"; failures are
// logged at debug level and never returned.
func Decays(expr symbolic.Expr, log logrus.FieldLogger) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Debug("convergence check panicked")
			ok = false
		}
	}()
	if pw, isPw := expr.(*symbolic.Piecewise); isPw {
		return supportBounded(pw, log)
	}
	for _, dir := range []int{1, -1} {
		res := symbolic.LimitAtInfinity(expr, Var, dir)
		if !res.Success {
			log.WithFields(logrus.Fields{"dir": dir, "reason": res.Error}).Debug("limit undetermined")
			return false
		}
		if res.Kind != symbolic.LimitFinite || !isZero(res.Value) {
			log.WithFields(logrus.Fields{"dir": dir, "kind": res.Kind.String()}).Debug("limit is not zero")
			return false
		}
	}
	return true
}

func supportBounded(pw *symbolic.Piecewise, log logrus.FieldLogger) bool {
	var conds []symbolic.Cond
	for _, b := range pw.Branches() {
		if isZero(b.Value) {
			continue
		}
		conds = append(conds, b.Cond)
	}
	set, err := symbolic.SolveSet(symbolic.OrOf(conds...), Var)
	if err != nil {
		log.WithError(err).Debug("support could not be solved")
		return false
	}
	switch s := set.(type) {
	case symbolic.Interval:
		return s.Bounded()
	case symbolic.Union:
		for _, iv := range s.Intervals {
			if !iv.Bounded() {
				return false
			}
		}
		return true
	}
	log.WithField("support", set.String()).Debug("support is not a bounded interval")
	return false
}

func isZero(e symbolic.Expr) bool {
	n, ok := e.(*symbolic.Num)
	return ok && n.IsZero()
}
