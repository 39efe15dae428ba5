package symbolic

import (
	"fmt"
	"math"
)

// ============================================================
// Limits at infinity
// ============================================================

// LimitKind classifies the outcome of LimitAtInfinity.
type LimitKind int

const (
	LimitFinite LimitKind = iota
	LimitPosInf
	LimitNegInf
	LimitOscillating
)

func (k LimitKind) String() string {
	switch k {
	case LimitFinite:
		return "finite"
	case LimitPosInf:
		return "+oo"
	case LimitNegInf:
		return "-oo"
	}
	return "oscillating"
}

// LimitResult holds the result of a limit computation.
// Value is set only for LimitFinite.
type LimitResult struct {
	Value   Expr
	Kind    LimitKind
	Success bool
	Error   string
}

// Asymptote describes the leading behavior of an expression as the variable
// tends to +oo:
//
//	Coeff * exp(Rate*t) * t^Power * log(t)^Logs
//
// Rate or Power may be ±Inf for faster-than-exponential or
// faster-than-polynomial behavior. When Oscillating is set the expression is
// that envelope times a bounded factor with no limit, and Coeff is the
// envelope magnitude. Small means the expression is only known to be o() of
// the order, as left behind when leading terms of a sum cancel; Coeff is
// then meaningless.
type Asymptote struct {
	Zero        bool
	Coeff       float64
	Rate        float64
	Power       float64
	Logs        float64
	Oscillating bool
	Small       bool
}

// order compares growth orders lexicographically on (Rate, Power, Logs).
// A Zero asymptote is below every other.
func (a Asymptote) order(b Asymptote) int {
	switch {
	case a.Zero && b.Zero:
		return 0
	case a.Zero:
		return -1
	case b.Zero:
		return 1
	}
	for _, p := range [][2]float64{{a.Rate, b.Rate}, {a.Power, b.Power}, {a.Logs, b.Logs}} {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// dominates is order with ties broken against Small, since o(x) is below x.
func (a Asymptote) dominates(b Asymptote) int {
	if c := a.order(b); c != 0 || a.Small == b.Small {
		return c
	}
	if a.Small {
		return -1
	}
	return 1
}

// growth reports the sign of the order relative to a constant.
func (a Asymptote) growth() int { return a.order(Asymptote{Coeff: 1}) }

// Vanishes reports whether the expression tends to zero.
func (a Asymptote) Vanishes() bool {
	g := a.growth()
	return a.Zero || g < 0 || (a.Small && g == 0)
}

// small is o(t^Power ...) at the order of a.
func small(a Asymptote) Asymptote {
	return Asymptote{Coeff: 1, Rate: a.Rate, Power: a.Power, Logs: a.Logs, Small: true}
}

func constAsym(c float64) Asymptote {
	if c == 0 {
		return Asymptote{Zero: true}
	}
	return Asymptote{Coeff: c}
}

// LimitAtInfinity computes lim expr as varName -> +oo (dir > 0) or -oo (dir < 0).
func LimitAtInfinity(expr Expr, varName string, dir int) LimitResult {
	a, err := AsymptoteAt(expr, varName, dir)
	if err != nil {
		return LimitResult{Error: err.Error()}
	}
	switch g := a.growth(); {
	case a.Vanishes():
		return LimitResult{Value: N(0), Kind: LimitFinite, Success: true}
	case a.Small:
		return LimitResult{Error: fmt.Sprintf("limit of %s: growing terms cancel: %s", expr, ErrNoLimit)}
	case a.Oscillating:
		return LimitResult{
			Kind:  LimitOscillating,
			Error: fmt.Sprintf("%s oscillates as %s -> %s", expr, varName, infName(dir)),
		}
	case g == 0:
		v := NFloat(a.Coeff)
		if v == nil {
			return LimitResult{Error: ErrNotFinite.Error()}
		}
		return LimitResult{Value: v, Kind: LimitFinite, Success: true}
	case a.Coeff > 0:
		return LimitResult{Kind: LimitPosInf, Success: true}
	}
	return LimitResult{Kind: LimitNegInf, Success: true}
}

func infName(dir int) string {
	if dir < 0 {
		return "-oo"
	}
	return "oo"
}

// AsymptoteAt returns the leading behavior of expr as varName -> ±oo.
// For dir < 0 the variable is reflected first.
func AsymptoteAt(expr Expr, varName string, dir int) (Asymptote, error) {
	e := expr.Simplify()
	if dir < 0 {
		e = e.Sub(varName, MulOf(N(-1), S(varName)))
	}
	return asymptote(e, varName)
}

func asymptote(e Expr, varName string) (Asymptote, error) {
	switch v := e.(type) {
	case *Num:
		return constAsym(v.Float64()), nil
	case *Const:
		return constAsym(v.val), nil
	case *Sym:
		if v.name != varName {
			return Asymptote{}, fmt.Errorf("limit of %s: %w: %s", e, ErrFreeSymbol, v.name)
		}
		return Asymptote{Coeff: 1, Power: 1}, nil
	case *Add:
		return asymAdd(v, varName)
	case *Mul:
		acc := Asymptote{Coeff: 1}
		for _, f := range v.factors {
			fa, err := asymptote(f, varName)
			if err != nil {
				return Asymptote{}, err
			}
			if fa.Zero {
				return fa, nil
			}
			acc = Asymptote{
				Coeff:       acc.Coeff * fa.Coeff,
				Rate:        acc.Rate + fa.Rate,
				Power:       acc.Power + fa.Power,
				Logs:        acc.Logs + fa.Logs,
				Oscillating: acc.Oscillating || fa.Oscillating,
				Small:       acc.Small || fa.Small,
			}
			if math.IsNaN(acc.Rate) || math.IsNaN(acc.Power) || math.IsNaN(acc.Logs) {
				return Asymptote{}, fmt.Errorf("limit of %s: %w", e, ErrNoLimit)
			}
		}
		return acc, nil
	case *Pow:
		return asymPow(v, varName)
	case *Func:
		return asymFunc(v, varName)
	case *Piecewise:
		for _, b := range v.branches {
			set, err := SolveSet(b.Cond, varName)
			if err != nil {
				return Asymptote{}, fmt.Errorf("limit of %s: %w", e, ErrNoLimit)
			}
			for _, iv := range set.intervals() {
				if math.IsInf(iv.Hi, 1) {
					return asymptote(b.Value, varName)
				}
			}
		}
		return Asymptote{}, fmt.Errorf("limit of %s: no branch covers oo: %w", e, ErrNoLimit)
	}
	return Asymptote{}, fmt.Errorf("limit of %T: %w", e, ErrUnsupported)
}

func asymAdd(v *Add, varName string) (Asymptote, error) {
	var lead []Asymptote
	for _, t := range v.terms {
		ta, err := asymptote(t, varName)
		if err != nil {
			return Asymptote{}, err
		}
		if ta.Zero {
			continue
		}
		switch {
		case len(lead) == 0 || ta.dominates(lead[0]) > 0:
			lead = []Asymptote{ta}
		case ta.dominates(lead[0]) == 0:
			lead = append(lead, ta)
		}
	}
	if len(lead) == 0 {
		return Asymptote{Zero: true}, nil
	}
	out := lead[0]
	if out.Small {
		return small(out), nil
	}
	if len(lead) == 1 {
		return out, nil
	}
	sum, envelope, scale := 0.0, 0.0, 0.0
	for _, l := range lead {
		if l.Oscillating {
			out.Oscillating = true
			envelope += math.Abs(l.Coeff)
		} else {
			sum += l.Coeff
		}
		scale = math.Max(scale, math.Abs(l.Coeff))
	}
	if out.Oscillating {
		out.Coeff = envelope + math.Abs(sum)
		return out, nil
	}
	if math.Abs(sum) <= 1e-12*scale {
		// Terms with finite limits sum to the sum of their limits, so a
		// cancellation at or below constant order still tends to zero.
		if out.growth() > 0 {
			return Asymptote{}, fmt.Errorf("limit of %s: leading terms cancel: %w", v, ErrNoLimit)
		}
		return small(out), nil
	}
	out.Coeff = sum
	return out, nil
}

func asymPow(v *Pow, varName string) (Asymptote, error) {
	if !DependsOn(v.exp, varName) {
		en, ok := v.exp.Eval()
		if !ok {
			return Asymptote{}, fmt.Errorf("limit of %s: %w", v, ErrFreeSymbol)
		}
		n := en.Float64()
		b, err := asymptote(v.base, varName)
		if err != nil {
			return Asymptote{}, err
		}
		switch {
		case b.Zero && n > 0:
			return b, nil
		case b.Zero:
			return Asymptote{}, fmt.Errorf("limit of %s: %w", v, ErrNoLimit)
		case (b.Oscillating || b.Small) && n < 0:
			return Asymptote{}, fmt.Errorf("limit of %s: %w", v, ErrNoLimit)
		case b.Small:
			return small(Asymptote{Rate: b.Rate * n, Power: b.Power * n, Logs: b.Logs * n}), nil
		}
		c := math.Pow(b.Coeff, n)
		if b.Oscillating {
			c = math.Pow(math.Abs(b.Coeff), n)
		}
		if math.IsNaN(c) {
			return Asymptote{}, fmt.Errorf("limit of %s: %w", v, ErrNoLimit)
		}
		return Asymptote{
			Coeff:       c,
			Rate:        b.Rate * n,
			Power:       b.Power * n,
			Logs:        b.Logs * n,
			Oscillating: b.Oscillating,
		}, nil
	}
	if bn, ok := v.base.Eval(); ok && bn.IsPositive() {
		return asymptote(ExpOf(MulOf(LogOf(bn), v.exp)), varName)
	}
	return Asymptote{}, fmt.Errorf("limit of %s: variable in base and exponent: %w", v, ErrNoLimit)
}

func asymFunc(f *Func, varName string) (Asymptote, error) {
	if f.name == FuncExp {
		if a, b, ok := Linear(f.arg, varName); ok && !a.IsZero() {
			return Asymptote{Coeff: math.Exp(b.Float64()), Rate: a.Float64()}, nil
		}
	}
	a, err := asymptote(f.arg, varName)
	if err != nil {
		return Asymptote{}, err
	}
	g := a.growth()
	fail := func() (Asymptote, error) {
		return Asymptote{}, fmt.Errorf("limit of %s: %w", f, ErrNoLimit)
	}
	if a.Small {
		// The argument tends to zero at an unknown rate.
		switch {
		case g > 0:
			return fail()
		case f.name == FuncSin || f.name == FuncAbs:
			return a, nil
		case f.name == FuncCos || f.name == FuncExp || f.name == FuncSinc:
			return Asymptote{Coeff: 1}, nil
		}
		return fail()
	}

	switch f.name {
	case FuncExp:
		switch {
		case a.Zero || g < 0:
			return Asymptote{Coeff: 1}, nil
		case a.Oscillating && g == 0:
			return Asymptote{Coeff: math.Exp(math.Abs(a.Coeff)), Oscillating: true}, nil
		case a.Oscillating:
			return fail()
		case g == 0:
			return Asymptote{Coeff: math.Exp(a.Coeff)}, nil
		}
		sign := math.Copysign(1, a.Coeff)
		switch {
		case a.Rate != 0 || a.Power > 1 || (a.Power == 1 && a.Logs > 0):
			return Asymptote{Coeff: 1, Rate: sign * math.Inf(1)}, nil
		case a.Power == 1 && a.Logs == 0:
			return Asymptote{Coeff: 1, Rate: a.Coeff}, nil
		case a.Power == 0 && a.Logs == 1:
			return Asymptote{Coeff: 1, Power: a.Coeff}, nil
		case a.Power == 0 && a.Logs < 1:
			return Asymptote{Coeff: 1, Logs: sign * math.Inf(1)}, nil
		}
		return Asymptote{Coeff: 1, Power: sign * math.Inf(1)}, nil

	case FuncLog:
		switch {
		case a.Zero || a.Oscillating || a.Coeff <= 0:
			return fail()
		case g == 0:
			return constAsym(math.Log(a.Coeff)), nil
		case math.IsInf(a.Rate, 0) || math.IsInf(a.Power, 0) || math.IsInf(a.Logs, 0):
			return fail()
		case a.Rate != 0:
			return Asymptote{Coeff: a.Rate, Power: 1}, nil
		case a.Power != 0:
			return Asymptote{Coeff: a.Power, Logs: 1}, nil
		}
		return fail()

	case FuncSin, FuncCos:
		switch {
		case a.Zero && f.name == FuncSin:
			return a, nil
		case a.Zero:
			return Asymptote{Coeff: 1}, nil
		case g < 0 && f.name == FuncSin:
			return a, nil
		case g < 0:
			return Asymptote{Coeff: 1}, nil
		case g == 0 && !a.Oscillating:
			v, _ := applyFloat(f.name, a.Coeff)
			return constAsym(v), nil
		}
		return Asymptote{Coeff: 1, Oscillating: true}, nil

	case FuncSinc:
		switch {
		case a.Zero || g < 0:
			return Asymptote{Coeff: 1}, nil
		case a.Oscillating:
			return fail()
		case g == 0:
			v, _ := applyFloat(FuncSinc, a.Coeff)
			return constAsym(v), nil
		}
		return Asymptote{
			Coeff:       1 / (math.Pi * math.Abs(a.Coeff)),
			Rate:        -a.Rate,
			Power:       -a.Power,
			Logs:        -a.Logs,
			Oscillating: true,
		}, nil

	case FuncHeaviside:
		switch {
		case a.Oscillating && g < 0:
			return fail()
		case a.Oscillating:
			return Asymptote{Coeff: 1, Oscillating: true}, nil
		case a.Zero:
			return Asymptote{Coeff: HeavisideAtZero}, nil
		case a.Coeff > 0:
			return Asymptote{Coeff: 1}, nil
		}
		return Asymptote{Zero: true}, nil

	case FuncAbs:
		if a.Zero {
			return a, nil
		}
		a.Coeff = math.Abs(a.Coeff)
		return a, nil
	}
	return Asymptote{}, fmt.Errorf("limit of %s: %w", f, ErrUnsupported)
}
