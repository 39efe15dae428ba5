package symbolic

import (
	"context"
	"fmt"
	"math"
)

// ============================================================
// Integration (rule-based symbolic + numerical)
// ============================================================

// maxPartsDegree bounds the polynomial degree handled by integration by parts.
const maxPartsDegree = 8

// Integrate returns an antiderivative of expr in varName. The second result
// is false when no rule applies.
func Integrate(expr Expr, varName string) (Expr, bool) {
	return integrate(context.Background(), expr, varName)
}

// IntegrateContext is Integrate that gives up with ctx's error once ctx is
// done. Trig products can expand into many terms, so the rewriting steps
// check ctx as they go.
func IntegrateContext(ctx context.Context, expr Expr, varName string) (Expr, bool, error) {
	res, ok := integrate(ctx, expr, varName)
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	return res, ok, nil
}

func integrate(ctx context.Context, expr Expr, varName string) (Expr, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	expr = expr.Simplify()
	if res, ok := integrateRules(ctx, expr, varName); ok {
		return res, true
	}
	lin := linearizeTrig(ctx, expandContext(ctx, expr))
	if ctx.Err() != nil {
		return nil, false
	}
	if !lin.Equal(expr) {
		return integrateRules(ctx, lin, varName)
	}
	return nil, false
}

func integrateRules(ctx context.Context, expr Expr, varName string) (Expr, bool) {
	x := S(varName)
	if !DependsOn(expr, varName) {
		return MulOf(expr, x), true
	}
	switch v := expr.(type) {
	case *Sym:
		return MulOf(F(1, 2), PowOf(x, N(2))), true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			it, ok := integrate(ctx, t, varName)
			if !ok {
				return nil, false
			}
			terms[i] = it
		}
		return AddOf(terms...), true
	case *Mul:
		return integrateProduct(ctx, v, varName)
	case *Pow:
		if n, ok := v.exp.(*Num); ok {
			a, _, lin := Linear(v.base, varName)
			if !lin || a.IsZero() {
				return nil, false
			}
			if n.IsNegOne() {
				return MulOf(numRecip(a), LogOf(AbsOf(v.base))), true
			}
			next := numAdd(n, N(1))
			return MulOf(numRecip(numMul(a, next)), PowOf(v.base, next)), true
		}
		if bn, ok := v.base.Eval(); ok && bn.IsPositive() && !bn.IsOne() {
			a, _, lin := Linear(v.exp, varName)
			if !lin || a.IsZero() {
				return nil, false
			}
			return MulOf(v, PowOf(MulOf(a, LogOf(bn)), N(-1))), true
		}
		return nil, false
	case *Func:
		a, _, lin := Linear(v.arg, varName)
		if !lin || a.IsZero() {
			return nil, false
		}
		inv := numRecip(a)
		switch v.name {
		case FuncSin:
			return MulOf(numNeg(inv), CosOf(v.arg)), true
		case FuncCos:
			return MulOf(inv, SinOf(v.arg)), true
		case FuncExp:
			return MulOf(inv, v), true
		case FuncLog:
			return MulOf(inv, AddOf(MulOf(v.arg, v), MulOf(N(-1), v.arg))), true
		}
	}
	return nil, false
}

// integrateProduct pulls out factors free of varName, then handles a single
// remaining factor directly and t^n * g(t) by parts.
func integrateProduct(ctx context.Context, m *Mul, varName string) (Expr, bool) {
	var coeff, rest []Expr
	for _, f := range m.factors {
		if DependsOn(f, varName) {
			rest = append(rest, f)
		} else {
			coeff = append(coeff, f)
		}
	}
	if len(coeff) > 0 {
		inner, ok := integrate(ctx, MulOf(rest...), varName)
		if !ok {
			return nil, false
		}
		return MulOf(append(coeff, inner)...), true
	}
	if len(rest) != 2 {
		return nil, false
	}
	for i, f := range rest {
		n, ok := polyDegree(f, varName)
		if !ok || n == 0 {
			continue
		}
		g := rest[1-i]
		gi, ok := integrateRules(ctx, g, varName)
		if !ok {
			return nil, false
		}
		// ∫ t^n g = t^n G - n ∫ t^(n-1) G
		lower, ok := integrate(ctx, MulOf(N(int64(n)), PowOf(S(varName), N(int64(n-1))), gi), varName)
		if !ok {
			return nil, false
		}
		return AddOf(MulOf(f, gi), MulOf(N(-1), lower)), true
	}
	return nil, false
}

// polyDegree recognizes varName^n for 1 <= n <= maxPartsDegree.
func polyDegree(e Expr, varName string) (int, bool) {
	switch v := e.(type) {
	case *Sym:
		return 1, v.name == varName
	case *Pow:
		sym, ok := v.base.(*Sym)
		n, ok2 := v.exp.(*Num)
		if !ok || !ok2 || sym.name != varName || !n.IsInteger() {
			return 0, false
		}
		k := n.val.Num().Int64()
		if k < 1 || k > maxPartsDegree {
			return 0, false
		}
		return int(k), true
	}
	return 0, false
}

// ============================================================
// Trig linearization (product-to-sum)
// ============================================================

const maxTrigPower = 8

// LinearizeTrig rewrites products and integer powers of sin and cos as sums
// of single sin/cos terms, e.g. sin(t)^2 -> 1/2 - cos(2*t)/2.
func LinearizeTrig(e Expr) Expr { return linearizeTrig(context.Background(), e) }

func linearizeTrig(ctx context.Context, e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			if ctx.Err() != nil {
				return e
			}
			terms[i] = linearizeTrig(ctx, t)
		}
		return AddOf(terms...)
	case *Mul, *Pow:
		return linearizeProduct(ctx, factorsOf(v))
	}
	return e
}

func factorsOf(e Expr) []Expr {
	if m, ok := e.(*Mul); ok {
		return m.factors
	}
	return []Expr{e}
}

func linearizeProduct(ctx context.Context, factors []Expr) Expr {
	var rest []Expr
	var trig []*Func
	for _, f := range factors {
		if fn, ok := f.(*Func); ok && isTrig(fn) {
			trig = append(trig, fn)
			continue
		}
		if p, ok := f.(*Pow); ok {
			fn, isFn := p.base.(*Func)
			n, isNum := p.exp.(*Num)
			if isFn && isTrig(fn) && isNum && n.IsInteger() {
				k := n.val.Num().Int64()
				if k >= 1 && k <= maxTrigPower {
					for i := int64(0); i < k; i++ {
						trig = append(trig, fn)
					}
					continue
				}
			}
		}
		rest = append(rest, f)
	}
	if len(trig) < 2 {
		return MulOf(factors...)
	}
	return expandContext(ctx, combineTrig(ctx, MulOf(rest...), trig))
}

func isTrig(f *Func) bool { return f.name == FuncSin || f.name == FuncCos }

// wave is one term of a running trig product: c*fn, or c*other when the
// term is not a single sin/cos, or the constant c when both are nil.
type wave struct {
	fn    *Func
	other Expr
	c     *Num
}

// waveSum holds terms keyed by their function so that like terms collapse
// after every product-to-sum step.
type waveSum struct {
	keys  []string
	terms map[string]*wave
}

func newWaveSum() *waveSum { return &waveSum{terms: map[string]*wave{}} }

func (s *waveSum) add(e Expr, c *Num) {
	if m, ok := e.(*Mul); ok && len(m.factors) == 2 {
		if n, isNum := m.factors[0].(*Num); isNum {
			e, c = m.factors[1], numMul(c, n)
		}
	}
	w := &wave{c: c}
	key := "1"
	switch v := e.(type) {
	case *Num:
		w.c = numMul(c, v)
	case *Func:
		if isTrig(v) {
			w.fn, w.c = canonicalWave(v, c)
			key = w.fn.String()
			break
		}
		w.other, key = v, "?"+v.String()
	default:
		w.other, key = v, "?"+v.String()
	}
	if w.c.IsZero() {
		return
	}
	if prev, ok := s.terms[key]; ok {
		prev.c = numAdd(prev.c, w.c)
		return
	}
	s.keys = append(s.keys, key)
	s.terms[key] = w
}

// canonicalWave folds a negative leading coefficient out of the argument:
// cos(-x) = cos(x) and sin(-x) = -sin(x).
func canonicalWave(f *Func, c *Num) (*Func, *Num) {
	m, ok := f.arg.(*Mul)
	if !ok {
		return f, c
	}
	n, isNum := m.factors[0].(*Num)
	if !isNum || !n.IsNegative() {
		return f, c
	}
	arg := MulOf(append([]Expr{numNeg(n)}, m.factors[1:]...)...)
	if f.name == FuncSin {
		c = numNeg(c)
	}
	return &Func{name: f.name, arg: arg}, c
}

// times multiplies every term by g using the product-to-sum identities.
func (s *waveSum) times(g *Func) *waveSum {
	out := newWaveSum()
	half := F(1, 2)
	for _, key := range s.keys {
		w := s.terms[key]
		f := w.fn
		switch {
		case w.other != nil:
			out.add(MulOf(w.other, g), w.c)
			continue
		case f == nil:
			out.add(g, w.c)
			continue
		}
		c := numMul(w.c, half)
		diff := AddOf(f.arg, MulOf(N(-1), g.arg))
		sum := AddOf(f.arg, g.arg)
		switch {
		case f.name == FuncSin && g.name == FuncSin:
			out.add(CosOf(diff), c)
			out.add(CosOf(sum), numNeg(c))
		case f.name == FuncCos && g.name == FuncCos:
			out.add(CosOf(diff), c)
			out.add(CosOf(sum), c)
		case f.name == FuncSin:
			out.add(SinOf(sum), c)
			out.add(SinOf(diff), c)
		default:
			out.add(SinOf(sum), c)
			out.add(SinOf(AddOf(g.arg, MulOf(N(-1), f.arg))), c)
		}
	}
	return out
}

func (s *waveSum) expr(rest Expr) Expr {
	terms := make([]Expr, 0, len(s.keys))
	for _, key := range s.keys {
		w := s.terms[key]
		switch {
		case w.other != nil:
			terms = append(terms, MulOf(w.c, rest, w.other))
		case w.fn == nil:
			terms = append(terms, MulOf(w.c, rest))
		default:
			terms = append(terms, MulOf(w.c, rest, w.fn))
		}
	}
	return AddOf(terms...)
}

// combineTrig multiplies the trig factors together one at a time, so a
// product of k factors never holds more than about 2k distinct terms.
func combineTrig(ctx context.Context, rest Expr, trig []*Func) Expr {
	acc := newWaveSum()
	acc.add(trig[0], N(1))
	for _, g := range trig[1:] {
		if ctx.Err() != nil {
			return MulOf(rest, MulOf(funcsToExprs(trig)...))
		}
		acc = acc.times(g)
	}
	return acc.expr(rest)
}

func funcsToExprs(fs []*Func) []Expr {
	out := make([]Expr, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

// ============================================================
// Definite integrals
// ============================================================

// DefiniteIntegrate computes the integral of expr over [a, b]. Finite bounds
// with an entire integrand go through the antiderivative; everything else is
// integrated numerically (see NIntegrate).
func DefiniteIntegrate(ctx context.Context, expr Expr, varName string, a, b float64) (float64, error) {
	expr = expr.Simplify()
	for name := range FreeSymbols(expr) {
		if name != varName {
			return 0, fmt.Errorf("integrate %s: %w: %s", expr, ErrFreeSymbol, name)
		}
	}
	if !math.IsInf(a, 0) && !math.IsInf(b, 0) && isEntire(expr) {
		v, ok, err := closedForm(ctx, expr, varName, a, b)
		if err != nil {
			return 0, err
		}
		if ok {
			return v, nil
		}
	}
	return NIntegrate(ctx, expr, varName, a, b)
}

func closedForm(ctx context.Context, expr Expr, varName string, a, b float64) (float64, bool, error) {
	anti, ok, err := IntegrateContext(ctx, expr, varName)
	if err != nil {
		return 0, false, err
	}
	if !ok || !isEntire(anti) {
		return 0, false, nil
	}
	fn, err := Lambdify(anti, varName)
	if err != nil {
		return 0, false, nil
	}
	v := fn(b) - fn(a)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, nil
	}
	return v, true, nil
}

// isEntire reports whether e is built only from functions analytic on the
// whole real line, so an antiderivative can be evaluated at any two points.
func isEntire(e Expr) bool {
	switch v := e.(type) {
	case *Num, *Const, *Sym:
		return true
	case *Add:
		for _, t := range v.terms {
			if !isEntire(t) {
				return false
			}
		}
		return true
	case *Mul:
		for _, f := range v.factors {
			if !isEntire(f) {
				return false
			}
		}
		return true
	case *Pow:
		n, ok := v.exp.(*Num)
		return ok && n.IsInteger() && !n.IsNegative() && isEntire(v.base)
	case *Func:
		switch v.name {
		case FuncSin, FuncCos, FuncExp:
			return isEntire(v.arg)
		}
	}
	return false
}
