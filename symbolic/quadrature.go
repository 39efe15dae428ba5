package symbolic

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// ============================================================
// Numerical quadrature (adaptive Gauss–Legendre)
// ============================================================

const (
	glPoints     = 10
	quadAbsTol   = 1e-10
	quadRelTol   = 1e-10
	quadMaxDepth = 50
	quadMaxEvals = 20_000_000

	// Infinite ranges start at [s, s±tailStart] and double up to tailLimit.
	tailStart = 16.0
	tailLimit = 1 << 22
	// Pieces per doubling step on an infinite side.
	tailPieces = 16
	// Widest piece on a finite range.
	maxPieceWidth = 1.0
	maxPieces     = 1 << 12
)

type integrator struct {
	ctx   context.Context
	f     func(float64) float64
	evals int
}

// panel applies the fixed Gauss-Legendre rule on [a, b].
func (q *integrator) panel(a, b float64) (float64, error) {
	if err := q.ctx.Err(); err != nil {
		return 0, err
	}
	q.evals += glPoints
	if q.evals > quadMaxEvals {
		return 0, fmt.Errorf("evaluation budget exhausted: %w", ErrDiverges)
	}
	bad := math.NaN()
	v := quad.Fixed(func(x float64) float64 {
		y := q.f(x)
		if (math.IsNaN(y) || math.IsInf(y, 0)) && math.IsNaN(bad) {
			bad = x
		}
		return y
	}, a, b, glPoints, quad.Legendre{}, 0)
	if !math.IsNaN(bad) {
		return 0, fmt.Errorf("integrand at %g: %w", bad, ErrNotFinite)
	}
	return v, nil
}

// adapt bisects [a, b] until the two halves agree with the whole.
func (q *integrator) adapt(a, b, whole, tol float64, depth int) (float64, error) {
	m := (a + b) / 2
	l, err := q.panel(a, m)
	if err != nil {
		return 0, err
	}
	r, err := q.panel(m, b)
	if err != nil {
		return 0, err
	}
	if math.Abs(l+r-whole) <= tol {
		return l + r, nil
	}
	if depth >= quadMaxDepth || m <= a || m >= b {
		return 0, fmt.Errorf("no convergence on [%g, %g]: %w", a, b, ErrDiverges)
	}
	left, err := q.adapt(a, m, l, tol/math.Sqrt2, depth+1)
	if err != nil {
		return 0, err
	}
	right, err := q.adapt(m, b, r, tol/math.Sqrt2, depth+1)
	if err != nil {
		return 0, err
	}
	return left + right, nil
}

func (q *integrator) piece(a, b float64) (float64, error) {
	whole, err := q.panel(a, b)
	if err != nil {
		return 0, err
	}
	tol := math.Max(quadAbsTol, quadRelTol*math.Abs(whole))
	return q.adapt(a, b, whole, tol, 0)
}

// finite integrates over [a, b] split at the breakpoints inside it and into
// pieces no wider than maxW.
func (q *integrator) finite(a, b float64, breaks []float64, maxW float64) (float64, error) {
	edges := []float64{a}
	for _, x := range breaks {
		if x > a && x < b {
			edges = append(edges, x)
		}
	}
	edges = append(edges, b)
	total := 0.0
	for i := 1; i < len(edges); i++ {
		lo, hi := edges[i-1], edges[i]
		n := int(math.Ceil((hi - lo) / maxW))
		if n < 1 {
			n = 1
		}
		if n > maxPieces {
			n = maxPieces
		}
		w := (hi - lo) / float64(n)
		for k := 0; k < n; k++ {
			hiK := lo + float64(k+1)*w
			if k == n-1 {
				hiK = hi
			}
			v, err := q.piece(lo+float64(k)*w, hiK)
			if err != nil {
				return 0, err
			}
			total += v
		}
	}
	return total, nil
}

// tailRule says how an infinite side is finished off.
type tailRule struct {
	extrapolate bool
	// q is the exponent of the truncation error, tail(L) ~ L^q.
	q float64
}

// tailFor inspects the integrand's behavior toward dir*oo.
func tailFor(expr Expr, varName string, dir int) (tailRule, error) {
	a, err := AsymptoteAt(expr, varName, dir)
	if err != nil {
		return tailRule{}, nil
	}
	switch {
	case a.Zero || a.Rate < 0 || a.Small:
		return tailRule{}, nil
	case a.growth() >= 0:
		return tailRule{}, fmt.Errorf("integrand does not vanish toward %s: %w", infName(dir), ErrDiverges)
	case a.Power < -1:
		if math.IsInf(a.Power, -1) {
			return tailRule{}, nil
		}
		return tailRule{extrapolate: true, q: a.Power + 1}, nil
	case a.Power == -1 && a.Logs < -1:
		return tailRule{}, nil
	case a.Oscillating:
		return tailRule{}, nil
	}
	return tailRule{}, fmt.Errorf("tail decays like t^%g: %w", a.Power, ErrDiverges)
}

// side integrates from s toward dir*oo.
func (q *integrator) side(s float64, dir int, breaks []float64, rule tailRule) (float64, error) {
	d := float64(dir)
	L := tailStart
	for _, x := range breaks {
		for (x-s)*d >= L-1 {
			L *= 2
		}
	}
	span := func(from, to float64, maxW float64) (float64, error) {
		lo, hi := s+d*from, s+d*to
		if lo > hi {
			v, err := q.finite(hi, lo, breaks, maxW)
			return -v, err
		}
		return q.finite(lo, hi, breaks, maxW)
	}
	cur, err := span(0, L, maxPieceWidth)
	if err != nil {
		return 0, err
	}
	estimate := func(iL, i2L float64) float64 {
		if !rule.extrapolate {
			return i2L
		}
		r := math.Pow(2, rule.q)
		return (i2L - r*iL) / (1 - r)
	}
	prev := math.NaN()
	for L < tailLimit {
		more, err := span(L, 2*L, L/tailPieces)
		if err != nil {
			return 0, err
		}
		next := cur + more
		est := estimate(cur, next)
		if math.IsNaN(est) || math.IsInf(est, 0) {
			return 0, fmt.Errorf("tail estimate: %w", ErrNotFinite)
		}
		tol := math.Max(1e-9, 1e-9*math.Abs(est))
		if !math.IsNaN(prev) && math.Abs(est-prev) <= tol {
			return est, nil
		}
		prev, cur, L = est, next, 2*L
	}
	return 0, fmt.Errorf("tail did not settle toward %s: %w", infName(dir), ErrDiverges)
}

// NIntegrate numerically integrates expr over [a, b]. Either bound may be
// infinite; the integrand must then vanish toward that side.
func NIntegrate(ctx context.Context, expr Expr, varName string, a, b float64) (float64, error) {
	if a == b {
		return 0, nil
	}
	if a > b {
		v, err := NIntegrate(ctx, expr, varName, b, a)
		return -v, err
	}
	f, err := Lambdify(expr, varName)
	if err != nil {
		return 0, err
	}
	q := &integrator{ctx: ctx, f: f}
	breaks := Breakpoints(expr, varName)

	aInf, bInf := math.IsInf(a, -1), math.IsInf(b, 1)
	switch {
	case !aInf && !bInf:
		return q.finite(a, b, breaks, maxPieceWidth)
	case aInf && bInf:
		rightRule, err := tailFor(expr, varName, 1)
		if err != nil {
			return 0, err
		}
		leftRule, err := tailFor(expr, varName, -1)
		if err != nil {
			return 0, err
		}
		right, err := q.side(0, 1, breaks, rightRule)
		if err != nil {
			return 0, err
		}
		left, err := q.side(0, -1, breaks, leftRule)
		if err != nil {
			return 0, err
		}
		return right - left, nil
	case bInf:
		rule, err := tailFor(expr, varName, 1)
		if err != nil {
			return 0, err
		}
		return q.side(a, 1, breaks, rule)
	}
	rule, err := tailFor(expr, varName, -1)
	if err != nil {
		return 0, err
	}
	left, err := q.side(b, -1, breaks, rule)
	return -left, err
}
