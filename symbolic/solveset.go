package symbolic

import (
	"fmt"
	"math"
	"sort"
)

// ============================================================
// SolveSet: real solution set of a condition
// ============================================================

// SolveSet returns the set of varName values in the reals for which cond holds.
// It understands linear and quadratic relations, the same under |.|, and
// And/Or of those; everything else returns ErrUnsupported.
func SolveSet(cond Cond, varName string) (Set, error) {
	switch c := cond.Simplify().(type) {
	case BoolConst:
		if c {
			return Reals{}, nil
		}
		return EmptySet{}, nil
	case *Or:
		sets := make([]Set, 0, len(c.args))
		for _, a := range c.args {
			s, err := SolveSet(a, varName)
			if err != nil {
				return nil, err
			}
			sets = append(sets, s)
		}
		return UnionOf(sets...), nil
	case *And:
		var acc Set = Reals{}
		for _, a := range c.args {
			s, err := SolveSet(a, varName)
			if err != nil {
				return nil, err
			}
			acc = IntersectionOf(acc, s)
		}
		return acc, nil
	case *Rel:
		return solveRel(c, varName)
	}
	return nil, fmt.Errorf("solve %s: %w", cond, ErrUnsupported)
}

func solveRel(r *Rel, varName string) (Set, error) {
	lhs, rhs, op := r.LHS, r.RHS, r.Op
	lDep, rDep := DependsOn(lhs, varName), DependsOn(rhs, varName)
	switch {
	case !lDep && !rDep:
		holds, ok := r.Holds()
		if !ok {
			return nil, fmt.Errorf("solve %s: %w", r, ErrFreeSymbol)
		}
		if holds {
			return Reals{}, nil
		}
		return EmptySet{}, nil
	case rDep && !lDep:
		lhs, rhs, op = rhs, lhs, op.flip()
	case lDep && rDep:
		lhs, rhs = AddOf(lhs, MulOf(N(-1), rhs)), N(0)
	}
	cn, ok := rhs.Eval()
	if !ok {
		return nil, fmt.Errorf("solve %s: %w", r, ErrFreeSymbol)
	}
	c := cn.Float64()

	if f, isFunc := lhs.(*Func); isFunc && f.name == FuncAbs {
		if a, b, lin := Linear(f.arg, varName); lin && !a.IsZero() {
			center := -b.Float64() / a.Float64()
			radius := c / math.Abs(a.Float64())
			return solveAbs(center, radius, op), nil
		}
		if qa, qb, qc, quad := Quadratic(f.arg, varName); quad && !qa.IsZero() {
			return solveAbsQuadratic(qa.Float64(), qb.Float64(), qc.Float64(), c, op), nil
		}
	}
	if a, b, lin := Linear(lhs, varName); lin && !a.IsZero() {
		x0 := (c - b.Float64()) / a.Float64()
		if a.IsNegative() {
			op = op.flip()
		}
		return solveLinear(x0, op), nil
	}
	if qa, qb, qc, quad := Quadratic(lhs, varName); quad && !qa.IsZero() {
		return solveQuadratic(qa.Float64(), qb.Float64(), qc.Float64()-c, op), nil
	}
	return nil, fmt.Errorf("solve %s: %w", r, ErrUnsupported)
}

// solveLinear solves x op x0.
func solveLinear(x0 float64, op RelOp) Set {
	inf := math.Inf(1)
	switch op {
	case LT:
		return Interval{Lo: -inf, Hi: x0, LeftOpen: true, RightOpen: true}
	case LE:
		return Interval{Lo: -inf, Hi: x0, LeftOpen: true}
	case GT:
		return Interval{Lo: x0, Hi: inf, LeftOpen: true, RightOpen: true}
	case GE:
		return Interval{Lo: x0, Hi: inf, RightOpen: true}
	}
	return FiniteSet{Points: []float64{x0}}
}

// solveAbs solves |x - center| op radius.
func solveAbs(center, radius float64, op RelOp) Set {
	lo, hi := center-radius, center+radius
	inf := math.Inf(1)
	switch op {
	case LE:
		if radius < 0 {
			return EmptySet{}
		}
		return canonicalSet([]Interval{{Lo: lo, Hi: hi}})
	case LT:
		if radius <= 0 {
			return EmptySet{}
		}
		return Interval{Lo: lo, Hi: hi, LeftOpen: true, RightOpen: true}
	case GE:
		if radius <= 0 {
			return Reals{}
		}
		return Union{Intervals: []Interval{
			{Lo: -inf, Hi: lo, LeftOpen: true},
			{Lo: hi, Hi: inf, RightOpen: true},
		}}
	case GT:
		if radius < 0 {
			return Reals{}
		}
		return canonicalSet([]Interval{
			{Lo: -inf, Hi: lo, LeftOpen: true, RightOpen: true},
			{Lo: hi, Hi: inf, LeftOpen: true, RightOpen: true},
		})
	}
	switch {
	case radius < 0:
		return EmptySet{}
	case radius == 0:
		return FiniteSet{Points: []float64{center}}
	}
	return FiniteSet{Points: []float64{lo, hi}}
}

// solveQuadratic solves a*x^2 + b*x + c op 0 for a != 0.
func solveQuadratic(a, b, c float64, op RelOp) Set {
	if a < 0 {
		a, b, c, op = -a, -b, -c, op.flip()
	}
	inf := math.Inf(1)
	d := b*b - 4*a*c
	if d < 0 {
		if op == GT || op == GE {
			return Reals{}
		}
		return EmptySet{}
	}
	if d == 0 {
		x0 := -b / (2 * a)
		if x0 == 0 {
			x0 = 0 // drop the sign of -0
		}
		switch op {
		case LT:
			return EmptySet{}
		case GE:
			return Reals{}
		case GT:
			return Union{Intervals: []Interval{
				{Lo: -inf, Hi: x0, LeftOpen: true, RightOpen: true},
				{Lo: x0, Hi: inf, LeftOpen: true, RightOpen: true},
			}}
		}
		return FiniteSet{Points: []float64{x0}}
	}
	sq := math.Sqrt(d)
	x1, x2 := (-b-sq)/(2*a), (-b+sq)/(2*a)
	switch op {
	case LT:
		return Interval{Lo: x1, Hi: x2, LeftOpen: true, RightOpen: true}
	case LE:
		return Interval{Lo: x1, Hi: x2}
	case GT:
		return Union{Intervals: []Interval{
			{Lo: -inf, Hi: x1, LeftOpen: true, RightOpen: true},
			{Lo: x2, Hi: inf, LeftOpen: true, RightOpen: true},
		}}
	case GE:
		return Union{Intervals: []Interval{
			{Lo: -inf, Hi: x1, LeftOpen: true},
			{Lo: x2, Hi: inf, RightOpen: true},
		}}
	}
	return FiniteSet{Points: []float64{x1, x2}}
}

// solveAbsQuadratic solves |a*x^2 + b*x + c| op r as a pair of quadratic
// relations, -r <= q <= r for the inner side and q >= r or q <= -r outside.
func solveAbsQuadratic(a, b, c, r float64, op RelOp) Set {
	switch op {
	case LE, LT:
		return IntersectionOf(solveQuadratic(a, b, c-r, op), solveQuadratic(a, b, c+r, op.flip()))
	case GE, GT:
		return UnionOf(solveQuadratic(a, b, c-r, op), solveQuadratic(a, b, c+r, op.flip()))
	}
	return UnionOf(solveQuadratic(a, b, c-r, EQ), solveQuadratic(a, b, c+r, EQ))
}

// ============================================================
// Breakpoints: where a piecewise or step expression may jump
// ============================================================

// Breakpoints returns the sorted, de-duplicated points at which e may be
// discontinuous or non-smooth in varName: step and |.| arguments crossing
// zero and piecewise condition boundaries. Unsolvable shapes are skipped.
func Breakpoints(e Expr, varName string) []float64 {
	seen := map[float64]struct{}{}
	var out []float64
	add := func(x float64) {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return
		}
		if _, ok := seen[x]; !ok {
			seen[x] = struct{}{}
			out = append(out, x)
		}
	}
	var walk func(Expr)
	var walkCond func(Cond)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *Add:
			for _, t := range v.terms {
				walk(t)
			}
		case *Mul:
			for _, f := range v.factors {
				walk(f)
			}
		case *Pow:
			walk(v.base)
			walk(v.exp)
		case *Func:
			if v.name == FuncHeaviside || v.name == FuncAbs {
				if a, b, ok := Linear(v.arg, varName); ok && !a.IsZero() {
					add(-b.Float64() / a.Float64())
				} else if qa, qb, qc, ok := Quadratic(v.arg, varName); ok && !qa.IsZero() {
					for _, iv := range solveQuadratic(qa.Float64(), qb.Float64(), qc.Float64(), EQ).intervals() {
						add(iv.Lo)
					}
				}
			}
			walk(v.arg)
		case *Piecewise:
			for _, b := range v.branches {
				walk(b.Value)
				walkCond(b.Cond)
			}
		}
	}
	walkCond = func(c Cond) {
		switch v := c.(type) {
		case *Rel:
			s, err := solveRel(v, varName)
			if err != nil {
				return
			}
			for _, iv := range s.intervals() {
				add(iv.Lo)
				add(iv.Hi)
			}
		case *And:
			for _, a := range v.args {
				walkCond(a)
			}
		case *Or:
			for _, a := range v.args {
				walkCond(a)
			}
		}
	}
	walk(e)
	sort.Float64s(out)
	return out
}
