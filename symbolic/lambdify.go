package symbolic

import (
	"fmt"
	"math"
)

// ============================================================
// Lambdify: compile a tree to a float64 closure
// ============================================================

// Lambdify compiles e into a function of varName. Evaluation is plain
// float64 arithmetic, so results may be NaN or ±Inf (log of a negative,
// 1/0); callers decide what a non-finite sample means.
// Any free symbol other than varName is an error.
func Lambdify(e Expr, varName string) (func(float64) float64, error) {
	for name := range FreeSymbols(e) {
		if name != varName {
			return nil, fmt.Errorf("lambdify %s: %w: %s", e, ErrFreeSymbol, name)
		}
	}
	return compile(e, varName)
}

func compile(e Expr, varName string) (func(float64) float64, error) {
	switch v := e.(type) {
	case *Num:
		c := v.Float64()
		return func(float64) float64 { return c }, nil
	case *Const:
		c := v.val
		return func(float64) float64 { return c }, nil
	case *Sym:
		return func(x float64) float64 { return x }, nil
	case *Add:
		fs, err := compileAll(v.terms, varName)
		if err != nil {
			return nil, err
		}
		return func(x float64) float64 {
			s := 0.0
			for _, f := range fs {
				s += f(x)
			}
			return s
		}, nil
	case *Mul:
		fs, err := compileAll(v.factors, varName)
		if err != nil {
			return nil, err
		}
		return func(x float64) float64 {
			p := 1.0
			for _, f := range fs {
				p *= f(x)
			}
			return p
		}, nil
	case *Pow:
		base, err := compile(v.base, varName)
		if err != nil {
			return nil, err
		}
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			k := int(n.val.Num().Int64())
			switch k {
			case 2:
				return func(x float64) float64 { b := base(x); return b * b }, nil
			case -1:
				return func(x float64) float64 { return 1 / base(x) }, nil
			}
			fk := float64(k)
			return func(x float64) float64 { return math.Pow(base(x), fk) }, nil
		}
		exp, err := compile(v.exp, varName)
		if err != nil {
			return nil, err
		}
		return func(x float64) float64 { return math.Pow(base(x), exp(x)) }, nil
	case *Func:
		arg, err := compile(v.arg, varName)
		if err != nil {
			return nil, err
		}
		name := v.name
		if _, ok := applyFloat(name, 1); !ok {
			return nil, fmt.Errorf("lambdify %s: %w", e, ErrUnsupported)
		}
		return func(x float64) float64 {
			r, ok := applyFloat(name, arg(x))
			if !ok {
				return math.NaN()
			}
			return r
		}, nil
	case *Piecewise:
		type arm struct {
			val  func(float64) float64
			cond func(float64) bool
		}
		arms := make([]arm, len(v.branches))
		for i, b := range v.branches {
			val, err := compile(b.Value, varName)
			if err != nil {
				return nil, err
			}
			cond, err := compileCond(b.Cond, varName)
			if err != nil {
				return nil, err
			}
			arms[i] = arm{val: val, cond: cond}
		}
		return func(x float64) float64 {
			for _, a := range arms {
				if a.cond(x) {
					return a.val(x)
				}
			}
			return math.NaN()
		}, nil
	}
	return nil, fmt.Errorf("lambdify %T: %w", e, ErrUnsupported)
}

func compileAll(es []Expr, varName string) ([]func(float64) float64, error) {
	fs := make([]func(float64) float64, len(es))
	for i, e := range es {
		f, err := compile(e, varName)
		if err != nil {
			return nil, err
		}
		fs[i] = f
	}
	return fs, nil
}

func compileCond(c Cond, varName string) (func(float64) bool, error) {
	switch v := c.(type) {
	case BoolConst:
		b := bool(v)
		return func(float64) bool { return b }, nil
	case *Rel:
		l, err := compile(v.LHS, varName)
		if err != nil {
			return nil, err
		}
		r, err := compile(v.RHS, varName)
		if err != nil {
			return nil, err
		}
		op := v.Op
		return func(x float64) bool { return op.compare(l(x), r(x)) }, nil
	case *And:
		fs, err := compileConds(v.args, varName)
		if err != nil {
			return nil, err
		}
		return func(x float64) bool {
			for _, f := range fs {
				if !f(x) {
					return false
				}
			}
			return true
		}, nil
	case *Or:
		fs, err := compileConds(v.args, varName)
		if err != nil {
			return nil, err
		}
		return func(x float64) bool {
			for _, f := range fs {
				if f(x) {
					return true
				}
			}
			return false
		}, nil
	}
	return nil, fmt.Errorf("lambdify condition %s: %w", c, ErrUnsupported)
}

func compileConds(cs []Cond, varName string) ([]func(float64) bool, error) {
	fs := make([]func(float64) bool, len(cs))
	for i, c := range cs {
		f, err := compileCond(c, varName)
		if err != nil {
			return nil, err
		}
		fs[i] = f
	}
	return fs, nil
}
