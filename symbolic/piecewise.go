package symbolic

import (
	"strings"
)

// ============================================================
// Conditions
// ============================================================

// Cond is a boolean condition over expressions, used to guard Piecewise branches.
type Cond interface {
	Simplify() Cond
	String() string
	Sub(varName string, value Expr) Cond
	// Holds evaluates the condition when every operand is numeric.
	Holds() (value, ok bool)
	Equal(other Cond) bool
}

// RelOp is a real-number comparison operator.
type RelOp string

const (
	LT RelOp = "<"
	LE RelOp = "<="
	GT RelOp = ">"
	GE RelOp = ">="
	EQ RelOp = "=="
)

// flip mirrors the operator for swapped operands (a < b <=> b > a).
func (op RelOp) flip() RelOp {
	switch op {
	case LT:
		return GT
	case LE:
		return GE
	case GT:
		return LT
	case GE:
		return LE
	}
	return op
}

func (op RelOp) compare(a, b float64) bool {
	switch op {
	case LT:
		return a < b
	case LE:
		return a <= b
	case GT:
		return a > b
	case GE:
		return a >= b
	}
	return a == b
}

// BoolConst is the constant condition True or False.
type BoolConst bool

const (
	True  BoolConst = true
	False BoolConst = false
)

func (b BoolConst) Simplify() Cond        { return b }
func (b BoolConst) Sub(string, Expr) Cond { return b }
func (b BoolConst) Holds() (bool, bool)   { return bool(b), true }
func (b BoolConst) Equal(other Cond) bool { o, ok := other.(BoolConst); return ok && o == b }
func (b BoolConst) String() string {
	if b {
		return "True"
	}
	return "False"
}

// Rel is LHS op RHS.
type Rel struct {
	LHS, RHS Expr
	Op       RelOp
}

func RelOf(lhs Expr, op RelOp, rhs Expr) Cond {
	return (&Rel{LHS: lhs, RHS: rhs, Op: op}).Simplify()
}

func (r *Rel) Simplify() Cond {
	lhs, rhs := r.LHS.Simplify(), r.RHS.Simplify()
	l, lok := lhs.Eval()
	rv, rok := rhs.Eval()
	if lok && rok {
		return BoolConst(r.Op.compare(l.Float64(), rv.Float64()))
	}
	return &Rel{LHS: lhs, RHS: rhs, Op: r.Op}
}

func (r *Rel) String() string { return r.LHS.String() + " " + string(r.Op) + " " + r.RHS.String() }

func (r *Rel) Sub(varName string, value Expr) Cond {
	return RelOf(r.LHS.Sub(varName, value), r.Op, r.RHS.Sub(varName, value))
}

func (r *Rel) Holds() (bool, bool) {
	l, lok := r.LHS.Eval()
	rv, rok := r.RHS.Eval()
	if !lok || !rok {
		return false, false
	}
	return r.Op.compare(l.Float64(), rv.Float64()), true
}

func (r *Rel) Equal(other Cond) bool {
	o, ok := other.(*Rel)
	return ok && r.Op == o.Op && r.LHS.Equal(o.LHS) && r.RHS.Equal(o.RHS)
}

// And is the conjunction of its arguments.
type And struct{ args []Cond }

// Or is the disjunction of its arguments.
type Or struct{ args []Cond }

func AndOf(args ...Cond) Cond { return (&And{args: args}).Simplify() }
func OrOf(args ...Cond) Cond  { return (&Or{args: args}).Simplify() }

func (a *And) Simplify() Cond {
	out := []Cond{}
	for _, c := range a.args {
		s := c.Simplify()
		switch v := s.(type) {
		case BoolConst:
			if !v {
				return False
			}
			continue
		case *And:
			out = append(out, v.args...)
			continue
		}
		out = append(out, s)
	}
	switch len(out) {
	case 0:
		return True
	case 1:
		return out[0]
	}
	return &And{args: out}
}

func (o *Or) Simplify() Cond {
	out := []Cond{}
	for _, c := range o.args {
		s := c.Simplify()
		switch v := s.(type) {
		case BoolConst:
			if v {
				return True
			}
			continue
		case *Or:
			out = append(out, v.args...)
			continue
		}
		out = append(out, s)
	}
	switch len(out) {
	case 0:
		return False
	case 1:
		return out[0]
	}
	return &Or{args: out}
}

func (a *And) String() string { return joinConds("And", a.args) }
func (o *Or) String() string  { return joinConds("Or", o.args) }

func joinConds(name string, args []Cond) string {
	parts := make([]string, len(args))
	for i, c := range args {
		parts[i] = c.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

func (a *And) Sub(varName string, value Expr) Cond {
	return AndOf(subConds(a.args, varName, value)...)
}

func (o *Or) Sub(varName string, value Expr) Cond {
	return OrOf(subConds(o.args, varName, value)...)
}

func subConds(args []Cond, varName string, value Expr) []Cond {
	out := make([]Cond, len(args))
	for i, c := range args {
		out[i] = c.Sub(varName, value)
	}
	return out
}

func (a *And) Holds() (bool, bool) {
	for _, c := range a.args {
		v, ok := c.Holds()
		if !ok {
			return false, false
		}
		if !v {
			return false, true
		}
	}
	return true, true
}

func (o *Or) Holds() (bool, bool) {
	for _, c := range o.args {
		v, ok := c.Holds()
		if !ok {
			return false, false
		}
		if v {
			return true, true
		}
	}
	return false, true
}

func (a *And) Equal(other Cond) bool {
	o, ok := other.(*And)
	return ok && condsEqual(a.args, o.args)
}

func (o *Or) Equal(other Cond) bool {
	x, ok := other.(*Or)
	return ok && condsEqual(o.args, x.args)
}

func condsEqual(a, b []Cond) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func collectCondSymbols(c Cond, out map[string]struct{}) {
	switch v := c.(type) {
	case *Rel:
		collectSymbols(v.LHS, out)
		collectSymbols(v.RHS, out)
	case *And:
		for _, a := range v.args {
			collectCondSymbols(a, out)
		}
	case *Or:
		for _, a := range v.args {
			collectCondSymbols(a, out)
		}
	}
}

// ============================================================
// Piecewise: first branch whose condition holds
// ============================================================

type Branch struct {
	Value Expr
	Cond  Cond
}

type Piecewise struct{ branches []Branch }

func PiecewiseOf(branches ...Branch) Expr { return (&Piecewise{branches: branches}).Simplify() }

func (p *Piecewise) Simplify() Expr {
	out := make([]Branch, 0, len(p.branches))
	for _, b := range p.branches {
		c := b.Cond.Simplify()
		if c == False {
			continue
		}
		out = append(out, Branch{Value: b.Value.Simplify(), Cond: c})
		if c == True {
			break
		}
	}
	if len(out) > 0 && out[0].Cond == True {
		return out[0].Value
	}
	if len(out) > 0 && out[len(out)-1].Cond == True {
		same := true
		for _, b := range out[1:] {
			if !b.Value.Equal(out[0].Value) {
				same = false
				break
			}
		}
		if same {
			return out[0].Value
		}
	}
	return &Piecewise{branches: out}
}

func (p *Piecewise) String() string {
	parts := make([]string, len(p.branches))
	for i, b := range p.branches {
		parts[i] = "(" + b.Value.String() + ", " + b.Cond.String() + ")"
	}
	return "Piecewise(" + strings.Join(parts, ", ") + ")"
}

func (p *Piecewise) Sub(varName string, value Expr) Expr {
	branches := make([]Branch, len(p.branches))
	for i, b := range p.branches {
		branches[i] = Branch{Value: b.Value.Sub(varName, value), Cond: b.Cond.Sub(varName, value)}
	}
	return PiecewiseOf(branches...)
}

func (p *Piecewise) Eval() (*Num, bool) {
	for _, b := range p.branches {
		holds, ok := b.Cond.Holds()
		if !ok {
			return nil, false
		}
		if holds {
			return b.Value.Eval()
		}
	}
	return nil, false
}

func (p *Piecewise) Equal(other Expr) bool {
	o, ok := other.(*Piecewise)
	if !ok || len(p.branches) != len(o.branches) {
		return false
	}
	for i := range p.branches {
		if !p.branches[i].Value.Equal(o.branches[i].Value) || !p.branches[i].Cond.Equal(o.branches[i].Cond) {
			return false
		}
	}
	return true
}

// Branches returns a copy of the branch list.
func (p *Piecewise) Branches() []Branch {
	out := make([]Branch, len(p.branches))
	copy(out, p.branches)
	return out
}
