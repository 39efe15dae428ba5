package signal

import (
	"errors"
	"sort"

	"github.com/njchilds90/gosignal/symbolic"
)

// Var is the time variable signals are written in.
const Var = "t"

var timeSym = symbolic.S(Var)

// vocabulary is the whitelist handed to the parser. It is never mutated.
var vocabulary = symbolic.SymbolTable{
	"t":    {Value: timeSym},
	"sin":  unary(symbolic.SinOf),
	"cos":  unary(symbolic.CosOf),
	"exp":  unary(symbolic.ExpOf),
	"log":  unary(symbolic.LogOf),
	"sinc": unary(symbolic.SincOf),
	"u":    unary(symbolic.HeavisideOf),
	"rect": {Fn: rectCall, MinArgs: 1, MaxArgs: 2},
}

var errRectWidth = errors.New("rect width must be a positive constant")

func unary(f func(symbolic.Expr) symbolic.Expr) symbolic.Binding {
	return symbolic.Binding{
		Fn:      func(args ...symbolic.Expr) (symbolic.Expr, error) { return f(args[0]), nil },
		MinArgs: 1,
		MaxArgs: 1,
	}
}

func rectCall(args ...symbolic.Expr) (symbolic.Expr, error) {
	width := symbolic.N(1)
	if len(args) == 2 {
		w, ok := args[1].Eval()
		if !ok || !w.IsPositive() {
			return nil, errRectWidth
		}
		width = w
	}
	return Rect(args[0], width), nil
}

// Rect is the pulse of the given width centred on zero: 1 where
// |x| <= width/2 and 0 elsewhere.
func Rect(x symbolic.Expr, width *symbolic.Num) symbolic.Expr {
	half := symbolic.MulOf(symbolic.F(1, 2), width)
	return symbolic.PiecewiseOf(
		symbolic.Branch{Value: symbolic.N(1), Cond: symbolic.RelOf(symbolic.AbsOf(x), symbolic.LE, half)},
		symbolic.Branch{Value: symbolic.N(0), Cond: symbolic.True},
	)
}

// Names lists the identifiers an input may use, sorted.
func Names() []string {
	names := make([]string, 0, len(vocabulary))
	for name := range vocabulary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
