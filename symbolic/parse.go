package symbolic

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// ============================================================
// Parsing
// ============================================================

// Binding is one entry of a SymbolTable: either a value (a symbol or
// constant) or a function with its accepted argument count.
type Binding struct {
	Value   Expr
	Fn      func(args ...Expr) (Expr, error)
	MinArgs int
	MaxArgs int
}

// SymbolTable maps the names an input may use to their meaning.
// Names missing from the table are rejected; nothing else is evaluated.
type SymbolTable map[string]Binding

// Parse tokenizes src with the expr-lang parser and converts the AST into an
// expression tree. Only arithmetic on numbers and table names is accepted.
func Parse(src string, table SymbolTable) (Expr, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return convert(tree.Node, table)
}

func convert(node ast.Node, table SymbolTable) (Expr, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return N(int64(n.Value)), nil
	case *ast.FloatNode:
		r, ok := new(big.Rat).SetString(strconv.FormatFloat(n.Value, 'g', -1, 64))
		if !ok {
			return nil, fmt.Errorf("invalid number %v", n.Value)
		}
		return &Num{val: r}, nil
	case *ast.IdentifierNode:
		b, ok := table[n.Value]
		if !ok {
			return nil, notDefined(n.Value)
		}
		if b.Value == nil {
			return nil, fmt.Errorf("'%s' is a function and must be called", n.Value)
		}
		return b.Value, nil
	case *ast.UnaryNode:
		x, err := convert(n.Node, table)
		if err != nil {
			return nil, err
		}
		switch n.Operator {
		case "-":
			return MulOf(N(-1), x), nil
		case "+":
			return x, nil
		}
		return nil, fmt.Errorf("unsupported operator %q", n.Operator)
	case *ast.BinaryNode:
		return convertBinary(n, table)
	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return nil, fmt.Errorf("unsupported call target %s", n.Callee.String())
		}
		return call(callee.Value, n.Arguments, table)
	case *ast.BuiltinNode:
		return call(n.Name, n.Arguments, table)
	}
	return nil, fmt.Errorf("unsupported syntax %q", node.String())
}

func convertBinary(n *ast.BinaryNode, table SymbolTable) (Expr, error) {
	l, err := convert(n.Left, table)
	if err != nil {
		return nil, err
	}
	r, err := convert(n.Right, table)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "+":
		return AddOf(l, r), nil
	case "-":
		return AddOf(l, MulOf(N(-1), r)), nil
	case "*":
		return MulOf(l, r), nil
	case "/":
		if v, ok := r.Eval(); ok && v.IsZero() {
			return nil, errors.New("division by zero")
		}
		return MulOf(l, PowOf(r, N(-1))), nil
	case "**", "^":
		return PowOf(l, r), nil
	}
	return nil, fmt.Errorf("unsupported operator %q", n.Operator)
}

func call(name string, args []ast.Node, table SymbolTable) (Expr, error) {
	b, ok := table[name]
	if !ok {
		return nil, notDefined(name)
	}
	if b.Fn == nil {
		return nil, fmt.Errorf("'%s' is not callable", name)
	}
	if len(args) < b.MinArgs || len(args) > b.MaxArgs {
		return nil, fmt.Errorf("%s() takes %s (%d given)", name, arity(b.MinArgs, b.MaxArgs), len(args))
	}
	converted := make([]Expr, len(args))
	for i, a := range args {
		e, err := convert(a, table)
		if err != nil {
			return nil, err
		}
		converted[i] = e
	}
	return b.Fn(converted...)
}

func notDefined(name string) error { return fmt.Errorf("name '%s' is not defined", name) }

func arity(lo, hi int) string {
	switch {
	case lo == hi && lo == 1:
		return "exactly 1 argument"
	case lo == hi:
		return fmt.Sprintf("exactly %d arguments", lo)
	}
	return fmt.Sprintf("from %d to %d arguments", lo, hi)
}
