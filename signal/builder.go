package signal

import (
	"fmt"
	"strings"

	"github.com/njchilds90/gosignal/symbolic"
)

// Build parses input into a signal expression over t. Only the names listed
// by Names are accepted. Any failure, including a panic in the kernel, is a
// *ParseError.
func Build(input string) (expr symbolic.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			expr, err = nil, &ParseError{Input: input, Err: fmt.Errorf("%v", r)}
		}
	}()
	if strings.TrimSpace(input) == "" {
		return nil, &ParseError{Input: input, Err: ErrEmptyInput}
	}
	e, perr := symbolic.Parse(input, vocabulary)
	if perr != nil {
		return nil, &ParseError{Input: input, Err: perr}
	}
	return e, nil
}
