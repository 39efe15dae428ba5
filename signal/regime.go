package signal

import (
	"fmt"

	"github.com/njchilds90/gosignal/symbolic"
)

// RegimeKind is the class a signal falls into.
type RegimeKind int

const (
	Periodic RegimeKind = iota
	Decaying
	NonDecaying
)

func (k RegimeKind) String() string {
	switch k {
	case Periodic:
		return "periodic"
	case Decaying:
		return "decaying"
	case NonDecaying:
		return "non-decaying"
	}
	return fmt.Sprintf("RegimeKind(%d)", int(k))
}

// Regime is the classification of one signal. Period and PeriodValue are
// set only for Periodic.
type Regime struct {
	Kind        RegimeKind
	Period      symbolic.Expr
	PeriodValue float64
}
