package signal_test

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gosignal/signal"
)

func TestDecays(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tests := []struct {
		in   string
		want bool
	}{
		{"rect(t)", true},
		{"rect(t - 3)", true},
		{"sinc(t)", true},
		{"exp(-t)*u(t)", true},
		{"1/(1 + t**2)", true},
		{"2*rect(t) + rect(t - 5)", true},
		{"u(t) - u(t - 1)", true},
		{"u(t + 1) - u(t - 1)", true},
		{"1/(1 + t**2) - 1/(2 + t**2)", true},
		{"exp(-t**2) - exp(-t**2 - 1)", true},
		{"1 - t**2/(1 + t**2)", true},
		{"rect(t**2)", true},
		{"rect(t**2 - 4)", true},
		{"rect(1/t)", false},
		{"exp(t)", false},
		{"u(t)", false},
		{"t", false},
		{"5", false},
		{"sin(t)*u(t)", false},
		{"exp(-t)", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := signal.Build(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, signal.Decays(e, logger))
		})
	}
}
