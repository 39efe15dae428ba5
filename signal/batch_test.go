package signal_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gosignal/signal"
)

func TestAnalyzeBatch_KeepsOrder(t *testing.T) {
	inputs := []string{"sin(t)", "bogus(t)", "rect(t)", "exp(t)"}
	got := newAnalyzer().AnalyzeBatch(context.Background(), inputs)
	require.Len(t, got, len(inputs))
	assert.Equal(t, "periodic", got[0].Regime)
	assert.Contains(t, got[1].Error, "name 'bogus' is not defined")
	assert.Equal(t, "decaying", got[2].Regime)
	assert.Equal(t, "non-decaying", got[3].Regime)
}

func TestAnalyzeBatch_MatchesSerial(t *testing.T) {
	logger, _ := test.NewNullLogger()
	a := signal.New(signal.WithLogger(logger), signal.WithMaxConcurrency(4))
	base := []string{"sin(t)", "cos(t)**2", "rect(t, 2)", "u(t)", "t**t", "exp(-t)*u(t)"}
	var inputs []string
	for i := 0; i < 4; i++ {
		inputs = append(inputs, base...)
	}
	got := a.AnalyzeBatch(context.Background(), inputs)
	for i, in := range inputs {
		want := a.Analyze(context.Background(), in)
		if diff := cmp.Diff(want, got[i], resultOpts); diff != "" {
			t.Errorf("input %d %q (-serial +batch):\n%s", i, in, diff)
		}
	}
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	assert.Empty(t, newAnalyzer().AnalyzeBatch(context.Background(), nil))
}
