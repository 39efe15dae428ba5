package signal_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gosignal/signal"
)

func TestEvaluate_CanceledPeriodic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e, err := signal.Build("sin(t)**2")
	require.NoError(t, err)

	_, err = signal.Evaluate(ctx, e, signal.Regime{Kind: signal.Periodic, PeriodValue: math.Pi})
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	var ierr *signal.IntegrationError
	assert.False(t, errors.As(err, &ierr))
}

func TestAnalyze_TrigPowerWithinBudget(t *testing.T) {
	logger, _ := test.NewNullLogger()
	a := signal.New(signal.WithLogger(logger), signal.WithTimeout(5*time.Second))
	start := time.Now()
	got, err := a.Compute(context.Background(), "(sin(t) + cos(t))**8")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	require.NotNil(t, got.Period)
	assert.InDelta(t, math.Pi, *got.Period, 1e-12)
	require.NotNil(t, got.Power)
	require.NotNil(t, got.Mean)
	// (sin+cos)^8 = 16*sin(t+pi/4)^8
	power, ok := got.Power.Float64()
	require.True(t, ok)
	mean, ok := got.Mean.Float64()
	require.True(t, ok)
	assert.InDelta(t, 256*12870.0/65536, power, 1e-6)
	assert.InDelta(t, 4.375, mean, 1e-6)
}

func TestCompute_TinyBudgetTimesOut(t *testing.T) {
	logger, _ := test.NewNullLogger()
	a := signal.New(signal.WithLogger(logger), signal.WithTimeout(time.Nanosecond))
	_, err := a.Compute(context.Background(), "(sin(t) + cos(t))**8")
	var terr *signal.TimeoutError
	require.True(t, errors.As(err, &terr), "got %v", err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
