package signal

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout is the per-analysis budget used when none is configured.
const DefaultTimeout = 10 * time.Second

// Stage names used in logs and TimeoutError.
const (
	StageParse       = "parse"
	StagePeriodicity = "periodicity"
	StageConvergence = "convergence"
	StageIntegration = "integration"
)

// Analyzer runs the classification pipeline. It holds no per-request state
// and is safe for concurrent use.
type Analyzer struct {
	log            logrus.FieldLogger
	timeout        time.Duration
	maxConcurrency int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

func WithLogger(l logrus.FieldLogger) Option { return func(a *Analyzer) { a.log = l } }

// WithTimeout sets the wall-clock budget of one analysis. Zero or negative
// disables the budget; the caller's context still applies.
func WithTimeout(d time.Duration) Option { return func(a *Analyzer) { a.timeout = d } }

// WithMaxConcurrency bounds the number of analyses AnalyzeBatch runs at once.
func WithMaxConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxConcurrency = n
		}
	}
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		log:            logrus.StandardLogger(),
		timeout:        DefaultTimeout,
		maxConcurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Compute analyzes input and returns its metrics, or the first stage error.
func (a *Analyzer) Compute(ctx context.Context, input string) (Result, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	log := a.log.WithField("func", input)
	enter := func(stage string) error {
		if err := ctx.Err(); err != nil {
			return &TimeoutError{Stage: stage, Budget: a.timeout, Err: err}
		}
		log.WithField("stage", stage).Debug("stage started")
		return nil
	}

	if err := enter(StageParse); err != nil {
		return Result{}, err
	}
	expr, err := Build(input)
	if err != nil {
		return Result{}, a.fail(log, StageParse, err)
	}

	if err := enter(StagePeriodicity); err != nil {
		return Result{}, err
	}
	period, periodValue, err := ClassifyPeriod(expr)
	if err != nil {
		return Result{}, a.fail(log, StagePeriodicity, err)
	}

	regime := Regime{Kind: Periodic, Period: period, PeriodValue: periodValue}
	if period == nil {
		if err := enter(StageConvergence); err != nil {
			return Result{}, err
		}
		regime = Regime{Kind: NonDecaying}
		if Decays(expr, log) {
			regime.Kind = Decaying
		}
	}
	fields := logrus.Fields{"regime": regime.Kind.String()}
	if period != nil {
		fields["period"] = period.String()
	}
	log.WithFields(fields).Info("signal classified")

	if err := enter(StageIntegration); err != nil {
		return Result{}, err
	}
	res, err := Evaluate(ctx, expr, regime)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			err = &TimeoutError{Stage: StageIntegration, Budget: a.timeout, Err: err}
		}
		return Result{}, a.fail(log, StageIntegration, err)
	}
	return res, nil
}

// Analyze is Compute with the error folded into Result.Error.
func (a *Analyzer) Analyze(ctx context.Context, input string) Result {
	res, err := a.Compute(ctx, input)
	if err != nil {
		return Result{Error: err.Error()}
	}
	return res
}

func (a *Analyzer) fail(log logrus.FieldLogger, stage string, err error) error {
	log.WithFields(logrus.Fields{"stage": stage}).WithError(err).Warn("analysis failed")
	return err
}
