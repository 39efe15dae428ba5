// Package signal classifies a time-domain signal written as a closed-form
// expression in t and computes its average power, total energy and mean.
//
// The pipeline is Build -> ClassifyPeriod -> Decays -> Evaluate. Each stage
// is pure in its input; the Analyzer runs them under a time budget and turns
// stage failures into a Result carrying a diagnostic instead of metrics.
//
// Periodic signals report power and mean over one period and infinite energy.
// Non-periodic signals that vanish at both ends report their energy over the
// whole real line; power and mean are then undefined and reported as
// sentinel strings, as are all metrics of non-decaying signals.
package signal
