package tse

import "github.com/surveytse/tse/metric"

// Options configures an Engine.
type Options struct {
	// Metric carries formula level behavior such as the zero denominator
	// policy for the relative metrics.
	Metric *metric.Options
}

// NewDefaultOptions returns options where zero denominators in the relative
// metrics fail with metric.ErrZeroDenominator rather than propagating
// non-finite values.
func NewDefaultOptions() *Options {
	return &Options{
		Metric: &metric.Options{},
	}
}
