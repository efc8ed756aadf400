package vdf

import (
	"github.com/sirupsen/logrus"

	"github.com/BackendStack21/trishare-go/logging"
	"github.com/BackendStack21/trishare-go/metrics"
)

type options struct {
	log     logrus.FieldLogger
	metrics *metrics.Recorder
}

// Option configures a TemporalVDF or an IterationState.
type Option func(*options)

// WithLogger sets the logger used for iteration tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics counts iterations and proof operations on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

func buildOptions(opts []Option) options {
	o := options{log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
