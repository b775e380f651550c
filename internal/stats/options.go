package stats

import (
	"time"

	"github.com/sirupsen/logrus"
)

type options struct {
	now    func() time.Time
	logger logrus.FieldLogger
}

// Option configures a Service or a Recorder.
type Option func(*options)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
