package metrics

import (
	"context"
	"time"
)

type pollerFunction = func(ctx context.Context) error

// RecordPollerDuration wraps f so every run is timed under typ. Successful
// runs also bump the last success timestamp of typ.
func RecordPollerDuration(typ string, f pollerFunction) pollerFunction {
	return func(ctx context.Context) error {
		startTime := time.Now()
		err := f(ctx)

		pollerDurationHistogram.
			WithLabelValues(typ, outcome(err != nil).String()).
			Observe(time.Since(startTime).Seconds())
		if err == nil {
			pollerLastSuccessGauge.WithLabelValues(typ).SetToCurrentTime()
		}

		return err
	}
}
