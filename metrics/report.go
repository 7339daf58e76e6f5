package metrics

import (
	"time"

	"github.com/tutumagi/crossaoi/logger"
)

// ReportCountToAll reports a count to every reporter, errors are logged
func ReportCountToAll(reporters []Reporter, metric string, tags map[string]string, count float64) {
	if count == 0 {
		return
	}
	for _, r := range reporters {
		if err := r.ReportCount(metric, tags, count); err != nil {
			logger.Errorf("failed to report count %s: %s", metric, err.Error())
		}
	}
}

// ReportGaugeToAll reports a gauge to every reporter, errors are logged
func ReportGaugeToAll(reporters []Reporter, metric string, tags map[string]string, value float64) {
	for _, r := range reporters {
		if err := r.ReportGauge(metric, tags, value); err != nil {
			logger.Errorf("failed to report gauge %s: %s", metric, err.Error())
		}
	}
}

// ReportTimingToAll reports elapsed time since start in milliseconds
func ReportTimingToAll(reporters []Reporter, metric string, tags map[string]string, start time.Time) {
	elapsed := float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)
	for _, r := range reporters {
		if err := r.ReportSummary(metric, tags, elapsed); err != nil {
			logger.Errorf("failed to report summary %s: %s", metric, err.Error())
		}
	}
}
