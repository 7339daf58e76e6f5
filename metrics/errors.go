package metrics

import "errors"

// ErrMetricNotKnown is returned when a reporter has no collector for the metric
var ErrMetricNotKnown = errors.New("the provided metric does not exist")
