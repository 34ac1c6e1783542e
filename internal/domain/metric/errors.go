package metric

import "errors"

var (
	// ErrUnknownMetric is returned when an override names a metric that is not in the table.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrDuplicateMetric is returned when a table would hold the same key twice.
	ErrDuplicateMetric = errors.New("duplicate metric key")
)
