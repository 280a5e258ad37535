package metrics

import "errors"

// Registration and usage errors. These signal programmer mistakes in the
// instrumentation code, not runtime faults, and are returned synchronously
// so the call site can be fixed.
var (
	// ErrDuplicateMetric is returned when a name is re-registered with a
	// different kind or label-key set. Re-registration with an identical
	// declaration is a no-op.
	ErrDuplicateMetric = errors.New("metric already registered with a different declaration")

	// ErrUnknownMetric is returned when a series is requested for a name
	// that was never registered.
	ErrUnknownMetric = errors.New("metric not registered")

	// ErrLabelMismatch is returned when the supplied label keys do not
	// exactly match the keys declared at registration.
	ErrLabelMismatch = errors.New("label keys do not match metric declaration")

	// ErrInvalidDelta is returned by Counter.Add for negative deltas;
	// counters are monotonic by contract.
	ErrInvalidDelta = errors.New("counter delta must be non-negative")

	// ErrInvalidBuckets is returned when a histogram is declared with no
	// buckets or with bounds that are not strictly ascending.
	ErrInvalidBuckets = errors.New("histogram buckets must be strictly ascending")

	// ErrKindMismatch is returned when a series is requested through an
	// accessor of the wrong kind, e.g. Registry.Counter for a gauge.
	ErrKindMismatch = errors.New("metric kind does not match registration")
)
