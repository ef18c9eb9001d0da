package telemetry

import (
	"fmt"
)

// API is an abstraction over logging/metrics so components can report
// trouble without depending on a concrete logger, and tests can assert on
// what was reported.
type API interface {
	// ReportBroken reports a component that broke in a way that should be
	// addressed, e.g. a page whose layout no longer matches.
	//
	// The id names the component, not the exact failing line:
	// `<struct or intf>.<method>`, lowercase, dashes inside method names
	// (`client.device-info`). Extra detail goes into params or a wrapped error.
	ReportBroken(id string, params ...any)

	// ReportWarning reports a scenario that is not necessarily broken but
	// may be worth a look. Ids follow ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports debug information that is dropped in production.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of something. Counts are points
	// over time, they are not summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, like a sub logger.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
