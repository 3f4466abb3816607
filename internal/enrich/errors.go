package enrich

import "errors"

// Rejection reasons. A Rejected result carries one of these, possibly wrapped.
var (
	// Configuration
	ErrDisabled  = errors.New("subscribegroup is disabled")
	ErrNoTargets = errors.New("no enrichment targets configured")

	// Input
	ErrInvalidEvent = errors.New("event has no hash or context")

	// Not found
	ErrDownloadNotFound = errors.New("download history not found")
	ErrNoSubscriptions  = errors.New("no subscriptions for download")

	// Type mismatch
	ErrNotSeries     = errors.New("download is not a series")
	ErrTypeMismatch  = errors.New("subscription is not a series")
	ErrUnknownTarget = errors.New("unknown enrichment target")
)
