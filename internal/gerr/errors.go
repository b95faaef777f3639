package gerr

import "errors"

var (
	// ErrSellerNotFound is returned when the requesting user has no seller
	// profile; aggregation never starts in that case.
	ErrSellerNotFound = errors.New("seller profile not found")

	// ErrReportGeneration wraps any failure during export generation.
	// Partial report bytes are never surfaced alongside it.
	ErrReportGeneration = errors.New("report generation failed")

	ErrUnauthorized = errors.New("unauthorized")
)
