package logkit

import "errors"

var (
	// ErrNoAdapter is returned by Build when structured logging is enabled
	// but no Adapter was supplied.
	ErrNoAdapter = errors.New("logkit: structured logging enabled without an adapter")

	// ErrUnknownSeverity is returned by ParseSeverity.
	ErrUnknownSeverity = errors.New("logkit: unknown severity")
)
