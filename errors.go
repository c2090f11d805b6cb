package fmindex

import "errors"

// Error taxonomy: malformed input, corrupt persisted file, and
// programming errors (contract violations) are kept as distinct
// sentinels so callers can tell "not found" (an empty range, not an
// error) apart from "invalid pattern". Allocation failure has no
// sentinel of its own.
var (
	// ErrMalformedText is returned when a text contains a byte outside
	// {A,C,G,T} or is empty.
	ErrMalformedText = errors.New("fmindex: text contains a non-DNA byte")

	// ErrMalformedQuery is returned when a pattern contains a byte
	// outside {A,C,G,T}. An over-length pattern gets ErrQueryTooLong.
	ErrMalformedQuery = errors.New("fmindex: query contains a non-DNA byte")

	// ErrQueryTooLong is returned when a pattern exceeds MaxPatternLength.
	ErrQueryTooLong = errors.New("fmindex: query exceeds maximum pattern length")

	// ErrCorruptFile is returned by Load when a persisted artifact's
	// header is internally inconsistent (bad sizes, zero out of range,
	// non-monotone C vector) or the file is truncated.
	ErrCorruptFile = errors.New("fmindex: corrupt persisted index file")

	// ErrInvalidArgument marks an out-of-range programming error: it is
	// returned by Locate for an SA index outside [0, n). Rank positions
	// are not checked.
	ErrInvalidArgument = errors.New("fmindex: argument out of range")
)
