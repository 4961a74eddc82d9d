package core

import "errors"

// Engine errors: exceptional conditions distinct from domain verdicts,
// which are always expressed as Violations instead.
var (
	// ErrUnknownMarketPack is returned when a MarketPackID has no registered
	// pack. Unknown market *strings* fall back to US_STANDARD instead of
	// erroring; this error only fires for a pack id that was never in the
	// registry to begin with.
	ErrUnknownMarketPack = errors.New("compliance: unknown market pack")

	// ErrInvalidInput is returned when a gate's typed input fails schema
	// validation before any rule evaluator runs.
	ErrInvalidInput = errors.New("compliance: invalid input")

	// ErrSinkUnavailable wraps a failure from an injected audit or
	// compliance-check sink. It is always logged and swallowed at the
	// call site that recorded it - never returned to a gate's caller.
	ErrSinkUnavailable = errors.New("compliance: sink unavailable")
)
