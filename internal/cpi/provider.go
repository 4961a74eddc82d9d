// Package cpi supplies the annual consumer-price-index change used by
// good-cause rent-increase rules. It is polymorphic over a deterministic
// fallback table and an external data source that degrades to that
// fallback on failure or missing configuration.
package cpi

import "context"

// Reading is the result of a CPI lookup.
type Reading struct {
	Percentage float64
	IsFallback bool
}

// Provider supplies the annual CPI change for a region. The good-cause
// evaluator is the only evaluator that performs I/O, and it does so
// through a Provider.
type Provider interface {
	GetAnnualCPIChange(ctx context.Context, region string) (Reading, error)
}
