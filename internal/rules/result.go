// Package rules implements the pure, per-regulatory-domain evaluators:
// (typed input, market pack) -> (violations, fixes). Every evaluator but
// GoodCause is I/O-free; GoodCause takes an injected cpi.Provider.
package rules

import "github.com/ocx/compliance/internal/core"

// Result is the pair every evaluator returns. Violations preserve
// evaluator-internal emission order; gates concatenate Results across
// evaluators without reordering or deduplicating.
type Result struct {
	Violations []core.Violation
	Fixes      []core.RecommendedFix
}

func (r *Result) addViolation(v core.Violation) {
	r.Violations = append(r.Violations, v)
}

func (r *Result) addFix(f core.RecommendedFix) {
	r.Fixes = append(r.Fixes, f)
}

// Merge concatenates other's violations and fixes onto r, preserving order.
func (r *Result) Merge(other Result) {
	r.Violations = append(r.Violations, other.Violations...)
	r.Fixes = append(r.Fixes, other.Fixes...)
}
