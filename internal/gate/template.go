// Package gate implements the atomic decision entry points exposed to
// callers: one function per external action, each resolving the effective
// market pack, running the relevant rule evaluators and/or Fair Chance
// Housing state-machine validators, and assembling a ComplianceDecision.
package gate

import (
	"strings"
	"time"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
	"github.com/ocx/compliance/internal/rules"
)

const defaultPolicyVersion = "1.0.0"

// Template accumulates the ordered checks and violations/fixes of a single
// gate invocation, then assembles the final ComplianceDecision. It is not
// safe for concurrent use by multiple goroutines; each gate invocation
// constructs its own Template.
type Template struct {
	Pack          marketpack.MarketPack
	PolicyVersion string
	Now           func() time.Time

	checksPerformed []string
	result          rules.Result
	metadata        map[string]interface{}
}

// NewTemplate starts a gate assembly for pack.
func NewTemplate(pack marketpack.MarketPack) *Template {
	return &Template{
		Pack:          pack,
		PolicyVersion: defaultPolicyVersion,
		Now:           time.Now,
	}
}

// Run records that checkToken was invoked and merges its result.
func (t *Template) Run(checkToken string, result rules.Result) *Template {
	t.checksPerformed = append(t.checksPerformed, checkToken)
	t.result.Merge(result)
	return t
}

// WithMetadata attaches contextual metadata (entity id, transition id,
// previous values) to the eventual decision.
func (t *Template) WithMetadata(meta map[string]interface{}) *Template {
	if t.metadata == nil {
		t.metadata = make(map[string]interface{}, len(meta))
	}
	for k, v := range meta {
		t.metadata[k] = v
	}
	return t
}

// Decision assembles the final ComplianceDecision: passed iff no violation
// is critical, violations and fixes preserve evaluator emission order, and
// blockedReason joins the messages of every critical violation with "; ".
func (t *Template) Decision() core.ComplianceDecision {
	now := t.Now
	if now == nil {
		now = time.Now
	}

	decision := core.ComplianceDecision{
		Violations:        t.result.Violations,
		Fixes:             t.result.Fixes,
		PolicyVersion:     t.PolicyVersion,
		MarketPack:        string(t.Pack.ID),
		MarketPackVersion: t.Pack.Version,
		CheckedAt:         now(),
		ChecksPerformed:   t.checksPerformed,
		Metadata:          t.metadata,
	}
	decision.Passed = !decision.HasCritical()
	return decision
}

// GateResult wraps Decision into the outer envelope a gate returns, with
// blockedReason populated from the critical violations when blocked.
func (t *Template) GateResult() core.GateResult {
	decision := t.Decision()
	res := core.GateResult{
		Allowed:  decision.Passed,
		Decision: decision,
	}
	if !decision.Passed {
		res.BlockedReason = blockedReason(decision.Violations)
	}
	return res
}

func blockedReason(violations []core.Violation) string {
	var messages []string
	for _, v := range violations {
		if v.Severity == core.SeverityCritical {
			messages = append(messages, v.Message)
		}
	}
	return strings.Join(messages, "; ")
}
