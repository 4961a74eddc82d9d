package gate

import (
	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/rules"
)

// rulesResult wraps a bare violation slice (as produced by internal/fcha,
// which has no fixes of its own) into a rules.Result so it can flow through
// the same Template.Run accumulation as the pure evaluators.
func rulesResult(violations []core.Violation) rules.Result {
	return rules.Result{Violations: violations}
}

func resultOf(v core.Violation) rules.Result {
	return rules.Result{Violations: []core.Violation{v}}
}

func zeroResult() rules.Result {
	return rules.Result{}
}
