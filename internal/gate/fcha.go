package gate

import (
	"context"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/fcha"
)

// FCHAStageTransitionInput is the typed input to the coarse-grained
// FCHAStageTransition gate - a cheap pre-flight check (adjacency only, no
// per-target preconditions) suited to UI validation before the full
// FCHAWorkflowTransition gate runs.
type FCHAStageTransitionInput struct {
	MarketID      string
	ApplicationID string
	FromState     fcha.State
	ToState       fcha.State
}

// FCHAStageTransition checks only whether ToState is a permitted successor
// of FromState in the closed adjacency table.
func FCHAStageTransition(in FCHAStageTransitionInput) (core.GateResult, error) {
	return defaultRunner.FCHAStageTransition(context.Background(), in)
}

// FCHAStageTransition runs the coarse transition gate against the Runner's
// effective packs.
func (r *Runner) FCHAStageTransition(ctx context.Context, in FCHAStageTransitionInput) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	tpl := NewTemplate(pack).WithMetadata(map[string]interface{}{
		"applicationId": in.ApplicationID,
		"fromState":     in.FromState,
		"toState":       in.ToState,
	})

	rule := pack.Rules.FCHA
	if rule != nil && rule.Enabled && !fcha.IsValidTransition(in.FromState, in.ToState) {
		tpl.Run("fcha_workflow", resultOf(core.Violation{
			Code:     core.CodeFCHAInvalidStateTransition,
			Severity: core.SeverityCritical,
			Message:  "requested stage transition is not permitted",
			Evidence: map[string]interface{}{"validNextStates": fcha.ValidSuccessors(in.FromState)},
		}))
	} else {
		tpl.Run("fcha_workflow", zeroResult())
	}

	return tpl.GateResult(), nil
}

// FCHAWorkflowTransitionInput is the typed input to the fine-grained
// FCHAWorkflowTransition gate.
type FCHAWorkflowTransitionInput struct {
	MarketID string
	Request  fcha.TransitionRequest
}

// FCHAWorkflowTransition runs the full Fair Chance Housing transition
// validation - adjacency, per-target preconditions, and, when allowed,
// evidence and record construction. The caller receives the advanced
// workflow record alongside the gate decision so it can persist it.
func FCHAWorkflowTransition(in FCHAWorkflowTransitionInput) (core.GateResult, *fcha.Record, error) {
	return defaultRunner.FCHAWorkflowTransition(context.Background(), in)
}

// FCHAWorkflowTransition runs the full transition gate against the
// Runner's effective packs.
func (r *Runner) FCHAWorkflowTransition(ctx context.Context, in FCHAWorkflowTransitionInput) (core.GateResult, *fcha.Record, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, nil, err
	}

	outcome := fcha.ValidateTransition(in.Request, pack)

	tpl := NewTemplate(pack).
		Run("fcha_workflow", rulesResult(outcome.Violations)).
		WithMetadata(map[string]interface{}{
			"applicationId": in.Request.ApplicationID,
			"fromState":     in.Request.FromState,
			"toState":       in.Request.ToState,
		})

	if outcome.Evidence != nil {
		tpl.WithMetadata(map[string]interface{}{"transitionId": outcome.Evidence.TransitionID})
	}

	return tpl.GateResult(), outcome.Record, nil
}

// FCHABackgroundCheckInput is the typed input to the FCHABackgroundCheck
// gate, covering every background-check request regardless of type.
type FCHABackgroundCheckInput struct {
	MarketID      string
	ApplicationID string
	Request       fcha.BackgroundCheckRequest
}

// FCHABackgroundCheck validates any background-check request against the
// current workflow state.
func FCHABackgroundCheck(in FCHABackgroundCheckInput) (core.GateResult, error) {
	return defaultRunner.FCHABackgroundCheck(context.Background(), in)
}

// FCHABackgroundCheck runs the background-check gate against the Runner's
// effective packs.
func (r *Runner) FCHABackgroundCheck(ctx context.Context, in FCHABackgroundCheckInput) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	outcome := fcha.ValidateBackgroundCheck(in.Request, pack)

	tpl := NewTemplate(pack).
		Run("fcha_background_check", rulesResult(outcome.Violations)).
		WithMetadata(map[string]interface{}{
			"applicationId": in.ApplicationID,
			"checkType":     in.Request.CheckType,
			"currentState":  in.Request.CurrentState,
		})

	return tpl.GateResult(), nil
}

// FCHACriminalCheckInput is the typed input to the FCHACriminalCheck gate
// - the narrow entry point used specifically by criminal-background-check
// integrations, which enforces that the requested check type is in fact a
// criminal check.
type FCHACriminalCheckInput struct {
	MarketID      string
	ApplicationID string
	CurrentState  fcha.State
	CheckType     fcha.CheckType
}

// FCHACriminalCheck validates a criminal background-check request. It
// rejects (with ErrInvalidInput, not a compliance violation) a CheckType
// that is not classified as a criminal check - that belongs to
// FCHABackgroundCheck instead.
func FCHACriminalCheck(in FCHACriminalCheckInput) (core.GateResult, error) {
	return defaultRunner.FCHACriminalCheck(context.Background(), in)
}

// FCHACriminalCheck runs the criminal-check gate against the Runner's
// effective packs.
func (r *Runner) FCHACriminalCheck(ctx context.Context, in FCHACriminalCheckInput) (core.GateResult, error) {
	if !fcha.IsCriminalCheck(in.CheckType) {
		return core.GateResult{}, core.ErrInvalidInput
	}

	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	outcome := fcha.ValidateBackgroundCheck(fcha.BackgroundCheckRequest{
		CurrentState: in.CurrentState,
		CheckType:    in.CheckType,
	}, pack)

	tpl := NewTemplate(pack).
		Run("fcha_criminal_check", rulesResult(outcome.Violations)).
		WithMetadata(map[string]interface{}{
			"applicationId": in.ApplicationID,
			"checkType":     in.CheckType,
			"currentState":  in.CurrentState,
		})

	return tpl.GateResult(), nil
}
