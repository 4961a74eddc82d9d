package gate

import (
	"context"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/rules"
)

// ListingPublishInput is the typed input to the ListingPublish gate.
type ListingPublishInput struct {
	MarketID             string
	ListingID            string
	FARE                 rules.FAREActInput
	BrokerFee            rules.BrokerFeeInput
	DeliveredDisclosures []string
}

// ListingPublish validates a listing before it is published: the FARE Act
// regime, the generic broker-fee rules, and the listing_publish-phase
// disclosures.
func ListingPublish(in ListingPublishInput) (core.GateResult, error) {
	return defaultRunner.ListingPublish(context.Background(), in)
}

// ListingPublish runs the listing-publish gate against the Runner's
// effective packs.
func (r *Runner) ListingPublish(ctx context.Context, in ListingPublishInput) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	tpl := NewTemplate(pack).
		Run("fare_act", rules.EvaluateFAREAct(in.FARE, pack)).
		Run("broker_fee", rules.EvaluateBrokerFee(in.BrokerFee, pack)).
		Run("disclosures", rules.EvaluateDisclosures(rules.DisclosuresInput{
			Phase:                core.PhaseListingPublish,
			DeliveredDisclosures: in.DeliveredDisclosures,
		}, pack)).
		WithMetadata(map[string]interface{}{"listingId": in.ListingID})

	return tpl.GateResult(), nil
}

// ListingUpdateInput is the typed input to the ListingUpdate gate.
type ListingUpdateInput struct {
	MarketID        string
	ListingID       string
	PreviousRent    float64
	BrokerFee       rules.BrokerFeeInput
	SecurityDeposit rules.SecurityDepositInput
}

// ListingUpdate validates changes to an already-published listing: the
// broker-fee and security-deposit rules against the updated values.
func ListingUpdate(in ListingUpdateInput) (core.GateResult, error) {
	return defaultRunner.ListingUpdate(context.Background(), in)
}

// ListingUpdate runs the listing-update gate against the Runner's
// effective packs.
func (r *Runner) ListingUpdate(ctx context.Context, in ListingUpdateInput) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	tpl := NewTemplate(pack).
		Run("broker_fee", rules.EvaluateBrokerFee(in.BrokerFee, pack)).
		Run("security_deposit", rules.EvaluateSecurityDeposit(in.SecurityDeposit, pack)).
		WithMetadata(map[string]interface{}{
			"listingId":    in.ListingID,
			"previousRent": in.PreviousRent,
		})

	return tpl.GateResult(), nil
}
