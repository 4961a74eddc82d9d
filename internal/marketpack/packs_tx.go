package marketpack

// buildTXStandard encodes the (comparatively light-touch) Texas Property
// Code baseline: no broker-fee restriction, no statutory deposit cap, and
// no good-cause rent-increase regime.
func buildTXStandard() MarketPack {
	return MarketPack{
		ID:            TXStandard,
		Name:          "Texas - Standard",
		Version:       "1.0.0",
		EffectiveDate: effectiveDate,
		Jurisdiction:  "US-TX",
		Rules: Rules{
			BrokerFee: BrokerFeeRules{
				Enabled:       false,
				PaidBy:        PaidByEither,
				MaxMultiplier: 2.0,
			},
			SecurityDeposit: SecurityDepositRules{
				Enabled:    true,
				MaxMonths:  100.0, // Texas Property Code sets no statutory cap
				ReturnDays: 30,
			},
			RentIncrease: RentIncreaseRules{
				Enabled:        false,
				NoticeRequired: true,
				NoticeDays:     30,
			},
			Disclosures: []DisclosureRequirement{
				{Type: "lead_paint_disclosure", RequiredBefore: "lease_signing", SignatureRequired: true, ExpirationDays: 365},
				{Type: "flood_history_disclosure", RequiredBefore: "lease_signing", SignatureRequired: false},
			},
		},
	}
}
