package marketpack

func buildCAStandard() MarketPack {
	return MarketPack{
		ID:            CAStandard,
		Name:          "California - Standard",
		Version:       "1.1.0",
		EffectiveDate: effectiveDate,
		Jurisdiction:  "US-CA",
		Rules: Rules{
			BrokerFee: BrokerFeeRules{
				Enabled:       true,
				PaidBy:        PaidByEither,
				MaxMultiplier: 1.0,
			},
			SecurityDeposit: SecurityDepositRules{
				Enabled:          true,
				MaxMonths:        2.0,
				InterestRequired: false,
				ReturnDays:       21,
			},
			RentIncrease: RentIncreaseRules{
				Enabled:           true,
				CPIPlusPercentage: 5.0,
				MaxPercentage:     10.0,
				NoticeRequired:    true,
				NoticeDays:        90,
				GoodCauseRequired: true,
			},
			Disclosures: []DisclosureRequirement{
				{Type: "lead_paint_disclosure", RequiredBefore: "lease_signing", SignatureRequired: true, ExpirationDays: 365},
				{Type: "megan_law_disclosure", RequiredBefore: "lease_signing", SignatureRequired: false},
				{Type: "bedbug_history_disclosure", RequiredBefore: "lease_signing", SignatureRequired: true},
			},
			GoodCause: &GoodCauseRules{
				Enabled:                true,
				MaxRentIncreaseOverCPI: 5.0,
				ValidEvictionReasons: []string{
					"nonpayment",
					"lease_violation",
					"owner_move_in",
					"withdrawal_from_rental_market",
					"substantial_remodel",
				},
			},
		},
	}
}
