package marketpack

func buildNYCStrict() MarketPack {
	return MarketPack{
		ID:            NYCStrict,
		Name:          "New York City - Strict",
		Version:       "1.3.0",
		EffectiveDate: effectiveDate,
		Jurisdiction:  "US-NY-NYC",
		Rules: Rules{
			BrokerFee: BrokerFeeRules{
				Enabled:       true,
				PaidBy:        PaidByLandlord,
				MaxMultiplier: 1.0,
			},
			SecurityDeposit: SecurityDepositRules{
				Enabled:             true,
				MaxMonths:           1.0,
				InterestRequired:    true,
				SeparateAccountReqd: true,
				ReturnDays:          14,
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
				{Type: "fare_act_disclosure", RequiredBefore: "listing_publish", SignatureRequired: false},
				{Type: "lead_paint_disclosure", RequiredBefore: "lease_signing", SignatureRequired: true, ExpirationDays: 365},
				{Type: "bedbug_history_disclosure", RequiredBefore: "lease_signing", SignatureRequired: true},
				{Type: "window_guard_notice", RequiredBefore: "move_in", SignatureRequired: false},
			},
			FAREAct: &FAREActRules{
				Enabled:                 true,
				MaxIncomeMultiplier:     40.0,
				MaxCreditScoreThreshold: 700,
				FeeDisclosureRequired:   true,
			},
			FCHA: &FCHARules{
				Enabled: true,
				Workflow: FCHAWorkflowRules{
					MitigatingFactorsResponseDays: 10,
				},
			},
			GoodCause: &GoodCauseRules{
				Enabled:                true,
				MaxRentIncreaseOverCPI: 5.0,
				ValidEvictionReasons: []string{
					"nonpayment",
					"lease_violation",
					"owner_occupancy",
					"demolition",
					"illegal_use",
				},
			},
			RentStabilization: &RentStabilizationRules{
				Enabled:              true,
				RegistrationRequired: true,
			},
		},
	}
}
