package marketpack

func buildLATAMStandard() MarketPack {
	return MarketPack{
		ID:            LATAMStandard,
		Name:          "Latin America - Standard",
		Version:       "1.0.0",
		EffectiveDate: effectiveDate,
		Jurisdiction:  "LATAM",
		Rules: Rules{
			BrokerFee: BrokerFeeRules{
				Enabled:       true,
				PaidBy:        PaidByTenant,
				MaxMultiplier: 1.0,
			},
			SecurityDeposit: SecurityDepositRules{
				Enabled:    true,
				MaxMonths:  2.0,
				ReturnDays: 30,
			},
			RentIncrease: RentIncreaseRules{
				Enabled:        true,
				NoticeRequired: true,
				NoticeDays:     30,
			},
			Disclosures: []DisclosureRequirement{
				{Type: "property_title_disclosure", RequiredBefore: "lease_signing", SignatureRequired: true},
			},
		},
	}
}

// buildUSStandard is the generic fallback pack applied when a market
// string does not match any entry in cityMap.
func buildUSStandard() MarketPack {
	return MarketPack{
		ID:            USStandard,
		Name:          "United States - Standard",
		Version:       "1.0.0",
		EffectiveDate: effectiveDate,
		Jurisdiction:  "US",
		Rules: Rules{
			BrokerFee: BrokerFeeRules{
				Enabled:       true,
				PaidBy:        PaidByEither,
				MaxMultiplier: 1.0,
			},
			SecurityDeposit: SecurityDepositRules{
				Enabled:    true,
				MaxMonths:  2.0,
				ReturnDays: 30,
			},
			RentIncrease: RentIncreaseRules{
				Enabled:        false,
				NoticeRequired: true,
				NoticeDays:     30,
			},
			Disclosures: []DisclosureRequirement{
				{Type: "lead_paint_disclosure", RequiredBefore: "lease_signing", SignatureRequired: true, ExpirationDays: 365},
			},
		},
	}
}
