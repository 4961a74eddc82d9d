package marketpack

func buildUKGDPR() MarketPack {
	return MarketPack{
		ID:            UKGDPR,
		Name:          "United Kingdom - GDPR",
		Version:       "1.0.0",
		EffectiveDate: effectiveDate,
		Jurisdiction:  "UK",
		Rules: Rules{
			BrokerFee: BrokerFeeRules{
				Enabled: true,
				PaidBy:  PaidByProhibited, // Tenant Fees Act 2019
			},
			SecurityDeposit: SecurityDepositRules{
				Enabled:             true,
				MaxMonths:           1.25, // five weeks' rent, roughly
				SeparateAccountReqd: true,
				ReturnDays:          10,
			},
			RentIncrease: RentIncreaseRules{
				Enabled:        true,
				NoticeRequired: true,
				NoticeDays:     30,
			},
			Disclosures: []DisclosureRequirement{
				{Type: "epc_certificate", RequiredBefore: "listing_publish", SignatureRequired: false},
				{Type: "gas_safety_certificate", RequiredBefore: "move_in", SignatureRequired: false},
				{Type: "how_to_rent_guide", RequiredBefore: "lease_signing", SignatureRequired: false},
			},
			GDPR: &GDPRRules{
				Enabled:                true,
				ConsentRequired:        true,
				LawfulBasisRequired:    true,
				RetentionDays:          2190, // six years
				DataSubjectRequestDays: 30,
				SensitiveFields:        []string{"national_insurance_number", "passport_number", "health_information"},
			},
		},
	}
}

func buildEUGDPR() MarketPack {
	pack := buildUKGDPR()
	pack.ID = EUGDPR
	pack.Name = "European Union - GDPR"
	pack.Jurisdiction = "EU"
	pack.Rules.Disclosures = []DisclosureRequirement{
		{Type: "energy_performance_certificate", RequiredBefore: "listing_publish", SignatureRequired: false},
	}
	pack.Rules.BrokerFee = BrokerFeeRules{Enabled: true, PaidBy: PaidByEither, MaxMultiplier: 1.0}
	return pack
}
