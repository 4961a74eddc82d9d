package marketpack

// DBConfig is the shape of a database-held per-tenant override, as returned
// by the injected engine.MarketConfigFetcher collaborator. Every field is
// optional; only fields set (non-nil / non-zero-value pointer) override the
// in-code default. Modeled as pointers-to-sub-rules so "absent" and
// "present but disabled" are distinguishable, mirroring the optional
// sub-record shape of MarketPack.Rules itself.
type DBConfig struct {
	BrokerFee         *BrokerFeeRules
	SecurityDeposit   *SecurityDepositRules
	RentIncrease      *RentIncreaseRules
	Disclosures       []DisclosureRequirement
	FAREAct           *FAREActRules
	FCHA              *FCHARules
	GoodCause         *GoodCauseRules
	RentStabilization *RentStabilizationRules
	GDPR              *GDPRRules
}

// MergeMarketPackWithConfig merges a database-supplied configuration over
// the in-code defaults one sub-record at a time: each sub-record present in
// cfg replaces the default sub-record wholesale, and disclosures, when
// present in cfg, replace the default list wholesale. Fields inside a
// sub-record are not merged individually, so a field left out of a present
// sub-record takes its zero value rather than the default. Calling with
// cfg == nil returns pack unchanged.
func MergeMarketPackWithConfig(pack MarketPack, cfg *DBConfig) MarketPack {
	if cfg == nil {
		return pack
	}

	merged := pack
	if cfg.BrokerFee != nil {
		merged.Rules.BrokerFee = *cfg.BrokerFee
	}
	if cfg.SecurityDeposit != nil {
		merged.Rules.SecurityDeposit = *cfg.SecurityDeposit
	}
	if cfg.RentIncrease != nil {
		merged.Rules.RentIncrease = *cfg.RentIncrease
	}
	if cfg.Disclosures != nil {
		merged.Rules.Disclosures = cfg.Disclosures
	}
	if cfg.FAREAct != nil {
		merged.Rules.FAREAct = cfg.FAREAct
	}
	if cfg.FCHA != nil {
		merged.Rules.FCHA = cfg.FCHA
	}
	if cfg.GoodCause != nil {
		merged.Rules.GoodCause = cfg.GoodCause
	}
	if cfg.RentStabilization != nil {
		merged.Rules.RentStabilization = cfg.RentStabilization
	}
	if cfg.GDPR != nil {
		merged.Rules.GDPR = cfg.GDPR
	}

	merged.MergedFromDB = true
	return merged
}
