package cpi

import (
	"context"
	"log/slog"
)

// DataSource is the narrow interface an external CPI source must satisfy.
// The compliance core never constructs an HTTP client itself - transport
// belongs to the caller; callers inject their own
// implementation (e.g. one backed by a BLS/ONS API client) that satisfies
// this interface.
type DataSource interface {
	GetAnnualCPIChange(ctx context.Context, region string) (float64, error)
}

// ExternalProvider prefers a real DataSource and falls back to the
// deterministic table on any error or when no DataSource/API key is
// configured.
type ExternalProvider struct {
	Source   DataSource
	APIKey   string
	Fallback *FallbackProvider
	Logger   *slog.Logger
}

// NewExternalProvider constructs an ExternalProvider. apiKey may be empty,
// in which case every call goes straight to the fallback.
func NewExternalProvider(source DataSource, apiKey string, logger *slog.Logger) *ExternalProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExternalProvider{
		Source:   source,
		APIKey:   apiKey,
		Fallback: NewFallbackProvider(),
		Logger:   logger,
	}
}

func (p *ExternalProvider) GetAnnualCPIChange(ctx context.Context, region string) (Reading, error) {
	if p.Source == nil || p.APIKey == "" {
		p.Logger.Info("cpi external source not configured, using fallback",
			"tag", "CPI_ANNUAL_CHANGE_FALLBACK", "region", region)
		return p.Fallback.GetAnnualCPIChange(ctx, region)
	}

	pct, err := p.Source.GetAnnualCPIChange(ctx, region)
	if err != nil {
		p.Logger.Warn("cpi external lookup failed, using fallback",
			"tag", "CPI_ANNUAL_CHANGE_FALLBACK", "region", region, "error", err)
		return p.Fallback.GetAnnualCPIChange(ctx, region)
	}

	return Reading{Percentage: pct, IsFallback: false}, nil
}
