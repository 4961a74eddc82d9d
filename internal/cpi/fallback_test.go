package cpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackProvider_KnownRegionMonth(t *testing.T) {
	p := &FallbackProvider{Now: func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }}
	reading, err := p.GetAnnualCPIChange(context.Background(), "nyc")
	require.NoError(t, err)
	assert.Equal(t, 3.6, reading.Percentage)
	assert.True(t, reading.IsFallback)
}

func TestFallbackProvider_UnknownRegionUsesConservativeDefault(t *testing.T) {
	p := &FallbackProvider{Now: func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }}
	reading, err := p.GetAnnualCPIChange(context.Background(), "atlantis")
	require.NoError(t, err)
	assert.Equal(t, conservativeDefault, reading.Percentage)
	assert.True(t, reading.IsFallback)
}

type fakeDataSource struct {
	pct float64
	err error
}

func (f fakeDataSource) GetAnnualCPIChange(_ context.Context, _ string) (float64, error) {
	return f.pct, f.err
}

func TestExternalProvider_FallsBackWithoutAPIKey(t *testing.T) {
	p := NewExternalProvider(fakeDataSource{pct: 9.9}, "", nil)
	reading, err := p.GetAnnualCPIChange(context.Background(), "us")
	require.NoError(t, err)
	assert.True(t, reading.IsFallback)
	assert.NotEqual(t, 9.9, reading.Percentage)
}

func TestExternalProvider_UsesSourceWhenConfigured(t *testing.T) {
	p := NewExternalProvider(fakeDataSource{pct: 4.2}, "secret-key", nil)
	reading, err := p.GetAnnualCPIChange(context.Background(), "us")
	require.NoError(t, err)
	assert.False(t, reading.IsFallback)
	assert.Equal(t, 4.2, reading.Percentage)
}

func TestExternalProvider_FallsBackOnSourceError(t *testing.T) {
	p := NewExternalProvider(fakeDataSource{err: assert.AnError}, "secret-key", nil)
	reading, err := p.GetAnnualCPIChange(context.Background(), "us")
	require.NoError(t, err)
	assert.True(t, reading.IsFallback)
}
