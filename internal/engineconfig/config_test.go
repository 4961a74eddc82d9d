package engineconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_FillsSpecDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, "1.0.0", cfg.Engine.PolicyVersion)
	assert.Equal(t, "CC7.3", cfg.Audit.ControlID)
	assert.Equal(t, "goroutine", cfg.Audit.Dispatcher)
	assert.Equal(t, "supabase", cfg.Database.Backend)
}

func TestApplyDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Audit.ControlID = "CC6.1"
	cfg.Database.Backend = "spanner"
	cfg.applyDefaults()

	assert.Equal(t, "CC6.1", cfg.Audit.ControlID)
	assert.Equal(t, "spanner", cfg.Database.Backend)
}

func TestApplyEnvOverrides_ReadsCPIAPIKey(t *testing.T) {
	t.Setenv("CPI_API_KEY", "test-key-123")

	cfg := &Config{}
	cfg.applyEnvOverrides()

	assert.Equal(t, "test-key-123", cfg.CPI.APIKey)
}
