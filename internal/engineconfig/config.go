// Package engineconfig loads the compliance engine's configuration knobs
// from a YAML file with environment-variable overrides.
package engineconfig

import (
	"os"
	"sync"

	"gopkg.in/yaml.v2"
)

// Config holds the engine's configuration knobs: pack-cache and audit
// emission toggles, the controlId tag stamped on audit entries, the CPI
// provider's API key, the policy-version string, and which database
// backend to use.
type Config struct {
	Engine     EngineConfig     `yaml:"engine"`
	Audit      AuditConfig      `yaml:"audit"`
	CPI        CPIConfig        `yaml:"cpi"`
	Database   DatabaseConfig   `yaml:"database"`
	PubSub     PubSubConfig     `yaml:"pubsub"`
	CloudTasks CloudTasksConfig `yaml:"cloud_tasks"`
}

// EngineConfig controls pack-cache behavior and decision stamping.
type EngineConfig struct {
	CacheDisabled bool   `yaml:"cache_disabled"`
	RedisAddr     string `yaml:"redis_addr"` // empty uses the in-process cache
	PolicyVersion string `yaml:"policy_version"`
}

// AuditConfig controls whether and how gate outcomes are recorded.
type AuditConfig struct {
	Disabled   bool   `yaml:"disabled"`
	ControlID  string `yaml:"control_id"`
	Dispatcher string `yaml:"dispatcher"` // "goroutine" | "cloudtasks"
}

// CPIConfig holds the optional external CPI provider's credential.
type CPIConfig struct {
	APIKey string `yaml:"api_key"`
}

// DatabaseConfig selects and configures the MarketConfigFetcher backend.
type DatabaseConfig struct {
	Backend  string         `yaml:"backend"` // "supabase" | "spanner"
	Supabase SupabaseConfig `yaml:"supabase"`
	Spanner  SpannerConfig  `yaml:"spanner"`
}

type SupabaseConfig struct {
	URL        string `yaml:"url"`
	ServiceKey string `yaml:"service_key"`
}

type SpannerConfig struct {
	ProjectID  string `yaml:"project_id"`
	InstanceID string `yaml:"instance_id"`
	DatabaseID string `yaml:"database_id"`
}

// PubSubConfig configures the optional DecisionEventPublisher.
type PubSubConfig struct {
	Enabled   bool   `yaml:"enabled"`
	ProjectID string `yaml:"project_id"`
	TopicID   string `yaml:"topic_id"`
}

// CloudTasksConfig configures the optional CloudTasksDispatcher.
type CloudTasksConfig struct {
	Enabled       bool   `yaml:"enabled"`
	ProjectID     string `yaml:"project_id"`
	LocationID    string `yaml:"location_id"`
	QueueID       string `yaml:"queue_id"`
	WriteEndpoint string `yaml:"write_endpoint"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the process-wide singleton Config, loading it from
// CONFIG_PATH (default "compliance.yaml") on first use.
func Get() *Config {
	once.Do(func() {
		cfg, err := Load(getEnv("CONFIG_PATH", "compliance.yaml"))
		if err != nil {
			cfg = &Config{}
		}
		cfg.applyEnvOverrides()
		cfg.applyDefaults()
		instance = cfg
	})
	return instance
}

// Load reads and decodes a Config from a YAML file. A missing file is not
// fatal to callers that go on to apply env overrides and defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Engine.RedisAddr = getEnv("COMPLIANCE_REDIS_ADDR", c.Engine.RedisAddr)
	c.Engine.PolicyVersion = getEnv("COMPLIANCE_POLICY_VERSION", c.Engine.PolicyVersion)
	c.Engine.CacheDisabled = getEnvBool("COMPLIANCE_CACHE_DISABLED", c.Engine.CacheDisabled)

	c.Audit.Disabled = getEnvBool("COMPLIANCE_AUDIT_DISABLED", c.Audit.Disabled)
	c.Audit.ControlID = getEnv("COMPLIANCE_CONTROL_ID", c.Audit.ControlID)
	c.Audit.Dispatcher = getEnv("COMPLIANCE_AUDIT_DISPATCHER", c.Audit.Dispatcher)

	c.CPI.APIKey = getEnv("CPI_API_KEY", c.CPI.APIKey)

	c.Database.Backend = getEnv("COMPLIANCE_DB_BACKEND", c.Database.Backend)
	c.Database.Supabase.URL = getEnv("SUPABASE_URL", c.Database.Supabase.URL)
	c.Database.Supabase.ServiceKey = getEnv("SUPABASE_SERVICE_KEY", c.Database.Supabase.ServiceKey)
	c.Database.Spanner.ProjectID = getEnv("SPANNER_PROJECT_ID", c.Database.Spanner.ProjectID)
	c.Database.Spanner.InstanceID = getEnv("SPANNER_INSTANCE_ID", c.Database.Spanner.InstanceID)
	c.Database.Spanner.DatabaseID = getEnv("SPANNER_DATABASE_ID", c.Database.Spanner.DatabaseID)

	if projectID := getEnv("GCP_PROJECT_ID", ""); projectID != "" {
		c.PubSub.ProjectID = projectID
		c.CloudTasks.ProjectID = projectID
	}
	c.PubSub.Enabled = getEnvBool("PUBSUB_ENABLED", c.PubSub.Enabled)
	c.PubSub.TopicID = getEnv("PUBSUB_TOPIC_ID", c.PubSub.TopicID)

	c.CloudTasks.Enabled = getEnvBool("CLOUD_TASKS_ENABLED", c.CloudTasks.Enabled)
	c.CloudTasks.LocationID = getEnv("CLOUD_TASKS_LOCATION", c.CloudTasks.LocationID)
	c.CloudTasks.QueueID = getEnv("CLOUD_TASKS_QUEUE", c.CloudTasks.QueueID)
	c.CloudTasks.WriteEndpoint = getEnv("CLOUD_TASKS_WRITE_ENDPOINT", c.CloudTasks.WriteEndpoint)
}

// applyDefaults fills the documented defaults for anything still
// zero-valued after file load and env overrides.
func (c *Config) applyDefaults() {
	if c.Engine.PolicyVersion == "" {
		c.Engine.PolicyVersion = "1.0.0"
	}
	if c.Audit.ControlID == "" {
		c.Audit.ControlID = "CC7.3"
	}
	if c.Audit.Dispatcher == "" {
		c.Audit.Dispatcher = "goroutine"
	}
	if c.Database.Backend == "" {
		c.Database.Backend = "supabase"
	}
	if c.CloudTasks.LocationID == "" {
		c.CloudTasks.LocationID = "us-central1"
	}
	if c.CloudTasks.QueueID == "" {
		c.CloudTasks.QueueID = "compliance-audit-writes"
	}
	if c.PubSub.TopicID == "" {
		c.PubSub.TopicID = "compliance-decisions"
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1"
	}
	return defaultVal
}
