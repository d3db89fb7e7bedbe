package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Enrichment EnrichmentConfig `yaml:"enrichment" mapstructure:"enrichment"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Tables     TablesConfig     `yaml:"tables" mapstructure:"tables"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend. An empty driver disables the
// store: runs are not recorded and ingest IDs derive from row order.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// EnrichmentConfig configures the enrichment engine.
type EnrichmentConfig struct {
	// Backend selects the generator: "stub", "remote", or "auto"
	// (remote when an API key is configured, stub otherwise).
	Backend          string  `yaml:"backend" mapstructure:"backend"`
	BatchSize        int     `yaml:"batch_size" mapstructure:"batch_size"`
	RequestsPerSec   float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	TimeoutSecs      int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MinContentLength int     `yaml:"min_content_length" mapstructure:"min_content_length"`
}

// OutputConfig configures artifact writing.
type OutputConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	SnapshotDir string `yaml:"snapshot_dir" mapstructure:"snapshot_dir"`
	ReportDir   string `yaml:"report_dir" mapstructure:"report_dir"`
}

// TablesConfig points at the optional YAML side tables (archetypes, flavor
// bank, overrides).
type TablesConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the artifact server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WODFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "wodforge.db")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("enrichment.backend", "auto")
	v.SetDefault("enrichment.batch_size", 20)
	v.SetDefault("enrichment.requests_per_sec", 2)
	v.SetDefault("enrichment.timeout_secs", 60)
	v.SetDefault("enrichment.min_content_length", 40)
	v.SetDefault("output.path", "workouts_final.json")
	v.SetDefault("output.snapshot_dir", "snapshots")
	v.SetDefault("output.report_dir", "reports")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// UseRemoteBackend reports whether the remote generator should be used.
// "auto" falls back to the stub when no API key is configured, so offline
// runs work with zero setup.
func (c *Config) UseRemoteBackend() bool {
	switch c.Enrichment.Backend {
	case "remote":
		return true
	case "stub":
		return false
	}
	return c.Anthropic.Key != ""
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
