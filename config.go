package opensearch

import (
	"fmt"
	"time"

	"github.com/findyi/opensearch-go/internal/shardqueue"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds everything needed to build a Client.
// Environment variables are parsed from the OPENSEARCH_ prefix, e.g.
// OPENSEARCH_API_HOST, OPENSEARCH_ACCESS_KEY_ID, OPENSEARCH_SQ_SHARDS.
type Config struct {
	APIHost         string `envconfig:"API_HOST"          yaml:"api_host"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"     yaml:"access_key_id"`
	AccessKeySecret string `envconfig:"ACCESS_KEY_SECRET" yaml:"access_key_secret"`

	Timeout   time.Duration `envconfig:"TIMEOUT"   default:"30s"     yaml:"timeout"`
	Transport string        `envconfig:"TRANSPORT" default:"nethttp" yaml:"transport"`
	Debug     bool          `envconfig:"DEBUG"                       yaml:"debug"`

	// Async push executor tunables (OPENSEARCH_SQ_*).
	Queue shardqueue.Config `envconfig:"SQ" yaml:"-"`
}

// LoadConfig parses the OPENSEARCH_* environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("OPENSEARCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	log.Debug().
		Str("api_host", cfg.APIHost).
		Str("access_key_id", cfg.AccessKeyID).
		Bool("secret_present", cfg.AccessKeySecret != "").
		Dur("timeout", cfg.Timeout).
		Str("transport", cfg.Transport).
		Int("sq_shards", cfg.Queue.Shards).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Validate reports missing credentials or endpoint.
func (c *Config) Validate() error {
	switch {
	case c.APIHost == "":
		return &ArgumentError{Msg: "api host is required"}
	case c.AccessKeyID == "":
		return &ArgumentError{Msg: "access key id is required"}
	case c.AccessKeySecret == "":
		return &ArgumentError{Msg: "access key secret is required"}
	}
	return nil
}

// NewFromConfig builds a Client from cfg. Extra options are applied after
// the ones derived from cfg; cfg.Debug is applied last so it also wraps a
// client supplied with WithHTTPClient.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, &ArgumentError{Msg: "config is required"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := []Option{WithTransport(cfg.Transport), WithExecutorConfig(cfg.Queue)}
	if cfg.Timeout > 0 {
		base = append(base, WithHTTPTimeout(cfg.Timeout))
	}
	opts = append(base, opts...)
	if cfg.Debug {
		opts = append(opts, WithDebugLogging(true))
	}
	return New(cfg.APIHost, cfg.AccessKeyID, cfg.AccessKeySecret, opts...)
}
