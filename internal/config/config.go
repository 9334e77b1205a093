// Package config loads woosync configuration from flags, environment
// variables, and config files via viper.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/prowebkong/woosync/pkg/constants"
	"github.com/prowebkong/woosync/pkg/errors"
)

// Config holds everything the import engine needs to talk to the remote
// catalog and find its input. It is passed explicitly into each component
// at construction; there is no global state.
type Config struct {
	// BaseURL is the WooCommerce REST root, e.g.
	// https://example.com/wp-json/wc/v3
	BaseURL string

	// ConsumerKey and ConsumerSecret are the WooCommerce API credentials.
	ConsumerKey    string
	ConsumerSecret string

	// Source is the path of the scraped products JSON batch.
	Source string

	// Taxonomy optionally points at a YAML category hierarchy that
	// replaces the embedded default.
	Taxonomy string

	// PageSize is the per_page value used when listing remote categories
	// and attributes.
	PageSize int

	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration

	// PacingDelay is the minimum interval between consecutive
	// remote-mutating calls.
	PacingDelay time.Duration
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("source", "scraped_products_full.json")
	viper.SetDefault("page_size", constants.DefaultPageSize)
	viper.SetDefault("request_timeout", constants.DefaultHTTPTimeout)
	viper.SetDefault("pacing_delay", constants.DefaultPacingDelay)
}

// Load builds a Config from viper and validates it. Missing remote
// coordinates are the one condition treated as fatal.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:        getString("base_url"),
		ConsumerKey:    getString("consumer_key"),
		ConsumerSecret: getString("consumer_secret"),
		Source:         getString("source"),
		Taxonomy:       getString("taxonomy"),
		PageSize:       viper.GetInt("page_size"),
		RequestTimeout: viper.GetDuration("request_timeout"),
		PacingDelay:    viper.GetDuration("pacing_delay"),
	}

	// The WooCommerce key names from the original deployment still work.
	if cfg.ConsumerKey == "" {
		cfg.ConsumerKey = os.Getenv("WC_CONSUMER_KEY")
	}
	if cfg.ConsumerSecret == "" {
		cfg.ConsumerSecret = os.Getenv("WC_CONSUMER_SECRET")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.NewConfigError("woo", "base_url is required", nil)
	}
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return errors.NewConfigError("woo", "consumer_key and consumer_secret are required", nil)
	}
	if c.PageSize <= 0 || c.PageSize > constants.MaxPageSize {
		c.PageSize = constants.DefaultPageSize
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = constants.DefaultHTTPTimeout
	}
	if c.PacingDelay < 0 {
		c.PacingDelay = 0
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}

// getString checks both OS environment variables and viper configuration.
func getString(key string) string {
	value := viper.GetString(key)
	if value == "" {
		value = os.Getenv("WOOSYNC_" + strings.ToUpper(key))
	}
	return value
}
