package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prowebkong/woosync/pkg/constants"
	"github.com/prowebkong/woosync/pkg/errors"
)

func validConfig() *Config {
	return &Config{
		BaseURL:        "https://shop.example.com/wp-json/wc/v3",
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		PageSize:       50,
		RequestTimeout: 10 * time.Second,
		PacingDelay:    2 * time.Second,
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.PageSize)
}

func TestValidateRequiresBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.BaseURL = ""

	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "woo", cfgErr.Component)
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.ConsumerSecret = ""

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
}

func TestValidateTrimsTrailingSlash(t *testing.T) {
	cfg := validConfig()
	cfg.BaseURL = "https://shop.example.com/wp-json/wc/v3/"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://shop.example.com/wp-json/wc/v3", cfg.BaseURL)
}

func TestValidateClampsOutOfRangeValues(t *testing.T) {
	cfg := validConfig()
	cfg.PageSize = 0
	cfg.RequestTimeout = -1
	cfg.PacingDelay = -time.Second

	require.NoError(t, cfg.Validate())
	assert.Equal(t, constants.DefaultPageSize, cfg.PageSize)
	assert.Equal(t, constants.DefaultHTTPTimeout, cfg.RequestTimeout)
	assert.Equal(t, time.Duration(0), cfg.PacingDelay)

	cfg.PageSize = constants.MaxPageSize + 1
	require.NoError(t, cfg.Validate())
	assert.Equal(t, constants.DefaultPageSize, cfg.PageSize)
}
