package members

import (
	"errors"
	"time"
)

// Config holds everything the service needs at construction time. There
// are no ambient globals: the signing key and store connection are
// injected into the token service and repositories explicitly.
type Config struct {
	// HTTPAddr is the listen address for the HTTP server.
	HTTPAddr string
	// DSN is the database connection string.
	DSN string
	// SigningKey signs every issued token. Required.
	SigningKey string
	// Issuer is stamped into the iss claim of every token.
	Issuer string
	// AccessTokenTTL is the short access-token window.
	AccessTokenTTL time.Duration
	// RefreshTokenTTL is the long refresh-token window.
	RefreshTokenTTL time.Duration
}

// DefaultConfig returns the development defaults. The signing key has no
// default on purpose.
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		DSN:             "file:members.db",
		Issuer:          "go-members",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

// Validate checks the config is usable.
func (c *Config) Validate() error {
	if c.SigningKey == "" {
		return errors.New("config: signing key is required")
	}
	if c.HTTPAddr == "" {
		return errors.New("config: http address is required")
	}
	if c.DSN == "" {
		return errors.New("config: dsn is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("config: token durations must be positive")
	}
	return nil
}
