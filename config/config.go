// Package config loads the process configuration from the environment,
// with an optional .env file for local development. Violations are errors
// so that main can fail fast instead of limping along half-configured.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

const defaultPort = 3000

type Config struct {
	Port            int
	PostgresConnStr string
	// EncryptionKey protects tokens at rest. Decoded from the base64
	// TOKEN_ENCRYPTION_KEY value; must be exactly 32 bytes (AES-256).
	EncryptionKey []byte
	CORSOrigins   []string

	YahooClientID     string
	YahooClientSecret string
	OAuthRedirectURL  string

	// Endpoint overrides, used by tests and local fakes. Empty means the
	// real vendor endpoints.
	YahooAuthURL  string
	YahooTokenURL string
	YahooAPIURL   string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{
		Port:              defaultPort,
		PostgresConnStr:   os.Getenv("POSTGRES_CONN_STR"),
		YahooClientID:     os.Getenv("YAHOO_CLIENT_ID"),
		YahooClientSecret: os.Getenv("YAHOO_CLIENT_SECRET"),
		OAuthRedirectURL:  os.Getenv("OAUTH_REDIRECT_URL"),
		YahooAuthURL:      os.Getenv("YAHOO_AUTH_URL"),
		YahooTokenURL:     os.Getenv("YAHOO_TOKEN_URL"),
		YahooAPIURL:       os.Getenv("YAHOO_API_URL"),
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port, err = strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("error parsing port number: %w", err)
		}
	}

	if cfg.PostgresConnStr == "" {
		return nil, errors.New("POSTGRES_CONN_STR is required")
	}

	key := os.Getenv("TOKEN_ENCRYPTION_KEY")
	if key == "" {
		return nil, errors.New("TOKEN_ENCRYPTION_KEY is required")
	}
	cfg.EncryptionKey, err = base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("TOKEN_ENCRYPTION_KEY is not valid base64: %w", err)
	}
	if len(cfg.EncryptionKey) != 32 {
		return nil, fmt.Errorf("TOKEN_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(cfg.EncryptionKey))
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}

// OAuthConfig builds the oauth2 client config, or nil when the oauth
// settings are absent. The server still serves data requests for users
// with stored credentials in that case; only new logins are disabled.
func (c *Config) OAuthConfig() *oauth2.Config {
	if c.YahooClientID == "" || c.YahooClientSecret == "" || c.OAuthRedirectURL == "" {
		return nil
	}

	authURL := c.YahooAuthURL
	if authURL == "" {
		authURL = "https://api.login.yahoo.com/oauth2/request_auth"
	}
	tokenURL := c.YahooTokenURL
	if tokenURL == "" {
		tokenURL = "https://api.login.yahoo.com/oauth2/get_token"
	}

	return &oauth2.Config{
		ClientID:     c.YahooClientID,
		ClientSecret: c.YahooClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
		RedirectURL: c.OAuthRedirectURL,
	}
}
