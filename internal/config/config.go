package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values come from an optional
// YAML file (CONFIG_FILE, default "config.yaml") with environment variables
// taking precedence.
type Config struct {
	// Environment
	Env string `yaml:"env"` // "development", "production", etc.

	// Server
	ServerAddr string `yaml:"server_addr"`

	// Storage
	DatabaseURL string `yaml:"database_url"` // empty disables the entitlement store
	RedisURL    string `yaml:"redis_url"`    // empty keeps the in-memory limiter store

	// CORS
	CORSOrigins string `yaml:"cors_origins"` // Comma-separated allowed origins

	// Webhook signing
	ShopifySecret string `yaml:"shopify_secret"`

	// Lead search source
	RedditBaseURL   string `yaml:"reddit_base_url"`
	RedditUserAgent string `yaml:"reddit_user_agent"`

	// Intent scoring model
	OpenAIAPIKey   string `yaml:"openai_api_key"`
	OpenAIModel    string `yaml:"openai_model"`
	OpenAIEndpoint string `yaml:"openai_endpoint"`

	// Pipeline sizing
	SearchLimit   int `yaml:"search_limit"`   // candidates fetched from the source
	MaxResults    int `yaml:"max_results"`    // leads returned per search
	FallbackCount int `yaml:"fallback_count"` // synthesized batch size

	// Admin API (OIDC bearer tokens)
	OIDCIssuer   string `yaml:"oidc_issuer"`
	OIDCClientID string `yaml:"oidc_client_id"`

	// Email (grant confirmations)
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPFrom     string `yaml:"smtp_from"`
	SMTPFromName string `yaml:"smtp_from_name"`
	SMTPUsername string `yaml:"smtp_username"`
	SMTPPassword string `yaml:"smtp_password"`
	SMTPTLS      string `yaml:"smtp_tls"` // "none", "tls"
}

// Load reads configuration with sensible defaults, applies the optional
// YAML file, then environment overrides.
func Load() *Config {
	cfg := &Config{
		Env:             "development",
		ServerAddr:      ":5000",
		RedditBaseURL:   "https://www.reddit.com",
		RedditUserAgent: "LeadSniper/1.0",
		OpenAIModel:     "gpt-4o-mini",
		OpenAIEndpoint:  "https://api.openai.com/v1/chat/completions",
		SearchLimit:     12,
		MaxResults:      10,
		FallbackCount:   6,
		SMTPPort:        587,
		SMTPTLS:         "none",
	}

	path := getEnv("CONFIG_FILE", "config.yaml")
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (ignoring)", path, err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("config: cannot read %s: %v (ignoring)", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Env, "ENV")
	setString(&c.ServerAddr, "SERVER_ADDR")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.CORSOrigins, "CORS_ORIGINS")
	setString(&c.ShopifySecret, "SHOPIFY_SECRET")
	setString(&c.RedditBaseURL, "REDDIT_BASE_URL")
	setString(&c.RedditUserAgent, "REDDIT_USER_AGENT")
	setString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.OpenAIModel, "OPENAI_MODEL")
	setString(&c.OpenAIEndpoint, "OPENAI_ENDPOINT")
	setInt(&c.SearchLimit, "SEARCH_LIMIT")
	setInt(&c.MaxResults, "MAX_RESULTS")
	setInt(&c.FallbackCount, "FALLBACK_COUNT")
	setString(&c.OIDCIssuer, "OIDC_ISSUER")
	setString(&c.OIDCClientID, "OIDC_CLIENT_ID")
	setString(&c.SMTPHost, "SMTP_HOST")
	setInt(&c.SMTPPort, "SMTP_PORT")
	setString(&c.SMTPFrom, "SMTP_FROM")
	setString(&c.SMTPFromName, "SMTP_FROM_NAME")
	setString(&c.SMTPUsername, "SMTP_USERNAME")
	setString(&c.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.SMTPTLS, "SMTP_TLS")

	// Render-style platforms inject the listen port on its own.
	if port := os.Getenv("PORT"); port != "" {
		c.ServerAddr = ":" + port
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q (ignoring)", key, v)
		return
	}
	*dst = n
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HasStore reports whether the entitlement store is configured.
func (c *Config) HasStore() bool {
	return c.DatabaseURL != ""
}

// HasScorer reports whether the external scoring model is configured.
func (c *Config) HasScorer() bool {
	return c.OpenAIAPIKey != ""
}

// HasAdminAuth reports whether the admin API can verify bearer tokens.
func (c *Config) HasAdminAuth() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// IsEmailEnabled reports whether grant confirmation emails can be sent.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}
