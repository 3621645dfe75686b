package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()

	if cfg.ServerAddr != ":5000" {
		t.Errorf("ServerAddr = %q, want :5000", cfg.ServerAddr)
	}
	if cfg.MaxResults != 10 {
		t.Errorf("MaxResults = %d, want 10", cfg.MaxResults)
	}
	if cfg.SearchLimit != 12 {
		t.Errorf("SearchLimit = %d, want 12", cfg.SearchLimit)
	}
	if cfg.FallbackCount != 6 {
		t.Errorf("FallbackCount = %d, want 6", cfg.FallbackCount)
	}
	if cfg.HasStore() || cfg.HasScorer() || cfg.HasAdminAuth() {
		t.Error("no collaborators should be configured by default")
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server_addr: \":7777\"\nmax_results: 3\nshopify_secret: from-file\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SHOPIFY_SECRET", "from-env")

	cfg := Load()

	if cfg.ServerAddr != ":7777" {
		t.Errorf("ServerAddr = %q, want :7777 (from file)", cfg.ServerAddr)
	}
	if cfg.MaxResults != 3 {
		t.Errorf("MaxResults = %d, want 3 (from file)", cfg.MaxResults)
	}
	if cfg.ShopifySecret != "from-env" {
		t.Errorf("ShopifySecret = %q, env should win over file", cfg.ShopifySecret)
	}
}

func TestLoadPortEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "10000")

	cfg := Load()
	if cfg.ServerAddr != ":10000" {
		t.Errorf("ServerAddr = %q, want :10000", cfg.ServerAddr)
	}
}

func TestLoadIgnoresInvalidInt(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("MAX_RESULTS", "not-a-number")

	cfg := Load()
	if cfg.MaxResults != 10 {
		t.Errorf("MaxResults = %d, want default 10 for invalid env", cfg.MaxResults)
	}
}
