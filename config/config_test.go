package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	if cfg.Web.Port != 5000 {
		t.Errorf("Expected default port 5000, got %d", cfg.Web.Port)
	}
	if cfg.Database.Type != "postgres" {
		t.Errorf("Expected default database type postgres, got %q", cfg.Database.Type)
	}
	if cfg.Shop.Currency != "usd" {
		t.Errorf("Expected default currency usd, got %q", cfg.Shop.Currency)
	}
	if cfg.Shop.LegacyZeroStockDrop {
		t.Error("Expected legacy zero-stock drop to default off")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autimapro.yml")
	data := []byte("web:\n  port: 9000\nshop:\n  legacy_zero_stock_drop: true\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := LoadConfig(path)
	if cfg.Web.Port != 9000 {
		t.Errorf("Expected port 9000 from file, got %d", cfg.Web.Port)
	}
	if !cfg.Shop.LegacyZeroStockDrop {
		t.Error("Expected legacy zero-stock drop enabled from file")
	}
	// Untouched sections keep their defaults.
	if cfg.Database.Host != "127.0.0.1" {
		t.Errorf("Expected default database host, got %q", cfg.Database.Host)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("AUTIMAPRO_WEB_PORT", "8080")
	t.Setenv("AUTIMAPRO_WEB_SECRET", "env-secret")
	t.Setenv("AUTIMAPRO_DB_TYPE", "sqlite")
	t.Setenv("AUTIMAPRO_SHOP_LEGACY_ZERO_STOCK_DROP", "true")

	cfg := LoadConfig("")
	if cfg.Web.Port != 8080 {
		t.Errorf("Expected env port 8080, got %d", cfg.Web.Port)
	}
	if cfg.Web.Secret != "env-secret" {
		t.Errorf("Expected env secret, got %q", cfg.Web.Secret)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Expected env database type sqlite, got %q", cfg.Database.Type)
	}
	if !cfg.Shop.LegacyZeroStockDrop {
		t.Error("Expected env legacy zero-stock drop enabled")
	}
}
