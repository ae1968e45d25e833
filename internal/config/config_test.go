package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "STORE_NAMESPACE", "STORE_QUOTA_BYTES", "PREP_SECONDS", "REST_SECONDS", "TICK_INTERVAL", "SQLITE_PATH"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.StoreDriver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", cfg.StoreDriver)
	}
	if cfg.StoreNamespace != "fittrack_" || cfg.StoreQuotaBytes != 5<<20 {
		t.Errorf("unexpected store defaults %q %d", cfg.StoreNamespace, cfg.StoreQuotaBytes)
	}
	if cfg.PrepSeconds != 5 || cfg.RestSeconds != 60 || cfg.TickInterval != time.Second {
		t.Errorf("unexpected workout defaults %+v", cfg)
	}
	if filepath.Base(cfg.SQLitePath) != "fittrack.db" {
		t.Errorf("unexpected sqlite path %s", cfg.SQLitePath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PREP_SECONDS", "10")
	t.Setenv("REST_SECONDS", "not-a-number")
	t.Setenv("CALORIES_PER_MINUTE", "7.5")
	t.Setenv("TICK_INTERVAL", "100ms")

	cfg := Load()
	if cfg.StoreDriver != DriverRedis || cfg.RedisDB != 3 {
		t.Errorf("unexpected redis settings %+v", cfg)
	}
	if cfg.PrepSeconds != 10 {
		t.Errorf("expected prep 10, got %d", cfg.PrepSeconds)
	}
	if cfg.RestSeconds != 60 {
		t.Errorf("expected fallback rest 60, got %d", cfg.RestSeconds)
	}
	if cfg.CaloriesPerMinute != 7.5 || cfg.TickInterval != 100*time.Millisecond {
		t.Errorf("unexpected overrides %+v", cfg)
	}
}
