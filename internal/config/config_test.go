package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "LOG_LEVEL", "STORAGE_BACKEND", "REDIS_ADDR", "STRESS_BUYERS", "STRESS_STOCK"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StorageBackend != BackendMemory {
		t.Errorf("expected memory backend, got %s", cfg.StorageBackend)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("unexpected redis addr %s", cfg.RedisAddr)
	}
	if cfg.StressBuyers != 50 || cfg.StressStock != 20 {
		t.Errorf("unexpected stress settings: %d/%d", cfg.StressBuyers, cfg.StressStock)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("STRESS_BUYERS", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StorageBackend != BackendRedis {
		t.Errorf("expected redis backend, got %s", cfg.StorageBackend)
	}
	if cfg.StressBuyers != 10 {
		t.Errorf("expected 10 buyers, got %d", cfg.StressBuyers)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoad_RejectsBadStressSettings(t *testing.T) {
	cases := map[string]string{
		"STRESS_BUYERS": "-1",
		"STRESS_STOCK":  "not-a-number",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("STORAGE_BACKEND", "")
			t.Setenv("STRESS_BUYERS", "")
			t.Setenv("STRESS_STOCK", "")
			t.Setenv(key, val)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, val)
			}
		})
	}
}
