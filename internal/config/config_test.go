package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
storage:
  type: minio
jwt:
  expire_hours: 2
`)
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "8000" || cfg.Database.Driver != "mysql" {
		t.Errorf("defaults not applied: %+v %+v", cfg.Server, cfg.Database)
	}
	if cfg.JWT.ExpireTime != 2*time.Hour {
		t.Errorf("expire = %v", cfg.JWT.ExpireTime)
	}
	if cfg.Redis.CacheTTL() != 5*time.Minute || cfg.Client.Timeout() != 10*time.Second {
		t.Errorf("ttl = %v timeout = %v", cfg.Redis.CacheTTL(), cfg.Client.Timeout())
	}
	if cfg.Client.BaseURL != "http://localhost:8000/api/v1" {
		t.Errorf("client base url = %q", cfg.Client.BaseURL)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: mysql
cors:
  allowed_origins: ["http://a.example", "http://b.example"]
storage:
  type: oss
`)
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("CLIENT_BASE_URL", "http://backend:9000/api/v1")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Client.BaseURL != "http://backend:9000/api/v1" {
		t.Errorf("base url = %q", cfg.Client.BaseURL)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("origins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestReleaseModeRejectsShortSecret(t *testing.T) {
	body := `
server:
  mode: release
storage:
  type: oss
jwt:
  enabled: %s
  secret: short
`
	if _, err := LoadConfig(writeConfig(t, fmt.Sprintf(body, "true"))); err == nil {
		t.Error("expected short secret to be rejected")
	}
	if _, err := LoadConfig(writeConfig(t, fmt.Sprintf(body, "false"))); err != nil {
		t.Errorf("secret is irrelevant when auth is off: %v", err)
	}
}

func TestMissingConfig(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
