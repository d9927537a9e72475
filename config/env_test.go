package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadFromFilesPrecedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	yamlPath := filepath.Join(dir, "app.yaml")
	envPath := filepath.Join(dir, ".env")

	writeFile(t, jsonPath, `{"db_driver": "mysql", "log_level": "warn", "nested": {"x": 1}}`)
	writeFile(t, yamlPath, "db_driver: postgres\nsrs_lookup: true\nsrs_cache_ttl: 90m\n")
	writeFile(t, envPath, "# comment\nREDIS_ADDR=\"cache:6379\"\n")

	if err := loadFromFiles(jsonPath, yamlPath, envPath); err != nil {
		t.Fatalf("loadFromFiles: %v", err)
	}

	if got := get("DB_DRIVER", ""); got != "postgres" {
		t.Errorf("DB_DRIVER = %q, want postgres (yaml overrides json)", got)
	}
	if got := get("LOG_LEVEL", ""); got != "warn" {
		t.Errorf("LOG_LEVEL = %q, want warn", got)
	}
	if got := get("REDIS_ADDR", ""); got != "cache:6379" {
		t.Errorf("REDIS_ADDR = %q, want cache:6379", got)
	}
	if got := get("SRS_LOOKUP", ""); got != "true" {
		t.Errorf("SRS_LOOKUP = %q, want true", got)
	}
	if _, ok := values["NESTED"]; ok {
		t.Error("nested objects should be ignored")
	}
}

func TestLoadFromFilesMissingIsFine(t *testing.T) {
	dir := t.TempDir()
	err := loadFromFiles(filepath.Join(dir, "a.json"), filepath.Join(dir, "a.yaml"), filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatalf("missing files should not fail: %v", err)
	}
	if got := get("STUB_DIR", ""); got != defaultStubDir {
		t.Errorf("STUB_DIR = %q, want %q", got, defaultStubDir)
	}
}

func TestLoadFromFilesBadJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	writeFile(t, jsonPath, "{not json")

	if err := loadFromFiles(jsonPath, filepath.Join(dir, "a.yaml"), filepath.Join(dir, ".env")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSRSCacheTTLFallback(t *testing.T) {
	Set("SRS_CACHE_TTL", "nonsense")
	if got := SRSCacheTTL(); got != defaultSRSCacheTTL {
		t.Errorf("SRSCacheTTL() = %v, want %v", got, defaultSRSCacheTTL)
	}
	Set("SRS_CACHE_TTL", "5m")
	if got := SRSCacheTTL(); got != 5*time.Minute {
		t.Errorf("SRSCacheTTL() = %v, want 5m", got)
	}
}
