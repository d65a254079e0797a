package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"HERB_BASE_URL", "HERB_DATA_DIR", "HERB_LOG_DIR", "HERB_TIMEOUT_SEC", "HERB_LUA_TABLE", "HERB_LOG_LEVEL", "HERB_KEEP_UNRESOLVED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.BaseURL != "https://www.wowhead.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DataDir != "data" || cfg.LogDir != "logs" {
		t.Errorf("DataDir/LogDir = %q/%q, want data/logs", cfg.DataDir, cfg.LogDir)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.TableName != "GatherMate2HerbDB" {
		t.Errorf("TableName = %q", cfg.TableName)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
	if cfg.KeepUnresolved {
		t.Error("KeepUnresolved should default to false")
	}
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HERB_BASE_URL", "http://localhost:8080")
	t.Setenv("HERB_TIMEOUT_SEC", "3")
	t.Setenv("HERB_LOG_LEVEL", "debug")
	t.Setenv("HERB_KEEP_UNRESOLVED", "yes")

	cfg := Load()

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", cfg.LogLevel)
	}
	if !cfg.KeepUnresolved {
		t.Error("KeepUnresolved = false, want true")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HERB_DATA_DIR", "")
	t.Setenv("HERB_LUA_TABLE", "")

	env := "HERB_DATA_DIR=/srv/herbs\nHERB_LUA_TABLE=HerbTest\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set, even when empty
	os.Unsetenv("HERB_DATA_DIR")  // nolint:errcheck
	os.Unsetenv("HERB_LUA_TABLE") // nolint:errcheck

	cfg := Load()

	if cfg.DataDir != "/srv/herbs" {
		t.Errorf("DataDir = %q, want /srv/herbs", cfg.DataDir)
	}
	if cfg.TableName != "HerbTest" {
		t.Errorf("TableName = %q, want HerbTest", cfg.TableName)
	}
}

func TestGetEnvInt_Invalid(t *testing.T) {
	t.Setenv("HERB_TEST_INT", "abc")
	if got := getEnvInt("HERB_TEST_INT", 7); got != 7 {
		t.Errorf("getEnvInt() = %d, want fallback 7", got)
	}
	t.Setenv("HERB_TEST_INT", "-1")
	if got := getEnvInt("HERB_TEST_INT", 7); got != 7 {
		t.Errorf("getEnvInt() = %d, want fallback 7 for negative", got)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
