package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range []string{"EIGHTS_PLAYER_NAME", "EIGHTS_OPPONENT_DELAY", "EIGHTS_COLOR", "EIGHTS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	// LookupEnv distinguishes unset from empty for the log file.
	t.Setenv("EIGHTS_LOG_FILE", "")
	os.Unsetenv("EIGHTS_LOG_FILE")
	return dir
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.OpponentDelay.Duration != 1500*time.Millisecond {
		t.Errorf("opponent delay = %v, want 1.5s", cfg.OpponentDelay.Duration)
	}
	if _, err := os.Stat(GetConfigFilePath()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	again, err := LoadConfig()
	if err != nil {
		t.Fatalf("second LoadConfig() error = %v", err)
	}
	if *again != *cfg {
		t.Errorf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadFromKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "partial.toml")
	if err := os.WriteFile(path, []byte("opponent_delay = \"250ms\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.OpponentDelay.Duration != 250*time.Millisecond {
		t.Errorf("opponent delay = %v, want 250ms", cfg.OpponentDelay.Duration)
	}
	if cfg.PlayerName != "You" || !cfg.Color {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	dir := isolate(t)
	for name, body := range map[string]string{
		"delay":  "opponent_delay = \"soon\"\n",
		"theme":  "[theme]\nred = \"crimson\"\n",
		"syntax": "player_name = \n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			if err := os.WriteFile(path, []byte(body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Fatalf("expected error for %s", body)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("EIGHTS_OPPONENT_DELAY", "0s")
	t.Setenv("EIGHTS_COLOR", "false")
	t.Setenv("EIGHTS_PLAYER_NAME", "Ada")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.OpponentDelay.Duration != 0 || cfg.Color || cfg.PlayerName != "Ada" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}

	t.Setenv("EIGHTS_COLOR", "sometimes")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for bad EIGHTS_COLOR")
	}
}

func TestSet(t *testing.T) {
	isolate(t)

	if err := Set("opponent_delay", "2s"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := Set("theme.legal", "#00ff00"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	cfg, err := LoadFrom(GetConfigFilePath())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.OpponentDelay.Duration != 2*time.Second || cfg.Theme.Legal != "#00ff00" {
		t.Errorf("Set not persisted: %+v", cfg)
	}

	if err := Set("difficulty", "hard"); err == nil {
		t.Errorf("expected error for unknown key")
	}
	if err := Set("theme.red", "red"); err == nil {
		t.Errorf("expected error for invalid colour")
	}
	if err := Set("opponent_delay", "-1s"); err == nil {
		t.Errorf("expected error for negative delay")
	}
}
