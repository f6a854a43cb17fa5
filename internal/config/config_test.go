package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Vilis322/roomsizer/internal/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"PORT", "ROLL_WIDTH", "ROLL_LENGTH", "DROP_ALLOWANCE", "EXTRA_FACTOR", "LOG_FILE", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.RollPreset != storage.DefaultRollPreset() {
		t.Fatalf("expected default roll preset, got %+v", cfg.RollPreset)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if !cfg.EnableRequestLogging {
		t.Fatalf("expected request logging to default to enabled")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ROLL_WIDTH", "0.7")
	t.Setenv("ROLL_LENGTH", "15")
	t.Setenv("DROP_ALLOWANCE", "0.2")
	t.Setenv("EXTRA_FACTOR", "1.25")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "10")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	want := storage.RollPreset{RollWidth: 0.7, RollLength: 15, DropAllowance: 0.2, ExtraFactor: 1.25}
	if cfg.RollPreset != want {
		t.Fatalf("expected preset %+v, got %+v", want, cfg.RollPreset)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit settings: %v / %v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadIgnoresInvalidEnvValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROLL_WIDTH", "-0.5")
	t.Setenv("EXTRA_FACTOR", "0.5")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RollPreset != storage.DefaultRollPreset() {
		t.Fatalf("expected invalid env values to be ignored, got %+v", cfg.RollPreset)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	clearEnv(t)

	content := `
port: "9100"
roll:
  width: 0.6
  length: 12.5
waste:
  drop_allowance: 0.1
  extra_factor: 1.05
shutdown_grace_period: 5s
read_header_timeout: 2s
enable_request_logging: false
log_file: /tmp/roomsizer.log
rate_limit:
  rps: 7
  burst: 14
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9100" {
		t.Fatalf("expected port 9100, got %s", cfg.Port)
	}
	want := storage.RollPreset{RollWidth: 0.6, RollLength: 12.5, DropAllowance: 0.1, ExtraFactor: 1.05}
	if cfg.RollPreset != want {
		t.Fatalf("expected preset %+v, got %+v", want, cfg.RollPreset)
	}
	if cfg.ShutdownGracePeriod != 5*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.ReadHeaderTimeout != 2*time.Second {
		t.Fatalf("unexpected read header timeout: %s", cfg.ReadHeaderTimeout)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging to be disabled by YAML")
	}
	if cfg.LogFile != "/tmp/roomsizer.log" {
		t.Fatalf("unexpected log file: %s", cfg.LogFile)
	}
	if cfg.RateLimitRPS != 7 || cfg.RateLimitBurst != 14 {
		t.Fatalf("unexpected rate limit settings: %v / %v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadYAMLWithoutRateLimitKeepsDefaults(t *testing.T) {
	clearEnv(t)

	content := "port: \"9200\"\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.RateLimitRPS != defaultRateLimitRPS || cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Fatalf("expected default rate limits, got %v / %v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadMissingYAMLFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestCLIOverridesTakePrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ROLL_WIDTH", "0.7")

	port := "9999"
	rollWidth := 1.06
	extraFactor := 1.5

	cfg, err := Load(&CLIOverrides{
		Port:        &port,
		RollWidth:   &rollWidth,
		ExtraFactor: &extraFactor,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9999" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.RollPreset.RollWidth != 1.06 {
		t.Fatalf("expected CLI roll width to win, got %v", cfg.RollPreset.RollWidth)
	}
	if cfg.RollPreset.ExtraFactor != 1.5 {
		t.Fatalf("expected CLI extra factor to win, got %v", cfg.RollPreset.ExtraFactor)
	}
}
