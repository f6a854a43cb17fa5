package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Vilis322/roomsizer/internal/storage"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	RollPreset           storage.RollPreset
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	LogFile              string
	RateLimitRPS         float64
	RateLimitBurst       int
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	Roll                 yamlRoll      `yaml:"roll"`
	Waste                yamlWaste     `yaml:"waste"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	LogFile              string        `yaml:"log_file"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRoll represents the default roll dimensions section in YAML.
type yamlRoll struct {
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
}

// yamlWaste represents the default waste policy section in YAML.
type yamlWaste struct {
	DropAllowance float64 `yaml:"drop_allowance"`
	ExtraFactor   float64 `yaml:"extra_factor"`
}

// yamlRateLimit represents the rate limit section in YAML. Pointer fields
// distinguish an explicit zero (disable limiting) from an absent key.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	RollWidth      *float64
	RollLength     *float64
	DropAllowance  *float64
	ExtraFactor    *float64
	LogFile        *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply environment variables (override YAML)
	applyEnvConfig(&cfg)

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		RollPreset:           storage.DefaultRollPreset(),
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.Roll.Width > 0 {
		cfg.RollPreset.RollWidth = yamlCfg.Roll.Width
	}
	if yamlCfg.Roll.Length > 0 {
		cfg.RollPreset.RollLength = yamlCfg.Roll.Length
	}
	if yamlCfg.Waste.DropAllowance > 0 {
		cfg.RollPreset.DropAllowance = yamlCfg.Waste.DropAllowance
	}
	if yamlCfg.Waste.ExtraFactor > 0 {
		cfg.RollPreset.ExtraFactor = yamlCfg.Waste.ExtraFactor
	}

	if yamlCfg.ShutdownGracePeriod != "" {
		if d, err := time.ParseDuration(yamlCfg.ShutdownGracePeriod); err == nil {
			cfg.ShutdownGracePeriod = d
		}
	}

	if yamlCfg.ReadHeaderTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.ReadHeaderTimeout); err == nil {
			cfg.ReadHeaderTimeout = d
		}
	}

	if yamlCfg.WriteTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.WriteTimeout); err == nil {
			cfg.WriteTimeout = d
		}
	}

	if yamlCfg.IdleTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.IdleTimeout); err == nil {
			cfg.IdleTimeout = d
		}
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.LogFile != "" {
		cfg.LogFile = yamlCfg.LogFile
	}

	if yamlCfg.RateLimit.RPS != nil && *yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil && *yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if raw := strings.TrimSpace(os.Getenv("ROLL_WIDTH")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value > 0 {
			cfg.RollPreset.RollWidth = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("ROLL_LENGTH")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value > 0 {
			cfg.RollPreset.RollLength = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DROP_ALLOWANCE")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value >= 0 {
			cfg.RollPreset.DropAllowance = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("EXTRA_FACTOR")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value >= 1.0 {
			cfg.RollPreset.ExtraFactor = value
		}
	}

	if logFile := strings.TrimSpace(os.Getenv("LOG_FILE")); logFile != "" {
		cfg.LogFile = logFile
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.RollWidth != nil && *overrides.RollWidth > 0 {
		cfg.RollPreset.RollWidth = *overrides.RollWidth
	}

	if overrides.RollLength != nil && *overrides.RollLength > 0 {
		cfg.RollPreset.RollLength = *overrides.RollLength
	}

	if overrides.DropAllowance != nil && *overrides.DropAllowance >= 0 {
		cfg.RollPreset.DropAllowance = *overrides.DropAllowance
	}

	if overrides.ExtraFactor != nil && *overrides.ExtraFactor >= 1.0 {
		cfg.RollPreset.ExtraFactor = *overrides.ExtraFactor
	}

	if overrides.LogFile != nil && *overrides.LogFile != "" {
		cfg.LogFile = *overrides.LogFile
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.RollPreset.RollWidth <= 0 || cfg.RollPreset.RollLength <= 0 {
		return fmt.Errorf("default roll dimensions must be positive")
	}
	if cfg.RollPreset.DropAllowance < 0 {
		return fmt.Errorf("default drop allowance must be >= 0")
	}
	if cfg.RollPreset.ExtraFactor < 1.0 {
		return fmt.Errorf("default extra factor must be >= 1.0")
	}
	return nil
}
