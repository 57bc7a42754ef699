// Package config provides centralized configuration management.
// Every tunable of the scorekeeping server is read here; the rest of the
// codebase takes values, never the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// MatchConfig holds the rule-engine tunables.
type MatchConfig struct {
	HalfLength          time.Duration // regulation 30 minutes
	TickInterval        time.Duration
	ForcedBenchDuration time.Duration
	PerOfficialCaps     bool // one yellow/2' per official instead of shared
}

// DefaultMatch returns the regulation defaults.
func DefaultMatch() MatchConfig {
	return MatchConfig{
		HalfLength:          30 * time.Minute,
		TickInterval:        time.Second,
		ForcedBenchDuration: 2 * time.Minute,
	}
}

// MatchFromEnv returns the match configuration with environment
// overrides. Durations are given in seconds.
func MatchFromEnv() MatchConfig {
	cfg := DefaultMatch()

	if s := getEnvInt("HALF_LENGTH_S", 0); s > 0 {
		cfg.HalfLength = time.Duration(s) * time.Second
	}
	if s := getEnvInt("TICK_INTERVAL_MS", 0); s > 0 {
		cfg.TickInterval = time.Duration(s) * time.Millisecond
	}
	if s := getEnvInt("FORCED_BENCH_S", 0); s > 0 {
		cfg.ForcedBenchDuration = time.Duration(s) * time.Second
	}
	if os.Getenv("PER_OFFICIAL_CAPS") == "true" {
		cfg.PerOfficialCaps = true
	}

	return cfg
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                int
	RosterPath          string
	ActionLogPath       string
	ScorekeeperPassword string // empty disables auth
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:          3000,
		RosterPath:    "roster.yaml",
		ActionLogPath: "actions.jsonl",
	}
}

// ServerFromEnv returns server configuration with environment overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if v := os.Getenv("ROSTER_PATH"); v != "" {
		cfg.RosterPath = v
	}
	if v := os.Getenv("ACTION_LOG_PATH"); v != "" {
		cfg.ActionLogPath = v
	}
	if v := os.Getenv("SCOREKEEPER_PASSWORD"); v != "" {
		cfg.ScorekeeperPassword = v
	}

	return cfg
}

// DebugConfig holds the localhost observability server settings.
type DebugConfig struct {
	Enabled       bool
	ListenAddr    string
	BasicAuthUser string
	BasicAuthPass string
}

// DebugFromEnv returns debug server configuration.
func DebugFromEnv() DebugConfig {
	cfg := DebugConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
	if os.Getenv("DEBUG_SERVER") == "false" {
		cfg.Enabled = false
	}
	if v := os.Getenv("DEBUG_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	cfg.BasicAuthUser = os.Getenv("DEBUG_AUTH_USER")
	cfg.BasicAuthPass = os.Getenv("DEBUG_AUTH_PASS")
	return cfg
}

// AppConfig is the complete application configuration.
type AppConfig struct {
	Match  MatchConfig
	Server ServerConfig
	Debug  DebugConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Match:  MatchFromEnv(),
		Server: ServerFromEnv(),
		Debug:  DebugFromEnv(),
	}
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
