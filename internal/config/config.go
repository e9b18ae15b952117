// internal/config/config.go - Configuration management
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "WINDEXER"

type Config struct {
	LogLevel             string            `json:"log_level"`
	EnablePrometheus     bool              `json:"enable_prometheus"`
	PrometheusPort       int               `json:"prometheus_port"`
	ShoutrrrURLs         []string          `json:"shoutrrr_urls"`
	CriticalShoutrrrURLs []string          `json:"critical_shoutrrr_urls"`
	MuteRepeatingEvents  bool              `json:"mute_repeating_events"`
	MuteWindow           time.Duration     `json:"mute_window"`
	MaxConcurrency       int               `json:"max_concurrency"`
	Integration          IntegrationConfig `json:"integration"`
}

// Load reads settings from WINDEXER_* environment variables, falling back to
// the local defaults, and validates the integration parameters.
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	var config Config

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	config.LogLevel = v.GetString("log_level")
	config.EnablePrometheus = v.GetBool("enable_prometheus")
	config.PrometheusPort = v.GetInt("prometheus_port")
	config.MuteRepeatingEvents = v.GetBool("mute_repeating_events")
	config.MuteWindow = v.GetDuration("mute_window")
	config.MaxConcurrency = v.GetInt("max_concurrency")

	// Parse Shoutrrr URLs
	config.ShoutrrrURLs = splitList(v.GetString("shoutrrr_urls"))
	config.CriticalShoutrrrURLs = splitList(v.GetString("critical_shoutrrr_urls"))

	if err := v.Unmarshal(&config.Integration); err != nil {
		return config, errors.WithMessage(err, "error decoding integration config")
	}

	if _, err := ParseLogLevel(config.LogLevel); err != nil {
		return config, err
	}
	if config.MaxConcurrency < 1 {
		return config, fmt.Errorf("WINDEXER_MAX_CONCURRENCY must be at least 1, got %d", config.MaxConcurrency)
	}
	if err := config.Integration.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	local := NewLocal()

	v.SetDefault("log_level", "info")
	v.SetDefault("enable_prometheus", false)
	v.SetDefault("prometheus_port", 8080)
	v.SetDefault("shoutrrr_urls", "")
	v.SetDefault("critical_shoutrrr_urls", "")
	v.SetDefault("mute_repeating_events", true)
	v.SetDefault("mute_window", 10*time.Minute)
	v.SetDefault("max_concurrency", 8)

	v.SetDefault("tiprouter.program_id", local.Consensus.ProgramID)
	v.SetDefault("tiprouter.stake_threshold", local.Consensus.StakeThreshold)
	v.SetDefault("tiprouter.consensus_threshold", local.Consensus.ConsensusThreshold)
	v.SetDefault("restaking.vault_program_id", local.Stake.VaultProgramID)
	v.SetDefault("restaking.min_stake", local.Stake.MinStake)
	v.SetDefault("restaking.max_stake", local.Stake.MaxStake)
	v.SetDefault("reward.base_rate", local.Reward.BaseRate)
	v.SetDefault("reward.performance_multiplier", local.Reward.PerformanceMultiplier)
	v.SetDefault("reward.distribution_frequency", local.Reward.DistributionFrequency)
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseLogLevel maps a level name onto slog's levels.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
