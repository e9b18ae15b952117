// internal/config/integration.go - Manager parameter sets
package config

import (
	"math"

	"windexer-jito/internal/types"
)

// ConsensusConfig parameterises the consensus (TipRouter) manager.
type ConsensusConfig struct {
	ProgramID          string `json:"program_id" mapstructure:"program_id"`
	StakeThreshold     uint64 `json:"stake_threshold" mapstructure:"stake_threshold"`
	ConsensusThreshold uint8  `json:"consensus_threshold" mapstructure:"consensus_threshold"`
}

// StakeConfig parameterises the restaking verifier. MaxStake is carried but
// not enforced.
type StakeConfig struct {
	VaultProgramID string `json:"vault_program_id" mapstructure:"vault_program_id"`
	MinStake       uint64 `json:"min_stake" mapstructure:"min_stake"`
	MaxStake       uint64 `json:"max_stake" mapstructure:"max_stake"`
}

// RewardConfig parameterises the reward distributor. DistributionFrequency is
// reserved for batching and is not consulted when rewards are processed.
type RewardConfig struct {
	BaseRate              float64 `json:"base_rate" mapstructure:"base_rate"`
	PerformanceMultiplier float64 `json:"performance_multiplier" mapstructure:"performance_multiplier"`
	DistributionFrequency uint64  `json:"distribution_frequency" mapstructure:"distribution_frequency"`
}

type IntegrationConfig struct {
	Consensus ConsensusConfig `json:"tiprouter_config" mapstructure:"tiprouter"`
	Stake     StakeConfig     `json:"restaking_config" mapstructure:"restaking"`
	Reward    RewardConfig    `json:"reward_config" mapstructure:"reward"`
}

const (
	DefaultStakeThreshold        = 1_000_000
	DefaultConsensusThreshold    = 67
	DefaultMinStake              = 100_000
	DefaultMaxStake              = 10_000_000
	DefaultBaseRate              = 0.05
	DefaultPerformanceMultiplier = 1.0
	DefaultDistributionFrequency = 100
)

// NewLocal returns the parameter set used for local runs and tests.
func NewLocal() IntegrationConfig {
	return IntegrationConfig{
		Consensus: ConsensusConfig{
			ProgramID:          "tiprouter-local",
			StakeThreshold:     DefaultStakeThreshold,
			ConsensusThreshold: DefaultConsensusThreshold,
		},
		Stake: StakeConfig{
			VaultProgramID: "vault-local",
			MinStake:       DefaultMinStake,
			MaxStake:       DefaultMaxStake,
		},
		Reward: RewardConfig{
			BaseRate:              DefaultBaseRate,
			PerformanceMultiplier: DefaultPerformanceMultiplier,
			DistributionFrequency: DefaultDistributionFrequency,
		},
	}
}

// Validate reports a ConfigError for parameter sets the managers cannot
// operate on soundly.
func (c IntegrationConfig) Validate() error {
	if c.Consensus.ConsensusThreshold > 100 {
		return types.NewConfigError("consensus threshold %d exceeds 100", c.Consensus.ConsensusThreshold)
	}
	if c.Stake.MinStake > c.Stake.MaxStake {
		return types.NewConfigError("min stake %d exceeds max stake %d", c.Stake.MinStake, c.Stake.MaxStake)
	}
	if !validRate(c.Reward.BaseRate) {
		return types.NewConfigError("base rate %v must be finite and non-negative", c.Reward.BaseRate)
	}
	if !validRate(c.Reward.PerformanceMultiplier) {
		return types.NewConfigError("performance multiplier %v must be finite and non-negative", c.Reward.PerformanceMultiplier)
	}
	return nil
}

func validRate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
