// internal/rewards/distributor.go - Reward distribution for validated consensus
package rewards

import (
	"log/slog"
	"math"
	"math/bits"
	"sync"

	"windexer-jito/internal/config"
	"windexer-jito/internal/types"
)

// Distribution is the reward credited for one validated consensus.
type Distribution struct {
	Stake uint64
	Base  uint64
	Bonus uint64
	Total uint64

	// Accumulated is the distributor's running total after this credit.
	Accumulated uint64
}

type state struct {
	totalRewards     uint64
	lastDistribution uint64
}

type Distributor struct {
	config config.RewardConfig
	logger *slog.Logger

	mutex sync.RWMutex
	state state
}

func NewDistributor(cfg config.RewardConfig, logger *slog.Logger) *Distributor {
	return &Distributor{
		config: cfg,
		logger: logger,
	}
}

// Calculate computes base = floor(stake*base_rate) and
// bonus = floor(base*performance_multiplier), truncating toward zero.
func Calculate(cfg config.RewardConfig, stake uint64) (Distribution, error) {
	base, ok := truncate(float64(stake) * cfg.BaseRate)
	if !ok {
		return Distribution{}, types.NewRewardError("base reward for stake %d is not representable", stake)
	}
	bonus, ok := truncate(float64(base) * cfg.PerformanceMultiplier)
	if !ok {
		return Distribution{}, types.NewRewardError("performance bonus for base reward %d is not representable", base)
	}
	total, carry := bits.Add64(base, bonus, 0)
	if carry != 0 {
		return Distribution{}, types.NewRewardError("reward total overflows: %d + %d", base, bonus)
	}
	return Distribution{Stake: stake, Base: base, Bonus: bonus, Total: total}, nil
}

// truncate converts v to uint64 toward zero, rejecting values a uint64
// cannot hold.
func truncate(v float64) (uint64, bool) {
	if math.IsNaN(v) || v < 0 || v >= math.MaxUint64 {
		return 0, false
	}
	return uint64(v), true
}

// Process credits the reward for a validated consensus. On error the
// accumulated state is left untouched.
func (d *Distributor) Process(consensus types.ValidationResult) (Distribution, error) {
	dist, err := Calculate(d.config, consensus.ParticipatingStake)
	if err != nil {
		return Distribution{}, err
	}

	if err := d.credit(&dist); err != nil {
		return Distribution{}, err
	}

	d.logger.Info("Processed rewards",
		"base", dist.Base,
		"bonus", dist.Bonus,
		"total", dist.Total,
		"total_rewards", dist.Accumulated)

	return dist, nil
}

func (d *Distributor) credit(dist *Distribution) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	total, carry := bits.Add64(d.state.totalRewards, dist.Total, 0)
	if carry != 0 {
		return types.NewRewardError("accumulated rewards overflow: %d + %d", d.state.totalRewards, dist.Total)
	}

	d.state.totalRewards = total
	d.state.lastDistribution = dist.Stake
	dist.Accumulated = total
	return nil
}

func (d *Distributor) TotalRewards() uint64 {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.state.totalRewards
}

// LastDistribution returns the stake amount of the most recent distribution.
func (d *Distributor) LastDistribution() uint64 {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.state.lastDistribution
}
