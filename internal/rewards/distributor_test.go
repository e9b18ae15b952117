package rewards

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"windexer-jito/internal/config"
	"windexer-jito/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCalculate(t *testing.T) {
	cases := []struct {
		name       string
		baseRate   float64
		multiplier float64
		stake      uint64
		want       Distribution
	}{
		{
			name:       "local defaults",
			baseRate:   0.05,
			multiplier: 1.0,
			stake:      1_000_000,
			want:       Distribution{Stake: 1_000_000, Base: 50_000, Bonus: 50_000, Total: 100_000},
		},
		{
			name:       "base truncates toward zero",
			baseRate:   0.05,
			multiplier: 1.0,
			stake:      39,
			want:       Distribution{Stake: 39, Base: 1, Bonus: 1, Total: 2},
		},
		{
			name:       "bonus truncates toward zero",
			baseRate:   0.5,
			multiplier: 0.3,
			stake:      15,
			want:       Distribution{Stake: 15, Base: 7, Bonus: 2, Total: 9},
		},
		{
			name:       "stake too small for any reward",
			baseRate:   0.05,
			multiplier: 1.0,
			stake:      19,
			want:       Distribution{Stake: 19, Base: 0, Bonus: 0, Total: 0},
		},
		{
			name:       "zero multiplier",
			baseRate:   0.05,
			multiplier: 0,
			stake:      1_000_000,
			want:       Distribution{Stake: 1_000_000, Base: 50_000, Bonus: 0, Total: 50_000},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.RewardConfig{BaseRate: tc.baseRate, PerformanceMultiplier: tc.multiplier}
			got, err := Calculate(cfg, tc.stake)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateUnrepresentable(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.RewardConfig
	}{
		{name: "base overflow", cfg: config.RewardConfig{BaseRate: 2, PerformanceMultiplier: 1}},
		{name: "bonus overflow", cfg: config.RewardConfig{BaseRate: 1, PerformanceMultiplier: 4}},
		{name: "NaN rate", cfg: config.RewardConfig{BaseRate: math.NaN(), PerformanceMultiplier: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.cfg, math.MaxUint64/2)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrReward))
		})
	}
}

func TestProcessAccumulates(t *testing.T) {
	d := NewDistributor(config.NewLocal().Reward, testLogger())

	dist, err := d.Process(types.ValidationResult{IsValid: true, ParticipatingStake: 1_000_000})
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000), dist.Total)
	assert.Equal(t, uint64(100_000), dist.Accumulated)
	assert.Equal(t, uint64(100_000), d.TotalRewards())
	assert.Equal(t, uint64(1_000_000), d.LastDistribution())

	_, err = d.Process(types.ValidationResult{IsValid: true, ParticipatingStake: 200_000})
	require.NoError(t, err)
	assert.Equal(t, uint64(120_000), d.TotalRewards())
	assert.Equal(t, uint64(200_000), d.LastDistribution())
}

func TestProcessAccumulatorOverflowLeavesStateUntouched(t *testing.T) {
	cfg := config.RewardConfig{BaseRate: 0.5, PerformanceMultiplier: 0.5}
	d := NewDistributor(cfg, testLogger())

	stake := uint64(1) << 63
	_, err := d.Process(types.ValidationResult{ParticipatingStake: stake})
	require.NoError(t, err)
	before := d.TotalRewards()

	_, err = d.Process(types.ValidationResult{ParticipatingStake: stake})
	require.NoError(t, err)

	_, err = d.Process(types.ValidationResult{ParticipatingStake: stake})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrReward))
	assert.Equal(t, 2*before, d.TotalRewards())
	assert.Equal(t, stake, d.LastDistribution())
}

func TestProcessConcurrent(t *testing.T) {
	d := NewDistributor(config.NewLocal().Reward, testLogger())

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Process(types.ValidationResult{IsValid: true, ParticipatingStake: 1_000_000})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(n*100_000), d.TotalRewards())
}
