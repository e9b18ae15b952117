// internal/consensus/manager.go - TipRouter consensus determination
package consensus

import (
	"log/slog"
	"sync"

	"windexer-jito/internal/config"
	"windexer-jito/internal/types"
)

// Strategy derives the consensus percentage and participating stake for a
// block summary.
type Strategy interface {
	Evaluate(data types.IndexData, cfg config.ConsensusConfig) (percentage float64, participatingStake uint64, err error)
}

// PlaceholderPercentage is reported by PlaceholderStrategy for every slot.
const PlaceholderPercentage = 75.0

// PlaceholderStrategy stands in for attestation aggregation: it reports a
// fixed percentage and treats the configured stake threshold as the
// participating stake.
type PlaceholderStrategy struct{}

func (PlaceholderStrategy) Evaluate(_ types.IndexData, cfg config.ConsensusConfig) (float64, uint64, error) {
	return PlaceholderPercentage, cfg.StakeThreshold, nil
}

type state struct {
	consensusCount uint64
	lastConsensus  *types.ValidationResult
}

type Manager struct {
	config   config.ConsensusConfig
	strategy Strategy
	logger   *slog.Logger

	mutex sync.RWMutex
	state state
}

// NewManager builds a manager; a nil strategy selects PlaceholderStrategy.
func NewManager(cfg config.ConsensusConfig, strategy Strategy, logger *slog.Logger) *Manager {
	if strategy == nil {
		strategy = PlaceholderStrategy{}
	}
	return &Manager{
		config:   cfg,
		strategy: strategy,
		logger:   logger,
	}
}

// Compute evaluates data against the configured threshold. Every call counts
// once; only successful evaluations replace the retained last result.
func (m *Manager) Compute(data types.IndexData) (types.ValidationResult, error) {
	result, count, err := m.compute(data)
	if err != nil {
		return types.ValidationResult{}, err
	}

	m.logger.Debug("Consensus computed",
		"slot", data.Slot,
		"consensus_percentage", result.ConsensusPercentage,
		"threshold", m.config.ConsensusThreshold,
		"participating_stake", result.ParticipatingStake,
		"valid", result.IsValid,
		"consensus_count", count)

	return result, nil
}

func (m *Manager) compute(data types.IndexData) (types.ValidationResult, uint64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.state.consensusCount++

	percentage, stake, err := m.strategy.Evaluate(data, m.config)
	if err != nil {
		return types.ValidationResult{}, m.state.consensusCount, types.NewConsensusError(err, "failed to evaluate slot %d", data.Slot)
	}

	result := types.ValidationResult{
		IsValid:             percentage >= float64(m.config.ConsensusThreshold),
		ConsensusPercentage: percentage,
		ParticipatingStake:  stake,
		Metadata:            make(map[string]string),
	}

	retained := result.Clone()
	m.state.lastConsensus = &retained

	return result, m.state.consensusCount, nil
}

// Count returns how many times Compute has been called.
func (m *Manager) Count() uint64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.state.consensusCount
}

// LastConsensus returns a copy of the most recent result, if any.
func (m *Manager) LastConsensus() (types.ValidationResult, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.state.lastConsensus == nil {
		return types.ValidationResult{}, false
	}
	return m.state.lastConsensus.Clone(), true
}
