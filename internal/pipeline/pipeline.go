// internal/pipeline/pipeline.go - Consensus, stake and reward validation flow
package pipeline

import (
	"log/slog"

	"windexer-jito/internal/config"
	"windexer-jito/internal/consensus"
	"windexer-jito/internal/monitoring"
	"windexer-jito/internal/restaking"
	"windexer-jito/internal/rewards"
	"windexer-jito/internal/types"
)

// Observer receives an event after every finished validation. Observers run
// on the validating goroutine, outside every manager lock.
type Observer interface {
	ObserveValidation(ev types.ValidationEvent)
}

type Option func(*Pipeline)

// WithStrategy replaces the placeholder consensus policy.
func WithStrategy(s consensus.Strategy) Option {
	return func(p *Pipeline) {
		p.strategy = s
	}
}

func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// WithCollector shares an existing metrics collector instead of creating one.
func WithCollector(c *monitoring.Collector) Option {
	return func(p *Pipeline) {
		p.metrics = c
	}
}

type Pipeline struct {
	tiprouter *consensus.Manager
	restaking *restaking.Verifier
	rewards   *rewards.Distributor
	metrics   *monitoring.Collector

	strategy  consensus.Strategy
	observers []Observer
	logger    *slog.Logger
}

// New validates cfg and builds the three managers. A malformed configuration
// yields a ConfigError.
func New(cfg config.IntegrationConfig, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{logger: logger}
	for _, opt := range opts {
		opt(p)
	}

	p.tiprouter = consensus.NewManager(cfg.Consensus, p.strategy, logger.With("component", "tiprouter"))
	p.restaking = restaking.NewVerifier(cfg.Stake, logger.With("component", "restaking"))
	p.rewards = rewards.NewDistributor(cfg.Reward, logger.With("component", "rewards"))
	if p.metrics == nil {
		p.metrics = monitoring.NewCollector(logger.With("component", "metrics"))
	}

	logger.Info("Validation pipeline initialized",
		"consensus_threshold", cfg.Consensus.ConsensusThreshold,
		"stake_threshold", cfg.Consensus.StakeThreshold,
		"min_stake", cfg.Stake.MinStake,
		"base_rate", cfg.Reward.BaseRate,
		"performance_multiplier", cfg.Reward.PerformanceMultiplier)

	return p, nil
}

// Validate runs data through the pipeline: record the attempt, compute
// consensus, verify stake, and for valid consensus credit rewards and record
// the success. The first failing stage's error is returned unchanged and the
// remaining stages are skipped; the attempt stays recorded. A result that did
// not reach consensus is returned without error.
func (p *Pipeline) Validate(data types.IndexData) (types.ValidationResult, error) {
	p.logger.Info("Starting validation", "slot", data.Slot)

	p.metrics.RecordAttempt(data)

	result, err := p.tiprouter.Compute(data)
	if err != nil {
		return p.fail(data, err)
	}

	if err := p.restaking.Verify(result); err != nil {
		return p.fail(data, err)
	}

	ev := types.ValidationEvent{Data: data, Result: result}

	if result.IsValid {
		dist, err := p.rewards.Process(result)
		if err != nil {
			return p.fail(data, err)
		}
		p.metrics.RecordSuccess(data.Slot, result)

		ev.Rewarded = true
		ev.Reward = dist.Total
		ev.TotalRewards = dist.Accumulated
	}

	p.logger.Info("Validation finished",
		"slot", data.Slot,
		"valid", result.IsValid,
		"consensus_percentage", result.ConsensusPercentage,
		"participating_stake", result.ParticipatingStake)

	p.notify(ev)
	return result, nil
}

func (p *Pipeline) fail(data types.IndexData, err error) (types.ValidationResult, error) {
	p.logger.Warn("Validation failed",
		"slot", data.Slot,
		"stage", types.KindOf(err).Label(),
		"error", err)

	p.notify(types.ValidationEvent{Data: data, Err: err})
	return types.ValidationResult{}, err
}

func (p *Pipeline) notify(ev types.ValidationEvent) {
	for _, o := range p.observers {
		o.ObserveValidation(ev)
	}
}

func (p *Pipeline) LastConsensus() (types.ValidationResult, bool) {
	return p.tiprouter.LastConsensus()
}

func (p *Pipeline) ConsensusCount() uint64 {
	return p.tiprouter.Count()
}

func (p *Pipeline) TotalRewards() uint64 {
	return p.rewards.TotalRewards()
}

func (p *Pipeline) LastDistribution() uint64 {
	return p.rewards.LastDistribution()
}

func (p *Pipeline) CurrentStake() uint64 {
	return p.restaking.CurrentStake()
}

func (p *Pipeline) Metrics() monitoring.Snapshot {
	return p.metrics.Snapshot()
}
