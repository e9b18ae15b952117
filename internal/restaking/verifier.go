// internal/restaking/verifier.go - Stake eligibility verification
package restaking

import (
	"log/slog"
	"sync"

	"windexer-jito/internal/config"
	"windexer-jito/internal/types"
)

type state struct {
	currentStake uint64
}

type Verifier struct {
	config config.StakeConfig
	logger *slog.Logger

	mutex sync.RWMutex
	state state
}

func NewVerifier(cfg config.StakeConfig, logger *slog.Logger) *Verifier {
	return &Verifier{
		config: cfg,
		logger: logger,
	}
}

// Verify passes when the participating stake reaches MinStake. MaxStake is
// not consulted.
func (v *Verifier) Verify(consensus types.ValidationResult) error {
	v.mutex.RLock()
	sufficient := consensus.ParticipatingStake >= v.config.MinStake
	v.mutex.RUnlock()

	if !sufficient {
		v.logger.Warn("Stake verification failed",
			"participating_stake", consensus.ParticipatingStake,
			"min_stake", v.config.MinStake)
		return types.NewRestakingError("insufficient stake: %d < %d", consensus.ParticipatingStake, v.config.MinStake)
	}

	v.logger.Debug("Stake verification passed",
		"participating_stake", consensus.ParticipatingStake,
		"min_stake", v.config.MinStake)
	return nil
}

// CurrentStake returns the observed vault stake. Nothing updates it yet, so it
// stays zero.
func (v *Verifier) CurrentStake() uint64 {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return v.state.currentStake
}
