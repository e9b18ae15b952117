package types

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegrationErrorKinds(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
		kind     ErrorKind
		wantMsg  string
	}{
		{
			name:     "config",
			err:      NewConfigError("consensus threshold %d exceeds 100", 120),
			sentinel: ErrConfig,
			kind:     KindConfig,
			wantMsg:  "Configuration error: consensus threshold 120 exceeds 100",
		},
		{
			name:     "restaking",
			err:      NewRestakingError("insufficient stake: %d < %d", 1, 2),
			sentinel: ErrRestaking,
			kind:     KindRestaking,
			wantMsg:  "Restaking validation error: insufficient stake: 1 < 2",
		},
		{
			name:     "reward",
			err:      NewRewardError("overflow"),
			sentinel: ErrReward,
			kind:     KindReward,
			wantMsg:  "Reward processing error: overflow",
		},
		{
			name:     "consensus with cause",
			err:      NewConsensusError(io.ErrUnexpectedEOF, "aggregation failed"),
			sentinel: ErrConsensus,
			kind:     KindConsensus,
			wantMsg:  "TipRouter consensus error: aggregation failed: unexpected EOF",
		},
		{
			name:     "network",
			err:      NewNetworkError(io.EOF, "rpc closed"),
			sentinel: ErrNetwork,
			kind:     KindNetwork,
			wantMsg:  "Network error: rpc closed: EOF",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualError(t, tc.err, tc.wantMsg)
			assert.True(t, errors.Is(tc.err, tc.sentinel))
			assert.Equal(t, tc.kind, KindOf(tc.err))

			wrapped := fmt.Errorf("outer: %w", tc.err)
			assert.True(t, errors.Is(wrapped, tc.sentinel))
			assert.Equal(t, tc.kind, KindOf(wrapped))
		})
	}
}

func TestIntegrationErrorDoesNotMatchOtherKinds(t *testing.T) {
	err := NewRestakingError("insufficient stake")
	assert.False(t, errors.Is(err, ErrReward))
	assert.False(t, errors.Is(err, ErrConfig))
	assert.Equal(t, ErrorKind(0), KindOf(io.EOF))
}

func TestConsensusErrorUnwrapsCause(t *testing.T) {
	err := NewConsensusError(io.ErrUnexpectedEOF, "aggregation failed")
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestValidationResultClone(t *testing.T) {
	orig := ValidationResult{IsValid: true, ConsensusPercentage: 75, ParticipatingStake: 10, Metadata: map[string]string{"k": "v"}}
	cp := orig.Clone()
	cp.Metadata["k"] = "changed"

	assert.Equal(t, "v", orig.Metadata["k"])
	assert.Equal(t, orig.ParticipatingStake, cp.ParticipatingStake)

	empty := ValidationResult{}.Clone()
	assert.NotNil(t, empty.Metadata)
	assert.Empty(t, empty.Metadata)
}
