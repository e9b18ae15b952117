// internal/types/errors.go - Integration error taxonomy
package types

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindConfig ErrorKind = iota + 1
	KindConsensus
	KindRestaking
	KindReward
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "Configuration"
	case KindConsensus:
		return "TipRouter consensus"
	case KindRestaking:
		return "Restaking validation"
	case KindReward:
		return "Reward processing"
	case KindNetwork:
		return "Network"
	default:
		return "Unknown"
	}
}

// IntegrationError carries the pipeline stage that failed.
type IntegrationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *IntegrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// Is matches any IntegrationError of the same kind, so the Err* sentinels
// work with errors.Is.
func (e *IntegrationError) Is(target error) bool {
	var t *IntegrationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrConfig    = &IntegrationError{Kind: KindConfig}
	ErrConsensus = &IntegrationError{Kind: KindConsensus}
	ErrRestaking = &IntegrationError{Kind: KindRestaking}
	ErrReward    = &IntegrationError{Kind: KindReward}
	ErrNetwork   = &IntegrationError{Kind: KindNetwork}
)

func NewConfigError(format string, args ...any) error {
	return &IntegrationError{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

func NewConsensusError(err error, format string, args ...any) error {
	return &IntegrationError{Kind: KindConsensus, Message: fmt.Sprintf(format, args...), Err: err}
}

func NewRestakingError(format string, args ...any) error {
	return &IntegrationError{Kind: KindRestaking, Message: fmt.Sprintf(format, args...)}
}

func NewRewardError(format string, args ...any) error {
	return &IntegrationError{Kind: KindReward, Message: fmt.Sprintf(format, args...)}
}

func NewNetworkError(err error, format string, args ...any) error {
	return &IntegrationError{Kind: KindNetwork, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first IntegrationError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var ie *IntegrationError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return 0
}

// Label is the short lowercase name used in metric labels and alert keys.
func (k ErrorKind) Label() string {
	switch k {
	case KindConfig:
		return "config"
	case KindConsensus:
		return "consensus"
	case KindRestaking:
		return "restaking"
	case KindReward:
		return "reward"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}
