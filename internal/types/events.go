// internal/types/events.go - Validation outcome events for observers
package types

// ValidationEvent describes one finished pipeline run. Err is set when a stage
// failed, in which case Result is the zero value.
type ValidationEvent struct {
	Data         IndexData
	Result       ValidationResult
	Err          error
	Rewarded     bool
	Reward       uint64
	TotalRewards uint64
}

// Outcome classifies the event as "valid", "invalid" or "error".
func (e ValidationEvent) Outcome() string {
	switch {
	case e.Err != nil:
		return "error"
	case e.Result.IsValid:
		return "valid"
	default:
		return "invalid"
	}
}
