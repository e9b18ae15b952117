// internal/pipeline/batch.go - Concurrent validation of many slots
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"windexer-jito/internal/types"
)

// Outcome pairs a batch input with its validation result or error.
type Outcome struct {
	Data   types.IndexData
	Result types.ValidationResult
	Err    error
}

// ValidateBatch validates items with at most concurrency calls in flight.
// Validation errors are reported per item and do not stop the batch. Items not
// started before ctx is cancelled carry ctx's error and leave no trace in the
// managers; the cancellation error is also returned.
func (p *Pipeline) ValidateBatch(ctx context.Context, items []types.IndexData, concurrency int) ([]Outcome, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
	}

	outcomes := make([]Outcome, len(items))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i := range items {
		i := i
		outcomes[i].Data = items[i]

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Result, outcomes[i].Err = p.Validate(items[i])
			return nil
		})
	}

	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		p.logger.Info("Batch validation cancelled", "items", len(items), "error", err)
		return outcomes, err
	}
	return outcomes, nil
}
