package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"windexer-jito/internal/pipeline"
	"windexer-jito/internal/types"
)

// maxReplaySlots bounds a single replay; every slot in the range is held in
// memory before validation starts.
const maxReplaySlots = 1_000_000

// progressObserver advances the bar once per finished validation. logger is
// set once the app logger exists, before any validation runs.
type progressObserver struct {
	bar    *progressbar.ProgressBar
	logger *slog.Logger
}

func (p *progressObserver) ObserveValidation(types.ValidationEvent) {
	if err := p.bar.Add(1); err != nil {
		p.logger.Warn("Failed to update progress bar", "error", err)
	}
}

// replayItems builds one block summary per slot in [start, stop]. The caller
// guarantees start <= stop.
func replayItems(start, stop, transactions uint64, now int64) []types.IndexData {
	items := make([]types.IndexData, 0, stop-start+1)
	for slot := start; ; slot++ {
		parent := slot
		if slot > 0 {
			parent = slot - 1
		}
		items = append(items, types.IndexData{
			Slot:             slot,
			ParentSlot:       parent,
			Timestamp:        now,
			TransactionCount: transactions,
		})
		if slot == stop {
			break
		}
	}
	return items
}

func newReplayCmd() *cobra.Command {
	var (
		start        uint64
		stop         uint64
		transactions uint64
		concurrency  int
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Validate every slot in [start, stop] concurrently",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if stop < start {
				return fmt.Errorf("stop slot %d is before start slot %d", stop, start)
			}
			if stop-start >= maxReplaySlots {
				return fmt.Errorf("range [%d, %d] exceeds %d slots", start, stop, maxReplaySlots)
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			bar := progressbar.NewOptions64(
				int64(stop-start+1),
				progressbar.OptionClearOnFinish(),
				progressbar.OptionSetDescription("Validating slots..."),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "=",
					SaucerHead:    ">",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
			)

			runID := uuid.NewString()
			progress := &progressObserver{bar: bar}
			a, err := newApp(ctx, pipeline.WithObserver(progress))
			if err != nil {
				return err
			}
			logger := a.logger.With("run_id", runID)
			progress.logger = logger

			if !cmd.Flags().Changed("concurrency") {
				concurrency = a.cfg.MaxConcurrency
			}

			items := replayItems(start, stop, transactions, time.Now().Unix())

			logger.Info("Replaying slots", "range", fmt.Sprintf("[%d, %d]", start, stop), "concurrency", concurrency)

			if err := bar.RenderBlank(); err != nil {
				return fmt.Errorf("failed to render progress bar: %w", err)
			}

			outcomes, batchErr := a.pipeline.ValidateBatch(ctx, items, concurrency)

			if err := bar.Finish(); err != nil {
				return fmt.Errorf("failed to finish progress bar: %w", err)
			}

			failures := make(map[string]int)
			invalid := 0
			for _, o := range outcomes {
				switch {
				case o.Err != nil:
					failures[types.KindOf(o.Err).Label()]++
				case !o.Result.IsValid:
					invalid++
				}
			}

			snap := a.pipeline.Metrics()
			logger.Info("Replay finished",
				"attempts", snap.Attempts,
				"successes", snap.Successes,
				"not_reached", invalid,
				"failures", failures,
				"total_rewards", a.pipeline.TotalRewards())

			if batchErr != nil {
				return fmt.Errorf("replay interrupted: %w", batchErr)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&start, "start", 1, "first slot to validate")
	cmd.Flags().Uint64Var(&stop, "stop", 100, "last slot to validate")
	cmd.Flags().Uint64Var(&transactions, "transactions", 1000, "transaction count assigned to every replayed block")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum concurrent validations (defaults to WINDEXER_MAX_CONCURRENCY)")

	return cmd
}
