package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"windexer-jito/internal/types"
)

func newValidateCmd() *cobra.Command {
	var (
		slot         uint64
		parentSlot   uint64
		transactions uint64
		blockHash    string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a single block summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}

			data := types.IndexData{
				Slot:             slot,
				ParentSlot:       parentSlot,
				Timestamp:        time.Now().Unix(),
				TransactionCount: transactions,
			}
			if !cmd.Flags().Changed("parent-slot") && slot > 0 {
				data.ParentSlot = slot - 1
			}
			if blockHash != "" {
				hash, err := parseBlockHash(blockHash)
				if err != nil {
					return err
				}
				data.BlockHash = hash
			}

			a.logger.Info("Submitting data for validation", "data", data.String())

			result, err := a.pipeline.Validate(data)
			if err != nil {
				a.logger.Error("Validation failed", "error", err)
				return err
			}

			if result.IsValid {
				a.logger.Info("Validation successful",
					"consensus", fmt.Sprintf("%.2f%%", result.ConsensusPercentage),
					"participating_stake", result.ParticipatingStake,
					"total_rewards", a.pipeline.TotalRewards())
			} else {
				a.logger.Warn("Consensus not reached",
					"consensus", fmt.Sprintf("%.2f%%", result.ConsensusPercentage),
					"threshold", a.cfg.Integration.Consensus.ConsensusThreshold)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&slot, "slot", 100, "slot to validate")
	cmd.Flags().Uint64Var(&parentSlot, "parent-slot", 0, "parent slot (defaults to slot-1)")
	cmd.Flags().Uint64Var(&transactions, "transactions", 1000, "transaction count of the block")
	cmd.Flags().StringVar(&blockHash, "block-hash", "", "hex-encoded 32-byte block hash")

	return cmd
}

func parseBlockHash(s string) ([32]byte, error) {
	var hash [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return hash, fmt.Errorf("invalid block hash: %w", err)
	}
	if len(raw) != len(hash) {
		return hash, fmt.Errorf("invalid block hash: want %d bytes, got %d", len(hash), len(raw))
	}
	copy(hash[:], raw)
	return hash, nil
}
