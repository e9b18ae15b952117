package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "windexer-jito",
		Short: "Validate block index data against TipRouter consensus, restaking and rewards",
		Long: `windexer-jito runs block summaries through consensus determination,
stake verification and reward distribution.

Configuration is read from WINDEXER_* environment variables, for example
WINDEXER_TIPROUTER_CONSENSUS_THRESHOLD or WINDEXER_RESTAKING_MIN_STAKE.`,
		SilenceUsage: true,
	}

	root.AddCommand(newValidateCmd(), newReplayCmd())
	return root
}
