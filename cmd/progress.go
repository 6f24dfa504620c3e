package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetProgress bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset unlock progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tracker, closeProgress, err := openProgress(ctx)
		if err != nil {
			return err
		}
		defer closeProgress()

		if resetProgress {
			if err := tracker.Reset(ctx); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Stages unlocked: %d of %d\n",
			tracker.Progress().MaxUnlockedStage, cfg.TotalStages)
		return nil
	},
}

func init() {
	progressCmd.Flags().BoolVar(&resetProgress, "reset", false, "Lock every stage but the first")
	rootCmd.AddCommand(progressCmd)
}
