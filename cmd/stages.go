package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/they4kman/hexfield/game"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the stages and which are unlocked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker, closeProgress, err := openProgress(cmd.Context())
		if err != nil {
			return err
		}
		defer closeProgress()

		paths, err := game.ListStages(cfg.StageDir)
		if err != nil {
			return fmt.Errorf("list stages: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, path := range paths {
			number, _ := game.StageNumber(path)

			status := "locked"
			if tracker.IsUnlocked(number) {
				status = "open"
			}

			var label string
			if stage, err := game.LoadStage(path); err != nil {
				label = fmt.Sprintf("%s (unreadable: %v)", path, err)
			} else {
				label = game.StageLabel(stage, path)
			}

			fmt.Fprintf(out, "%3d  %-6s  %s\n", number, status, label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}
