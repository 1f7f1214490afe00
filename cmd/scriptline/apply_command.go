package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vsariola/scriptline"
	"github.com/vsariola/scriptline/editor"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var statePath string
	var output string

	cmd := &cobra.Command{
		Use:   "apply <actions.yml>",
		Short: "Apply a list of actions to a timeline and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read actions: %w", err)
			}
			actions, err := editor.DecodeActions(b)
			if err != nil {
				return err
			}
			initial, err := loadState(statePath)
			if err != nil {
				return err
			}
			store := editor.NewStore(ctx.newReducer(), initial)
			unsubscribe := store.Subscribe(func(prev, next *scriptline.Timeline) {
				if prev != next {
					ctx.logger.Debug("timeline changed", "clips", len(next.Clips), "tracks", len(next.Tracks))
				}
			})
			defer unsubscribe()
			for i, a := range actions {
				if err := store.Dispatch(a); err != nil {
					return fmt.Errorf("action %d (%s): %w", i, a.Kind(), err)
				}
			}
			ctx.logger.Info("actions applied", "count", len(actions))
			return writeTimeline(cmd.OutOrStdout(), store.State(), output)
		},
	}

	cmd.Flags().StringVarP(&statePath, "state", "s", "", "Timeline state file to start from (default: empty timeline)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or yaml")
	return cmd
}
