package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vsariola/scriptline/editor"
	"github.com/vsariola/scriptline/finalize"
)

func newFinalizeCommand(ctx *commandContext) *cobra.Command {
	var input string
	var scriptPath string
	var statePath string
	var output string

	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Run the simulated generation steps and add the generated clips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			initial, err := loadState(statePath)
			if err != nil {
				return err
			}
			store := editor.NewStore(ctx.newReducer(), initial)

			f := finalize.New(ctx.logger)
			f.StepDelay = ctx.config.StepDelay()
			session := finalize.NewSession(store, f)
			session.UseScript = ctx.config.Finalize.UseScript
			session.WordsPerSecond = ctx.config.Finalize.WordsPerSecond

			if scriptPath != "" {
				text, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				if err := session.BeginEdit(); err != nil {
					return err
				}
				if err := session.SetScript(string(text)); err != nil {
					return err
				}
				session.SaveEdit()
				session.UseScript = true
			}
			if input != "" {
				session.Upload(input)
			}

			progressOut := cmd.ErrOrStderr()
			err = session.Finalize(cmd.Context(), func(step int, message string) {
				fmt.Fprintf(progressOut, "[%d/%d] %s\n", step+1, len(f.Steps), message)
			})
			if err != nil {
				return fmt.Errorf("finalize: %w", err)
			}
			return writeTimeline(cmd.OutOrStdout(), store.State(), output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Name of the uploaded file; finalizing is refused without one")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Screenplay to lay out instead of the placeholder clips")
	cmd.Flags().StringVarP(&statePath, "state", "s", "", "Timeline state file to start from (default: empty timeline)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or yaml")
	return cmd
}
