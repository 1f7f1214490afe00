package main

import (
	"github.com/spf13/cobra"

	"github.com/vsariola/scriptline/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var statePath string
	var templatePath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a timeline through a text template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadState(statePath)
			if err != nil {
				return err
			}
			var r *report.Renderer
			if templatePath != "" {
				r, err = report.NewFromFile(templatePath)
			} else {
				r, err = report.New()
			}
			if err != nil {
				return err
			}
			ctx.logger.Debug("rendering report", "template", r.Template.Name())
			return r.Render(cmd.OutOrStdout(), t)
		},
	}

	cmd.Flags().StringVarP(&statePath, "state", "s", "", "Timeline state file to report on")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template file to use instead of the built-in report")
	return cmd
}
