package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View the report of the last check",
		Long:  "View the structured report of the last check stored in the output directory.",
		Args:  usageArgs(cobra.ExactArgs(0)),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws := m.NewWorkspace(m.Path(viper.GetString(outputFlagName)))

			report, err := reportStore.LoadReport(ws)
			if err != nil {
				return fmt.Errorf("load report from %s: %w", ws.OutputDir, err)
			}

			return ui.ShowReport(cmd.Context(), report)
		},
	}
}
