package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var entityName string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one check over all tracked artists",
		Long: `Runs the full discovery pipeline once: every artist not on hold is
checked against its enabled sources and any findings are sent to the
configured notification sink.

With --artist only that one artist is checked, even if it is on hold.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if entityName != "" {
				return a.checker.RunOne(cmd.Context(), entityName)
			}
			return a.checker.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&entityName, "artist", "", "Check a single artist by name")

	return cmd
}
