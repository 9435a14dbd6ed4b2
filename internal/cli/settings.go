package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tourwatch/tourwatch/internal/schedule"
	"github.com/tourwatch/tourwatch/internal/store"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the stored settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newStoreApp()
			if err != nil {
				return err
			}
			defer a.close()

			settings, err := a.store.Settings()
			if err != nil {
				return fmt.Errorf("reading settings: %w", err)
			}

			fmt.Printf("Schedule: %s\n", settings.Schedule)
			return nil
		},
	}

	cmd.AddCommand(newScheduleCmd())

	return cmd
}

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule TIMES",
		Short: "Set the daily check times (comma-separated HH:MM)",
		Long: `Sets the daily check schedule used by the watch command, for example:

  tourwatch settings schedule "09:00, 21:00"

Times are validated before saving.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := schedule.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid schedule: %w", err)
			}

			a, err := newStoreApp()
			if err != nil {
				return err
			}
			defer a.close()

			normalized := strings.Join(sched.Times(), ", ")
			if err := a.store.SaveSettings(store.Settings{Schedule: normalized}); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}

			fmt.Printf("Schedule set to %s\n", normalized)
			return nil
		},
	}
}
