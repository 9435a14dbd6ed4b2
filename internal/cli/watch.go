package cli

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tourwatch/tourwatch/internal/schedule"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run checks on the stored schedule until interrupted",
		Long: `Reads the schedule from settings (comma-separated HH:MM times), sleeps
until the next slot, runs a full check, and repeats. The schedule is
re-read before every run so settings changes take effect without a
restart. Stops cleanly on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watch(ctx, a)
		},
	}
}

func watch(ctx context.Context, a *app) error {
	for {
		settings, err := a.store.Settings()
		if err != nil {
			return err
		}
		sched, err := schedule.Parse(settings.Schedule)
		if err != nil {
			return err
		}

		next := sched.Next(time.Now())
		a.log.Info().
			Time("next_run", next).
			Str("schedule", strings.Join(sched.Times(), ", ")).
			Msg("waiting for next scheduled check")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			a.log.Info().Msg("shutting down")
			return nil
		case <-timer.C:
		}

		if err := a.checker.Run(ctx); err != nil {
			// The batch error has already been reported through the
			// notifier; keep the loop alive for the next slot.
			a.log.Error().Err(err).Msg("scheduled check failed")
		}
	}
}
