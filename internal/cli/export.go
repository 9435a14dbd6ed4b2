package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tourwatch/tourwatch/internal/calendar"
)

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Export an artist's current tour dates as an .ics calendar",
		Long: `Runs the discovery pipeline for one artist and writes what it finds as
an iCalendar file. Nothing is sent to the notification sink.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newStoreApp()
			if err != nil {
				return err
			}
			defer a.close()

			entity, err := a.store.FindEntityByName(args[0])
			if err != nil {
				return err
			}
			// Asking for one artist by name is an explicit request, so the
			// hold flag does not apply here.
			entity.OnHold = false

			agg := newAggregator(a.cfg, a.log)
			events, failures := agg.Check(cmd.Context(), entity)
			for _, f := range failures {
				fmt.Fprintf(os.Stderr, "warning: %s\n", f)
			}
			if len(events) == 0 {
				return fmt.Errorf("no tour dates found for %s", entity.Name)
			}

			ics := calendar.GenerateICS(events, time.Now())
			if outPath == "" || outPath == "-" {
				fmt.Print(ics)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(ics), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %d dates to %s\n", len(events), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")

	return cmd
}
