package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tourwatch/tourwatch/internal/store"
)

func newAddCmd() *cobra.Command {
	var (
		locations string
		urls      string
		category  string
		noAPI     bool
		noScrape  bool
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Start tracking an artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("artist name must not be empty")
			}
			if strings.TrimSpace(locations) == "" {
				return fmt.Errorf("--locations is required (comma-separated cities or 2-letter region codes)")
			}
			if noAPI && (noScrape || strings.TrimSpace(urls) == "") {
				return fmt.Errorf("at least one source must stay enabled")
			}

			a, err := newStoreApp()
			if err != nil {
				return err
			}
			defer a.close()

			entity, err := a.store.AddEntity(store.Entity{
				Name:            name,
				Locations:       locations,
				URLs:            urls,
				UseTicketmaster: !noAPI,
				UseWebScrape:    !noScrape && strings.TrimSpace(urls) != "",
				Category:        category,
			})
			if err != nil {
				return fmt.Errorf("adding %q: %w", name, err)
			}

			fmt.Printf("Tracking %s (%s)\n", entity.Name, entity.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&locations, "locations", "", "Comma-separated cities or 2-letter region codes (required)")
	cmd.Flags().StringVar(&urls, "urls", "", "Comma-separated tour page URLs for web extraction")
	cmd.Flags().StringVar(&category, "category", store.DefaultCategory, "Event category for the structured API")
	cmd.Flags().BoolVar(&noAPI, "no-api", false, "Disable the structured events API for this artist")
	cmd.Flags().BoolVar(&noScrape, "no-scrape", false, "Disable web page extraction for this artist")

	return cmd
}

func newListCmd() *cobra.Command {
	var (
		activeOnly bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked artists",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := OutputFormat(strings.ToLower(format))
			if f != FormatText && f != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
			}

			a, err := newStoreApp()
			if err != nil {
				return err
			}
			defer a.close()

			entities, err := a.store.ListEntities(activeOnly)
			if err != nil {
				return fmt.Errorf("listing artists: %w", err)
			}

			return WriteEntities(os.Stdout, entities, f)
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only show artists not on hold")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

func newHoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hold NAME",
		Short: "Pause checks for an artist",
		Args:  cobra.ExactArgs(1),
		RunE:  setHold(true, "On hold: %s\n"),
	}
}

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume NAME",
		Short: "Resume checks for an artist on hold",
		Args:  cobra.ExactArgs(1),
		RunE:  setHold(false, "Resumed: %s\n"),
	}
}

func setHold(onHold bool, doneFmt string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newStoreApp()
		if err != nil {
			return err
		}
		defer a.close()

		entity, err := a.store.FindEntityByName(args[0])
		if err != nil {
			return err
		}
		if err := a.store.SetOnHold(entity.ID, onHold); err != nil {
			return fmt.Errorf("updating %q: %w", entity.Name, err)
		}

		fmt.Printf(doneFmt, entity.Name)
		return nil
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Stop tracking an artist and delete its record",
		Args:  cobra.ExactArgs(1),
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
			if err := a.store.DeleteEntity(entity.ID); err != nil {
				return fmt.Errorf("removing %q: %w", entity.Name, err)
			}

			fmt.Printf("Removed %s\n", entity.Name)
			return nil
		},
	}
}
