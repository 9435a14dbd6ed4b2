package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tourwatch/tourwatch/internal/checker"
	"github.com/tourwatch/tourwatch/internal/config"
	"github.com/tourwatch/tourwatch/internal/extract"
	"github.com/tourwatch/tourwatch/internal/llm"
	"github.com/tourwatch/tourwatch/internal/notify"
	"github.com/tourwatch/tourwatch/internal/pipeline"
	"github.com/tourwatch/tourwatch/internal/scraper"
	"github.com/tourwatch/tourwatch/internal/store"
	"github.com/tourwatch/tourwatch/internal/ticketmaster"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDataDir string
	flagDryRun  bool
	flagTwitter bool
	flagVerbose bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tourwatch",
		Short: "Track touring artists and get notified about new dates",
		Long: `tourwatch tracks touring artists across the Ticketmaster API and
artist tour pages, filters dates to the locations you care about, and sends
what it finds to Telegram (or Twitter).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory for the database (overrides TOURWATCH_DATA_DIR)")
	cmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Print notifications to stdout instead of sending them")
	cmd.PersistentFlags().BoolVar(&flagTwitter, "twitter", false, "Send notifications to Twitter instead of Telegram")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newHoldCmd())
	cmd.AddCommand(newResumeCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newSettingsCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}

// app holds everything a command needs after wiring.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   *store.Store
	checker *checker.Checker
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// newApp loads configuration and wires the full pipeline. A missing .env
// file is fine; the environment alone may carry everything.
func newApp() (*app, error) {
	_ = godotenv.Load()

	cfg := config.Load()
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	log := newLogger(cfg.LogLevel)

	st, err := store.New(cfg.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	agg := newAggregator(cfg, log)

	notifier, err := newNotifier(cfg, log)
	if err != nil {
		st.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		store:   st,
		checker: checker.New(st, agg, notifier, log),
	}, nil
}

// newStoreApp wires only configuration and the store, for entity and
// settings management commands that never touch the network.
func newStoreApp() (*app, error) {
	_ = godotenv.Load()

	cfg := config.Load()
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	log := newLogger(cfg.LogLevel)

	st, err := store.New(cfg.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return &app{cfg: cfg, log: log, store: st}, nil
}

// newAggregator wires both source adapters. A Firecrawl key upgrades page
// fetching from the local goquery path to the rendering service.
func newAggregator(cfg *config.Config, log zerolog.Logger) *pipeline.Aggregator {
	tm := ticketmaster.NewClient(cfg.TicketmasterAPIKey, cfg.APITimeout, log)

	var fetcher extract.Fetcher
	if cfg.FirecrawlAPIKey != "" {
		fetcher = extract.NewFirecrawlFetcher(cfg.FirecrawlAPIKey, cfg.ExtractTimeout, log)
	} else {
		fetcher = extract.NewPageFetcher(cfg.ExtractTimeout, log)
	}
	gemini := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.ExtractTimeout, log)
	sc := scraper.New(fetcher, gemini, log)

	return pipeline.NewAggregator(tm, sc, log)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if flagVerbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func newNotifier(cfg *config.Config, log zerolog.Logger) (notify.Notifier, error) {
	if flagDryRun {
		return notify.NewDryRun(), nil
	}
	if flagTwitter {
		return notify.NewTwitter(notify.TwitterCredentials{
			APIKey:       cfg.TwitterAPIKey,
			APISecret:    cfg.TwitterAPISecret,
			AccessToken:  cfg.TwitterAccessToken,
			AccessSecret: cfg.TwitterAccessSecret,
		}, log)
	}
	return notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, log)
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
