package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tourwatch/tourwatch/internal/event"
	"github.com/tourwatch/tourwatch/internal/store"
)

// StructuredSearcher is the structured events API adapter: one keyed lookup
// per location, returning matched events and per-location failures.
type StructuredSearcher interface {
	Search(ctx context.Context, artistName string, locations []string, category string) ([]event.Event, []SourceFailure)
}

// PageExtractor is the unstructured extraction adapter: one URL either
// yields events or a single failure.
type PageExtractor interface {
	Extract(ctx context.Context, pageURL, artistName string, locations []string) ([]event.Event, *SourceFailure)
}

// Aggregator runs the enabled source adapters for one entity and merges
// their output. Sources are additive: when both are configured, both run.
type Aggregator struct {
	searcher  StructuredSearcher
	extractor PageExtractor
	log       zerolog.Logger
}

// NewAggregator creates an Aggregator. Either adapter may be nil when the
// corresponding source is unavailable in this process.
func NewAggregator(searcher StructuredSearcher, extractor PageExtractor, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		searcher:  searcher,
		extractor: extractor,
		log:       log.With().Str("component", "aggregator").Logger(),
	}
}

// Check discovers events for one entity across its configured sources and
// returns the deduplicated events plus every source failure hit along the
// way. On-hold entities short-circuit without touching any adapter.
func (a *Aggregator) Check(ctx context.Context, entity store.Entity) ([]event.Event, []SourceFailure) {
	events := []event.Event{}
	failures := []SourceFailure{}

	if entity.OnHold {
		a.log.Info().Str("entity", entity.Name).Msg("skipping entity on hold")
		return events, failures
	}

	locations := event.SplitList(entity.Locations)

	if entity.UseTicketmaster && a.searcher != nil {
		a.log.Info().Str("entity", entity.Name).Msg("checking structured API")
		found, fails := a.searcher.Search(ctx, entity.Name, locations, entity.Category)
		events = append(events, found...)
		failures = append(failures, fails...)
	}

	if entity.UseWebScrape && a.extractor != nil {
		for _, pageURL := range event.SplitList(entity.URLs) {
			found, failure := a.extractor.Extract(ctx, pageURL, entity.Name, locations)
			if failure != nil {
				failures = append(failures, *failure)
				continue
			}
			events = append(events, found...)
		}
	}

	unique := event.Dedup(events)

	a.log.Info().
		Str("entity", entity.Name).
		Int("events", len(unique)).
		Int("failures", len(failures)).
		Msg("check complete")

	return unique, failures
}
