// Package checker runs batch checks: it walks every active entity, invokes
// the discovery pipeline, routes successes and failures to the notification
// sink, and records when each entity was checked. One entity's problems
// never abort the rest of the batch.
package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourwatch/tourwatch/internal/event"
	"github.com/tourwatch/tourwatch/internal/notify"
	"github.com/tourwatch/tourwatch/internal/pipeline"
	"github.com/tourwatch/tourwatch/internal/store"
)

// EntityStore is the slice of the persistence layer the checker needs.
type EntityStore interface {
	ListEntities(activeOnly bool) ([]store.Entity, error)
	FindEntityByName(name string) (store.Entity, error)
	UpdateLastChecked(id string, checkedAt time.Time) error
}

// Aggregator discovers events for one entity.
type Aggregator interface {
	Check(ctx context.Context, entity store.Entity) ([]event.Event, []pipeline.SourceFailure)
}

// Checker orchestrates one batch run over all active entities.
type Checker struct {
	store      EntityStore
	aggregator Aggregator
	notifier   notify.Notifier
	log        zerolog.Logger
	now        func() time.Time
}

// New creates a Checker.
func New(entityStore EntityStore, aggregator Aggregator, notifier notify.Notifier, log zerolog.Logger) *Checker {
	return &Checker{
		store:      entityStore,
		aggregator: aggregator,
		notifier:   notifier,
		log:        log.With().Str("component", "checker").Logger(),
		now:        time.Now,
	}
}

// Run executes one batch over all entities not on hold. A failure to obtain
// the entity list ends the batch; everything past that point is isolated
// per entity.
func (c *Checker) Run(ctx context.Context) error {
	c.log.Info().Msg("starting check for all entities")

	entities, err := c.store.ListEntities(true)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to list entities")
		c.notifier.Send(notify.FormatBatchError(err.Error()))
		return fmt.Errorf("listing entities: %w", err)
	}

	if len(entities) == 0 {
		c.log.Info().Msg("no active entities to check")
		return nil
	}

	c.log.Info().Int("entities", len(entities)).Msg("checking entities")

	for _, entity := range entities {
		c.checkEntity(ctx, entity)
	}

	c.log.Info().Msg("check for all entities completed")
	return nil
}

// RunOne checks a single entity by name. The on-hold flag is ignored here:
// asking for one entity by name is an explicit request.
func (c *Checker) RunOne(ctx context.Context, name string) error {
	entity, err := c.store.FindEntityByName(name)
	if err != nil {
		return fmt.Errorf("looking up entity %q: %w", name, err)
	}

	c.checkEntity(ctx, entity)
	return nil
}

// checkEntity processes one entity end to end. A panic anywhere inside is
// recovered here, reported by entity name, and the batch moves on.
func (c *Checker) checkEntity(ctx context.Context, entity store.Entity) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Str("entity", entity.Name).Interface("panic", r).Msg("unexpected error checking entity")
			c.notifier.Send(notify.FormatEntityError(entity.Name, fmt.Sprintf("%v", r)))
		}
	}()

	events, failures := c.aggregator.Check(ctx, entity)

	// Failures and successes for the same entity are independent
	// notifications; report problems first.
	if len(failures) > 0 {
		c.log.Warn().Str("entity", entity.Name).Int("failures", len(failures)).Msg("source problems during check")
		if !c.notifier.Send(notify.FormatFailures(entity.Name, failures)) {
			c.log.Error().Str("entity", entity.Name).Msg("failed to send failure notification")
		}
	}

	if len(events) > 0 {
		c.log.Info().Str("entity", entity.Name).Int("events", len(events)).Msg("sending success notification")
		if !c.notifier.Send(notify.FormatSuccess(entity.Name, events)) {
			c.log.Error().Str("entity", entity.Name).Msg("failed to send success notification")
		}
	} else {
		c.log.Info().Str("entity", entity.Name).Msg("no new tour dates found")
	}

	// The timestamp is written even when nothing was found; a persistence
	// failure is logged and does not affect the batch.
	if err := c.store.UpdateLastChecked(entity.ID, c.now()); err != nil {
		c.log.Error().Err(err).Str("entity", entity.Name).Msg("failed to update last_checked")
	}
}
