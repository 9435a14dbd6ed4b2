// Package pipeline merges the output of the event discovery adapters for
// one tracked entity: it runs each enabled source, collects events and
// source failures side by side, and deduplicates events across sources.
package pipeline
