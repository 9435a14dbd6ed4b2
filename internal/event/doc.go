// Package event defines the canonical tour-date record produced by the
// discovery adapters, plus the identity key and deduplication used to merge
// results across sources.
package event
