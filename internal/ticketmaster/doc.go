// Package ticketmaster implements the structured events API adapter on top
// of the Ticketmaster Discovery API. Queries are issued once per distinct
// location; a failed location is reported and skipped rather than aborting
// the search.
package ticketmaster
