// Package store persists tracked entities and the process settings record in
// a local sqlite database. The check pipeline only reads entities and writes
// their last_checked timestamp; all other writes come from the CLI.
package store
