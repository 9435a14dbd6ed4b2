// Package cli implements the command-line interface for tourwatch.
//
// The cli package provides the Cobra-based CLI: running checks (once or on
// a schedule), managing tracked artists, and editing settings. It is the
// only package that reads the environment; everything below it receives
// explicit configuration.
package cli
