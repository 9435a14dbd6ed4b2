// Package notify delivers pre-formatted check results to the operator.
//
// Sinks implement the Notifier interface and never return errors: delivery
// problems are logged and reported as a false return so the pipeline can
// flag them without being interrupted. Message formatting lives here too,
// as pure functions over the pipeline's results.
package notify
