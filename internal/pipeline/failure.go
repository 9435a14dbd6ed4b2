package pipeline

import "fmt"

// SourceFailure records that one source (an adapter or a specific URL) could
// not produce data during a check. Failures are values, not errors: they are
// collected, reported to the operator, and discarded with the check.
type SourceFailure struct {
	Source string // adapter name or URL
	Reason string // short human-readable text, never a raw stack trace
}

func (f SourceFailure) String() string {
	return fmt.Sprintf("%s: %s", f.Source, f.Reason)
}
