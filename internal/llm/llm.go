// Package llm provides the language-model collaborator used by the
// unstructured extraction adapter. The model's output is treated as
// unreliable free text; parsing and validation are the caller's problem.
package llm

import "context"

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
