package domain

import "context"

// TextCompleter is the port for the upstream text-completion service. One
// blocking request/response round-trip, no streaming. The system's job is to
// construct the prompt, bound the vocabulary, and recover structure from the
// free-text reply; the model itself is a black box behind this interface.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
