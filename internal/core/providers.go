package core

import "context"

// CompletionClient is the boundary to the external text-generation service:
// one prompt in, one generated text out. No retries, no streaming.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
