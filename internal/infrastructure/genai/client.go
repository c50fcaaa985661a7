package genai

import "context"

// CompletionClient sends one system + user exchange to a chat model and
// returns the reply text.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}

// Sampling holds the generation parameters shared by all providers.
type Sampling struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
}
