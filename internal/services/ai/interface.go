// File: internal/services/ai/interface.go
package ai

import "context"

// ProviderStatus represents AI provider health
type ProviderStatus struct {
	IsHealthy bool
	Message   string
}

// CompletionProvider turns a prompt into generated reply text.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	GetStatus(ctx context.Context) ProviderStatus
}
