// File: internal/services/completion_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shayanh/go-chatbox/internal/services/ai"
)

// promptTemplate is the fixed instructional preamble wrapped around every
// user message before dispatch to the provider.
const promptTemplate = `You are a friendly, polite, and highly intelligent AI assistant.
Keep responses short, conversational, and well-formatted.
Use proper spacing, line breaks, and formatting where appropriate.
Make your responses engaging and helpful.

User: %s`

// CompletionService turns a user message into generated reply text. Failures
// come back as typed ai.AIError values; the caller decides how to display
// them.
type CompletionService struct {
	provider ai.CompletionProvider
	timeout  time.Duration
	logger   Logger
}

func NewCompletionService(provider ai.CompletionProvider, timeout time.Duration, logger Logger) (*CompletionService, error) {
	if provider == nil {
		return nil, ai.NewConfigError("completion provider is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &CompletionService{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

// Complete wraps the user message in the persona preamble and dispatches it
// under a bounded timeout.
func (s *CompletionService) Complete(ctx context.Context, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.provider.Complete(ctx, fmt.Sprintf(promptTemplate, userMessage))
	if err != nil {
		s.logger.Error("completion failed", "error", err, "duration", time.Since(start))
		return "", err
	}

	s.logger.Debug("completion succeeded", "duration", time.Since(start))
	return reply, nil
}
