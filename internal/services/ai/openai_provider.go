// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: p.config.Temperature,
			TopP:        p.config.TopP,
			MaxTokens:   p.config.MaxTokens,
		},
	)

	if err != nil {
		return "", classifyError("completion", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{
			Type:      ErrTypeProvider,
			Operation: "completion",
			Message:   "empty completion response",
		}
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) GetStatus(ctx context.Context) ProviderStatus {
	return ProviderStatus{
		IsHealthy: true,
		Message:   "OpenAI provider healthy",
	}
}

// classifyError maps transport and API failures onto the AIError taxonomy so
// callers can branch on kind instead of string-matching.
func classifyError(operation string, err error) *AIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(operation, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		aiErr := &AIError{
			Operation: operation,
			Code:      apiErr.HTTPStatusCode,
			Message:   apiErr.Message,
			Cause:     err,
		}
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			aiErr.Type = ErrTypeAuth
		case http.StatusTooManyRequests:
			aiErr.Type = ErrTypeRateLimit
		case http.StatusPaymentRequired:
			aiErr.Type = ErrTypeQuota
		default:
			aiErr.Type = ErrTypeProvider
		}
		return aiErr
	}

	return &AIError{
		Type:      ErrTypeNetwork,
		Operation: operation,
		Message:   "request failed",
		Cause:     err,
	}
}
