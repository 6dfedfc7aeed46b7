package ai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyErrorTimeout(t *testing.T) {
	aiErr := classifyError("completion", context.DeadlineExceeded)
	assert.Equal(t, ErrTypeTimeout, aiErr.Type)
}

func TestClassifyErrorAPIStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   ErrorType
	}{
		{"unauthorized", 401, ErrTypeAuth},
		{"forbidden", 403, ErrTypeAuth},
		{"rate limited", 429, ErrTypeRateLimit},
		{"quota exhausted", 402, ErrTypeQuota},
		{"server error", 500, ErrTypeProvider},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := &openai.APIError{HTTPStatusCode: tc.status, Message: "nope"}
			aiErr := classifyError("completion", err)
			assert.Equal(t, tc.want, aiErr.Type)
			assert.Equal(t, tc.status, aiErr.Code)
		})
	}
}

func TestClassifyErrorNetwork(t *testing.T) {
	aiErr := classifyError("completion", errors.New("dial tcp: connection refused"))
	assert.Equal(t, ErrTypeNetwork, aiErr.Type)
}

func TestAIErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	aiErr := NewProviderError("completion", "failed", cause)
	require.ErrorIs(t, aiErr, cause)
	assert.Contains(t, aiErr.Error(), "root cause")
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "missing API key must fail validation")

	cfg.APIKey = "test-key"
	assert.NoError(t, cfg.Validate())
}
