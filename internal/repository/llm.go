package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/gage-technologies/mistral-go"

	"prodtrack/internal/adapters"
)

var errEmptyCompletion = errors.New("llm returned no choices")

type LlmRepo struct {
	adapter *adapters.LlmAdapter
}

func NewLlmRepository(adapter *adapters.LlmAdapter) *LlmRepo {
	return &LlmRepo{adapter: adapter}
}

// SendRequestToLlm returns the first completion choice. The mistral client is
// not context aware, so ctx only guards the call from starting late.
func (l *LlmRepo) SendRequestToLlm(ctx context.Context, request string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !l.adapter.Configured() {
		return "", errors.New("llm api key is not configured")
	}

	params := mistral.DefaultChatRequestParams
	params.MaxTokens = 300
	res, err := l.adapter.Client.Chat(l.adapter.Model, []mistral.ChatMessage{{Content: request, Role: mistral.RoleUser}}, &params)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return strings.TrimSpace(res.Choices[0].Message.Content), nil
}
