package adapters

import (
	"github.com/gage-technologies/mistral-go"
)

type LlmAdapter struct {
	Client *mistral.MistralClient
	apiKey string
	Model  string
}

func NewLlmAdapter(apiKey string, model string) *LlmAdapter {
	adapter := &LlmAdapter{apiKey: apiKey, Model: model}
	if adapter.Model == "" {
		adapter.Model = "mistral-large-latest"
	}
	adapter.Client = mistral.NewMistralClientDefault(apiKey)
	return adapter
}

func (a *LlmAdapter) Configured() bool {
	return a.apiKey != ""
}
