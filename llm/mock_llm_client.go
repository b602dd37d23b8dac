package llm

import (
	"context"

	"github.com/manu-joy/rosa-agent/models"
)

// MockLLMClient é um mock que implementa a interface LLMClient
type MockLLMClient struct {
	Response string
	Err      error
	Valid    bool

	// LastMessages guarda o último transcript recebido por SendPrompt.
	LastMessages []models.Message
}

func (m *MockLLMClient) GetModelName() string {
	return "MockModel"
}

func (m *MockLLMClient) SendPrompt(ctx context.Context, messages []models.Message, opts models.ProviderOptions) (string, error) {
	m.LastMessages = messages
	return m.Response, m.Err
}

func (m *MockLLMClient) ValidateConfig(ctx context.Context) bool {
	return m.Valid
}
