package llm

import (
	"errors"
	"testing"

	"github.com/manu-joy/rosa-agent/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_BuildClient_UnknownProvider(t *testing.T) {
	m := NewManager(zap.NewNop())

	_, err := m.BuildClient(settings.Document{Provider: "bedrock"})

	require.Error(t, err)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Message, "Unknown provider type: bedrock")
}

func TestManager_BuildClient_MissingCredentials(t *testing.T) {
	m := NewManager(zap.NewNop())

	tests := []struct {
		name string
		doc  settings.Document
	}{
		{"openai sem api_key", settings.Document{Provider: "openai"}},
		{"groq sem api_key", settings.Document{Provider: "groq"}},
		{"anthropic sem api_key", settings.Document{Provider: "anthropic"}},
		{"local sem endpoint", settings.Document{Provider: "local"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.BuildClient(tt.doc)
			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestManager_BuildClient_KnownProviders(t *testing.T) {
	m := NewManager(zap.NewNop())

	tests := []struct {
		name  string
		doc   settings.Document
		model string
	}{
		{"openai", settings.Document{Provider: "openai", Config: settings.ProviderConfig{APIKey: "sk-test", Model: "gpt-4"}}, "gpt-4"},
		{"groq", settings.Document{Provider: "groq", Config: settings.ProviderConfig{APIKey: "gsk-test", Model: "llama-3.1-8b-instant"}}, "llama-3.1-8b-instant"},
		{"anthropic", settings.Document{Provider: "anthropic", Config: settings.ProviderConfig{APIKey: "sk-ant", Model: "claude-3-sonnet-20240229"}}, "claude-3-sonnet-20240229"},
		{"local", settings.Document{Provider: "local", Config: settings.ProviderConfig{EndpointURL: "http://localhost:11434", Model: "llama2"}}, "llama2"},
		{"kind em maiusculas", settings.Document{Provider: "OpenAI", Config: settings.ProviderConfig{APIKey: "sk-test", Model: "gpt-4"}}, "gpt-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := m.BuildClient(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.model, client.GetModelName())
		})
	}
}

func TestManager_ConfigureAndCurrent(t *testing.T) {
	m := NewManager(zap.NewNop())

	_, _, ok := m.Current()
	assert.False(t, ok)

	err := m.Configure(settings.Document{
		Provider: "openai",
		Config:   settings.ProviderConfig{APIKey: "sk-test", Model: "gpt-4"},
	})
	require.NoError(t, err)

	client, kind, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "openai", kind)
	assert.Equal(t, "gpt-4", client.GetModelName())
}

func TestManager_Configure_KeepsPreviousOnError(t *testing.T) {
	m := NewManager(zap.NewNop())
	require.NoError(t, m.Configure(settings.Document{
		Provider: "openai",
		Config:   settings.ProviderConfig{APIKey: "sk-test", Model: "gpt-4"},
	}))

	err := m.Configure(settings.Document{Provider: "unknown"})
	require.Error(t, err)

	_, kind, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "openai", kind)
}

func TestManager_Swap(t *testing.T) {
	m := NewManager(zap.NewNop())

	mock := &MockLLMClient{Response: "hi"}
	m.Swap("mock", mock)

	client, kind, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "mock", kind)
	assert.Same(t, mock, client)
}
