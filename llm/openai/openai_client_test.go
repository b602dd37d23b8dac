package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/manu-joy/rosa-agent/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenAIClient_SendPrompt(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "You have 2 clusters."}},
			},
		})
	}))
	defer server.Close()
	t.Setenv("OPENAI_API_URL", server.URL)

	client := NewOpenAIClient("sk-test", "gpt-4", zap.NewNop(), 1, time.Millisecond)

	response, err := client.SendPrompt(context.Background(), []models.Message{
		{Role: "system", Content: "You are a ROSA expert."},
		{Role: "user", Content: "How many clusters do I have?"},
	}, models.DefaultProviderOptions())

	require.NoError(t, err)
	assert.Equal(t, "You have 2 clusters.", response)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4", gotPayload["model"])
	assert.Equal(t, 0.7, gotPayload["temperature"])
	assert.Equal(t, float64(2000), gotPayload["max_tokens"])

	messages := gotPayload["messages"].([]interface{})
	require.Len(t, messages, 2)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
}

func TestOpenAIClient_SendPrompt_RateLimitRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limit exceeded"}`))
	}))
	defer server.Close()
	t.Setenv("OPENAI_API_URL", server.URL)

	client := NewOpenAIClient("sk-test", "gpt-4", zap.NewNop(), 4, time.Millisecond)

	_, err := client.SendPrompt(context.Background(), []models.Message{
		{Role: "user", Content: "hi"},
	}, models.DefaultProviderOptions())

	// 4 tentativas no total; esgotadas, o erro original propaga com o
	// prefixo do provedor
	require.Error(t, err)
	assert.Equal(t, 4, attempts)
	assert.Contains(t, err.Error(), "OpenAI API error")
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAIClient_SendPrompt_ServerErrorNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	defer server.Close()
	t.Setenv("OPENAI_API_URL", server.URL)

	client := NewOpenAIClient("sk-test", "gpt-4", zap.NewNop(), 4, time.Millisecond)

	_, err := client.SendPrompt(context.Background(), []models.Message{
		{Role: "user", Content: "hi"},
	}, models.DefaultProviderOptions())

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestOpenAIClient_SendPrompt_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()
	t.Setenv("OPENAI_API_URL", server.URL)

	client := NewOpenAIClient("sk-test", "gpt-4", zap.NewNop(), 1, time.Millisecond)

	_, err := client.SendPrompt(context.Background(), []models.Message{
		{Role: "user", Content: "hi"},
	}, models.DefaultProviderOptions())

	assert.Error(t, err)
}

func TestOpenAIClient_ValidateConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "ok"}},
			},
		})
	}))
	defer server.Close()
	t.Setenv("OPENAI_API_URL", server.URL)

	client := NewOpenAIClient("sk-test", "", zap.NewNop(), 1, time.Millisecond)
	assert.True(t, client.ValidateConfig(context.Background()))
	assert.Equal(t, "gpt-4", client.GetModelName())
}

func TestOpenAIClient_ValidateConfig_BadKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()
	t.Setenv("OPENAI_API_URL", server.URL)

	client := NewOpenAIClient("sk-bad", "gpt-4", zap.NewNop(), 1, time.Millisecond)
	assert.False(t, client.ValidateConfig(context.Background()))
}
