package groq

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

func TestGroqClient_SendPrompt(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "groq response"}},
			},
		})
	}))
	defer server.Close()
	t.Setenv("GROQ_API_URL", server.URL)

	client := NewGroqClient("gsk-test", "", zap.NewNop(), 1, time.Millisecond)

	response, err := client.SendPrompt(context.Background(), []models.Message{
		{Role: "user", Content: "hi"},
	}, models.DefaultProviderOptions())

	require.NoError(t, err)
	assert.Equal(t, "groq response", response)
	assert.Equal(t, "Bearer gsk-test", gotAuth)
	assert.Equal(t, "llama-3.1-8b-instant", client.GetModelName())
}

func TestGroqClient_SendPrompt_RateLimitRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": "rate limit"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "after retry"}},
			},
		})
	}))
	defer server.Close()
	t.Setenv("GROQ_API_URL", server.URL)

	client := NewGroqClient("gsk-test", "llama-3.1-8b-instant", zap.NewNop(), 4, time.Millisecond)

	response, err := client.SendPrompt(context.Background(), []models.Message{
		{Role: "user", Content: "hi"},
	}, models.DefaultProviderOptions())

	require.NoError(t, err)
	assert.Equal(t, "after retry", response)
	assert.Equal(t, 2, attempts)
}
