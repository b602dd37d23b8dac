/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/manu-joy/rosa-agent/config"
	"github.com/manu-joy/rosa-agent/models"
	"github.com/manu-joy/rosa-agent/utils"
	"go.uber.org/zap"
)

// GroqClient implementa o cliente para a API da Groq, que expõe o formato
// chat/completions compatível com OpenAI.
type GroqClient struct {
	apiKey      string
	model       string
	logger      *zap.Logger
	client      *http.Client
	maxAttempts int
	backoff     time.Duration
}

// NewGroqClient cria uma nova instância de GroqClient.
func NewGroqClient(apiKey, model string, logger *zap.Logger, maxAttempts int, backoff time.Duration) *GroqClient {
	if model == "" {
		model = config.DefaultGroqModel
	}
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxAttempts
	}
	if backoff <= 0 {
		backoff = config.DefaultInitialBackoff
	}

	return &GroqClient{
		apiKey:      apiKey,
		model:       model,
		logger:      logger,
		client:      utils.NewHTTPClient(logger, config.GenerateTimeout),
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// GetModelName retorna o nome do modelo de linguagem utilizado pelo cliente.
func (c *GroqClient) GetModelName() string {
	return c.model
}

// SendPrompt envia o transcript para a Groq. Rate limit (429) é retentado
// com backoff exponencial; o Groq aplica rate limit agressivo no tier
// gratuito, então esse caminho é exercitado com frequência.
func (c *GroqClient) SendPrompt(ctx context.Context, messages []models.Message, opts models.ProviderOptions) (string, error) {
	opts = opts.Normalize()

	jsonValue, err := json.Marshal(c.buildPayload(messages, opts))
	if err != nil {
		c.logger.Error("Erro ao marshalizar o payload", zap.Error(err))
		return "", fmt.Errorf("Groq API error: erro ao preparar a requisição: %w", err)
	}

	response, err := utils.Retry(ctx, c.logger, c.maxAttempts, c.backoff, func(ctx context.Context) (string, error) {
		resp, err := c.sendRequest(ctx, jsonValue)
		if err != nil {
			return "", err
		}
		return c.processResponse(resp)
	})
	if err != nil {
		return "", fmt.Errorf("Groq API error: %w", err)
	}
	return response, nil
}

// ValidateConfig faz uma requisição mínima para confirmar as credenciais.
func (c *GroqClient) ValidateConfig(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, config.ValidateTimeout)
	defer cancel()

	payload := c.buildPayload(
		[]models.Message{{Role: "user", Content: "test"}},
		models.ProviderOptions{Temperature: config.DefaultTemperature, MaxTokens: config.ValidateMaxTokens})

	jsonValue, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	resp, err := c.sendRequest(ctx, jsonValue)
	if err != nil {
		c.logger.Debug("Validação de configuração Groq falhou", zap.Error(err))
		return false
	}
	_, err = c.processResponse(resp)
	return err == nil
}

func (c *GroqClient) buildPayload(history []models.Message, opts models.ProviderOptions) map[string]interface{} {
	messages := make([]map[string]string, 0, len(history))
	for _, msg := range history {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		switch role {
		case "system", "user", "assistant":
		default:
			role = "user"
		}
		messages = append(messages, map[string]string{
			"role":    role,
			"content": msg.Content,
		})
	}

	return map[string]interface{}{
		"model":       c.model,
		"messages":    messages,
		"temperature": opts.Temperature,
		"max_tokens":  opts.MaxTokens,
	}
}

func (c *GroqClient) sendRequest(ctx context.Context, jsonValue []byte) (*http.Response, error) {
	apiURL := utils.GetEnvOrDefault("GROQ_API_URL", config.GroqAPIURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, utils.NewJSONReader(jsonValue))
	if err != nil {
		c.logger.Error("Erro ao criar a requisição", zap.Error(err))
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.client.Do(req)
}

func (c *GroqClient) processResponse(resp *http.Response) (string, error) {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Erro ao ler a resposta da Groq", zap.Error(err))
		return "", fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &utils.APIError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		c.logger.Error("Erro ao decodificar a resposta da Groq", zap.Error(err))
		return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if len(result.Choices) == 0 {
		c.logger.Error("Nenhuma resposta recebida da Groq")
		return "", fmt.Errorf("nenhuma resposta recebida")
	}

	return result.Choices[0].Message.Content, nil
}
