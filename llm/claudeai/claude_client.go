/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package claudeai

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

// ClaudeClient é uma estrutura que contém o cliente da Anthropic com suas configurações
type ClaudeClient struct {
	apiKey      string
	model       string
	logger      *zap.Logger
	client      *http.Client
	maxAttempts int
	backoff     time.Duration
}

// NewClaudeClient cria um novo cliente da Anthropic com configurações personalizáveis
func NewClaudeClient(apiKey, model string, logger *zap.Logger, maxAttempts int, backoff time.Duration) *ClaudeClient {
	if model == "" {
		model = config.DefaultClaudeAIModel
	}
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxAttempts
	}
	if backoff <= 0 {
		backoff = config.DefaultInitialBackoff
	}

	return &ClaudeClient{
		apiKey:      apiKey,
		model:       model,
		logger:      logger,
		client:      utils.NewHTTPClient(logger, config.GenerateTimeout),
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// GetModelName retorna o nome do modelo de linguagem utilizado pelo cliente.
func (c *ClaudeClient) GetModelName() string {
	return c.model
}

// SendPrompt envia o transcript para a API de messages da Anthropic.
// A API não aceita mensagens com papel "system" no array: elas são extraídas
// para o campo "system" de nível superior.
func (c *ClaudeClient) SendPrompt(ctx context.Context, messages []models.Message, opts models.ProviderOptions) (string, error) {
	opts = opts.Normalize()

	jsonValue, err := json.Marshal(c.buildPayload(messages, opts))
	if err != nil {
		c.logger.Error("Erro ao marshalizar o payload", zap.Error(err))
		return "", fmt.Errorf("Anthropic API error: erro ao preparar a requisição: %w", err)
	}

	response, err := utils.Retry(ctx, c.logger, c.maxAttempts, c.backoff, func(ctx context.Context) (string, error) {
		resp, err := c.sendRequest(ctx, jsonValue)
		if err != nil {
			return "", err
		}
		return c.processResponse(resp)
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}
	return response, nil
}

// ValidateConfig faz uma requisição mínima para confirmar as credenciais.
func (c *ClaudeClient) ValidateConfig(ctx context.Context) bool {
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
		c.logger.Debug("Validação de configuração Anthropic falhou", zap.Error(err))
		return false
	}
	_, err = c.processResponse(resp)
	return err == nil
}

// buildPayload separa as mensagens de sistema do restante do transcript.
// Múltiplas mensagens de sistema são concatenadas no campo "system".
func (c *ClaudeClient) buildPayload(history []models.Message, opts models.ProviderOptions) map[string]interface{} {
	var systemParts []string
	messages := make([]map[string]string, 0, len(history))

	for _, msg := range history {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		if role == "system" {
			systemParts = append(systemParts, msg.Content)
			continue
		}
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, map[string]string{
			"role":    role,
			"content": msg.Content,
		})
	}

	payload := map[string]interface{}{
		"model":       c.model,
		"max_tokens":  opts.MaxTokens,
		"temperature": opts.Temperature,
		"messages":    messages,
	}
	if len(systemParts) > 0 {
		payload["system"] = strings.Join(systemParts, "\n\n")
	}
	return payload
}

func (c *ClaudeClient) sendRequest(ctx context.Context, jsonValue []byte) (*http.Response, error) {
	apiURL := utils.GetEnvOrDefault("CLAUDEAI_API_URL", config.ClaudeAIAPIURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, utils.NewJSONReader(jsonValue))
	if err != nil {
		c.logger.Error("Erro ao criar a requisição", zap.Error(err))
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", utils.GetEnvOrDefault("CLAUDEAI_API_VERSION", config.ClaudeAIAPIVersionDefault))

	return c.client.Do(req)
}

func (c *ClaudeClient) processResponse(resp *http.Response) (string, error) {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Erro ao ler a resposta da Anthropic", zap.Error(err))
		return "", fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &utils.APIError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		c.logger.Error("Erro ao decodificar a resposta da Anthropic", zap.Error(err))
		return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if len(result.Content) == 0 {
		c.logger.Error("Nenhuma resposta recebida da Anthropic")
		return "", fmt.Errorf("nenhuma resposta recebida")
	}

	return result.Content[0].Text, nil
}
