/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package localai

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

// LocalClient fala com um servidor local compatível com OpenAI (Ollama,
// LM Studio, llama.cpp server). O endpoint base é configurável e a chave
// de API é opcional.
type LocalClient struct {
	endpoint    string
	apiKey      string
	model       string
	logger      *zap.Logger
	client      *http.Client
	maxAttempts int
	backoff     time.Duration
}

// NewLocalClient cria uma nova instância de LocalClient. endpoint é a URL
// base do servidor, sem o sufixo /v1/chat/completions.
func NewLocalClient(endpoint, apiKey, model string, logger *zap.Logger, maxAttempts int, backoff time.Duration) *LocalClient {
	if model == "" {
		model = config.DefaultLocalModel
	}
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxAttempts
	}
	if backoff <= 0 {
		backoff = config.DefaultInitialBackoff
	}

	return &LocalClient{
		endpoint:    strings.TrimRight(endpoint, "/"),
		apiKey:      apiKey,
		model:       model,
		logger:      logger,
		client:      utils.NewHTTPClient(logger, config.GenerateTimeout),
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// GetModelName retorna o nome do modelo de linguagem utilizado pelo cliente.
func (c *LocalClient) GetModelName() string {
	return c.model
}

// SendPrompt envia o transcript para o servidor local.
func (c *LocalClient) SendPrompt(ctx context.Context, messages []models.Message, opts models.ProviderOptions) (string, error) {
	opts = opts.Normalize()

	jsonValue, err := json.Marshal(c.buildPayload(messages, opts))
	if err != nil {
		c.logger.Error("Erro ao marshalizar o payload", zap.Error(err))
		return "", fmt.Errorf("Local LLM API error: erro ao preparar a requisição: %w", err)
	}

	response, err := utils.Retry(ctx, c.logger, c.maxAttempts, c.backoff, func(ctx context.Context) (string, error) {
		resp, err := c.sendRequest(ctx, jsonValue)
		if err != nil {
			return "", err
		}
		return c.processResponse(resp)
	})
	if err != nil {
		return "", fmt.Errorf("Local LLM API error: %w", err)
	}
	return response, nil
}

// ValidateConfig verifica se o servidor local está acessível consultando a
// lista de modelos. Não exige que o modelo configurado exista: servidores
// locais costumam carregar modelos sob demanda.
func (c *LocalClient) ValidateConfig(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, config.ValidateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/v1/models", nil)
	if err != nil {
		return false
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Validação do servidor local falhou", zap.Error(err))
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

func (c *LocalClient) buildPayload(history []models.Message, opts models.ProviderOptions) map[string]interface{} {
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

func (c *LocalClient) sendRequest(ctx context.Context, jsonValue []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", utils.NewJSONReader(jsonValue))
	if err != nil {
		c.logger.Error("Erro ao criar a requisição", zap.Error(err))
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return c.client.Do(req)
}

func (c *LocalClient) processResponse(resp *http.Response) (string, error) {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Erro ao ler a resposta do servidor local", zap.Error(err))
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
		c.logger.Error("Erro ao decodificar a resposta do servidor local", zap.Error(err))
		return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if len(result.Choices) == 0 {
		c.logger.Error("Nenhuma resposta recebida do servidor local")
		return "", fmt.Errorf("nenhuma resposta recebida")
	}

	return result.Choices[0].Message.Content, nil
}
