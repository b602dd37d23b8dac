/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package openai

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

// OpenAIClient implementa o cliente para interagir com a API da OpenAI
type OpenAIClient struct {
	apiKey      string
	model       string
	logger      *zap.Logger
	client      *http.Client
	maxAttempts int
	backoff     time.Duration
}

// NewOpenAIClient cria uma nova instância de OpenAIClient.
func NewOpenAIClient(apiKey, model string, logger *zap.Logger, maxAttempts int, backoff time.Duration) *OpenAIClient {
	if model == "" {
		model = config.DefaultOpenAIModel
	}
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxAttempts
	}
	if backoff <= 0 {
		backoff = config.DefaultInitialBackoff
	}

	return &OpenAIClient{
		apiKey:      apiKey,
		model:       model,
		logger:      logger,
		client:      utils.NewHTTPClient(logger, config.GenerateTimeout),
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// GetModelName retorna o nome do modelo de linguagem utilizado pelo cliente.
func (c *OpenAIClient) GetModelName() string {
	return c.model
}

// SendPrompt envia o transcript para a API da OpenAI e retorna a resposta.
// Respostas 429 são retentadas com backoff exponencial; esgotadas as
// tentativas, o erro original propaga com o prefixo do provedor.
func (c *OpenAIClient) SendPrompt(ctx context.Context, messages []models.Message, opts models.ProviderOptions) (string, error) {
	opts = opts.Normalize()

	jsonValue, err := json.Marshal(buildPayload(c.model, messages, opts))
	if err != nil {
		c.logger.Error("Erro ao marshalizar o payload", zap.Error(err))
		return "", fmt.Errorf("OpenAI API error: erro ao preparar a requisição: %w", err)
	}

	response, err := utils.Retry(ctx, c.logger, c.maxAttempts, c.backoff, func(ctx context.Context) (string, error) {
		resp, err := c.sendRequest(ctx, jsonValue)
		if err != nil {
			return "", err
		}
		return processResponse(c.logger, resp)
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	return response, nil
}

// ValidateConfig faz uma requisição mínima para confirmar as credenciais.
// Usa um timeout curto, independente do timeout de geração.
func (c *OpenAIClient) ValidateConfig(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, config.ValidateTimeout)
	defer cancel()

	payload := buildPayload(c.model,
		[]models.Message{{Role: "user", Content: "test"}},
		models.ProviderOptions{Temperature: config.DefaultTemperature, MaxTokens: config.ValidateMaxTokens})

	jsonValue, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	resp, err := c.sendRequest(ctx, jsonValue)
	if err != nil {
		c.logger.Debug("Validação de configuração OpenAI falhou", zap.Error(err))
		return false
	}
	_, err = processResponse(c.logger, resp)
	return err == nil
}

// sendRequest envia a requisição para a API da OpenAI
func (c *OpenAIClient) sendRequest(ctx context.Context, jsonValue []byte) (*http.Response, error) {
	apiURL := utils.GetEnvOrDefault("OPENAI_API_URL", config.OpenAIAPIURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, utils.NewJSONReader(jsonValue))
	if err != nil {
		c.logger.Error("Erro ao criar a requisição", zap.Error(err))
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.client.Do(req)
}

// buildPayload monta o corpo chat/completions a partir do transcript,
// normalizando papéis desconhecidos para "user".
func buildPayload(model string, history []models.Message, opts models.ProviderOptions) map[string]interface{} {
	messages := make([]map[string]string, 0, len(history))
	for _, msg := range history {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		switch role {
		case "system", "user", "assistant":
			// válido
		default:
			role = "user"
		}
		messages = append(messages, map[string]string{
			"role":    role,
			"content": msg.Content,
		})
	}

	return map[string]interface{}{
		"model":       model,
		"messages":    messages,
		"temperature": opts.Temperature,
		"max_tokens":  opts.MaxTokens,
	}
}

// processResponse processa a resposta chat/completions da API
func processResponse(logger *zap.Logger, resp *http.Response) (string, error) {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Erro ao ler a resposta da OpenAI", zap.Error(err))
		return "", fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &utils.APIError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	var result map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		logger.Error("Erro ao decodificar a resposta da OpenAI", zap.Error(err))
		return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	choices, ok := result["choices"].([]interface{})
	if !ok || len(choices) == 0 {
		logger.Error("Nenhuma resposta recebida da OpenAI", zap.Any("resultado", result))
		return "", fmt.Errorf("nenhuma resposta recebida")
	}

	firstChoice, ok := choices[0].(map[string]interface{})
	if !ok {
		logger.Error("Formato inesperado no primeiro choice", zap.Any("choice", choices[0]))
		return "", fmt.Errorf("formato inesperado na resposta")
	}

	message, ok := firstChoice["message"].(map[string]interface{})
	if !ok {
		logger.Error("Campo 'message' ausente na resposta", zap.Any("choice", firstChoice))
		return "", fmt.Errorf("campo 'message' ausente na resposta")
	}

	content, ok := message["content"].(string)
	if !ok {
		logger.Error("Conteúdo da mensagem não é uma string", zap.Any("content", message["content"]))
		return "", fmt.Errorf("conteúdo da mensagem não é válido")
	}

	return content, nil
}
