package llm

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/manu-joy/rosa-agent/config"
	"github.com/manu-joy/rosa-agent/llm/claudeai"
	"github.com/manu-joy/rosa-agent/llm/groq"
	"github.com/manu-joy/rosa-agent/llm/localai"
	"github.com/manu-joy/rosa-agent/llm/openai"
	"github.com/manu-joy/rosa-agent/metrics"
	"github.com/manu-joy/rosa-agent/settings"
	"go.uber.org/zap"
)

// ConfigError representa um erro de configuração de provedor, como um kind
// desconhecido ou credenciais ausentes.
type ConfigError struct {
	Message string
}

// Error implementa a interface de erro para ConfigError
func (e *ConfigError) Error() string {
	return fmt.Sprintf("ConfigError: %s", e.Message)
}

// activeProvider é o par imutável (kind, cliente) instalado como provedor
// corrente.
type activeProvider struct {
	kind   string
	client LLMClient
}

// Manager constrói clientes LLM a partir do documento de settings e mantém o
// provedor corrente em um handle trocável atomicamente: atualizações de
// settings trocam o par inteiro de uma vez, então turnos concorrentes veem
// sempre uma configuração completa, antiga ou nova, nunca parcial.
type Manager struct {
	logger     *zap.Logger
	llmMetrics *metrics.LLMMetrics
	current    atomic.Pointer[activeProvider]
}

// NewManager cria uma nova instância de Manager, sem provedor instalado.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// SetMetrics injeta o recorder de métricas de LLM (opcional). Clientes
// construídos depois da injeção são instrumentados.
func (m *Manager) SetMetrics(llmMetrics *metrics.LLMMetrics) {
	m.llmMetrics = llmMetrics
}

// BuildClient constrói um cliente LLM a partir do documento de settings, sem
// instalá-lo como corrente. Kind desconhecido ou credenciais ausentes são um
// ConfigError — nunca um fallback silencioso.
func (m *Manager) BuildClient(doc settings.Document) (LLMClient, error) {
	cfg := doc.Config
	kind := strings.ToLower(doc.Provider)

	var client LLMClient
	switch kind {
	case "openai":
		if cfg.APIKey == "" {
			return nil, &ConfigError{Message: "api_key não configurado para o provedor openai"}
		}
		client = openai.NewOpenAIClient(cfg.APIKey, cfg.Model, m.logger, config.DefaultMaxAttempts, config.DefaultInitialBackoff)
	case "groq":
		if cfg.APIKey == "" {
			return nil, &ConfigError{Message: "api_key não configurado para o provedor groq"}
		}
		client = groq.NewGroqClient(cfg.APIKey, cfg.Model, m.logger, config.DefaultMaxAttempts, config.DefaultInitialBackoff)
	case "anthropic":
		if cfg.APIKey == "" {
			return nil, &ConfigError{Message: "api_key não configurado para o provedor anthropic"}
		}
		client = claudeai.NewClaudeClient(cfg.APIKey, cfg.Model, m.logger, config.DefaultMaxAttempts, config.DefaultInitialBackoff)
	case "local":
		if cfg.EndpointURL == "" {
			return nil, &ConfigError{Message: "endpoint_url não configurado para o provedor local"}
		}
		client = localai.NewLocalClient(cfg.EndpointURL, cfg.APIKey, cfg.Model, m.logger, config.DefaultMaxAttempts, config.DefaultInitialBackoff)
	default:
		return nil, &ConfigError{Message: fmt.Sprintf("Unknown provider type: %s", doc.Provider)}
	}

	if m.llmMetrics != nil {
		client = NewInstrumentedClient(client, kind, m.llmMetrics)
	}
	return client, nil
}

// Configure constrói o cliente do documento e o instala atomicamente como
// provedor corrente. Em caso de erro nenhuma troca acontece e o provedor
// anterior (se houver) permanece.
func (m *Manager) Configure(doc settings.Document) error {
	client, err := m.BuildClient(doc)
	if err != nil {
		m.logger.Error("Erro ao criar cliente LLM", zap.String("provider", doc.Provider), zap.Error(err))
		return err
	}

	m.Swap(strings.ToLower(doc.Provider), client)
	m.logger.Info("Provedor LLM configurado",
		zap.String("provider", doc.Provider),
		zap.String("model", client.GetModelName()))
	return nil
}

// Swap instala o par (kind, cliente) como provedor corrente de uma vez.
func (m *Manager) Swap(kind string, client LLMClient) {
	m.current.Store(&activeProvider{kind: kind, client: client})
}

// Current retorna o cliente corrente e seu kind. O booleano indica se há um
// provedor instalado.
func (m *Manager) Current() (LLMClient, string, bool) {
	active := m.current.Load()
	if active == nil {
		return nil, "", false
	}
	return active.client, active.kind, true
}
