package config

import "time"

// Valores padrão para configuração da aplicação
const (
	// Provedor padrão
	DefaultLLMProvider = "openai"

	// Valores padrão para OpenAI
	DefaultOpenAIModel = "gpt-4"
	OpenAIAPIURL       = "https://api.openai.com/v1/chat/completions"

	// Valores padrão para Groq
	DefaultGroqModel = "llama-3.1-8b-instant"
	GroqAPIURL       = "https://api.groq.com/openai/v1/chat/completions"

	// Valores padrão para Anthropic
	DefaultClaudeAIModel      = "claude-3-sonnet-20240229"
	ClaudeAIAPIURL            = "https://api.anthropic.com/v1/messages"
	ClaudeAIAPIVersionDefault = "2023-06-01"

	// Valores padrão para endpoints locais (Ollama, vLLM, etc.)
	DefaultLocalModel = "llama2"

	// Política de retry para rate limiting: 4 tentativas no total
	// (1 + 3 retries), backoff inicial de 2s dobrando a cada tentativa.
	DefaultMaxAttempts    = 4
	DefaultInitialBackoff = 2 * time.Second

	// Parâmetros de geração
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000

	// Validação de configuração: requisição mínima com timeout curto,
	// independente do timeout de geração.
	ValidateMaxTokens = 5
	ValidateTimeout   = 10 * time.Second

	// Timeout das requisições de geração
	GenerateTimeout = 60 * time.Second

	// Execução de comandos CLI
	DefaultCommandTimeout = 60 * time.Second

	// Documento de settings persistido
	DefaultSettingsFile = "/tmp/settings.json"

	// Porta HTTP padrão
	DefaultHTTPPort = 5000

	// Rate limit da API (requisições por segundo, burst)
	DefaultRateLimit = 10
	DefaultRateBurst = 20
)

// DefaultAllowedPrefixes são os prefixos de comandos CLI confiáveis.
// A checagem é por prefixo, não por igualdade exata, para aceitar
// invocações variantes do mesmo binário.
var DefaultAllowedPrefixes = []string{"rosa", "oc", "aws", "ocm"}
