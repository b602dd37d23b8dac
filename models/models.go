package models

import "github.com/manu-joy/rosa-agent/config"

// Message representa uma mensagem trocada com o modelo de linguagem.
type Message struct {
	Role    string `json:"role"`    // O papel da mensagem: "user", "system" ou "assistant".
	Content string `json:"content"` // O conteúdo da mensagem.
}

// IsValid valida se a mensagem tem um papel e conteúdo válidos.
func (m *Message) IsValid() bool {
	validRoles := map[string]bool{
		"user":      true,
		"system":    true,
		"assistant": true,
	}
	return validRoles[m.Role] && m.Content != ""
}

// ProviderOptions controla os parâmetros de geração de uma chamada ao
// provedor LLM.
type ProviderOptions struct {
	Temperature float64
	MaxTokens   int
}

// DefaultProviderOptions retorna os parâmetros padrão de geração.
func DefaultProviderOptions() ProviderOptions {
	return ProviderOptions{
		Temperature: config.DefaultTemperature,
		MaxTokens:   config.DefaultMaxTokens,
	}
}

// Normalize preenche parâmetros zerados com os valores padrão.
func (o ProviderOptions) Normalize() ProviderOptions {
	if o.Temperature <= 0 {
		o.Temperature = config.DefaultTemperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = config.DefaultMaxTokens
	}
	return o
}

// CommandResult representa o resultado da execução de um comando CLI.
// ExitCode -1 é reservado para falhas de validação e timeouts, onde não
// existe um exit code real do processo filho.
type CommandResult struct {
	Success  bool   `json:"success"`
	Output   string `json:"output"`
	Error    string `json:"error"`
	ExitCode int    `json:"exit_code"`
}
