// llm/llm_client.go
package llm

import (
	"context"

	"github.com/manu-joy/rosa-agent/models"
)

// LLMClient define os métodos que um cliente LLM deve implementar.
type LLMClient interface {
	// GetModelName retorna o identificador do modelo configurado.
	GetModelName() string
	// SendPrompt envia o transcript completo ao provedor e retorna o texto
	// da resposta.
	SendPrompt(ctx context.Context, messages []models.Message, opts models.ProviderOptions) (string, error)
	// ValidateConfig faz uma requisição mínima, com timeout curto próprio,
	// para confirmar que as credenciais e o endpoint funcionam. Não altera
	// estado de conversa.
	ValidateConfig(ctx context.Context) bool
}
