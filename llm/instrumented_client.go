package llm

import (
	"context"
	"time"

	"github.com/manu-joy/rosa-agent/metrics"
	"github.com/manu-joy/rosa-agent/models"
)

// InstrumentedClient decora um LLMClient registrando métricas Prometheus de
// cada geração.
type InstrumentedClient struct {
	inner    LLMClient
	provider string
	metrics  *metrics.LLMMetrics
}

// NewInstrumentedClient cria um decorator de métricas sobre o cliente.
func NewInstrumentedClient(inner LLMClient, provider string, m *metrics.LLMMetrics) *InstrumentedClient {
	return &InstrumentedClient{
		inner:    inner,
		provider: provider,
		metrics:  m,
	}
}

// GetModelName delega ao cliente decorado.
func (c *InstrumentedClient) GetModelName() string {
	return c.inner.GetModelName()
}

// SendPrompt delega ao cliente decorado e registra duração e status.
func (c *InstrumentedClient) SendPrompt(ctx context.Context, messages []models.Message, opts models.ProviderOptions) (string, error) {
	start := time.Now()
	response, err := c.inner.SendPrompt(ctx, messages, opts)
	c.metrics.RecordRequest(c.provider, err, time.Since(start))
	return response, err
}

// ValidateConfig delega ao cliente decorado sem registrar métricas: a
// validação é uma sondagem de configuração, não uma geração.
func (c *InstrumentedClient) ValidateConfig(ctx context.Context) bool {
	return c.inner.ValidateConfig(ctx)
}
