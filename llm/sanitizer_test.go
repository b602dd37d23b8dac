package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		replaced bool
	}{
		{
			name:     "resposta normal passa intacta",
			response: "To check your clusters, run `rosa list clusters`.",
			replaced: false,
		},
		{
			name:     "diretiva cmd vazada e substituida",
			response: `{"cmd": ["rosa", "version"]}`,
			replaced: true,
		},
		{
			name:     "diretiva com espacos e aspas simples",
			response: `{ 'cmd' : ["rosa version"]}`,
			replaced: false, // aspas simples não são JSON válido: sonda casa, parse não confirma
		},
		{
			name:     "falso positivo da sonda em texto nao-JSON",
			response: `The format {"cmd": [...]} is internal and never shown.`,
			replaced: false,
		},
		{
			name:     "JSON valido sem array em cmd",
			response: `{"cmd": "rosa version"}`,
			replaced: false,
		},
		{
			name:     "resposta vazia",
			response: "",
			replaced: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeResponse(tt.response)
			if tt.replaced {
				assert.NotEqual(t, tt.response, got)
				assert.Contains(t, got, "rosa version")
				assert.Contains(t, got, "I apologize")
			} else {
				assert.Equal(t, tt.response, got)
			}
		})
	}
}
