package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultMaxBodySize = 2048

// LoggingTransport é um http.RoundTripper que adiciona logs às requisições e respostas
type LoggingTransport struct {
	Logger      *zap.Logger
	Transport   http.RoundTripper
	MaxBodySize int
}

// RoundTrip implementa a interface http.RoundTripper
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.Logger.Debug("Enviando Requisição",
		zap.String("Método", req.Method),
		zap.String("URL", req.URL.String()),
		zap.String("Cabeçalhos", headersToString(req.Header)),
	)

	if req.Body != nil {
		reqBodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			t.Logger.Error("Erro ao ler o corpo da requisição", zap.Error(err))
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes)) // Resetar o Body
		t.Logger.Debug("Corpo da Requisição", zap.ByteString("Body", t.sanitizeBody(req.Header.Get("Content-Type"), reqBodyBytes)))
	}

	start := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.Logger.Error("Erro na Requisição",
			zap.String("Método", req.Method),
			zap.String("URL", req.URL.String()),
			zap.Error(err),
			zap.Duration("Duração", duration),
		)
		return resp, err
	}

	t.Logger.Debug("Recebendo Resposta",
		zap.String("Método", req.Method),
		zap.String("URL", req.URL.String()),
		zap.Int("Status", resp.StatusCode),
		zap.Duration("Duração", duration),
	)

	return resp, nil
}

// headersToString converte os cabeçalhos para uma string legível, mascarando os sensíveis
func headersToString(headers http.Header) string {
	var buf strings.Builder
	for key, values := range headers {
		lowerKey := strings.ToLower(key)
		if lowerKey == "authorization" || lowerKey == "api-key" || lowerKey == "x-api-key" {
			buf.WriteString(fmt.Sprintf("%s: [REDACTED]; ", key))
			continue
		}
		for _, value := range values {
			buf.WriteString(fmt.Sprintf("%s: %s; ", key, value))
		}
	}
	return buf.String()
}

// sanitizeBody remove ou mascara dados sensíveis do corpo da requisição/resposta
func (t *LoggingTransport) sanitizeBody(contentType string, body []byte) []byte {
	maxSize := t.MaxBodySize
	if maxSize <= 0 {
		maxSize = defaultMaxBodySize
	}
	if len(body) > maxSize {
		return []byte(fmt.Sprintf("[Corpo muito grande para ser logado, tamanho: %d bytes]", len(body)))
	}

	if strings.Contains(contentType, "application/json") {
		var data map[string]interface{}
		if err := json.Unmarshal(body, &data); err == nil {
			if _, exists := data["api_key"]; exists {
				data["api_key"] = "[REDACTED]"
			}
			sanitized, _ := json.Marshal(data)
			return sanitized
		}
	}

	return body
}
