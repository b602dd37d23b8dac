package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// APIError é um erro estruturado para respostas HTTP com status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: status %d - %s", e.StatusCode, e.Message)
}

// Retry executa uma função com retry exponencial para respostas de rate limit.
// - maxAttempts: número total de tentativas (incluindo a primeira).
// - initialBackoff: tempo inicial de espera entre tentativas, dobrado a cada retry.
// Qualquer outro erro de transporte propaga imediatamente; esgotadas as
// tentativas, o erro original propaga.
func Retry[T any](ctx context.Context, logger *zap.Logger, maxAttempts int, initialBackoff time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res, err := fn(ctx)
		if err == nil {
			logger.Debug("Requisição bem-sucedida",
				zap.Int("attempt", attempt))
			return res, nil
		}
		lastErr = err

		// Apenas retry para rate limit (429); demais erros propagam direto
		if !IsRateLimitError(err) {
			logger.Error("Erro permanente na requisição, abortando",
				zap.Int("attempt", attempt),
				zap.Error(err))
			return zero, err
		}

		if attempt < maxAttempts {
			logger.Warn("Rate limit detectado, retentando",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", maxAttempts),
				zap.Duration("backoff", backoff))
			time.Sleep(backoff)
			backoff *= 2 // Backoff exponencial
		}
	}

	logger.Error("Máximo de tentativas excedido",
		zap.Int("max_attempts", maxAttempts),
		zap.Error(lastErr))
	return zero, lastErr
}

// IsRateLimitError verifica se o erro corresponde a uma resposta de rate
// limit (HTTP 429), desembrulhando erros encadeados.
func IsRateLimitError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
