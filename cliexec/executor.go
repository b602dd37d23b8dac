/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package cliexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/manu-joy/rosa-agent/config"
	"github.com/manu-joy/rosa-agent/metrics"
	"github.com/manu-joy/rosa-agent/models"
	"go.uber.org/zap"
)

// versionCommands mapeia cada ferramenta para o comando que reporta sua versão.
var versionCommands = map[string]string{
	"rosa": "rosa version",
	"oc":   "oc version --client",
	"aws":  "aws --version",
	"ocm":  "ocm version",
}

// Executor executa comandos CLI validados, com timeout e captura de saída.
// Os comandos passam pelo shell (não por um vetor argv) porque operadores
// usam legitimamente pipes e redirecionamento; é exatamente por isso que a
// validação pela allow-list é obrigatória antes deste ponto.
type Executor struct {
	validator *Validator
	timeout   time.Duration
	logger    *zap.Logger
	metrics   *metrics.CommandMetrics
}

// NewExecutor cria um Executor. Timeout <= 0 usa o padrão (60s).
func NewExecutor(validator *Validator, timeout time.Duration, logger *zap.Logger) *Executor {
	if timeout <= 0 {
		timeout = config.DefaultCommandTimeout
	}
	return &Executor{
		validator: validator,
		timeout:   timeout,
		logger:    logger,
	}
}

// SetMetrics injeta o recorder de métricas de execução (opcional).
func (e *Executor) SetMetrics(m *metrics.CommandMetrics) {
	e.metrics = m
}

// Execute executa um comando da allow-list e retorna o resultado estruturado.
// Revalida o comando defensivamente mesmo que o chamador já o tenha validado.
// ExitCode -1 indica falha de validação ou timeout; caso contrário é o exit
// status real do processo filho.
func (e *Executor) Execute(ctx context.Context, command string) models.CommandResult {
	if !e.validator.IsAllowed(command) {
		e.logger.Error("Comando rejeitado pela allow-list", zap.String("command", command))
		return models.CommandResult{
			Success:  false,
			Output:   "",
			Error:    fmt.Sprintf("Command not allowed. Only %s commands are permitted.", strings.Join(e.validator.Prefixes(), ", ")),
			ExitCode: -1,
		}
	}

	// Log de auditoria: sempre registrar o comando literal
	e.logger.Info("Executando comando", zap.String("command", command))

	start := time.Now()
	result := e.run(ctx, command)
	duration := time.Since(start)

	if e.metrics != nil {
		e.metrics.RecordExecution(command, result.Success, duration)
	}
	return result
}

func (e *Executor) run(ctx context.Context, command string) models.CommandResult {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		e.logger.Error("Timeout na execução do comando",
			zap.String("command", command),
			zap.Duration("timeout", e.timeout))
		return models.CommandResult{
			Success:  false,
			Output:   "",
			Error:    fmt.Sprintf("Command timed out after %.0f seconds", e.timeout.Seconds()),
			ExitCode: -1,
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Exit não-zero não é um erro do sistema, apenas um fato que o
			// modelo precisa interpretar
			e.logger.Error("Comando terminou com exit não-zero",
				zap.String("command", command),
				zap.Int("exit_code", exitErr.ExitCode()),
				zap.String("stderr", stderr.String()))
			return models.CommandResult{
				Success:  false,
				Output:   stdout.String(),
				Error:    stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}
		}
		e.logger.Error("Erro ao executar o comando", zap.String("command", command), zap.Error(err))
		return models.CommandResult{
			Success:  false,
			Output:   "",
			Error:    err.Error(),
			ExitCode: -1,
		}
	}

	return models.CommandResult{
		Success:  true,
		Output:   stdout.String(),
		Error:    stderr.String(),
		ExitCode: 0,
	}
}

// ExecuteMultiple executa comandos em sequência, parando na primeira falha.
func (e *Executor) ExecuteMultiple(ctx context.Context, commands []string) []models.CommandResult {
	results := make([]models.CommandResult, 0, len(commands))
	for _, cmd := range commands {
		result := e.Execute(ctx, cmd)
		results = append(results, result)
		if !result.Success {
			break
		}
	}
	return results
}

// Versions retorna a versão instalada de cada ferramenta da allow-list,
// executando o comando de versão correspondente.
func (e *Executor) Versions(ctx context.Context) map[string]string {
	versions := make(map[string]string, len(versionCommands))
	for tool, cmd := range versionCommands {
		result := e.Execute(ctx, cmd)
		if result.Success {
			versions[tool] = strings.TrimSpace(result.Output)
		} else {
			versions[tool] = "Not installed or error"
		}
	}
	return versions
}
