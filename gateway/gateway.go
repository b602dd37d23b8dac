/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package gateway

import (
	"context"

	"github.com/manu-joy/rosa-agent/cliexec"
	"github.com/manu-joy/rosa-agent/intent"
	"github.com/manu-joy/rosa-agent/models"
	"go.uber.org/zap"
)

// Gateway liga a detecção de intenção à execução: decide se uma mensagem do
// usuário deve disparar um comando CLI e, se sim, executa-o antes de a
// conversa seguir para o modelo.
type Gateway struct {
	matcher  *intent.Matcher
	executor *cliexec.Executor
	logger   *zap.Logger
}

// NewGateway cria um Gateway com o matcher e o executor informados.
func NewGateway(matcher *intent.Matcher, executor *cliexec.Executor, logger *zap.Logger) *Gateway {
	return &Gateway{
		matcher:  matcher,
		executor: executor,
		logger:   logger,
	}
}

// HandleTurn avalia a mensagem do usuário. Se ela mapear para um comando da
// allow-list, executa o comando e retorna (comando, resultado); caso
// contrário retorna ("", nil) e o turno segue como conversa pura.
func (g *Gateway) HandleTurn(ctx context.Context, utterance string) (string, *models.CommandResult) {
	command := g.matcher.Match(utterance)
	if command == "" {
		return "", nil
	}

	g.logger.Info("Turno mapeado para comando", zap.String("command", command))
	result := g.executor.Execute(ctx, command)
	return command, &result
}
