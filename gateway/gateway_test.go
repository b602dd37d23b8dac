package gateway

import (
	"context"
	"testing"

	"github.com/manu-joy/rosa-agent/cliexec"
	"github.com/manu-joy/rosa-agent/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestGateway usa echo como CLI permitida para exercitar o caminho
// completo matcher -> validador -> executor com um binário sempre presente.
func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	validator := cliexec.NewValidator([]string{"echo"}, zap.NewNop())
	executor := cliexec.NewExecutor(validator, 0, zap.NewNop())
	rules := []intent.Rule{
		{Terms: []string{"how many", "cluster"}, Command: "echo 2 clusters"},
		{Terms: []string{"cluster", "ready"}},
	}
	matcher := intent.NewMatcher(rules, validator, zap.NewNop())
	return NewGateway(matcher, executor, zap.NewNop())
}

func TestGateway_HandleTurn_ExecutesMatchedCommand(t *testing.T) {
	g := newTestGateway(t)

	command, result := g.HandleTurn(context.Background(), "How many clusters do I have?")

	assert.Equal(t, "echo 2 clusters", command)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, "2 clusters\n", result.Output)
	assert.Equal(t, 0, result.ExitCode)
}

func TestGateway_HandleTurn_PlainConversation(t *testing.T) {
	g := newTestGateway(t)

	command, result := g.HandleTurn(context.Background(), "What is ROSA HCP?")

	assert.Empty(t, command)
	assert.Nil(t, result)
}

func TestGateway_HandleTurn_NullRuleDoesNotExecute(t *testing.T) {
	g := newTestGateway(t)

	command, result := g.HandleTurn(context.Background(), "is my cluster ready?")

	assert.Empty(t, command)
	assert.Nil(t, result)
}

func TestGateway_HandleTurn_AtMostOneCommand(t *testing.T) {
	g := newTestGateway(t)

	// Mensagem que casaria com mais de uma regra: só a primeira executa
	command, result := g.HandleTurn(context.Background(), "how many clusters? is the cluster ready?")

	assert.Equal(t, "echo 2 clusters", command)
	require.NotNil(t, result)
}
