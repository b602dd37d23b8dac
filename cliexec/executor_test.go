package cliexec

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newTestExecutor usa prefixos de teste para poder executar binários reais do
// sistema sem depender das CLIs de infraestrutura.
func newTestExecutor(t *testing.T, timeout time.Duration) *Executor {
	t.Helper()
	validator := NewValidator([]string{"echo", "sh", "sleep", "false"}, zap.NewNop())
	return NewExecutor(validator, timeout, zap.NewNop())
}

func TestExecutor_Execute_Success(t *testing.T) {
	e := newTestExecutor(t, 0)

	result := e.Execute(context.Background(), "echo hello")

	assert.True(t, result.Success)
	assert.Equal(t, "hello\n", result.Output)
	assert.Empty(t, result.Error)
	assert.Equal(t, 0, result.ExitCode)
}

func TestExecutor_Execute_ShellFeatures(t *testing.T) {
	e := newTestExecutor(t, 0)

	// Pipes passam pelo shell, não por um vetor argv
	result := e.Execute(context.Background(), "echo one && echo two")

	assert.True(t, result.Success)
	assert.Equal(t, "one\ntwo\n", result.Output)
}

func TestExecutor_Execute_Disallowed(t *testing.T) {
	e := newTestExecutor(t, 0)

	result := e.Execute(context.Background(), "rm -rf /tmp/foo")

	assert.False(t, result.Success)
	assert.Empty(t, result.Output)
	assert.Contains(t, result.Error, "Command not allowed")
	assert.Equal(t, -1, result.ExitCode)
}

func TestExecutor_Execute_NonZeroExit(t *testing.T) {
	e := newTestExecutor(t, 0)

	result := e.Execute(context.Background(), "sh -c 'echo oops >&2; exit 3'")

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Error, "oops")
}

func TestExecutor_Execute_Timeout(t *testing.T) {
	e := newTestExecutor(t, 100*time.Millisecond)

	start := time.Now()
	result := e.Execute(context.Background(), "sleep 5")

	assert.Less(t, time.Since(start), 3*time.Second)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "timed out")
	assert.Equal(t, -1, result.ExitCode)
}

func TestExecutor_ExecuteMultiple_StopsOnFailure(t *testing.T) {
	e := newTestExecutor(t, 0)

	results := e.ExecuteMultiple(context.Background(), []string{
		"echo first",
		"false",
		"echo never",
	})

	assert.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
}

func TestExecutor_Versions_ReportsMissingTools(t *testing.T) {
	validator := NewValidator(nil, zap.NewNop())
	e := NewExecutor(validator, 5*time.Second, zap.NewNop())

	versions := e.Versions(context.Background())

	assert.Len(t, versions, 4)
	for tool, v := range versions {
		// Em ambiente de CI as CLIs normalmente não estão instaladas; o que
		// importa é que cada ferramenta tenha um veredito não vazio.
		assert.NotEmpty(t, v, "tool %s", tool)
		assert.False(t, strings.HasSuffix(v, "\n"))
	}
}
