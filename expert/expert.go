/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package expert

import (
	"fmt"
	"strings"
	"sync"

	"github.com/manu-joy/rosa-agent/models"
)

// Expert mantém o transcript de uma sessão de conversa com o agente.
// O transcript armazenado nunca contém o prompt de sistema: ele é
// sintetizado na frente das mensagens a cada Snapshot. O crescimento é
// ilimitado e Clear é o único caminho de remoção — o transcript completo é
// enviado ao provedor a cada turno.
type Expert struct {
	mu      sync.Mutex
	history []models.Message
}

// NewExpert cria uma sessão de conversa vazia.
func NewExpert() *Expert {
	return &Expert{}
}

// Append adiciona uma mensagem ao transcript.
func (e *Expert) Append(role, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history, models.Message{Role: role, Content: content})
}

// AppendCommandContext adiciona ao transcript uma mensagem de sistema com o
// resultado de um comando executado. Este é o único mecanismo pelo qual o
// estado real da infraestrutura entra no contexto do modelo.
func (e *Expert) AppendCommandContext(command string, result models.CommandResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n\n[SYSTEM - Command Executed: `%s`]\n", command))
	if result.Success {
		sb.WriteString(fmt.Sprintf("Output:\n```\n%s\n```", result.Output))
	} else {
		sb.WriteString(fmt.Sprintf("Error:\n```\n%s\n```\nExit code: %d", result.Error, result.ExitCode))
	}
	e.Append("system", sb.String())
}

// Snapshot retorna as mensagens da conversa com o prompt de sistema
// sintetizado na frente. Para o kind "local" usa a variante compacta do
// prompt.
func (e *Expert) Snapshot(kind string) []models.Message {
	return e.snapshot(kind, "")
}

// SnapshotWithKnowledge é como Snapshot, mas anexa ao prompt de sistema os
// trechos da base de conhecimento relevantes para a consulta, quando houver.
func (e *Expert) SnapshotWithKnowledge(kind, query string) []models.Message {
	var addendum string
	if snippets := KnowledgeSnippets(query); len(snippets) > 0 {
		addendum = "\n\n# REFERENCE NOTES\n" + strings.Join(snippets, "\n")
	}
	return e.snapshot(kind, addendum)
}

func (e *Expert) snapshot(kind, addendum string) []models.Message {
	prompt := systemPrompt
	if strings.EqualFold(kind, "local") {
		prompt = compactSystemPrompt
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	messages := make([]models.Message, 0, len(e.history)+1)
	messages = append(messages, models.Message{Role: "system", Content: prompt + addendum})
	messages = append(messages, e.history...)
	return messages
}

// Clear descarta todo o transcript.
func (e *Expert) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
}

// Len retorna o número de mensagens armazenadas no transcript.
func (e *Expert) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}
