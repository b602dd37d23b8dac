/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package cliexec

import (
	"strings"

	"github.com/google/shlex"
	"github.com/manu-joy/rosa-agent/config"
	"go.uber.org/zap"
)

// Validator valida comandos contra a lista de prefixos de CLI confiáveis.
// A checagem é feita sobre o primeiro token do comando, respeitando quoting
// de shell, e falha fechada: entrada vazia ou não tokenizável é rejeitada.
type Validator struct {
	prefixes []string
	logger   *zap.Logger
}

// NewValidator cria um Validator com os prefixos informados. Se a lista
// estiver vazia, usa os prefixos padrão (rosa, oc, aws, ocm).
func NewValidator(prefixes []string, logger *zap.Logger) *Validator {
	if len(prefixes) == 0 {
		prefixes = config.DefaultAllowedPrefixes
	}
	return &Validator{
		prefixes: prefixes,
		logger:   logger,
	}
}

// IsAllowed verifica se o comando está na lista de permitidos.
// O match é por prefixo do primeiro token, não por igualdade exata, para
// aceitar invocações variantes do mesmo binário.
func (v *Validator) IsAllowed(command string) bool {
	parts, err := shlex.Split(command)
	if err != nil {
		v.logger.Error("Erro ao tokenizar o comando", zap.String("command", command), zap.Error(err))
		return false
	}
	if len(parts) == 0 {
		return false
	}

	base := parts[0]
	for _, prefix := range v.prefixes {
		if strings.HasPrefix(base, prefix) {
			return true
		}
	}
	return false
}

// Prefixes retorna uma cópia da lista de prefixos confiáveis.
func (v *Validator) Prefixes() []string {
	out := make([]string, len(v.prefixes))
	copy(out, v.prefixes)
	return out
}
