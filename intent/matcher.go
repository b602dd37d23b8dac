/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package intent

import (
	"regexp"
	"strings"

	"github.com/manu-joy/rosa-agent/cliexec"
	"go.uber.org/zap"
)

// actionKeywords indicam que o usuário está pedindo a execução de um comando.
var actionKeywords = []string{"run", "execute", "check", "list", "show", "get", "describe", "verify"}

// Padrões de extração de comandos explícitos, em ordem de prioridade:
// crases, aspas duplas, aspas simples.
var quotePatterns = []*regexp.Regexp{
	regexp.MustCompile("`([^`]+)`"),
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`'([^']+)'`),
}

// Matcher mapeia uma mensagem do usuário para zero-ou-um comando canônico.
// Estágio 1: regras de intenção estruturadas, em ordem, primeira que casa
// vence. Estágio 2 (só se o estágio 1 não resolver): extração de comandos
// citados explicitamente, validados contra a allow-list.
type Matcher struct {
	rules     []Rule
	validator *cliexec.Validator
	logger    *zap.Logger
}

// NewMatcher cria um Matcher com a tabela de regras e o validador informados.
func NewMatcher(rules []Rule, validator *cliexec.Validator, logger *zap.Logger) *Matcher {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Matcher{
		rules:     rules,
		validator: validator,
		logger:    logger,
	}
}

// Match retorna o comando a executar para a mensagem, ou "" se nenhum comando
// deve ser executado. Determinístico: mesma mensagem e mesma tabela de regras
// produzem sempre o mesmo resultado.
func (m *Matcher) Match(utterance string) string {
	lower := strings.ToLower(utterance)

	if cmd := m.matchRules(lower); cmd != "" {
		return cmd
	}
	return m.extractQuoted(utterance, lower)
}

// matchRules percorre as regras em ordem e retorna o comando da primeira
// regra resolvida que casar. Regras sem comando são reconhecidas mas puladas:
// documentam perguntas que exigem desambiguação e não podem disparar um
// comando não relacionado.
func (m *Matcher) matchRules(lower string) string {
	for _, rule := range m.rules {
		if !ruleMatches(rule, lower) {
			continue
		}
		if rule.Command == "" {
			m.logger.Debug("Regra de intenção exige desambiguação, ignorando",
				zap.Strings("terms", rule.Terms))
			continue
		}
		m.logger.Info("Pergunta sobre estado da infraestrutura detectada",
			zap.Strings("terms", rule.Terms),
			zap.String("command", rule.Command))
		return rule.Command
	}
	return ""
}

func ruleMatches(rule Rule, lower string) bool {
	for _, term := range rule.Terms {
		if !strings.Contains(lower, strings.ToLower(term)) {
			return false
		}
	}
	return len(rule.Terms) > 0
}

// extractQuoted procura comandos citados explicitamente (crases ou aspas)
// quando a mensagem contém uma palavra de ação e menciona uma ferramenta
// confiável. O primeiro trecho extraído que passar na allow-list vence.
func (m *Matcher) extractQuoted(utterance, lower string) string {
	wantsExecution := false
	for _, kw := range actionKeywords {
		if strings.Contains(lower, kw) {
			wantsExecution = true
			break
		}
	}
	if !wantsExecution {
		return ""
	}

	mentionsCLI := false
	for _, tool := range m.validator.Prefixes() {
		if strings.Contains(lower, tool) {
			mentionsCLI = true
			break
		}
	}
	if !mentionsCLI {
		return ""
	}

	for _, pattern := range quotePatterns {
		for _, match := range pattern.FindAllStringSubmatch(utterance, -1) {
			candidate := match[1]
			if m.validator.IsAllowed(candidate) {
				m.logger.Info("Comando explícito detectado na mensagem",
					zap.String("command", candidate))
				return candidate
			}
		}
	}
	return ""
}
