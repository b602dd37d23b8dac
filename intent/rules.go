package intent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule mapeia um conjunto de termos obrigatórios para um comando canônico.
// Uma regra casa quando todos os termos são substrings (case-insensitive) da
// mensagem do usuário. Command vazio marca uma pergunta reconhecida que
// precisa de contexto adicional (ex: nome do cluster) e nunca executa
// automaticamente.
type Rule struct {
	Terms   []string `yaml:"terms"`
	Command string   `yaml:"command,omitempty"`
}

// DefaultRules retorna a tabela ordenada de regras de intenção para
// perguntas sobre o estado da infraestrutura. A ordem define a precedência:
// a primeira regra que casar com comando resolvido vence.
func DefaultRules() []Rule {
	return []Rule{
		// Contagem/listagem de clusters
		{Terms: []string{"how many", "cluster"}, Command: "rosa list clusters"},
		{Terms: []string{"list", "cluster"}, Command: "rosa list clusters"},
		{Terms: []string{"what cluster", "do i have"}, Command: "rosa list clusters"},
		{Terms: []string{"show", "cluster"}, Command: "rosa list clusters"},
		{Terms: []string{"active cluster"}, Command: "rosa list clusters"},

		// Status de cluster: precisa do nome do cluster, não executa sozinho
		{Terms: []string{"cluster", "ready"}},
		{Terms: []string{"cluster", "status"}},
		{Terms: []string{"deployment", "complete"}},

		// Nodes
		{Terms: []string{"how many", "node"}, Command: "oc get nodes"},
		{Terms: []string{"what node"}, Command: "oc get nodes"},
		{Terms: []string{"list", "node"}, Command: "oc get nodes"},
		{Terms: []string{"show", "node"}, Command: "oc get nodes"},

		// Versões
		{Terms: []string{"what version"}, Command: "rosa list versions --output json"},
		{Terms: []string{"openshift version"}, Command: "oc version"},
		{Terms: []string{"rosa version"}, Command: "rosa version"},

		// Pods/workloads
		{Terms: []string{"what", "running"}, Command: "oc get pods -A"},
		{Terms: []string{"list", "pod"}, Command: "oc get pods -A"},
		{Terms: []string{"show", "pod"}, Command: "oc get pods -A"},

		// Regiões
		{Terms: []string{"what region"}, Command: "rosa list regions"},
		{Terms: []string{"available region"}, Command: "rosa list regions"},
	}
}

// LoadRulesFile carrega uma tabela de regras de um arquivo YAML, permitindo
// customizar as regras sem recompilar.
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o arquivo de regras: %w", err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("erro ao interpretar o arquivo de regras: %w", err)
	}

	for i, r := range rules {
		if len(r.Terms) == 0 {
			return nil, fmt.Errorf("regra %d sem termos obrigatórios", i)
		}
	}
	return rules, nil
}
