package llm

import (
	"encoding/json"
	"regexp"
)

// cmdDirectivePattern é a sonda estrutural barata: detecta respostas que se
// parecem com um objeto JSON contendo uma chave "cmd" com uma lista — um
// artefato de alucinação que o modelo nunca deveria emitir como texto para o
// usuário. A sonda é deliberadamente frouxa para tolerar variações de
// formatação; a confirmação fica por conta do parse estrito.
var cmdDirectivePattern = regexp.MustCompile(`\{\s*["']cmd["'\s]*:\s*\[`)

// sanitizerFallback substitui a resposta quando a diretiva vazada é
// confirmada.
const sanitizerFallback = `I apologize, but I encountered an issue with my response format. Let me try again.

For ROSA CLI version, you can run:
` + "```bash\nrosa version\n```" + `

Please ask me again if you'd like me to check this for you.`

// SanitizeResponse filtra respostas do modelo que vazaram uma diretiva de
// comando estruturada. Duas fases: a sonda frouxa limita quantas vezes o
// parse estrito roda; só quando o parse confirma um objeto JSON com um array
// "cmd" a resposta é trocada pela mensagem segura. Qualquer outra resposta
// volta inalterada.
func SanitizeResponse(response string) string {
	if !cmdDirectivePattern.MatchString(response) {
		return response
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		// Falso positivo da sonda: não é JSON válido
		return response
	}
	if _, ok := parsed["cmd"].([]interface{}); !ok {
		return response
	}

	return sanitizerFallback
}
