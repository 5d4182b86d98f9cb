package llm

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ppiankov/claimcheck/internal/model"
)

// SystemPrompt frames every synthesis request
const SystemPrompt = "Você é um verificador de fatos rigoroso. Baseie-se apenas nas fontes fornecidas e responda em português."

// emptySlot stands in for a slot with no content
const emptySlot = "(nenhum)"

// promptTemplate has six named slots: claim, summaries, excerpts, URLs,
// confirming and contradicting fragments
var promptTemplate = template.Must(template.New("verify").Parse(`Analise a veracidade da seguinte afirmação com base nas fontes encontradas.

Afirmação: {{.Claim}}

Resultados da busca:
{{.Summaries}}

Trechos relevantes das fontes:
{{.Excerpts}}

URLs consultadas:
{{.URLs}}

Evidências que confirmam:
{{.Confirming}}

Evidências que contradizem:
{{.Contradicting}}

Responda exatamente nas seções abaixo:

**Análise:** compare o que cada fonte diz sobre a afirmação, citando as URLs.

**Contradições:** aponte divergências entre as fontes ou escreva "Nenhuma contradição encontrada".

**Conclusão Final:** diga claramente se a afirmação é verdadeira, é falsa ou se não há evidências suficientes.

**Nível de Confiança:** alto, médio ou baixo, com uma frase de justificativa.
`))

// PromptSlots are the values substituted into the synthesis prompt
type PromptSlots struct {
	Claim         string
	Summaries     string
	Excerpts      string
	URLs          string
	Confirming    string
	Contradicting string
}

// SlotsFromBundle fills the six prompt slots from a verification bundle.
// Full extracted contents are kept on the bundle for traceability and never sent.
func SlotsFromBundle(bundle model.VerificationBundle) PromptSlots {
	return PromptSlots{
		Claim:         strings.TrimSpace(bundle.Claim),
		Summaries:     orEmpty(bundle.Summaries),
		Excerpts:      orEmpty(bundle.Excerpts),
		URLs:          orEmpty(bundle.URLs),
		Confirming:    orEmpty(bundle.Confirming),
		Contradicting: orEmpty(bundle.Contradicting),
	}
}

// BuildPrompt renders the synthesis prompt for bundle
func BuildPrompt(bundle model.VerificationBundle) (string, error) {
	var buf strings.Builder
	if err := promptTemplate.Execute(&buf, SlotsFromBundle(bundle)); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

func orEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptySlot
	}
	return s
}
