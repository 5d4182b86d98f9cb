package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

// RenderJSON writes the report as indented JSON
func RenderJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func RenderMarkdown(w io.Writer, report *model.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Verificação: %s\n\n", report.Claim)
	fmt.Fprintf(&b, "**Veredito:** %s\n\n", verdictLabel(report.Verdict.Label))
	fmt.Fprintf(&b, "- ID: `%s`\n", report.ID)
	fmt.Fprintf(&b, "- Verificado em: %s\n", report.CheckedAt.Format("2006-01-02 15:04:05 MST"))
	if report.Provider != "" {
		fmt.Fprintf(&b, "- Modelo: %s %s\n", report.Provider, report.Model)
	}
	fmt.Fprintf(&b, "- Fontes com conteúdo extraído: %d de %d\n\n", report.ExtractedCount, len(report.Sources))

	b.WriteString("## Fontes Consultadas\n\n")
	for i, src := range report.Sources {
		fmt.Fprintf(&b, "### Fonte %d: %s\n\n", i+1, src.Title)
		if src.SourceName != "" {
			fmt.Fprintf(&b, "- **Fonte:** %s\n", src.SourceName)
		}
		fmt.Fprintf(&b, "- **Data:** %s\n", src.DateOr("não informada"))
		if src.Authority != model.TierUnknown {
			fmt.Fprintf(&b, "- **Autoridade:** %s\n", authorityLabel(src.Authority))
		}
		fmt.Fprintf(&b, "- **URL:** %s\n", src.URL)
		if src.Snippet != "" {
			fmt.Fprintf(&b, "- **Resumo:** %s\n", src.Snippet)
		}
		if src.HasExcerpt() {
			fmt.Fprintf(&b, "\n> %s\n", *src.Excerpt)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Análise\n\n")
	b.WriteString(strings.TrimSpace(report.Verdict.Analysis))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary writes a short human-readable summary
func RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\nClaim:   %s\n", report.Claim)
	fmt.Fprintf(w, "Verdict: %s", report.Verdict.Label)
	if report.Verdict.Rule != "" {
		fmt.Fprintf(w, " (%s)", report.Verdict.Rule)
	}
	fmt.Fprintf(w, "\nSources: %d found, %d extracted\n", len(report.Sources), report.ExtractedCount)
	for i, src := range report.Sources {
		marker := " "
		if src.HasExcerpt() {
			marker = "✓"
		}
		fmt.Fprintf(w, "  %s %d. %s\n       %s\n", marker, i+1, src.Title, src.URL)
	}
}

// WriteFile renders report into path
func WriteFile(path string, report *model.Report, render func(io.Writer, *model.Report) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := render(f, report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func verdictLabel(label model.VerdictLabel) string {
	switch label {
	case model.VerdictTrue:
		return "VERDADEIRO"
	case model.VerdictFalse:
		return "FALSO"
	default:
		return "INCONCLUSIVO"
	}
}

func authorityLabel(tier model.AuthorityTier) string {
	switch tier {
	case model.TierPrimary:
		return "primária (órgão oficial ou agência de checagem)"
	case model.TierSecondary:
		return "secundária (imprensa estabelecida)"
	default:
		return "terciária"
	}
}
