package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	maxResults  int
	noRobots    bool
	llmProvider string
	llmModel    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Verify a single claim against news sources",
	Long: `Verify searches news sources for a claim and derives a verdict:
- Search the configured news provider for the claim
- Extract readable text from every result
- Mine confirming and contradicting lines
- Ask the language model for an analysis
- Classify the analysis as TRUE, FALSE or INCONCLUSIVE

Example:
  claimcheck verify "O Brasil é o maior produtor de café do mundo"
  claimcheck verify "..." --json report.json --md report.md
  claimcheck verify "..." --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (\"-\" for stdout)")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "overall verification timeout")
	addPipelineFlags(verifyCmd)
}

// addPipelineFlags registers the flags shared by verify, batch and serve
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&maxResults, "max-results", 5, "maximum number of sources to consult")
	cmd.Flags().BoolVar(&noRobots, "no-robots", false, "do not consult robots.txt before extracting sources")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "groq", "LLM provider (groq, openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

// buildConfig loads configuration and applies the flags the user set
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-results") {
		cfg.Search.MaxResults = maxResults
	}
	if flags.Changed("no-robots") {
		cfg.Extract.RespectRobots = !noRobots
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
		// The configured model belongs to the previous provider
		if !flags.Changed("llm-model") {
			cfg.LLM.Model = ""
		}
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}

	return cfg, nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	claim := strings.TrimSpace(strings.Join(args, " "))
	if claim == "" {
		return pipeline.ErrEmptyClaim
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Timeout:   %v\n", timeout)
		fmt.Fprintf(os.Stderr, "LLM:       %s\n", llmLabel(cfg.LLM))
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Searching and analysing sources...\n")
	report, err := p.VerifyReport(ctx, claim)
	if err != nil {
		return describeError(err)
	}

	pipeline.RenderSummary(os.Stderr, report)
	fmt.Fprintln(os.Stderr)

	if outJSON == "" && outMD == "" {
		return pipeline.RenderJSON(os.Stdout, report)
	}

	if outJSON == "-" {
		if err := pipeline.RenderJSON(os.Stdout, report); err != nil {
			return err
		}
	} else if outJSON != "" {
		if err := pipeline.WriteFile(outJSON, report, pipeline.RenderJSON); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ JSON report: %s\n", outJSON)
	}

	if outMD != "" {
		if err := pipeline.WriteFile(outMD, report, pipeline.RenderMarkdown); err != nil {
			return fmt.Errorf("write Markdown report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Markdown report: %s\n", outMD)
	}

	return nil
}

// describeError turns fatal pipeline errors into user-facing messages
func describeError(err error) error {
	var retrievalErr *model.RetrievalError
	var synthesisErr *model.SynthesisError

	switch {
	case errors.Is(err, model.ErrNoSources):
		return fmt.Errorf("no sources found for this claim; try rephrasing it: %w", err)
	case errors.As(err, &retrievalErr):
		return fmt.Errorf("source search failed: %w", err)
	case errors.As(err, &synthesisErr):
		return fmt.Errorf("analysis failed, check the LLM provider and API key: %w", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("verification timed out after %v: %w", timeout, err)
	default:
		return err
	}
}

// llmLabel formats provider/model, filling in the provider's default model
func llmLabel(cfg model.LLMConfig) string {
	name := cfg.Model
	if name == "" {
		name = llm.DefaultModel(cfg.Provider)
	}
	return cfg.Provider + "/" + name
}
