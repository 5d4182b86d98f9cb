package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/pipeline"
	"github.com/ppiankov/claimcheck/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies many claims concurrently:
- Read claims from the input file (one per line, # starts a comment)
- Duplicate and blank lines are skipped
- Claims are verified in parallel with a configurable worker count
- A JSON and a Markdown report is written for every claim

Use "-" to read claims from stdin.

Example:
  claimcheck batch claims.txt
  claimcheck batch claims.txt --concurrency 4 --output-dir ./reports
  cat claims.txt | claimcheck batch - --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "claims verified in parallel (default: concurrency.batch_workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimcheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 20*time.Minute, "total timeout for batch processing")
	addPipelineFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.BatchWorkers = concurrency
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  claimcheck Batch Verification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.BatchWorkers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "  LLM:          %s\n", llmLabel(cfg.LLM))
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)

	fmt.Fprintf(os.Stderr, "⚙️  Verifying claims...\n\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	counts := make(map[model.VerdictLabel]int)
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ [%d] %s: %v\n", result.Index+1, result.Claim, describeError(result.Error))
			continue
		}

		base := filepath.Join(outputDir, reportFilename(result.Index, result.Claim))
		if err := pipeline.WriteFile(base+".json", result.Report, pipeline.RenderJSON); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ [%d] %s: failed to write JSON: %v\n", result.Index+1, result.Claim, err)
			continue
		}
		if err := pipeline.WriteFile(base+".md", result.Report, pipeline.RenderMarkdown); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ [%d] %s: failed to write Markdown: %v\n", result.Index+1, result.Claim, err)
			continue
		}

		counts[result.Report.Verdict.Label]++
		fmt.Fprintf(os.Stderr, "✓ [%d] %s → %s\n", result.Index+1, result.Claim, result.Report.Verdict.Label)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:         %d claims\n", len(results))
	fmt.Fprintf(os.Stderr, "  True:          %d\n", counts[model.VerdictTrue])
	fmt.Fprintf(os.Stderr, "  False:         %d\n", counts[model.VerdictFalse])
	fmt.Fprintf(os.Stderr, "  Inconclusive:  %d\n", counts[model.VerdictInconclusive])
	fmt.Fprintf(os.Stderr, "  Failures:      %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:        %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// reportFilename builds "NNN-slug" from the claim's input position and text
func reportFilename(index int, claim string) string {
	slug := slugify(claim, 60)
	if slug == "" {
		return fmt.Sprintf("%03d", index+1)
	}
	return fmt.Sprintf("%03d-%s", index+1, slug)
}

// slugify keeps letters and digits, lowercased, joined by single dashes
func slugify(s string, maxRunes int) string {
	var b strings.Builder
	n := 0
	dash := false

	for _, r := range strings.ToLower(s) {
		if n >= maxRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
				n++
			}
			b.WriteRune(r)
			n++
			dash = false
			continue
		}
		dash = true
	}

	return strings.TrimSuffix(b.String(), "-")
}
