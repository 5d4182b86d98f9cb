package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Verifier verifies a single claim and reports the outcome
type Verifier interface {
	VerifyReport(ctx context.Context, claim string) (*model.Report, error)
}

// ClaimJob represents one claim verification
type ClaimJob struct {
	Index    int
	Claim    string
	Verifier Verifier
}

// Execute executes the verification
func (j *ClaimJob) Execute(ctx context.Context) Result {
	report, err := j.Verifier.VerifyReport(ctx, j.Claim)
	return &ClaimResult{
		Index:  j.Index,
		Claim:  j.Claim,
		Report: report,
		Error:  err,
	}
}

// ClaimResult represents the result of a claim verification
type ClaimResult struct {
	Index  int
	Claim  string
	Report *model.Report
	Error  error
}

// GetError returns the error from the verification
func (r *ClaimResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many claims concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessClaims verifies claims concurrently and returns results in input order.
// A failed claim carries its error and never aborts the batch.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*ClaimResult {
	if len(claims) == 0 {
		return []*ClaimResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, claim := range claims {
		pool.Submit(&ClaimJob{
			Index:    i,
			Claim:    claim,
			Verifier: b.verifier,
		})
	}

	ordered := make([]*ClaimResult, len(claims))
	for _, result := range pool.Wait() {
		r := result.(*ClaimResult)
		ordered[r.Index] = r
	}

	// Jobs never submitted because ctx was cancelled
	for i, r := range ordered {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			ordered[i] = &ClaimResult{Index: i, Claim: claims[i], Error: err}
		}
	}

	return ordered
}

// ProcessFile reads claims from a file and verifies them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ClaimResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file (one per line); "-" reads stdin
func ReadClaimsFromFile(filePath string) ([]string, error) {
	if filePath == "-" {
		return ReadClaims(os.Stdin)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadClaims(file)
}

// ReadClaims reads one claim per line, skipping blank lines, # comments and duplicates
func ReadClaims(r io.Reader) ([]string, error) {
	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
