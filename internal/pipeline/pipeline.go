// Package pipeline wires source retrieval, extraction, evidence mining,
// synthesis and classification into one verification request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/claimcheck/internal/aggregate"
	"github.com/ppiankov/claimcheck/internal/authority"
	"github.com/ppiankov/claimcheck/internal/classify"
	"github.com/ppiankov/claimcheck/internal/extract"
	"github.com/ppiankov/claimcheck/internal/fetch"
	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/search"
	"github.com/ppiankov/claimcheck/internal/util"
	"github.com/ppiankov/claimcheck/internal/worker"
)

// ErrEmptyClaim is returned for a blank claim
var ErrEmptyClaim = errors.New("claim must not be empty")

// Finder retrieves candidate sources for a claim
type Finder interface {
	Find(ctx context.Context, claim string, maxResults int) ([]model.SourceResult, error)
}

// ContentExtractor resolves readable text for a URL; nil means nothing usable
type ContentExtractor interface {
	Extract(ctx context.Context, rawURL string) *model.ExtractedContent
}

// Synthesizer produces analysis text for a verification bundle
type Synthesizer interface {
	Synthesize(ctx context.Context, bundle model.VerificationBundle) (string, error)
	ProviderName() string
	Model() string
}

// Components are the stages a pipeline runs
type Components struct {
	Finder      Finder
	Extractor   ContentExtractor
	Miner       *extract.Miner
	Synthesizer Synthesizer
	Classifier  *classify.Classifier
	Authority   *authority.Classifier // Optional source tiering
}

// Pipeline orchestrates the complete verification process
type Pipeline struct {
	finder         Finder
	extractor      ContentExtractor
	miner          *extract.Miner
	synthesizer    Synthesizer
	classifier     *classify.Classifier
	authority      *authority.Classifier
	maxResults     int
	extractWorkers int
}

// NewPipeline creates a pipeline backed by the real search provider,
// extraction strategies and LLM provider described by cfg
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	fetcher := fetch.NewFetcher(cfg.HTTP).WithLimiter(limiter)

	finder, err := search.NewFinder(fetcher, cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	strategies, err := extract.NewStrategies(cfg.Extract.Strategies, fetcher)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	var robots extract.RobotsChecker
	if cfg.Extract.RespectRobots {
		robots = util.NewRobotsChecker(fetcher.UserAgent(), cfg.HTTP.Timeout)
	}

	llmConfig := llm.ConfigFromModel(cfg.LLM, cfg.HTTP)
	provider, err := llm.NewProvider(llmConfig)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}

	return NewWithComponents(Components{
		Finder:      finder,
		Extractor:   extract.NewExtractor(strategies, robots, cfg.Extract.MaxTextBytes),
		Miner:       extract.NewMiner(cfg.Evidence),
		Synthesizer: llm.NewSynthesizer(provider, llmConfig),
		Classifier:  classify.NewClassifier(cfg.Classifier),
		Authority:   authority.NewClassifier(&cfg.Authority),
	}, cfg), nil
}

// NewWithComponents creates a pipeline over caller-supplied stages
func NewWithComponents(c Components, cfg *model.Config) *Pipeline {
	return &Pipeline{
		finder:         c.Finder,
		extractor:      c.Extractor,
		miner:          c.Miner,
		synthesizer:    c.Synthesizer,
		classifier:     c.Classifier,
		authority:      c.Authority,
		maxResults:     cfg.Search.MaxResults,
		extractWorkers: cfg.Concurrency.ExtractWorkers,
	}
}

// Result is the outcome of one verification request
type Result struct {
	Claim          string
	Sources        []model.SourceResult // Search provider order, excerpts set
	Contents       []*model.ExtractedContent
	Bundle         model.VerificationBundle
	Verdict        model.Verdict
	ExtractedCount int
}

// Verify runs the full pipeline for claim.
// Retrieval failures return *model.RetrievalError and synthesis failures
// *model.SynthesisError; per-source extraction failures never abort the request.
func (p *Pipeline) Verify(ctx context.Context, claim string) (*Result, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, ErrEmptyClaim
	}

	// 1. Find sources
	sources, err := p.finder.Find(ctx, claim, p.maxResults)
	if err != nil {
		var retrievalErr *model.RetrievalError
		if errors.As(err, &retrievalErr) {
			return nil, err
		}
		return nil, &model.RetrievalError{Claim: claim, Err: err}
	}
	if len(sources) == 0 {
		return nil, &model.RetrievalError{Claim: claim, Err: model.ErrNoSources}
	}
	slog.Info("sources found", "claim", claim, "count", len(sources))
	if p.authority != nil {
		p.authority.Annotate(sources)
	}

	// 2. Extract every source, keeping provider order
	contents := p.extractAll(ctx, sources)

	// 3. Mine evidence
	extracted := 0
	for _, content := range contents {
		if content == nil {
			continue
		}
		extracted++
		p.miner.MineInto(content, claim)
	}
	slog.Info("content extracted", "claim", claim, "extracted", extracted, "sources", len(sources))

	// 4. Aggregate
	bundle := aggregate.Aggregate(claim, sources, contents)
	slog.Debug("bundle aggregated", "claim", claim, "excerpts", bundle.ExcerptCount())

	// 5. Synthesize
	analysis, err := p.synthesizer.Synthesize(ctx, bundle)
	if err != nil {
		var synthErr *model.SynthesisError
		if errors.As(err, &synthErr) {
			return nil, err
		}
		return nil, &model.SynthesisError{Claim: claim, Err: err}
	}

	// 6. Classify
	verdict := p.classifier.Classify(analysis)
	slog.Info("verdict", "claim", claim, "label", verdict.Label, "rule", verdict.Rule)

	return &Result{
		Claim:          claim,
		Sources:        bundle.Sources,
		Contents:       contents,
		Bundle:         bundle,
		Verdict:        verdict,
		ExtractedCount: extracted,
	}, nil
}

// VerifyReport runs Verify and wraps the outcome in a report
func (p *Pipeline) VerifyReport(ctx context.Context, claim string) (*model.Report, error) {
	result, err := p.Verify(ctx, claim)
	if err != nil {
		return nil, err
	}
	return p.BuildReport(result), nil
}

// BuildReport converts a pipeline result into a report
func (p *Pipeline) BuildReport(result *Result) *model.Report {
	return &model.Report{
		ID:             uuid.NewString(),
		Claim:          result.Claim,
		CheckedAt:      time.Now().UTC(),
		Sources:        result.Sources,
		ExtractedCount: result.ExtractedCount,
		Verdict:        result.Verdict,
		Provider:       p.synthesizer.ProviderName(),
		Model:          p.synthesizer.Model(),
	}
}

// extractJob resolves content for one source
type extractJob struct {
	index     int
	url       string
	extractor ContentExtractor
}

func (j *extractJob) Execute(ctx context.Context) worker.Result {
	return &extractResult{index: j.index, content: j.extractor.Extract(ctx, j.url)}
}

type extractResult struct {
	index   int
	content *model.ExtractedContent
}

// GetError is always nil: a failed extraction is a nil content
func (r *extractResult) GetError() error {
	return nil
}

// extractAll fans extraction out over a bounded pool.
// contents[i] belongs to sources[i].
func (p *Pipeline) extractAll(ctx context.Context, sources []model.SourceResult) []*model.ExtractedContent {
	pool := worker.NewPool(ctx, p.extractWorkers)
	pool.Start()

	for i, src := range sources {
		pool.Submit(&extractJob{index: i, url: src.URL, extractor: p.extractor})
	}

	contents := make([]*model.ExtractedContent, len(sources))
	for _, result := range pool.Wait() {
		r := result.(*extractResult)
		contents[r.index] = r.content
	}
	return contents
}
