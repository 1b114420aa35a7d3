// Package pipeline provides the high-level orchestration for analyzing a
// batch of uploaded CV documents: filter, extract, score, and rank.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-analyzer/internal/classify"
	"github.com/jonathan/cv-analyzer/internal/extract"
	"github.com/jonathan/cv-analyzer/internal/ranking"
	"github.com/jonathan/cv-analyzer/internal/scoring"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// DefaultConcurrency bounds the per-document fan-out. Documents are
// independent, so extraction and scoring parallelize freely.
const DefaultConcurrency = 4

// ExtractFunc maps a document to its plain text. It exists so tests can
// substitute extraction without real PDF/DOCX fixtures.
type ExtractFunc func(types.Document) (string, error)

// Options holds configuration for running the analysis pipeline.
type Options struct {
	Classifier  classify.Client
	Weights     scoring.Weights
	MaxTokens   int
	Concurrency int
	Extract     ExtractFunc // defaults to extract.Text
	Logger      *zap.Logger
}

// Result is the outcome of one batch analysis. Ranked is nil when no
// candidate survived filtering and scoring; that is the neutral
// "no candidates" state, not an error.
type Result struct {
	Ranked  *types.RankedSet
	Skipped []types.SkippedFile
	Failed  []types.FailedFile
}

// candidateOutcome holds the per-document result of the fan-out stage,
// indexed by upload position so join preserves order.
type candidateOutcome struct {
	result types.CandidateResult
	failed *types.FailedFile
}

// Run analyzes a batch of uploaded documents. Each candidate's extraction
// and scoring runs in its own failure boundary: one bad document is reported
// in Result.Failed and never aborts the rest of the batch.
func Run(ctx context.Context, docs []types.Document, opts Options) (*Result, error) {
	if opts.Classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if opts.Extract == nil {
		opts.Extract = extract.Text
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	scorer, err := scoring.NewScorer(opts.Classifier, opts.Weights, opts.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to create scorer: %w", err)
	}

	// Filter out unsupported media types up front, keeping a per-file
	// warning instead of dropping them silently.
	accepted := make([]types.Document, 0, len(docs))
	skipped := make([]types.SkippedFile, 0)
	for _, doc := range docs {
		switch doc.MediaType {
		case types.MediaTypePDF, types.MediaTypeDOCX:
			accepted = append(accepted, doc)
		default:
			opts.Logger.Warn("skipping unsupported document",
				zap.String("file", doc.Name),
				zap.String("media_type", doc.MediaType))
			skipped = append(skipped, types.SkippedFile{
				FileName: doc.Name,
				Reason:   fmt.Sprintf("unsupported media type %q", doc.MediaType),
			})
		}
	}

	outcomes := make([]candidateOutcome, len(accepted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, doc := range accepted {
		g.Go(func() error {
			outcomes[i] = analyzeDocument(gctx, doc, scorer, opts)
			return nil
		})
	}
	// Goroutines never return errors; failures are isolated per candidate.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Join in upload order.
	results := make([]types.CandidateResult, 0, len(accepted))
	failed := make([]types.FailedFile, 0)
	for _, outcome := range outcomes {
		if outcome.failed != nil {
			failed = append(failed, *outcome.failed)
			continue
		}
		results = append(results, outcome.result)
	}

	ranked, err := ranking.Rank(results)
	if err != nil {
		// Empty batch degrades to the neutral state.
		ranked = nil
	}

	return &Result{Ranked: ranked, Skipped: skipped, Failed: failed}, nil
}

// analyzeDocument runs one candidate's extract+score inside its own failure
// boundary.
func analyzeDocument(ctx context.Context, doc types.Document, scorer *scoring.Scorer, opts Options) candidateOutcome {
	text, err := opts.Extract(doc)
	if err != nil {
		opts.Logger.Warn("extraction failed",
			zap.String("file", doc.Name),
			zap.Error(err))
		return candidateOutcome{failed: &types.FailedFile{
			FileName: doc.Name,
			Stage:    "extract",
			Reason:   err.Error(),
		}}
	}

	result, err := scorer.Score(ctx, doc.Name, text)
	if err != nil {
		opts.Logger.Warn("classification failed",
			zap.String("file", doc.Name),
			zap.Error(err))
		return candidateOutcome{failed: &types.FailedFile{
			FileName: doc.Name,
			Stage:    "classify",
			Reason:   err.Error(),
		}}
	}

	opts.Logger.Debug("candidate scored",
		zap.String("file", doc.Name),
		zap.Float64("total", result.TotalScore))
	return candidateOutcome{result: result}
}
