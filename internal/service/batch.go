package service

import (
	"context"
	"errors"
	"time"

	"github.com/lumenlearn/skillaudit/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyBatch = errors.New("batch contains no profiles")

// DefaultBatchWorkers bounds concurrent variant runs when the run config
// does not override it. Sized for typical extractor rate limits.
const DefaultBatchWorkers = 4

// BatchService drives a whole batch: variant generation, baseline-first
// execution, bounded-parallel variant runs, comparison, and aggregation.
//
// Each profile's original variant runs first and becomes that profile's
// baseline; the baseline result is read-only afterward. Non-original
// variants share no mutable state and run concurrently. Cancelling the
// context stops in-flight runs without touching completed baselines.
type BatchService struct {
	generator    *VariantGenerator
	orchestrator *Orchestrator
	comparator   *Comparator
	logger       *zap.Logger

	MaxWorkers int
}

func NewBatchService(generator *VariantGenerator, orchestrator *Orchestrator, comparator *Comparator, logger *zap.Logger) *BatchService {
	return &BatchService{
		generator:    generator,
		orchestrator: orchestrator,
		comparator:   comparator,
		logger:       logger,
		MaxWorkers:   DefaultBatchWorkers,
	}
}

type profileBatchItem struct {
	variants []domain.ProfileVariant
	baseline *domain.PipelineRunResult
}

// Run executes the full batch and assembles its report. Only an empty batch
// or a cancelled context fail hard; individual variant failures just
// contribute fewer data points to the metrics.
func (s *BatchService) Run(ctx context.Context, profiles []domain.StudentProfile, cfg RunConfig) (*domain.BatchReport, error) {
	if len(profiles) == 0 {
		return nil, ErrEmptyBatch
	}

	workers := cfg.Workers
	if workers <= 0 || workers > s.MaxWorkers {
		workers = s.MaxWorkers
	}

	start := time.Now()
	s.logger.Info("batch started",
		zap.Int("profiles", len(profiles)),
		zap.Int("workers", workers),
		zap.Bool("skip_action_plan", cfg.SkipActionPlan))

	// Baselines run first, sequentially: every later comparison reads them.
	items := make([]profileBatchItem, len(profiles))
	totalRuns := 0
	for i := range profiles {
		variants := s.generator.Generate(&profiles[i], cfg)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		baseline := s.orchestrator.Run(ctx, &variants[0], cfg)
		items[i] = profileBatchItem{variants: variants, baseline: baseline}
		totalRuns += len(variants)
	}

	// Comparison slots are pre-assigned so concurrent runs write disjoint
	// indexes and report order stays deterministic.
	comparisons := make([]domain.ComparisonResult, totalRuns)
	slot := 0
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range items {
		item := &items[i]
		comparisons[slot] = s.comparator.Compare(&item.variants[0], item.baseline, nil)
		slot++

		for v := 1; v < len(item.variants); v++ {
			variant := &item.variants[v]
			idx := slot
			slot++
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				run := s.orchestrator.Run(gctx, variant, cfg)
				comparisons[idx] = s.comparator.Compare(variant, run, item.baseline)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := s.comparator.Aggregate(comparisons)
	elapsed := time.Since(start)

	s.logger.Info("batch complete",
		zap.Int("total_runs", totalRuns),
		zap.Duration("elapsed", elapsed),
		zap.Float64("attribution_consistency", metrics.AttributionConsistencyRate),
		zap.Float64("hallucination_rate", metrics.HallucinationRate))

	return &domain.BatchReport{
		TotalRuns:   totalRuns,
		Comparisons: comparisons,
		Metrics:     metrics,
		Elapsed:     elapsed,
		ElapsedMS:   elapsed.Milliseconds(),
	}, nil
}

// AnalyzeProfile runs a single profile's original variant through the
// pipeline without perturbation, for the one-off analysis endpoint.
func (s *BatchService) AnalyzeProfile(ctx context.Context, profile *domain.StudentProfile, cfg RunConfig) (*domain.PipelineRunResult, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	variants := s.generator.Generate(profile, RunConfig{SkipActionPlan: cfg.SkipActionPlan})
	return s.orchestrator.Run(ctx, &variants[0], cfg), nil
}
