package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenlearn/skillaudit/internal/domain"
	"go.uber.org/zap"
)

// RunConfig controls which variant categories a batch generates and whether
// the plan stage runs at all. SkipActionPlan short-circuits the plan stage's
// dependency check entirely, as a batch-wide cost control.
type RunConfig struct {
	RunInjection   bool `json:"run_injection"`
	RunRemoval     bool `json:"run_removal"`
	RunRephrasing  bool `json:"run_rephrasing"`
	SkipActionPlan bool `json:"skip_action_plan"`

	// Workers overrides the batch worker pool size when positive.
	Workers int `json:"workers,omitempty"`
}

// Orchestrator drives the four pipeline stages for one variant, strictly in
// order. Stage failures are local: the error is recorded, the stage's output
// stays nil, and whichever downstream stages remain reachable still run. The
// returned run always reflects the maximal computable subset of stages.
type Orchestrator struct {
	extractor domain.Extractor
	validator *StageValidator
	transform *Transformer
	logger    *zap.Logger
}

func NewOrchestrator(extractor domain.Extractor, validator *StageValidator, transform *Transformer, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		validator: validator,
		transform: transform,
		logger:    logger,
	}
}

// Run executes the pipeline for one variant and assembles its run result.
// It never returns an error: every stage-level failure is absorbed into the
// result per the local-failure policy.
func (o *Orchestrator) Run(ctx context.Context, variant *domain.ProfileVariant, cfg RunConfig) *domain.PipelineRunResult {
	result := &domain.PipelineRunResult{
		VariantID:    variant.ID,
		VariantType:  variant.Type,
		RawResponses: make(map[domain.Stage]string),
		StartedAt:    time.Now(),
	}
	profile := &variant.Profile

	o.runIntake(ctx, profile, result)
	o.runGapAnalysis(ctx, profile, result)
	o.runRecommendations(ctx, profile, result)
	o.runPlan(ctx, profile, result, cfg)

	result.CompletedAt = time.Now()

	o.logger.Debug("pipeline run complete",
		zap.String("variant_id", variant.ID.String()),
		zap.String("variant_type", string(variant.Type)),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("elapsed", result.CompletedAt.Sub(result.StartedAt)))

	return result
}

func (o *Orchestrator) recordOK(result *domain.PipelineRunResult, stage domain.Stage) {
	result.Stages = append(result.Stages, domain.StageRecord{Stage: stage, Status: domain.StageOK})
}

func (o *Orchestrator) recordFailure(result *domain.PipelineRunResult, stage domain.Stage, err error) {
	reason := err.Error()
	result.Stages = append(result.Stages, domain.StageRecord{
		Stage:  stage,
		Status: domain.StageFailed,
		Reason: reason,
	})
	result.Errors = append(result.Errors, fmt.Sprintf("%s failed: %s", stage, reason))
	o.logger.Warn("stage failed",
		zap.String("variant_id", result.VariantID.String()),
		zap.String("stage", string(stage)),
		zap.Error(err))
}

func (o *Orchestrator) recordSkip(result *domain.PipelineRunResult, stage domain.Stage, reason string) {
	result.Stages = append(result.Stages, domain.StageRecord{
		Stage:  stage,
		Status: domain.StageSkipped,
		Reason: reason,
	})
	result.Errors = append(result.Errors, fmt.Sprintf("%s skipped: %s", stage, reason))
}

func (o *Orchestrator) runIntake(ctx context.Context, profile *domain.StudentProfile, result *domain.PipelineRunResult) {
	res, err := o.extractor.ExtractIntake(ctx, profile)
	result.RawResponses[domain.StageIntake] = res.Raw
	if err != nil {
		o.recordFailure(result, domain.StageIntake, err)
		return
	}
	if err := o.validator.ValidateIntake(res.Output); err != nil {
		o.recordFailure(result, domain.StageIntake, err)
		return
	}

	o.transform.ClassifyIntake(res.Output, profile)
	result.Intake = res.Output
	o.recordOK(result, domain.StageIntake)
}

func (o *Orchestrator) runGapAnalysis(ctx context.Context, profile *domain.StudentProfile, result *domain.PipelineRunResult) {
	if result.Intake == nil {
		o.recordSkip(result, domain.StageGapAnalysis, "intake output missing")
		return
	}

	res, err := o.extractor.AnalyzeGaps(ctx, profile, result.Intake)
	result.RawResponses[domain.StageGapAnalysis] = res.Raw
	if err != nil {
		o.recordFailure(result, domain.StageGapAnalysis, err)
		return
	}
	if err := o.validator.ValidateGaps(res.Output); err != nil {
		o.recordFailure(result, domain.StageGapAnalysis, err)
		return
	}

	o.transform.TransformGaps(res.Output, result.Intake, profile)
	result.Gaps = res.Output
	o.recordOK(result, domain.StageGapAnalysis)
}

func (o *Orchestrator) runRecommendations(ctx context.Context, profile *domain.StudentProfile, result *domain.PipelineRunResult) {
	// Gap analysis is optional context here; only intake is required.
	if result.Intake == nil {
		o.recordSkip(result, domain.StageRecommendations, "intake output missing")
		return
	}

	res, err := o.extractor.RecommendOpportunities(ctx, profile, result.Intake, result.Gaps)
	result.RawResponses[domain.StageRecommendations] = res.Raw
	if err != nil {
		o.recordFailure(result, domain.StageRecommendations, err)
		return
	}
	if err := o.validator.ValidateRecommendations(res.Output); err != nil {
		o.recordFailure(result, domain.StageRecommendations, err)
		return
	}

	o.transform.AnnotateRecommendations(res.Output)
	result.Recommendations = res.Output
	o.recordOK(result, domain.StageRecommendations)
}

func (o *Orchestrator) runPlan(ctx context.Context, profile *domain.StudentProfile, result *domain.PipelineRunResult, cfg RunConfig) {
	if cfg.SkipActionPlan {
		o.recordSkip(result, domain.StagePlan, "action plan disabled for this batch")
		return
	}

	var missing []string
	if result.Intake == nil {
		missing = append(missing, string(domain.StageIntake))
	}
	if result.Gaps == nil {
		missing = append(missing, string(domain.StageGapAnalysis))
	}
	if result.Recommendations == nil {
		missing = append(missing, string(domain.StageRecommendations))
	}
	if len(missing) > 0 {
		o.recordSkip(result, domain.StagePlan, fmt.Sprintf("prerequisite output missing: %v", missing))
		return
	}

	res, err := o.extractor.GeneratePlan(ctx, profile, result.Intake, result.Gaps, result.Recommendations)
	result.RawResponses[domain.StagePlan] = res.Raw
	if err != nil {
		o.recordFailure(result, domain.StagePlan, err)
		return
	}
	if err := o.validator.ValidatePlan(res.Output); err != nil {
		o.recordFailure(result, domain.StagePlan, err)
		return
	}

	o.transform.CapPlan(res.Output)
	result.Plan = res.Output
	o.recordOK(result, domain.StagePlan)
}
