package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stage names the four sequential pipeline phases.
type Stage string

const (
	StageIntake          Stage = "intake"
	StageGapAnalysis     Stage = "gap_analysis"
	StageRecommendations Stage = "recommendations"
	StagePlan            Stage = "plan"
)

var AllStages = []Stage{StageIntake, StageGapAnalysis, StageRecommendations, StagePlan}

// StageStatus distinguishes a stage that ran from one that failed locally
// and from one that was never attempted because a prerequisite was absent.
type StageStatus string

const (
	StageOK      StageStatus = "ok"
	StageFailed  StageStatus = "failed"
	StageSkipped StageStatus = "skipped"
)

// StageRecord is the per-stage outcome entry on a run.
type StageRecord struct {
	Stage  Stage       `json:"stage"`
	Status StageStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// PipelineRunResult holds everything one variant's pipeline execution
// produced. Created fresh per variant, immutable once the run completes.
// A stage that failed or was skipped leaves its output nil; the run itself
// is still a success at the batch level.
type PipelineRunResult struct {
	VariantID   uuid.UUID   `json:"variant_id"`
	VariantType VariantType `json:"variant_type"`

	Intake          *IntakeSignals     `json:"intake,omitempty"`
	Gaps            *GapAnalysis       `json:"gaps,omitempty"`
	Recommendations *RecommendationSet `json:"recommendations,omitempty"`
	Plan            *ActionPlan        `json:"plan,omitempty"`

	RawResponses map[Stage]string `json:"raw_responses,omitempty"`
	Stages       []StageRecord    `json:"stages"`
	Errors       []string         `json:"errors,omitempty"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// StageStatusFor returns the recorded status for a stage, defaulting to
// skipped when no record exists.
func (r *PipelineRunResult) StageStatusFor(stage Stage) StageStatus {
	for _, rec := range r.Stages {
		if rec.Stage == stage {
			return rec.Status
		}
	}
	return StageSkipped
}

// AttributionCheck records one per-skill attribution-direction verdict for a
// variant run against the baseline.
type AttributionCheck struct {
	Skill      Skill           `json:"skill"`
	Baseline   AttributionType `json:"baseline"`
	Variant    AttributionType `json:"variant"`
	Consistent bool            `json:"consistent"`
	Note       string          `json:"note,omitempty"`
}

// CitationCheck records one evidence-source citation verification.
type CitationCheck struct {
	Stage    Stage          `json:"stage"`
	Skill    Skill          `json:"skill,omitempty"`
	Source   EvidenceSource `json:"source"`
	Verified bool           `json:"verified"`
}

// PlanCheck records one plan-appropriateness verdict.
type PlanCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// ComparisonResult is one variant run diffed against the batch baseline.
// BaselineVariantID is nil for the baseline's own entry.
type ComparisonResult struct {
	VariantID         uuid.UUID   `json:"variant_id"`
	VariantType       VariantType `json:"variant_type"`
	BaselineVariantID *uuid.UUID  `json:"baseline_variant_id,omitempty"`

	AttributionChecks   []AttributionCheck `json:"attribution_checks,omitempty"`
	HallucinationChecks []CitationCheck    `json:"hallucination_checks,omitempty"`
	PlanChecks          []PlanCheck        `json:"plan_checks,omitempty"`

	RecommendationOverlap float64 `json:"recommendation_overlap,omitempty"`
	RecommendationStable  *bool   `json:"recommendation_stable,omitempty"`
}

// AggregateMetrics holds the four batch-level rates. Attribution
// consistency, recommendation stability, and plan appropriateness are
// pass fractions where 1.0 is the good outcome. HallucinationRate runs
// the other way: the fraction of evaluated citations that were
// unverified, so 0.0 is the good outcome.
type AggregateMetrics struct {
	AttributionConsistencyRate  float64 `json:"attribution_consistency_rate"`
	HallucinationRate           float64 `json:"hallucination_rate"`
	RecommendationStabilityRate float64 `json:"recommendation_stability_rate"`
	PlanAppropriatenessRate     float64 `json:"plan_appropriateness_rate"`

	EvaluatedAttributionChecks int `json:"evaluated_attribution_checks"`
	EvaluatedCitations         int `json:"evaluated_citations"`
	EvaluatedStabilityChecks   int `json:"evaluated_stability_checks"`
	EvaluatedPlanChecks        int `json:"evaluated_plan_checks"`
}

// BatchReport is the batch-run interface's return payload.
type BatchReport struct {
	TotalRuns   int                `json:"total_runs"`
	Comparisons []ComparisonResult `json:"comparisons"`
	Metrics     AggregateMetrics   `json:"metrics"`
	Elapsed     time.Duration      `json:"-"`
	ElapsedMS   int64              `json:"elapsed_ms"`
}
