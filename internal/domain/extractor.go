package domain

import "context"

// StageResult pairs a stage's parsed payload with the raw response text it
// was decoded from, kept for the run's snapshot record.
type StageResult[T any] struct {
	Output *T
	Raw    string
}

// Extractor is the non-deterministic text-to-structure collaborator. Each
// method is one blocking external call; outputs must still pass the stage
// validator before the responsible-output transform trusts them.
type Extractor interface {
	ExtractIntake(ctx context.Context, profile *StudentProfile) (StageResult[IntakeSignals], error)
	AnalyzeGaps(ctx context.Context, profile *StudentProfile, intake *IntakeSignals) (StageResult[GapAnalysis], error)
	RecommendOpportunities(ctx context.Context, profile *StudentProfile, intake *IntakeSignals, gaps *GapAnalysis) (StageResult[RecommendationSet], error)
	GeneratePlan(ctx context.Context, profile *StudentProfile, intake *IntakeSignals, gaps *GapAnalysis, recs *RecommendationSet) (StageResult[ActionPlan], error)
}
