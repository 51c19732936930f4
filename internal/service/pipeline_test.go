package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lumenlearn/skillaudit/internal/domain"
	"github.com/lumenlearn/skillaudit/internal/llm"
	"go.uber.org/zap"
)

func newTestOrchestrator(mock *llm.MockExtractor) *Orchestrator {
	return NewOrchestrator(mock, NewStageValidator(), testTransformer(), zap.NewNop())
}

func originalVariant(profile domain.StudentProfile) domain.ProfileVariant {
	return domain.ProfileVariant{
		ID:              uuid.New(),
		SourceProfileID: profile.ID,
		Type:            domain.VariantOriginal,
		Profile:         profile,
	}
}

func TestOrchestrator_AllStagesSucceed(t *testing.T) {
	mock := llm.NewMockExtractor()
	o := newTestOrchestrator(mock)
	variant := originalVariant(testProfile())

	result := o.Run(context.Background(), &variant, RunConfig{})

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Intake == nil || result.Gaps == nil || result.Recommendations == nil || result.Plan == nil {
		t.Fatal("expected all four stage outputs")
	}
	for _, stage := range domain.AllStages {
		if status := result.StageStatusFor(stage); status != domain.StageOK {
			t.Errorf("stage %s status = %s, want ok", stage, status)
		}
	}
	if result.RawResponses[domain.StageIntake] == "" {
		t.Error("raw intake response should be retained")
	}
}

func TestOrchestrator_IntakeFailureSkipsEverything(t *testing.T) {
	mock := llm.NewMockExtractor()
	mock.IntakeError = errors.New("model timeout")
	o := newTestOrchestrator(mock)
	variant := originalVariant(testProfile())

	result := o.Run(context.Background(), &variant, RunConfig{})

	if result.Intake != nil || result.Gaps != nil || result.Recommendations != nil || result.Plan != nil {
		t.Fatal("no stage output should survive an intake failure")
	}
	if len(result.Errors) != 4 {
		t.Fatalf("expected four explanatory entries, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "intake failed") {
		t.Errorf("first entry should report the intake failure, got %q", result.Errors[0])
	}
	for _, entry := range result.Errors[1:] {
		if !strings.Contains(entry, "skipped") {
			t.Errorf("downstream entry should be a skip, got %q", entry)
		}
	}
	if result.StageStatusFor(domain.StageIntake) != domain.StageFailed {
		t.Error("intake should be recorded as failed")
	}
	for _, stage := range []domain.Stage{domain.StageGapAnalysis, domain.StageRecommendations, domain.StagePlan} {
		if result.StageStatusFor(stage) != domain.StageSkipped {
			t.Errorf("stage %s should be skipped", stage)
		}
	}
	if len(mock.GapsCalls) != 0 || len(mock.RecsCalls) != 0 || len(mock.PlanCalls) != 0 {
		t.Error("downstream stages must not be attempted")
	}
}

func TestOrchestrator_GapFailureIsLocal(t *testing.T) {
	mock := llm.NewMockExtractor()
	mock.GapsError = errors.New("malformed json")
	o := newTestOrchestrator(mock)
	variant := originalVariant(testProfile())

	result := o.Run(context.Background(), &variant, RunConfig{})

	if result.Intake == nil {
		t.Fatal("intake should succeed")
	}
	if result.Gaps != nil {
		t.Error("gap output should be nil after failure")
	}
	// Recommendations depend only on intake; the plan needs all three.
	if result.Recommendations == nil {
		t.Error("recommendations should still run")
	}
	if result.Plan != nil {
		t.Error("plan should be skipped without gap output")
	}
	if result.StageStatusFor(domain.StagePlan) != domain.StageSkipped {
		t.Error("plan should be recorded as skipped")
	}
}

func TestOrchestrator_ValidationFailureCountsAsStageFailure(t *testing.T) {
	mock := llm.NewMockExtractor()
	mock.IntakeResponse.Signals = mock.IntakeResponse.Signals[:5]
	o := newTestOrchestrator(mock)
	variant := originalVariant(testProfile())

	result := o.Run(context.Background(), &variant, RunConfig{})

	if result.Intake != nil {
		t.Error("schema-invalid intake must not be accepted")
	}
	if result.StageStatusFor(domain.StageIntake) != domain.StageFailed {
		t.Error("intake should be recorded as failed")
	}
}

func TestOrchestrator_SkipActionPlan(t *testing.T) {
	mock := llm.NewMockExtractor()
	o := newTestOrchestrator(mock)
	variant := originalVariant(testProfile())

	result := o.Run(context.Background(), &variant, RunConfig{SkipActionPlan: true})

	if result.Plan != nil {
		t.Error("plan should not run when disabled")
	}
	if result.StageStatusFor(domain.StagePlan) != domain.StageSkipped {
		t.Error("plan should be recorded as skipped")
	}
	if len(mock.PlanCalls) != 0 {
		t.Error("plan extractor must not be called when disabled")
	}
	if result.Intake == nil || result.Gaps == nil || result.Recommendations == nil {
		t.Error("other stages should run normally")
	}
}

func TestOrchestrator_TransformsApplied(t *testing.T) {
	mock := llm.NewMockExtractor()
	o := newTestOrchestrator(mock)
	variant := originalVariant(testProfile())

	result := o.Run(context.Background(), &variant, RunConfig{})

	// Intake signals carry attribution after classification.
	ps := result.Intake.Signal(domain.SkillProblemSolving)
	if ps == nil || ps.AttributionType != domain.AttributionExplicit {
		t.Errorf("problem solving signal should be explicit, got %+v", ps)
	}
	comm := result.Intake.Signal(domain.SkillCommunication)
	if comm == nil || comm.AttributionType != domain.AttributionMissing {
		t.Errorf("communication signal should be missing, got %+v", comm)
	}

	// Gap goal levels come from the goal-weight table, not the extractor.
	tech := result.Gaps.Gap(domain.SkillTechnical)
	if tech == nil || tech.GoalLevel != 95 {
		t.Errorf("technical goal level should be 95, got %+v", tech)
	}
	if tech.Expected30DayScore > tech.CurrentLevel+domain.GrowthCap {
		t.Errorf("30-day projection %d exceeds cap from %d", tech.Expected30DayScore, tech.CurrentLevel)
	}
}
