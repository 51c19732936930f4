package llm

import (
	"context"
	"sync"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

// MockExtractor is a configurable extractor for testing. Set the response
// fields to control what each stage returns; calls are recorded for
// assertions. The zero-value responses from NewMockExtractor are schema-valid
// for every stage.
//
// Batch runs share one extractor across variant goroutines, so the mock is
// safe for concurrent use. Configure it before starting a run and read the
// call slices after the run finishes.
type MockExtractor struct {
	mu sync.Mutex

	IntakeResponse *domain.IntakeSignals
	IntakeError    error
	GapsResponse   *domain.GapAnalysis
	GapsError      error
	RecsResponse   *domain.RecommendationSet
	RecsError      error
	PlanResponse   *domain.ActionPlan
	PlanError      error

	// IntakeFunc, when set, overrides IntakeResponse and computes the
	// intake output from the profile. Perturbation tests use it to make
	// the mock react to mutated text.
	IntakeFunc func(profile *domain.StudentProfile) *domain.IntakeSignals

	// Call tracking for assertions
	IntakeCalls []domain.StudentProfile
	GapsCalls   []domain.StudentProfile
	RecsCalls   []domain.StudentProfile
	PlanCalls   []domain.StudentProfile
}

func NewMockExtractor() *MockExtractor {
	m := &MockExtractor{}
	m.Reset()
	return m
}

// DefaultIntake returns a schema-valid intake set: evidence for problem
// solving and technical skills, nothing for the rest.
func DefaultIntake() *domain.IntakeSignals {
	out := &domain.IntakeSignals{}
	for _, skill := range domain.AllSkills {
		sig := domain.SkillSignal{
			Skill:      skill,
			Confidence: 0.2,
			Reasoning:  "no supporting text found",
		}
		switch skill {
		case domain.SkillProblemSolving:
			sig.EvidenceFound = true
			sig.EvidencePhrases = []string{"debugged our robot's code", "figured out why"}
			sig.EvidenceSources = []domain.EvidenceSource{domain.SourcePastActivities}
			sig.Confidence = 0.85
			sig.Reasoning = "profile describes independent debugging"
		case domain.SkillTechnical:
			sig.EvidenceFound = true
			sig.EvidencePhrases = []string{"wrote the code"}
			sig.EvidenceSources = []domain.EvidenceSource{domain.SourcePastActivities}
			sig.Confidence = 0.8
			sig.Reasoning = "profile describes writing code"
		}
		out.Signals = append(out.Signals, sig)
	}
	return out
}

// DefaultGaps returns a schema-valid gap set with modest current levels.
func DefaultGaps() *domain.GapAnalysis {
	out := &domain.GapAnalysis{}
	for _, skill := range domain.AllSkills {
		out.Gaps = append(out.Gaps, domain.SkillGap{
			Skill:               skill,
			CurrentLevel:        40,
			LongTermTargetScore: 70,
			Reasoning:           "room to grow from a moderate base",
		})
	}
	return out
}

func DefaultRecommendations() *domain.RecommendationSet {
	return &domain.RecommendationSet{
		Recommendations: []domain.Recommendation{
			{
				Title:           "FIRST Robotics Competition",
				Provider:        "FIRST",
				TargetSkill:     domain.SkillTechnical,
				Description:     "Team-based robotics build season",
				Reasoning:       "builds on existing robotics work",
				EvidenceSources: []domain.EvidenceSource{domain.SourcePastActivities},
			},
			{
				Title:       "Toastmasters Youth Leadership",
				Provider:    "Toastmasters International",
				TargetSkill: domain.SkillCommunication,
				Description: "Structured public speaking practice",
				Reasoning:   "communication shows no current evidence",
			},
		},
	}
}

func DefaultPlan() *domain.ActionPlan {
	out := &domain.ActionPlan{}
	for week := 1; week <= domain.PlanWeeks; week++ {
		out.Weeks = append(out.Weeks, domain.WeekPlan{
			Week:  week,
			Theme: "steady practice",
			Tasks: []domain.PlanTask{
				{
					Title:              "Debug one open issue in a personal project",
					RelatedSkill:       domain.SkillProblemSolving,
					SkillGapAddressed:  30,
					ExpectedSkillGain:  5,
					EstimatedTimeHours: 3,
					Difficulty:         domain.DifficultyMedium,
					EvidenceSource:     domain.SourcePastActivities,
					Reasoning:          "extends demonstrated debugging work",
				},
			},
		})
	}
	return out
}

func (m *MockExtractor) ExtractIntake(ctx context.Context, profile *domain.StudentProfile) (domain.StageResult[domain.IntakeSignals], error) {
	m.mu.Lock()
	m.IntakeCalls = append(m.IntakeCalls, *profile)
	err := m.IntakeError
	fn := m.IntakeFunc
	resp := cloneIntake(m.IntakeResponse)
	m.mu.Unlock()
	if err != nil {
		return domain.StageResult[domain.IntakeSignals]{}, err
	}
	if fn != nil {
		return domain.StageResult[domain.IntakeSignals]{Output: fn(profile), Raw: "mock"}, nil
	}
	return domain.StageResult[domain.IntakeSignals]{Output: resp, Raw: "mock"}, nil
}

func (m *MockExtractor) AnalyzeGaps(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals) (domain.StageResult[domain.GapAnalysis], error) {
	m.mu.Lock()
	m.GapsCalls = append(m.GapsCalls, *profile)
	err := m.GapsError
	resp := cloneGaps(m.GapsResponse)
	m.mu.Unlock()
	if err != nil {
		return domain.StageResult[domain.GapAnalysis]{}, err
	}
	return domain.StageResult[domain.GapAnalysis]{Output: resp, Raw: "mock"}, nil
}

func (m *MockExtractor) RecommendOpportunities(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals, gaps *domain.GapAnalysis) (domain.StageResult[domain.RecommendationSet], error) {
	m.mu.Lock()
	m.RecsCalls = append(m.RecsCalls, *profile)
	err := m.RecsError
	resp := cloneRecs(m.RecsResponse)
	m.mu.Unlock()
	if err != nil {
		return domain.StageResult[domain.RecommendationSet]{}, err
	}
	return domain.StageResult[domain.RecommendationSet]{Output: resp, Raw: "mock"}, nil
}

func (m *MockExtractor) GeneratePlan(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals, gaps *domain.GapAnalysis, recs *domain.RecommendationSet) (domain.StageResult[domain.ActionPlan], error) {
	m.mu.Lock()
	m.PlanCalls = append(m.PlanCalls, *profile)
	err := m.PlanError
	resp := clonePlan(m.PlanResponse)
	m.mu.Unlock()
	if err != nil {
		return domain.StageResult[domain.ActionPlan]{}, err
	}
	return domain.StageResult[domain.ActionPlan]{Output: resp, Raw: "mock"}, nil
}

// Reset clears recorded calls and restores the default responses.
func (m *MockExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IntakeResponse = DefaultIntake()
	m.IntakeError = nil
	m.IntakeFunc = nil
	m.GapsResponse = DefaultGaps()
	m.GapsError = nil
	m.RecsResponse = DefaultRecommendations()
	m.RecsError = nil
	m.PlanResponse = DefaultPlan()
	m.PlanError = nil
	m.IntakeCalls = nil
	m.GapsCalls = nil
	m.RecsCalls = nil
	m.PlanCalls = nil
}

// The orchestrator's transform mutates stage outputs in place, and
// concurrent variant runs share one mock, so every call hands out a copy.

func cloneIntake(in *domain.IntakeSignals) *domain.IntakeSignals {
	if in == nil {
		return nil
	}
	out := &domain.IntakeSignals{Signals: make([]domain.SkillSignal, len(in.Signals))}
	for i, sig := range in.Signals {
		sig.EvidencePhrases = append([]string(nil), sig.EvidencePhrases...)
		sig.EvidenceSources = append([]domain.EvidenceSource(nil), sig.EvidenceSources...)
		sig.InferenceSources = append([]string(nil), sig.InferenceSources...)
		out.Signals[i] = sig
	}
	return out
}

func cloneGaps(in *domain.GapAnalysis) *domain.GapAnalysis {
	if in == nil {
		return nil
	}
	out := &domain.GapAnalysis{Gaps: make([]domain.SkillGap, len(in.Gaps))}
	for i, g := range in.Gaps {
		g.EvidenceSources = append([]domain.EvidenceSource(nil), g.EvidenceSources...)
		out.Gaps[i] = g
	}
	return out
}

func cloneRecs(in *domain.RecommendationSet) *domain.RecommendationSet {
	if in == nil {
		return nil
	}
	out := &domain.RecommendationSet{Recommendations: make([]domain.Recommendation, len(in.Recommendations))}
	for i, rec := range in.Recommendations {
		rec.EvidenceSources = append([]domain.EvidenceSource(nil), rec.EvidenceSources...)
		out.Recommendations[i] = rec
	}
	return out
}

func clonePlan(in *domain.ActionPlan) *domain.ActionPlan {
	if in == nil {
		return nil
	}
	out := &domain.ActionPlan{Weeks: make([]domain.WeekPlan, len(in.Weeks))}
	for i, w := range in.Weeks {
		w.Tasks = append([]domain.PlanTask(nil), w.Tasks...)
		out.Weeks[i] = w
	}
	return out
}
