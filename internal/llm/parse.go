package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func decodeIntake(raw string) (*domain.IntakeSignals, error) {
	cleaned := stripFences(raw)
	var out domain.IntakeSignals
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("parse intake result: %w (raw: %s)", err, cleaned)
	}
	return &out, nil
}

func decodeGaps(raw string) (*domain.GapAnalysis, error) {
	cleaned := stripFences(raw)
	var out domain.GapAnalysis
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("parse gap analysis result: %w (raw: %s)", err, cleaned)
	}
	return &out, nil
}

func decodeRecommendations(raw string) (*domain.RecommendationSet, error) {
	cleaned := stripFences(raw)
	var out domain.RecommendationSet
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("parse recommendation result: %w (raw: %s)", err, cleaned)
	}
	return &out, nil
}

func decodePlan(raw string) (*domain.ActionPlan, error) {
	cleaned := stripFences(raw)
	var out domain.ActionPlan
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("parse plan result: %w (raw: %s)", err, cleaned)
	}
	return &out, nil
}

// profileSection renders the profile as labeled sections for the prompts.
func profileSection(p *domain.StudentProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s (grade %d)\n", p.Name, p.GradeLevel)
	if len(p.SelectedGoals) > 0 {
		fmt.Fprintf(&sb, "Selected goals: %s\n", strings.Join(p.SelectedGoals, "; "))
	}
	for _, src := range domain.AllEvidenceSources {
		text := p.Text(src)
		if src == domain.SourceGoals {
			text = p.GoalNarrative
		}
		if text == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", src, text)
	}
	if p.WeeklyTimeBudgetHours > 0 {
		fmt.Fprintf(&sb, "Weekly time budget: %.1f hours\n", p.WeeklyTimeBudgetHours)
	}
	return sb.String()
}

// contextJSON renders a prior stage's output for inclusion in a prompt.
func contextJSON(v any) string {
	if v == nil {
		return "(not available)"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "(not available)"
	}
	return string(b)
}
