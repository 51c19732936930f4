package service

import (
	"errors"
	"fmt"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

var (
	ErrNoSignals      = errors.New("intake output has no signals")
	ErrNoGaps         = errors.New("gap analysis output has no gaps")
	ErrNoRecs         = errors.New("recommendation output is empty")
	ErrWrongWeekCount = errors.New("plan does not have exactly four weeks")
)

// StageValidator is the schema gate run on every stage payload before the
// responsible-output transform sees it. It checks structure only (field
// presence, enum domains, numeric ranges), never the semantic quality of the
// extractor's judgments. A validation failure counts as a stage error.
type StageValidator struct{}

func NewStageValidator() *StageValidator {
	return &StageValidator{}
}

func (v *StageValidator) ValidateIntake(out *domain.IntakeSignals) error {
	if out == nil || len(out.Signals) == 0 {
		return ErrNoSignals
	}
	seen := make(map[domain.Skill]bool, len(out.Signals))
	for _, sig := range out.Signals {
		if !domain.ValidSkill(string(sig.Skill)) {
			return fmt.Errorf("intake signal has unknown skill %q", sig.Skill)
		}
		if seen[sig.Skill] {
			return fmt.Errorf("intake output repeats skill %q", sig.Skill)
		}
		seen[sig.Skill] = true
		if sig.Confidence < 0 || sig.Confidence > 1 {
			return fmt.Errorf("signal %q confidence %v outside [0,1]", sig.Skill, sig.Confidence)
		}
		if len(sig.EvidencePhrases) > domain.MaxEvidencePhrases {
			return fmt.Errorf("signal %q carries %d evidence phrases, max %d",
				sig.Skill, len(sig.EvidencePhrases), domain.MaxEvidencePhrases)
		}
		for _, src := range sig.EvidenceSources {
			if !domain.ValidEvidenceSource(string(src)) {
				return fmt.Errorf("signal %q cites unknown source %q", sig.Skill, src)
			}
		}
	}
	for _, skill := range domain.AllSkills {
		if !seen[skill] {
			return fmt.Errorf("intake output missing skill %q", skill)
		}
	}
	return nil
}

func (v *StageValidator) ValidateGaps(out *domain.GapAnalysis) error {
	if out == nil || len(out.Gaps) == 0 {
		return ErrNoGaps
	}
	seen := make(map[domain.Skill]bool, len(out.Gaps))
	for _, g := range out.Gaps {
		if !domain.ValidSkill(string(g.Skill)) {
			return fmt.Errorf("gap entry has unknown skill %q", g.Skill)
		}
		if seen[g.Skill] {
			return fmt.Errorf("gap analysis repeats skill %q", g.Skill)
		}
		seen[g.Skill] = true
		if g.CurrentLevel < 0 || g.CurrentLevel > 100 {
			return fmt.Errorf("gap %q current level %d outside [0,100]", g.Skill, g.CurrentLevel)
		}
		if g.LongTermTargetScore < 0 || g.LongTermTargetScore > 100 {
			return fmt.Errorf("gap %q long-term target %d outside [0,100]", g.Skill, g.LongTermTargetScore)
		}
	}
	for _, skill := range domain.AllSkills {
		if !seen[skill] {
			return fmt.Errorf("gap analysis missing skill %q", skill)
		}
	}
	return nil
}

func (v *StageValidator) ValidateRecommendations(out *domain.RecommendationSet) error {
	if out == nil || len(out.Recommendations) == 0 {
		return ErrNoRecs
	}
	for i, rec := range out.Recommendations {
		if rec.Title == "" {
			return fmt.Errorf("recommendation %d has no title", i)
		}
		if !domain.ValidSkill(string(rec.TargetSkill)) {
			return fmt.Errorf("recommendation %q targets unknown skill %q", rec.Title, rec.TargetSkill)
		}
		for _, src := range rec.EvidenceSources {
			if !domain.ValidEvidenceSource(string(src)) {
				return fmt.Errorf("recommendation %q cites unknown source %q", rec.Title, src)
			}
		}
	}
	return nil
}

func (v *StageValidator) ValidatePlan(out *domain.ActionPlan) error {
	if out == nil || len(out.Weeks) != domain.PlanWeeks {
		return ErrWrongWeekCount
	}
	seen := make(map[int]bool, domain.PlanWeeks)
	for _, w := range out.Weeks {
		if w.Week < 1 || w.Week > domain.PlanWeeks {
			return fmt.Errorf("plan week number %d outside [1,%d]", w.Week, domain.PlanWeeks)
		}
		if seen[w.Week] {
			return fmt.Errorf("plan repeats week %d", w.Week)
		}
		seen[w.Week] = true
		for _, task := range w.Tasks {
			if !domain.ValidSkill(string(task.RelatedSkill)) {
				return fmt.Errorf("week %d task %q has unknown skill %q", w.Week, task.Title, task.RelatedSkill)
			}
			if !domain.ValidDifficulty(string(task.Difficulty)) {
				return fmt.Errorf("week %d task %q has unknown difficulty %q", w.Week, task.Title, task.Difficulty)
			}
			if task.ExpectedSkillGain < 0 || task.ExpectedSkillGain > 100 {
				return fmt.Errorf("week %d task %q gain %d outside [0,100]", w.Week, task.Title, task.ExpectedSkillGain)
			}
			if task.SkillGapAddressed < 0 || task.SkillGapAddressed > 100 {
				return fmt.Errorf("week %d task %q gap addressed %d outside [0,100]", w.Week, task.Title, task.SkillGapAddressed)
			}
			if task.EstimatedTimeHours < 0 {
				return fmt.Errorf("week %d task %q has negative hours", w.Week, task.Title)
			}
		}
	}
	return nil
}
