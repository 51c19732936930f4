package domain

// GrowthCap is the maximum permitted projected 30-day improvement for any
// single skill, in score points. Long-term targets are never capped.
const GrowthCap = 25

// SkillGap is the second stage's per-skill output after cap enforcement.
// Gap may be negative when the student already exceeds the goal level; such
// gaps stay on the report but are excluded from downstream planning.
type SkillGap struct {
	Skill               Skill            `json:"skill"`
	CurrentLevel        int              `json:"current_level"`
	GoalLevel           int              `json:"goal_level"`
	Gap                 int              `json:"gap"`
	Expected30DayScore  int              `json:"expected_30day_score"`
	LongTermTargetScore int              `json:"long_term_target_score"`
	GainCapped          bool             `json:"gain_capped"`
	Reasoning           string           `json:"reasoning"`
	AttributionType     AttributionType  `json:"attribution_type"`
	EvidenceSources     []EvidenceSource `json:"evidence_sources,omitempty"`
}

// GapAnalysis is the second stage's output: one gap per skill.
type GapAnalysis struct {
	Gaps []SkillGap `json:"gaps"`
}

// Gap returns the entry for the given skill, or nil.
func (g *GapAnalysis) Gap(skill Skill) *SkillGap {
	for i := range g.Gaps {
		if g.Gaps[i].Skill == skill {
			return &g.Gaps[i]
		}
	}
	return nil
}
