package domain

// Difficulty grades a plan task.
type Difficulty string

const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

func ValidDifficulty(d string) bool {
	switch Difficulty(d) {
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
		return true
	}
	return false
}

// PlanWeeks is the fixed length of the action plan.
const PlanWeeks = 4

// PlanTask is one activity inside a plan week. ExpectedSkillGain is subject
// to the cumulative growth cap: across all four weeks the granted gain for a
// skill never exceeds GrowthCap, enforced in week order.
type PlanTask struct {
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	RelatedSkill       Skill          `json:"related_skill"`
	SkillGapAddressed  int            `json:"skill_gap_addressed"`
	ExpectedSkillGain  int            `json:"expected_skill_gain"`
	EstimatedTimeHours float64        `json:"estimated_time_hours"`
	Difficulty         Difficulty     `json:"difficulty"`
	EvidenceSource     EvidenceSource `json:"evidence_source,omitempty"`
	Reasoning          string         `json:"reasoning"`
	GainCapped         bool           `json:"gain_capped"`
}

// WeekPlan groups the tasks for one of the four plan weeks (1-based).
type WeekPlan struct {
	Week  int        `json:"week"`
	Theme string     `json:"theme,omitempty"`
	Tasks []PlanTask `json:"tasks"`
}

// ActionPlan is the fourth stage's output.
type ActionPlan struct {
	Weeks []WeekPlan `json:"weeks"`
}

// TotalHours sums estimated task hours across the whole plan.
func (p *ActionPlan) TotalHours() float64 {
	var total float64
	for _, w := range p.Weeks {
		for _, t := range w.Tasks {
			total += t.EstimatedTimeHours
		}
	}
	return total
}

// TotalGain sums expected skill gain for one skill across all weeks,
// in week order.
func (p *ActionPlan) TotalGain(skill Skill) int {
	var total int
	for _, w := range p.Weeks {
		for _, t := range w.Tasks {
			if t.RelatedSkill == skill {
				total += t.ExpectedSkillGain
			}
		}
	}
	return total
}
