package domain

import (
	"strings"

	"github.com/google/uuid"
)

// EvidenceSource names a free-text section of the student profile that a
// claim can cite as supporting evidence.
type EvidenceSource string

const (
	SourceInterests      EvidenceSource = "interests"
	SourceGoals          EvidenceSource = "goals"
	SourcePastActivities EvidenceSource = "past_activities"
	SourceAchievements   EvidenceSource = "achievements"
	SourceChallenges     EvidenceSource = "challenges"
)

var AllEvidenceSources = []EvidenceSource{
	SourceInterests,
	SourceGoals,
	SourcePastActivities,
	SourceAchievements,
	SourceChallenges,
}

func ValidEvidenceSource(s string) bool {
	switch EvidenceSource(s) {
	case SourceInterests, SourceGoals, SourcePastActivities, SourceAchievements, SourceChallenges:
		return true
	}
	return false
}

// StudentProfile is a self-reported intake record. The free-text sections are
// the only fields perturbation variants are allowed to mutate; everything else
// (grade, selected goals, self-ratings, time budget) is structured and carried
// through unchanged.
type StudentProfile struct {
	ID         uuid.UUID `json:"id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	GradeLevel int       `json:"grade_level" validate:"gte=6,lte=12"`

	SelectedGoals []string `json:"selected_goals"`
	GoalNarrative string   `json:"goal_narrative"`

	Interests      string `json:"interests"`
	PastActivities string `json:"past_activities"`
	Achievements   string `json:"achievements"`
	Challenges     string `json:"challenges"`

	SelfRatings map[Skill]int `json:"self_ratings" validate:"dive,gte=0,lte=100"`

	WeeklyTimeBudgetHours float64 `json:"weekly_time_budget_hours" validate:"gte=0"`
}

// Text returns the free-text content backing one evidence source.
// The goals source combines the checkbox strings with the narrative.
func (p *StudentProfile) Text(source EvidenceSource) string {
	switch source {
	case SourceInterests:
		return p.Interests
	case SourceGoals:
		parts := append([]string{}, p.SelectedGoals...)
		if p.GoalNarrative != "" {
			parts = append(parts, p.GoalNarrative)
		}
		return strings.Join(parts, ". ")
	case SourcePastActivities:
		return p.PastActivities
	case SourceAchievements:
		return p.Achievements
	case SourceChallenges:
		return p.Challenges
	default:
		return ""
	}
}

// SetText replaces the free-text content backing one evidence source.
// Mutating the goals source rewrites only the narrative; checkbox selections
// are structured data and stay fixed.
func (p *StudentProfile) SetText(source EvidenceSource, text string) {
	switch source {
	case SourceInterests:
		p.Interests = text
	case SourceGoals:
		p.GoalNarrative = text
	case SourcePastActivities:
		p.PastActivities = text
	case SourceAchievements:
		p.Achievements = text
	case SourceChallenges:
		p.Challenges = text
	}
}

// CombinedText joins every free-text section into one lowercase blob for
// keyword scanning.
func (p *StudentProfile) CombinedText() string {
	var sb strings.Builder
	for _, src := range AllEvidenceSources {
		sb.WriteString(p.Text(src))
		sb.WriteString("\n")
	}
	return strings.ToLower(sb.String())
}

// Clone returns a deep copy safe to mutate independently.
func (p *StudentProfile) Clone() StudentProfile {
	cp := *p
	cp.SelectedGoals = append([]string(nil), p.SelectedGoals...)
	if p.SelfRatings != nil {
		cp.SelfRatings = make(map[Skill]int, len(p.SelfRatings))
		for k, v := range p.SelfRatings {
			cp.SelfRatings[k] = v
		}
	}
	return cp
}
