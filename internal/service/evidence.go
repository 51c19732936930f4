package service

import (
	"strings"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

// Inference category names carried on promoted signals.
const (
	CategoryTeaching       = "teaching_mentoring"
	CategoryAwards         = "competitive_awards"
	CategoryComplexProject = "complex_projects"
)

// inferenceCategories are the three independent keyword detectors used by the
// problem-solving inference check. Substring containment, same caveats as the
// goal matcher.
var inferenceCategories = []struct {
	name     string
	keywords []string
}{
	{
		name: CategoryTeaching,
		keywords: []string{
			"taught", "teach", "tutor", "mentor", "coached",
			"helped my classmates", "explained to", "showed them how",
		},
	},
	{
		name: CategoryAwards,
		keywords: []string{
			"won", "award", "medal", "trophy", "competition",
			"olympiad", "placed first", "prize", "champion", "finalist",
		},
	},
	{
		name: CategoryComplexProject,
		keywords: []string{
			"built", "debugged", "designed", "figured out", "complex",
			"robot", "engineered", "troubleshoot", "from scratch", "prototype",
		},
	},
}

// skillSupportKeywords back the hallucination check: a citation of a source
// for a skill is only verifiable if the source's text contains at least one
// of the skill's support keywords.
var skillSupportKeywords = map[domain.Skill][]string{
	domain.SkillProblemSolving: {
		"debug", "figured out", "solve", "solved", "fix", "puzzle",
		"troubleshoot", "why it", "worked out",
	},
	domain.SkillCommunication: {
		"present", "speech", "debate", "wrote", "explain", "talk",
		"shared", "interview", "podcast",
	},
	domain.SkillTechnical: {
		"code", "coding", "software", "program", "computer", "robot",
		"built", "3d print", "engineer", "circuit", "website", "app",
	},
	domain.SkillCreativity: {
		"design", "art", "drew", "paint", "music", "composed",
		"created", "invented", "story", "imagin", "sketch",
	},
	domain.SkillLeadership: {
		"led", "lead", "captain", "president", "organized", "founded",
		"mentor", "club", "team together", "in charge",
	},
	domain.SkillSelfManagement: {
		"schedule", "planned", "routine", "balanc", "deadline",
		"consistent", "practice every", "discipline", "on time", "habit",
	},
}

// EvidenceClassifier runs the keyword detectors. It is stateless; the tables
// above are process-wide constants consulted by reference.
type EvidenceClassifier struct{}

func NewEvidenceClassifier() *EvidenceClassifier {
	return &EvidenceClassifier{}
}

// InferenceCategories returns the names of the inference categories with at
// least one keyword hit in the text, in fixed table order.
func (c *EvidenceClassifier) InferenceCategories(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, cat := range inferenceCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, cat.name)
				break
			}
		}
	}
	return matched
}

// SupportsSkill reports whether the text contains any support keyword for
// the skill.
func (c *EvidenceClassifier) SupportsSkill(skill domain.Skill, text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range skillSupportKeywords[skill] {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SupportKeywords exposes the skill's keyword list for the removal variant
// generator, which strips sentences containing them.
func (c *EvidenceClassifier) SupportKeywords(skill domain.Skill) []string {
	return skillSupportKeywords[skill]
}
