package service

import (
	"math"
	"strings"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

// goalCategory pairs keyword stems with a hand-tuned six-skill weight vector.
// Matching is plain substring containment over lowercased goal text. That
// over-matches inside unrelated words and misses synonyms; it is kept anyway
// because the matcher must stay deterministic and auditable.
type goalCategory struct {
	name     string
	keywords []string
	weights  map[domain.Skill]float64
}

var goalCategories = []goalCategory{
	{
		name: "stem_career",
		keywords: []string{
			"software", "engineer", "coding", "code", "program",
			"stem", "scien", "math", "technology", "robot", "data", "computer",
		},
		weights: map[domain.Skill]float64{
			domain.SkillProblemSolving: 0.90,
			domain.SkillCommunication:  0.60,
			domain.SkillTechnical:      0.95,
			domain.SkillCreativity:     0.60,
			domain.SkillLeadership:     0.50,
			domain.SkillSelfManagement: 0.70,
		},
	},
	{
		name: "leadership",
		keywords: []string{
			"lead", "president", "captain", "organize", "student government",
			"club", "manage", "entrepreneur",
		},
		weights: map[domain.Skill]float64{
			domain.SkillProblemSolving: 0.70,
			domain.SkillCommunication:  0.90,
			domain.SkillTechnical:      0.50,
			domain.SkillCreativity:     0.60,
			domain.SkillLeadership:     0.95,
			domain.SkillSelfManagement: 0.80,
		},
	},
	{
		name: "creative_career",
		keywords: []string{
			"art", "design", "music", "writ", "creat", "film", "theater", "perform",
		},
		weights: map[domain.Skill]float64{
			domain.SkillProblemSolving: 0.60,
			domain.SkillCommunication:  0.75,
			domain.SkillTechnical:      0.55,
			domain.SkillCreativity:     0.95,
			domain.SkillLeadership:     0.50,
			domain.SkillSelfManagement: 0.70,
		},
	},
	{
		name: "college_prep",
		keywords: []string{
			"college", "university", "sat", "act", "scholarship", "admission", "gpa",
		},
		weights: map[domain.Skill]float64{
			domain.SkillProblemSolving: 0.80,
			domain.SkillCommunication:  0.80,
			domain.SkillTechnical:      0.70,
			domain.SkillCreativity:     0.60,
			domain.SkillLeadership:     0.70,
			domain.SkillSelfManagement: 0.90,
		},
	},
}

// defaultGoalWeight applies to every skill when no category matches.
const defaultGoalWeight = 0.75

// GoalResolver maps free-form goal text to per-skill target levels.
type GoalResolver struct{}

func NewGoalResolver() *GoalResolver {
	return &GoalResolver{}
}

// MatchedCategories returns the names of every goal category whose keywords
// appear in the goal strings or narrative, in table order.
func (r *GoalResolver) MatchedCategories(goals []string, narrative string) []string {
	var sb strings.Builder
	for _, g := range goals {
		sb.WriteString(g)
		sb.WriteString("\n")
	}
	sb.WriteString(narrative)
	text := strings.ToLower(sb.String())

	var matched []string
	for _, cat := range goalCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, cat.name)
				break
			}
		}
	}
	return matched
}

// TargetLevels resolves goal text to a complete six-skill target map in
// [0,100]. For skills present in multiple matched categories the maximum
// weight wins; a single strong match is never diluted by weaker ones.
// Always returns all six skills; identical input yields identical output.
func (r *GoalResolver) TargetLevels(goals []string, narrative string) map[domain.Skill]int {
	matched := r.MatchedCategories(goals, narrative)

	weights := make(map[domain.Skill]float64, len(domain.AllSkills))
	if len(matched) == 0 {
		for _, skill := range domain.AllSkills {
			weights[skill] = defaultGoalWeight
		}
	} else {
		byName := make(map[string]bool, len(matched))
		for _, name := range matched {
			byName[name] = true
		}
		for _, cat := range goalCategories {
			if !byName[cat.name] {
				continue
			}
			for _, skill := range domain.AllSkills {
				if w := cat.weights[skill]; w > weights[skill] {
					weights[skill] = w
				}
			}
		}
	}

	targets := make(map[domain.Skill]int, len(weights))
	for skill, w := range weights {
		targets[skill] = int(math.Round(w * 100))
	}
	return targets
}
