package service

import (
	"math"

	"github.com/google/uuid"
	"github.com/lumenlearn/skillaudit/internal/domain"
	"go.uber.org/zap"
)

func floatNear(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

// testProfile is a ninth grader with explicit problem-solving and technical
// evidence, no communication or creativity evidence, and a STEM goal.
func testProfile() domain.StudentProfile {
	return domain.StudentProfile{
		ID:             uuid.New(),
		Name:           "Ava Chen",
		GradeLevel:     9,
		SelectedGoals:  []string{"Become a software engineer"},
		GoalNarrative:  "I hope to build software that helps people.",
		Interests:      "I really enjoy puzzles and video games.",
		PastActivities: "I debugged our robot's code at the club fair and figured out why it kept failing.",
		Achievements:   "Won a medal at the regional science olympiad.",
		Challenges:     "I sometimes struggle to finish homework on time.",
		SelfRatings: map[domain.Skill]int{
			domain.SkillProblemSolving: 40,
			domain.SkillCommunication:  40,
			domain.SkillTechnical:      40,
			domain.SkillCreativity:     40,
			domain.SkillLeadership:     40,
			domain.SkillSelfManagement: 40,
		},
		WeeklyTimeBudgetHours: 6,
	}
}

// blandProfile has no support keywords for any skill.
func blandProfile() domain.StudentProfile {
	return domain.StudentProfile{
		ID:                    uuid.New(),
		Name:                  "Sam Ortiz",
		GradeLevel:            7,
		Interests:             "I enjoy long walks outside.",
		PastActivities:        "I helped around the house during summer.",
		WeeklyTimeBudgetHours: 4,
	}
}

func testTransformer() *Transformer {
	return NewTransformer(NewGoalResolver(), NewEvidenceClassifier(), zap.NewNop())
}
