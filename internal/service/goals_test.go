package service

import (
	"reflect"
	"testing"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

func TestGoalResolver_StemCareer(t *testing.T) {
	r := NewGoalResolver()

	targets := r.TargetLevels([]string{"Become a software engineer"}, "")

	if len(targets) != len(domain.AllSkills) {
		t.Fatalf("expected %d skills, got %d", len(domain.AllSkills), len(targets))
	}
	if targets[domain.SkillTechnical] != 95 {
		t.Errorf("expected technical target 95, got %d", targets[domain.SkillTechnical])
	}
	if targets[domain.SkillProblemSolving] != 90 {
		t.Errorf("expected problem solving target 90, got %d", targets[domain.SkillProblemSolving])
	}
	if targets[domain.SkillLeadership] != 50 {
		t.Errorf("expected leadership target 50, got %d", targets[domain.SkillLeadership])
	}
}

func TestGoalResolver_NoMatchUsesDefault(t *testing.T) {
	r := NewGoalResolver()

	targets := r.TargetLevels([]string{"just exploring for now"}, "")

	for _, skill := range domain.AllSkills {
		if targets[skill] != 75 {
			t.Errorf("expected default 75 for %s, got %d", skill, targets[skill])
		}
	}
}

func TestGoalResolver_MultipleCategoriesMaxWins(t *testing.T) {
	r := NewGoalResolver()

	goals := []string{"Become a software engineer", "Run for club president"}
	matched := r.MatchedCategories(goals, "")
	if !reflect.DeepEqual(matched, []string{"stem_career", "leadership"}) {
		t.Fatalf("unexpected matched categories: %v", matched)
	}

	targets := r.TargetLevels(goals, "")
	if targets[domain.SkillTechnical] != 95 {
		t.Errorf("expected technical 95 from stem weights, got %d", targets[domain.SkillTechnical])
	}
	if targets[domain.SkillLeadership] != 95 {
		t.Errorf("expected leadership 95 from leadership weights, got %d", targets[domain.SkillLeadership])
	}
	if targets[domain.SkillCommunication] != 90 {
		t.Errorf("expected communication 90, got %d", targets[domain.SkillCommunication])
	}
	if targets[domain.SkillSelfManagement] != 80 {
		t.Errorf("expected self management 80, got %d", targets[domain.SkillSelfManagement])
	}
}

func TestGoalResolver_NarrativeMatches(t *testing.T) {
	r := NewGoalResolver()

	matched := r.MatchedCategories(nil, "I want a scholarship to a good university")
	if !reflect.DeepEqual(matched, []string{"college_prep"}) {
		t.Fatalf("unexpected matched categories: %v", matched)
	}
}

func TestGoalResolver_Deterministic(t *testing.T) {
	r := NewGoalResolver()
	goals := []string{"art school", "robotics team captain"}

	first := r.TargetLevels(goals, "I like to design things")
	second := r.TargetLevels(goals, "I like to design things")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input produced different targets: %v vs %v", first, second)
	}
}
