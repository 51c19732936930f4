package domain

import (
	"strings"
	"testing"
)

func TestProfileTextRoundTrip(t *testing.T) {
	p := StudentProfile{
		SelectedGoals: []string{"Become a software engineer"},
		GoalNarrative: "I want to build apps.",
		Interests:     "puzzles",
	}

	if got := p.Text(SourceInterests); got != "puzzles" {
		t.Errorf("interests = %q", got)
	}

	goals := p.Text(SourceGoals)
	if !strings.Contains(goals, "Become a software engineer") || !strings.Contains(goals, "I want to build apps.") {
		t.Errorf("goals text should combine checkboxes and narrative, got %q", goals)
	}

	p.SetText(SourceGoals, "new narrative")
	if p.GoalNarrative != "new narrative" {
		t.Errorf("narrative = %q", p.GoalNarrative)
	}
	if p.SelectedGoals[0] != "Become a software engineer" {
		t.Error("checkbox selections must survive a goals rewrite")
	}

	p.SetText(SourceChallenges, "time pressure")
	if p.Challenges != "time pressure" {
		t.Errorf("challenges = %q", p.Challenges)
	}
}

func TestProfileCombinedTextLowercases(t *testing.T) {
	p := StudentProfile{Interests: "ROBOTICS", Achievements: "Science Fair"}

	combined := p.CombinedText()
	if !strings.Contains(combined, "robotics") || !strings.Contains(combined, "science fair") {
		t.Errorf("combined text not lowercased: %q", combined)
	}
}

func TestProfileClone(t *testing.T) {
	p := StudentProfile{
		SelectedGoals: []string{"a"},
		SelfRatings:   map[Skill]int{SkillTechnical: 40},
	}

	cp := p.Clone()
	cp.SelectedGoals[0] = "b"
	cp.SelfRatings[SkillTechnical] = 90

	if p.SelectedGoals[0] != "a" {
		t.Error("clone shares the goals slice")
	}
	if p.SelfRatings[SkillTechnical] != 40 {
		t.Error("clone shares the ratings map")
	}
}

func TestStageStatusFor(t *testing.T) {
	r := PipelineRunResult{Stages: []StageRecord{
		{Stage: StageIntake, Status: StageOK},
		{Stage: StageGapAnalysis, Status: StageFailed, Reason: "bad json"},
	}}

	if got := r.StageStatusFor(StageIntake); got != StageOK {
		t.Errorf("intake = %s", got)
	}
	if got := r.StageStatusFor(StageGapAnalysis); got != StageFailed {
		t.Errorf("gap analysis = %s", got)
	}
	if got := r.StageStatusFor(StagePlan); got != StageSkipped {
		t.Errorf("unrecorded stage = %s, want skipped", got)
	}
}

func TestPlanTotals(t *testing.T) {
	plan := ActionPlan{Weeks: []WeekPlan{
		{Week: 1, Tasks: []PlanTask{
			{RelatedSkill: SkillTechnical, ExpectedSkillGain: 5, EstimatedTimeHours: 2},
			{RelatedSkill: SkillCreativity, ExpectedSkillGain: 3, EstimatedTimeHours: 1.5},
		}},
		{Week: 2, Tasks: []PlanTask{
			{RelatedSkill: SkillTechnical, ExpectedSkillGain: 4, EstimatedTimeHours: 2},
		}},
	}}

	if got := plan.TotalGain(SkillTechnical); got != 9 {
		t.Errorf("technical gain = %d, want 9", got)
	}
	if got := plan.TotalGain(SkillLeadership); got != 0 {
		t.Errorf("leadership gain = %d, want 0", got)
	}
	if got := plan.TotalHours(); got != 5.5 {
		t.Errorf("total hours = %v, want 5.5", got)
	}
}

func TestEnumValidators(t *testing.T) {
	if !ValidSkill("technical_skills") || ValidSkill("charisma") {
		t.Error("skill validator wrong")
	}
	if !ValidEvidenceSource("past_activities") || ValidEvidenceSource("diary") {
		t.Error("evidence source validator wrong")
	}
	if !ValidAttributionType("inferred") || ValidAttributionType("guessed") {
		t.Error("attribution validator wrong")
	}
	if !ValidDifficulty("medium") || ValidDifficulty("brutal") {
		t.Error("difficulty validator wrong")
	}
	if !ValidVariantType("rephrasing") || ValidVariantType("mutation") {
		t.Error("variant type validator wrong")
	}
}
