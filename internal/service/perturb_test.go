package service

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

func TestVariantGenerator_OriginalAlwaysFirst(t *testing.T) {
	g := NewVariantGenerator(NewEvidenceClassifier())
	profile := testProfile()

	variants := g.Generate(&profile, RunConfig{RunInjection: true, RunRemoval: true, RunRephrasing: true})

	if len(variants) != 4 {
		t.Fatalf("expected 4 variants, got %d", len(variants))
	}
	if variants[0].Type != domain.VariantOriginal {
		t.Fatalf("first variant is %s, want original", variants[0].Type)
	}
	if !reflect.DeepEqual(variants[0].Profile, profile) {
		t.Error("original variant should be an exact copy of the source")
	}
	for i, v := range variants {
		if v.SourceProfileID != profile.ID {
			t.Errorf("variant %d source id mismatch", i)
		}
		for j := i + 1; j < len(variants); j++ {
			if v.ID == variants[j].ID {
				t.Errorf("variants %d and %d share an id", i, j)
			}
		}
	}
}

func TestVariantGenerator_InjectionTargetsUnevidencedSkill(t *testing.T) {
	g := NewVariantGenerator(NewEvidenceClassifier())
	classifier := NewEvidenceClassifier()
	profile := testProfile()

	variants := g.Generate(&profile, RunConfig{RunInjection: true})
	if len(variants) != 2 {
		t.Fatalf("expected original plus injection, got %d", len(variants))
	}
	inj := variants[1]

	if inj.Type != domain.VariantInjection {
		t.Fatalf("variant type = %s, want injection", inj.Type)
	}
	if inj.TargetSkill != domain.SkillCommunication {
		t.Errorf("target = %s, want the first skill without evidence (communication)", inj.TargetSkill)
	}
	if inj.MutatedField != domain.SourcePastActivities {
		t.Errorf("mutated field = %s, want past_activities", inj.MutatedField)
	}
	if classifier.SupportsSkill(inj.TargetSkill, inj.Profile.CombinedText()) != true {
		t.Error("injected profile should now support the target skill")
	}
	if !strings.Contains(inj.Profile.PastActivities, profile.PastActivities) {
		t.Error("injection should append, not replace, the original text")
	}

	// Structured fields pass through untouched.
	if inj.Profile.GradeLevel != profile.GradeLevel {
		t.Error("grade level changed")
	}
	if !reflect.DeepEqual(inj.Profile.SelectedGoals, profile.SelectedGoals) {
		t.Error("selected goals changed")
	}
	if !reflect.DeepEqual(inj.Profile.SelfRatings, profile.SelfRatings) {
		t.Error("self ratings changed")
	}
}

func TestVariantGenerator_RemovalStripsEvidence(t *testing.T) {
	g := NewVariantGenerator(NewEvidenceClassifier())
	classifier := NewEvidenceClassifier()
	profile := testProfile()

	variants := g.Generate(&profile, RunConfig{RunRemoval: true})
	if len(variants) != 2 {
		t.Fatalf("expected original plus removal, got %d", len(variants))
	}
	rem := variants[1]

	if rem.Type != domain.VariantRemoval {
		t.Fatalf("variant type = %s, want removal", rem.Type)
	}
	if rem.TargetSkill != domain.SkillProblemSolving {
		t.Errorf("target = %s, want the first evidenced skill (problem_solving)", rem.TargetSkill)
	}
	if classifier.SupportsSkill(domain.SkillProblemSolving, rem.Profile.CombinedText()) {
		t.Error("stripped profile still supports the target skill")
	}
	if rem.Profile.Achievements != profile.Achievements {
		t.Error("sentences without target keywords should survive")
	}
	if !reflect.DeepEqual(rem.Profile.SelectedGoals, profile.SelectedGoals) {
		t.Error("goal checkboxes must never change")
	}
}

func TestVariantGenerator_RemovalSkippedWithoutEvidence(t *testing.T) {
	g := NewVariantGenerator(NewEvidenceClassifier())
	profile := blandProfile()

	variants := g.Generate(&profile, RunConfig{RunRemoval: true})

	if len(variants) != 1 {
		t.Fatalf("expected only the original when nothing can be stripped, got %d", len(variants))
	}
}

func TestVariantGenerator_RephrasingPreservesDetectors(t *testing.T) {
	g := NewVariantGenerator(NewEvidenceClassifier())
	classifier := NewEvidenceClassifier()
	profile := testProfile()

	variants := g.Generate(&profile, RunConfig{RunRephrasing: true})
	reph := variants[1]

	if reph.Type != domain.VariantRephrasing {
		t.Fatalf("variant type = %s, want rephrasing", reph.Type)
	}
	if reph.Profile.Interests == profile.Interests {
		t.Error("rephrasing should change the surface text")
	}
	if !strings.Contains(reph.Profile.Interests, "genuinely enjoy") {
		t.Errorf("expected rewrite applied, got %q", reph.Profile.Interests)
	}

	before := profile.CombinedText()
	after := reph.Profile.CombinedText()
	for _, skill := range domain.AllSkills {
		if classifier.SupportsSkill(skill, before) != classifier.SupportsSkill(skill, after) {
			t.Errorf("detector for %s changed under rephrasing", skill)
		}
	}
}

func TestStripSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     string
	}{
		{
			name:     "drops matching sentence",
			text:     "I debugged the robot. I like music.",
			keywords: []string{"debug"},
			want:     "I like music.",
		},
		{
			name:     "all sentences dropped",
			text:     "I debugged the robot.",
			keywords: []string{"debug"},
			want:     "",
		},
		{
			name:     "no keywords hit",
			text:     "I like music. I like art.",
			keywords: []string{"debug"},
			want:     "I like music. I like art.",
		},
		{
			name:     "empty text",
			text:     "",
			keywords: []string{"debug"},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripSentences(tt.text, tt.keywords); got != tt.want {
				t.Errorf("stripSentences(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
