package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lumenlearn/skillaudit/internal/domain"
)

// injectionPhrases carry unmistakable evidence for one skill each, used by
// injection variants to test whether added signal is picked up.
var injectionPhrases = map[domain.Skill]string{
	domain.SkillProblemSolving: "I debugged a broken sensor loop and figured out why it kept failing.",
	domain.SkillCommunication:  "I presented our findings to the whole school and explained the results.",
	domain.SkillTechnical:      "I built a small website and wrote the code for a robot controller.",
	domain.SkillCreativity:     "I designed the poster art and composed a short theme song for the showcase.",
	domain.SkillLeadership:     "I organized a study group and led our robotics club through the regional season.",
	domain.SkillSelfManagement: "I planned a weekly practice schedule and kept every deadline on time.",
}

// rephrasings are keyword-safe surface rewrites. None of the replacement
// pairs touches a goal, inference, or skill-support keyword, so a rephrasing
// variant changes wording while every detector still fires the same way.
var rephrasings = [][2]string{
	{"I really enjoy", "I genuinely enjoy"},
	{"I like", "I enjoy"},
	{" very ", " quite "},
	{"a lot of", "plenty of"},
	{"want to", "hope to"},
	{"sometimes", "at times"},
	{"my favorite", "what I most enjoy"},
}

// VariantGenerator produces one original variant plus one transformed variant
// per enabled category. All mutation is deterministic and limited to the
// profile's free-text sections; structured fields pass through untouched.
type VariantGenerator struct {
	classifier *EvidenceClassifier
}

func NewVariantGenerator(classifier *EvidenceClassifier) *VariantGenerator {
	return &VariantGenerator{classifier: classifier}
}

// Generate returns the variant set for one source profile. The original is
// always first. A removal variant is only produced when some skill actually
// has evidence to strip.
func (g *VariantGenerator) Generate(profile *domain.StudentProfile, cfg RunConfig) []domain.ProfileVariant {
	variants := []domain.ProfileVariant{{
		ID:              uuid.New(),
		SourceProfileID: profile.ID,
		Type:            domain.VariantOriginal,
		Profile:         profile.Clone(),
	}}

	if cfg.RunInjection {
		variants = append(variants, g.injection(profile))
	}
	if cfg.RunRemoval {
		if v, ok := g.removal(profile); ok {
			variants = append(variants, v)
		}
	}
	if cfg.RunRephrasing {
		variants = append(variants, g.rephrasing(profile))
	}
	return variants
}

// injection appends an evidence phrase for the first skill the profile shows
// no support for, into the past-activities section.
func (g *VariantGenerator) injection(profile *domain.StudentProfile) domain.ProfileVariant {
	combined := profile.CombinedText()

	target := domain.SkillProblemSolving
	for _, skill := range domain.AllSkills {
		if !g.classifier.SupportsSkill(skill, combined) {
			target = skill
			break
		}
	}

	mutated := profile.Clone()
	text := mutated.Text(domain.SourcePastActivities)
	phrase := injectionPhrases[target]
	if text == "" {
		mutated.SetText(domain.SourcePastActivities, phrase)
	} else {
		mutated.SetText(domain.SourcePastActivities, strings.TrimRight(text, " ")+" "+phrase)
	}

	return domain.ProfileVariant{
		ID:              uuid.New(),
		SourceProfileID: profile.ID,
		Type:            domain.VariantInjection,
		TargetSkill:     target,
		MutatedField:    domain.SourcePastActivities,
		Profile:         mutated,
	}
}

// removal strips every sentence containing a support keyword for the first
// evidenced skill, across all free-text sections.
func (g *VariantGenerator) removal(profile *domain.StudentProfile) (domain.ProfileVariant, bool) {
	combined := profile.CombinedText()

	var target domain.Skill
	for _, skill := range domain.AllSkills {
		if g.classifier.SupportsSkill(skill, combined) {
			target = skill
			break
		}
	}
	if target == "" {
		return domain.ProfileVariant{}, false
	}

	keywords := g.classifier.SupportKeywords(target)
	mutated := profile.Clone()
	var firstChanged domain.EvidenceSource
	for _, src := range domain.AllEvidenceSources {
		if src == domain.SourceGoals {
			// Goal checkboxes are structured; only the narrative is fair game.
			continue
		}
		before := mutated.Text(src)
		after := stripSentences(before, keywords)
		if after != before {
			mutated.SetText(src, after)
			if firstChanged == "" {
				firstChanged = src
			}
		}
	}

	return domain.ProfileVariant{
		ID:              uuid.New(),
		SourceProfileID: profile.ID,
		Type:            domain.VariantRemoval,
		TargetSkill:     target,
		MutatedField:    firstChanged,
		Profile:         mutated,
	}, true
}

// rephrasing applies the surface rewrite table to every free-text section.
func (g *VariantGenerator) rephrasing(profile *domain.StudentProfile) domain.ProfileVariant {
	mutated := profile.Clone()
	for _, src := range domain.AllEvidenceSources {
		text := mutated.Text(src)
		if src == domain.SourceGoals {
			text = mutated.GoalNarrative
		}
		for _, pair := range rephrasings {
			text = strings.ReplaceAll(text, pair[0], pair[1])
		}
		mutated.SetText(src, text)
	}

	return domain.ProfileVariant{
		ID:              uuid.New(),
		SourceProfileID: profile.ID,
		Type:            domain.VariantRephrasing,
		Profile:         mutated,
	}
}

// stripSentences removes every sentence containing any of the keywords and
// rejoins the remainder.
func stripSentences(text string, keywords []string) string {
	if text == "" {
		return text
	}

	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})

	var kept []string
	for _, s := range sentences {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		hit := false
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hit = true
				break
			}
		}
		if !hit {
			kept = append(kept, trimmed)
		}
	}

	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, ". ") + "."
}
