package service

import (
	"fmt"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

// recommendationStabilityThreshold is the minimum title/provider overlap a
// rephrasing variant must keep with the baseline to count as stable.
const recommendationStabilityThreshold = 0.6

// Comparator diffs variant runs against the batch baseline and aggregates
// the four robustness metrics. It reads the baseline result and never
// mutates any upstream entity.
type Comparator struct {
	classifier *EvidenceClassifier
}

func NewComparator(classifier *EvidenceClassifier) *Comparator {
	return &Comparator{classifier: classifier}
}

// Compare builds the comparison entry for one run. For the baseline itself
// pass baseline == nil: the absolute checks (hallucination, plan
// appropriateness) still run, the baseline-relative ones do not.
func (c *Comparator) Compare(variant *domain.ProfileVariant, run *domain.PipelineRunResult, baseline *domain.PipelineRunResult) domain.ComparisonResult {
	result := domain.ComparisonResult{
		VariantID:   variant.ID,
		VariantType: variant.Type,
	}

	if baseline != nil {
		id := baseline.VariantID
		result.BaselineVariantID = &id
		result.AttributionChecks = c.attributionChecks(variant, run, baseline)
		if variant.Type == domain.VariantRephrasing {
			overlap, stable := c.recommendationStability(run, baseline)
			result.RecommendationOverlap = overlap
			result.RecommendationStable = stable
		}
	}

	result.HallucinationChecks = c.citationChecks(variant, run)
	result.PlanChecks = c.planChecks(variant, run)

	return result
}

// attributionChecks verifies that the direction of every attribution change
// matches what the variant type predicts.
func (c *Comparator) attributionChecks(variant *domain.ProfileVariant, run, baseline *domain.PipelineRunResult) []domain.AttributionCheck {
	if run.Intake == nil || baseline.Intake == nil {
		return nil
	}

	var checks []domain.AttributionCheck
	for _, skill := range domain.AllSkills {
		base := baseline.Intake.Signal(skill)
		cur := run.Intake.Signal(skill)
		if base == nil || cur == nil {
			continue
		}

		check := domain.AttributionCheck{
			Skill:    skill,
			Baseline: base.AttributionType,
			Variant:  cur.AttributionType,
		}

		switch variant.Type {
		case domain.VariantInjection:
			// Added signal must never make existing evidence disappear.
			check.Consistent = !(base.EvidenceFound && !cur.EvidenceFound)
			if !check.Consistent {
				check.Note = "evidence disappeared after injection"
			}

		case domain.VariantRemoval:
			if skill != variant.TargetSkill {
				continue
			}
			check.Consistent = c.removalConsistent(base, cur, &check)

		case domain.VariantRephrasing:
			check.Consistent = base.AttributionType == cur.AttributionType
			if !check.Consistent {
				check.Note = "attribution changed under rewording"
			}

		default:
			continue
		}

		checks = append(checks, check)
	}
	return checks
}

// removalConsistent judges the stripped skill's signal. Evidence flipping to
// absent is the expected outcome, not an inconsistency. Evidence newly
// appearing, or surviving with the identical phrase list, is flagged.
func (c *Comparator) removalConsistent(base, cur *domain.SkillSignal, check *domain.AttributionCheck) bool {
	if !base.EvidenceFound && cur.EvidenceFound {
		check.Note = "evidence newly appeared for stripped skill"
		return false
	}
	if base.EvidenceFound && cur.EvidenceFound &&
		base.AttributionType == domain.AttributionExplicit &&
		cur.AttributionType == domain.AttributionExplicit &&
		samePhrases(base.EvidencePhrases, cur.EvidencePhrases) {
		check.Note = "explicit evidence unchanged after keyword removal"
		return false
	}
	return true
}

func samePhrases(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// citationChecks verifies every evidence-source citation in the run against
// the variant's actual profile text: the cited section must contain support
// keywords for the claimed skill. An unverifiable citation is a
// hallucination.
func (c *Comparator) citationChecks(variant *domain.ProfileVariant, run *domain.PipelineRunResult) []domain.CitationCheck {
	var checks []domain.CitationCheck
	profile := &variant.Profile

	verify := func(stage domain.Stage, skill domain.Skill, sources []domain.EvidenceSource) {
		for _, src := range sources {
			checks = append(checks, domain.CitationCheck{
				Stage:    stage,
				Skill:    skill,
				Source:   src,
				Verified: c.classifier.SupportsSkill(skill, profile.Text(src)),
			})
		}
	}

	if run.Intake != nil {
		for _, sig := range run.Intake.Signals {
			if sig.EvidenceFound && sig.AttributionType == domain.AttributionExplicit {
				verify(domain.StageIntake, sig.Skill, sig.EvidenceSources)
			}
		}
	}
	if run.Gaps != nil {
		for _, g := range run.Gaps.Gaps {
			if g.AttributionType == domain.AttributionExplicit {
				verify(domain.StageGapAnalysis, g.Skill, g.EvidenceSources)
			}
		}
	}
	if run.Recommendations != nil {
		for _, rec := range run.Recommendations.Recommendations {
			verify(domain.StageRecommendations, rec.TargetSkill, rec.EvidenceSources)
		}
	}
	return checks
}

// recommendationStability measures title (or provider+skill) overlap with
// the baseline's recommendation set. Only meaningful under rephrasing.
func (c *Comparator) recommendationStability(run, baseline *domain.PipelineRunResult) (float64, *bool) {
	if run.Recommendations == nil || baseline.Recommendations == nil {
		return 0, nil
	}
	baseRecs := baseline.Recommendations.Recommendations
	if len(baseRecs) == 0 {
		return 0, nil
	}

	matched := 0
	for _, base := range baseRecs {
		for _, cur := range run.Recommendations.Recommendations {
			if cur.Title == base.Title ||
				(cur.Provider != "" && cur.Provider == base.Provider && cur.TargetSkill == base.TargetSkill) {
				matched++
				break
			}
		}
	}

	overlap := float64(matched) / float64(len(baseRecs))
	stable := overlap >= recommendationStabilityThreshold
	return overlap, &stable
}

// planChecks runs the absolute plan-appropriateness properties on any
// variant's run, baseline included: weekly hours within the declared budget,
// per-skill cumulative gain within the growth cap, and gain scaling
// monotonically with gap magnitude.
func (c *Comparator) planChecks(variant *domain.ProfileVariant, run *domain.PipelineRunResult) []domain.PlanCheck {
	if run.Plan == nil {
		return nil
	}
	var checks []domain.PlanCheck
	budget := variant.Profile.WeeklyTimeBudgetHours

	hoursOK := true
	var worst string
	if budget > 0 {
		for _, w := range run.Plan.Weeks {
			var weekHours float64
			for _, task := range w.Tasks {
				weekHours += task.EstimatedTimeHours
			}
			if weekHours > budget {
				hoursOK = false
				worst = fmt.Sprintf("week %d needs %.1fh against a %.1fh budget", w.Week, weekHours, budget)
				break
			}
		}
	}
	checks = append(checks, domain.PlanCheck{
		Name:   "weekly_hours_within_budget",
		Passed: hoursOK,
		Detail: worst,
	})

	gainOK := true
	var gainDetail string
	for _, skill := range domain.AllSkills {
		if total := run.Plan.TotalGain(skill); total > domain.GrowthCap {
			gainOK = false
			gainDetail = fmt.Sprintf("%s total gain %d exceeds cap %d", skill, total, domain.GrowthCap)
			break
		}
	}
	checks = append(checks, domain.PlanCheck{
		Name:   "per_skill_gain_capped",
		Passed: gainOK,
		Detail: gainDetail,
	})

	if run.Gaps != nil {
		monotonic := true
		var monoDetail string
		gaps := run.Gaps.Gaps
		for i := range gaps {
			for j := range gaps {
				if gaps[i].Gap <= 0 || gaps[j].Gap <= 0 {
					continue
				}
				if gaps[i].Gap > gaps[j].Gap &&
					run.Plan.TotalGain(gaps[i].Skill) < run.Plan.TotalGain(gaps[j].Skill) {
					monotonic = false
					monoDetail = fmt.Sprintf("%s has the larger gap but less planned gain than %s",
						gaps[i].Skill, gaps[j].Skill)
				}
			}
		}
		checks = append(checks, domain.PlanCheck{
			Name:   "gain_scales_with_gap",
			Passed: monotonic,
			Detail: monoDetail,
		})
	}

	return checks
}

// Aggregate computes the batch-level rates over every comparison. Three
// metrics are pass fractions; the hallucination metric is the failure
// fraction, since that is what a hallucination rate measures.
func (c *Comparator) Aggregate(comparisons []domain.ComparisonResult) domain.AggregateMetrics {
	var m domain.AggregateMetrics
	var attrPassed, citFailed, stabPassed, planPassed int

	for _, cmp := range comparisons {
		for _, check := range cmp.AttributionChecks {
			m.EvaluatedAttributionChecks++
			if check.Consistent {
				attrPassed++
			}
		}
		for _, check := range cmp.HallucinationChecks {
			m.EvaluatedCitations++
			if !check.Verified {
				citFailed++
			}
		}
		if cmp.RecommendationStable != nil {
			m.EvaluatedStabilityChecks++
			if *cmp.RecommendationStable {
				stabPassed++
			}
		}
		for _, check := range cmp.PlanChecks {
			m.EvaluatedPlanChecks++
			if check.Passed {
				planPassed++
			}
		}
	}

	if m.EvaluatedAttributionChecks > 0 {
		m.AttributionConsistencyRate = float64(attrPassed) / float64(m.EvaluatedAttributionChecks)
	}
	if m.EvaluatedCitations > 0 {
		m.HallucinationRate = float64(citFailed) / float64(m.EvaluatedCitations)
	}
	if m.EvaluatedStabilityChecks > 0 {
		m.RecommendationStabilityRate = float64(stabPassed) / float64(m.EvaluatedStabilityChecks)
	}
	if m.EvaluatedPlanChecks > 0 {
		m.PlanAppropriatenessRate = float64(planPassed) / float64(m.EvaluatedPlanChecks)
	}
	return m
}
