package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lumenlearn/skillaudit/internal/domain"
	"go.uber.org/zap"
)

const (
	// inferenceConfidenceThreshold gates the problem-solving inference
	// check: only low-confidence absent signals are eligible for promotion.
	inferenceConfidenceThreshold = 0.4

	// minInferenceCategories is how many of the three detectors must hit
	// before a missing signal is promoted to inferred.
	minInferenceCategories = 2

	inferredConfidenceBase = 0.40
	inferredConfidenceStep = 0.05
	inferredConfidenceMax  = 0.55

	capNote = " [30-day projection capped at +25 points; long-term target unchanged]"
)

// discontinuedPrograms maps normalized titles of programs known to have shut
// down to a living alternative. Matches are annotated, never removed.
var discontinuedPrograms = map[string]string{
	"google science fair":          "Regeneron International Science and Engineering Fair",
	"google code-in":               "Google Summer of Code",
	"intel science talent search":  "Regeneron Science Talent Search",
	"microsoft imagine cup junior": "Technovation Girls",
	"yahoo hack u":                 "Major League Hacking local hackathons",
}

// Transformer applies the deterministic responsible-output rules to one
// stage's output at a time: growth caps, attribution classification, and
// freshness annotation. It never fails; ambiguous input degrades to the most
// conservative classification.
type Transformer struct {
	resolver   *GoalResolver
	classifier *EvidenceClassifier
	logger     *zap.Logger
}

func NewTransformer(resolver *GoalResolver, classifier *EvidenceClassifier, logger *zap.Logger) *Transformer {
	return &Transformer{resolver: resolver, classifier: classifier, logger: logger}
}

// ApplyGrowthCap clamps a proposed score against the 30-day cap.
// Within budget, both targets equal the proposal. Over budget, the 30-day
// target is clamped to current+cap (never above 100) while the long-term
// target keeps the full proposal.
func ApplyGrowthCap(currentScore, proposedScore int) (thirtyDay, longTerm int, capped bool) {
	if proposedScore-currentScore <= domain.GrowthCap {
		return proposedScore, proposedScore, false
	}
	thirtyDay = currentScore + domain.GrowthCap
	if thirtyDay > 100 {
		thirtyDay = 100
	}
	return thirtyDay, proposedScore, true
}

// TransformGaps applies the full responsible-output pass to a gap analysis:
// goal levels are recomputed from the goal-weight table (the extractor's own
// goal estimates are never trusted), attribution is carried over from the
// intake signals, and every gap is cap-enforced.
func (t *Transformer) TransformGaps(gaps *domain.GapAnalysis, intake *domain.IntakeSignals, profile *domain.StudentProfile) {
	targets := t.resolver.TargetLevels(profile.SelectedGoals, profile.GoalNarrative)

	for i := range gaps.Gaps {
		g := &gaps.Gaps[i]
		g.GoalLevel = targets[g.Skill]
		g.Gap = g.GoalLevel - g.CurrentLevel

		if intake != nil {
			if sig := intake.Signal(g.Skill); sig != nil {
				g.AttributionType = sig.AttributionType
				g.EvidenceSources = sig.EvidenceSources
			}
		}
		if g.AttributionType == "" {
			g.AttributionType = domain.AttributionMissing
		}

		// With no proposal from the extractor, project toward the goal.
		if g.LongTermTargetScore == 0 && g.Expected30DayScore == 0 {
			proposed := g.GoalLevel
			if proposed < g.CurrentLevel {
				proposed = g.CurrentLevel
			}
			g.LongTermTargetScore = proposed
		}
	}

	t.CapGaps(gaps)
}

// CapGaps enforces the growth cap on every gap in place. Reapplying to an
// already-capped analysis yields the same output: the original proposal
// survives as the long-term target, and the cap note is appended once.
func (t *Transformer) CapGaps(gaps *domain.GapAnalysis) {
	for i := range gaps.Gaps {
		g := &gaps.Gaps[i]

		proposed := g.LongTermTargetScore
		if proposed == 0 {
			proposed = g.Expected30DayScore
		}

		thirtyDay, longTerm, capped := ApplyGrowthCap(g.CurrentLevel, proposed)
		g.Expected30DayScore = thirtyDay
		g.LongTermTargetScore = longTerm
		if capped && !g.GainCapped {
			g.GainCapped = true
			if !strings.Contains(g.Reasoning, capNote) {
				g.Reasoning += capNote
			}
			t.logger.Debug("growth cap applied",
				zap.String("skill", string(g.Skill)),
				zap.Int("current", g.CurrentLevel),
				zap.Int("proposed", longTerm),
				zap.Int("thirty_day", thirtyDay))
		}
	}
}

// CapWeekTasks enforces the remaining per-skill gain budget on one week's
// tasks. The accumulator of already-granted gain is threaded in and the
// updated copy returned, so cumulative capping across weeks stays testable
// one call at a time. The accumulator is never reset between weeks.
func CapWeekTasks(tasks []domain.PlanTask, granted map[domain.Skill]int) ([]domain.PlanTask, map[domain.Skill]int) {
	out := make([]domain.PlanTask, len(tasks))
	updated := make(map[domain.Skill]int, len(granted))
	for k, v := range granted {
		updated[k] = v
	}

	for i, task := range tasks {
		remaining := domain.GrowthCap - updated[task.RelatedSkill]
		if remaining < 0 {
			remaining = 0
		}
		if task.ExpectedSkillGain > remaining {
			task.ExpectedSkillGain = remaining
			task.GainCapped = true
			task.Reasoning += capNote
		}
		updated[task.RelatedSkill] += task.ExpectedSkillGain
		out[i] = task
	}
	return out, updated
}

// CapPlan enforces the cumulative growth cap across all four weeks in week
// order.
func (t *Transformer) CapPlan(plan *domain.ActionPlan) {
	sort.SliceStable(plan.Weeks, func(i, j int) bool {
		return plan.Weeks[i].Week < plan.Weeks[j].Week
	})

	granted := make(map[domain.Skill]int)
	for i := range plan.Weeks {
		plan.Weeks[i].Tasks, granted = CapWeekTasks(plan.Weeks[i].Tasks, granted)
	}
}

// ClassifyAttribution assigns the attribution type for one signal in place.
// Evidence present means explicit. Evidence absent means missing, except for
// a low-confidence problem-solving signal, where the three-category inference
// check may promote it: at least two category hits synthesize an inferred
// signal with a bounded confidence and a justification naming the categories.
func (t *Transformer) ClassifyAttribution(sig *domain.SkillSignal, combinedText string) {
	if sig.EvidenceFound {
		sig.AttributionType = domain.AttributionExplicit
		return
	}

	if sig.Skill != domain.SkillProblemSolving || sig.Confidence >= inferenceConfidenceThreshold {
		sig.AttributionType = domain.AttributionMissing
		return
	}

	matched := t.classifier.InferenceCategories(combinedText)
	if len(matched) < minInferenceCategories {
		sig.AttributionType = domain.AttributionMissing
		return
	}

	confidence := inferredConfidenceBase + inferredConfidenceStep*float64(len(matched)-minInferenceCategories)
	if confidence > inferredConfidenceMax {
		confidence = inferredConfidenceMax
	}

	sig.AttributionType = domain.AttributionInferred
	sig.EvidenceFound = true
	sig.Confidence = confidence
	sig.InferenceSources = matched
	sig.InferenceJustification = fmt.Sprintf(
		"no direct evidence, but correlated signals found in: %s", strings.Join(matched, ", "))

	t.logger.Debug("signal promoted to inferred",
		zap.String("skill", string(sig.Skill)),
		zap.Strings("categories", matched),
		zap.Float64("confidence", confidence))
}

// ClassifyIntake runs attribution classification over every signal, using
// the variant profile's combined free text as the inference corpus.
func (t *Transformer) ClassifyIntake(signals *domain.IntakeSignals, profile *domain.StudentProfile) {
	text := profile.CombinedText()
	for i := range signals.Signals {
		t.ClassifyAttribution(&signals.Signals[i], text)
	}
}

// AnnotateRecommendations flags recommendations whose title matches the
// discontinued-program registry and attaches a living alternative. Annotation
// only; nothing is dropped and the pipeline is never blocked.
func (t *Transformer) AnnotateRecommendations(recs *domain.RecommendationSet) {
	for i := range recs.Recommendations {
		rec := &recs.Recommendations[i]
		key := normalizeProgramTitle(rec.Title)
		if alt, ok := discontinuedPrograms[key]; ok {
			rec.Discontinued = true
			rec.SuggestedAlternative = alt
		}
	}
}

func normalizeProgramTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, "!", "")
	return strings.Join(strings.Fields(s), " ")
}
