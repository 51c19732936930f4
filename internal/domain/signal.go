package domain

// Skill is one of the six competencies tracked across every pipeline stage.
type Skill string

const (
	SkillProblemSolving Skill = "problem_solving"
	SkillCommunication  Skill = "communication"
	SkillTechnical      Skill = "technical_skills"
	SkillCreativity     Skill = "creativity"
	SkillLeadership     Skill = "leadership"
	SkillSelfManagement Skill = "self_management"
)

var AllSkills = []Skill{
	SkillProblemSolving,
	SkillCommunication,
	SkillTechnical,
	SkillCreativity,
	SkillLeadership,
	SkillSelfManagement,
}

func ValidSkill(s string) bool {
	switch Skill(s) {
	case SkillProblemSolving, SkillCommunication, SkillTechnical,
		SkillCreativity, SkillLeadership, SkillSelfManagement:
		return true
	}
	return false
}

// AttributionType classifies how a signal's evidence was obtained.
type AttributionType string

const (
	AttributionExplicit AttributionType = "explicit"
	AttributionInferred AttributionType = "inferred"
	AttributionMissing  AttributionType = "missing"
)

func ValidAttributionType(t string) bool {
	switch AttributionType(t) {
	case AttributionExplicit, AttributionInferred, AttributionMissing:
		return true
	}
	return false
}

// MaxEvidencePhrases bounds the phrase list carried on one signal.
const MaxEvidencePhrases = 5

// SkillSignal is the structured evidence record for one skill.
//
// Invariants maintained by the transform layer:
// attribution explicit or inferred implies EvidenceFound true; inferred
// additionally implies non-empty InferenceSources; missing implies
// EvidenceFound false.
type SkillSignal struct {
	Skill           Skill            `json:"skill"`
	EvidenceFound   bool             `json:"evidence_found"`
	EvidencePhrases []string         `json:"evidence_phrases,omitempty"`
	EvidenceSources []EvidenceSource `json:"evidence_sources,omitempty"`
	Confidence      float64          `json:"confidence"`
	Reasoning       string           `json:"reasoning"`

	AttributionType        AttributionType `json:"attribution_type"`
	InferenceSources       []string        `json:"inference_sources,omitempty"`
	InferenceJustification string          `json:"inference_justification,omitempty"`
}

// IntakeSignals is the first stage's output: exactly one signal per skill.
type IntakeSignals struct {
	Signals []SkillSignal `json:"signals"`
}

// Signal returns the signal for the given skill, or nil.
func (s *IntakeSignals) Signal(skill Skill) *SkillSignal {
	for i := range s.Signals {
		if s.Signals[i].Skill == skill {
			return &s.Signals[i]
		}
	}
	return nil
}
