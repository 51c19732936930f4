package domain

// Recommendation is one suggested opportunity from the third stage.
// Discontinued programs are flagged and annotated, never removed: the
// freshness filter only marks output.
type Recommendation struct {
	Title           string           `json:"title"`
	Provider        string           `json:"provider"`
	TargetSkill     Skill            `json:"target_skill"`
	Description     string           `json:"description,omitempty"`
	Reasoning       string           `json:"reasoning"`
	EvidenceSources []EvidenceSource `json:"evidence_sources,omitempty"`

	Discontinued         bool   `json:"discontinued,omitempty"`
	SuggestedAlternative string `json:"suggested_alternative,omitempty"`
}

// RecommendationSet is the third stage's output.
type RecommendationSet struct {
	Recommendations []Recommendation `json:"recommendations"`
}
