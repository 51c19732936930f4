package domain

import "github.com/google/uuid"

// VariantType classifies a controlled profile mutation.
type VariantType string

const (
	VariantOriginal   VariantType = "original"
	VariantInjection  VariantType = "injection"
	VariantRemoval    VariantType = "removal"
	VariantRephrasing VariantType = "rephrasing"
)

func ValidVariantType(t string) bool {
	switch VariantType(t) {
	case VariantOriginal, VariantInjection, VariantRemoval, VariantRephrasing:
		return true
	}
	return false
}

// ProfileVariant is one perturbed (or identity) copy of a source profile.
// Only free-text fields differ from the source; structured fields are shared.
// Exactly one variant exists per (profile, type) pair, and the original
// always runs first.
type ProfileVariant struct {
	ID              uuid.UUID   `json:"id"`
	SourceProfileID uuid.UUID   `json:"source_profile_id"`
	Type            VariantType `json:"variant_type"`

	// TargetSkill and MutatedField describe what an injection or removal
	// variant changed, so the comparison engine knows which signal should
	// have moved. Unset for original and rephrasing.
	TargetSkill  Skill          `json:"target_skill,omitempty"`
	MutatedField EvidenceSource `json:"mutated_field,omitempty"`

	Profile StudentProfile `json:"profile"`
}
