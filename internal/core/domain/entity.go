package domain

import "time"

// EntityType is a named-entity label from a closed set.
type EntityType string

// Entity labels.
const (
	EntityORG   EntityType = "ORG"
	EntityPER   EntityType = "PER"
	EntityLOC   EntityType = "LOC"
	EntityDATE  EntityType = "DATE"
	EntityMONEY EntityType = "MONEY"
	EntityMISC  EntityType = "MISC"
)

// ParseEntityType maps a model label onto the closed set.
// Common aliases (PERSON, GPE, LOCATION, ORGANIZATION) are folded in;
// anything unrecognised becomes MISC.
func ParseEntityType(label string) EntityType {
	switch label {
	case "ORG", "ORGANIZATION", "ORGANISATION":
		return EntityORG
	case "PER", "PERSON":
		return EntityPER
	case "LOC", "GPE", "LOCATION":
		return EntityLOC
	case "DATE":
		return EntityDATE
	case "MONEY":
		return EntityMONEY
	default:
		return EntityMISC
	}
}

// NamedEntity is a tagged span of text.
type NamedEntity struct {
	Text       string     `json:"text"`
	Label      EntityType `json:"label"`
	StartChar  int        `json:"start_char"`
	EndChar    int        `json:"end_char"`
	Confidence float64    `json:"confidence"`
}

// ExtractionResult is the output of named-entity recognition over one text.
type ExtractionResult struct {
	Entities     []NamedEntity `json:"entities"`
	ModelVersion string        `json:"model_version"`
	ProcessedAt  time.Time     `json:"processed_at"`
}
