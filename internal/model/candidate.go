package model

// Candidate is an unresolved, possibly-overlapping span proposed by the
// pattern extractor. Candidates live only for the duration of a single
// sentence's resolution and are never persisted.
type Candidate struct {
	Text         string  `json:"text"`          // The matched span
	Start        int     `json:"start"`         // Byte offset into the sentence
	End          int     `json:"end"`           // Byte offset past the span
	Tier         int     `json:"tier"`          // Matcher tier that produced it (1 = highest priority)
	Method       string  `json:"method"`        // Extraction method label (e.g., "gazetteer")
	Confidence   float64 `json:"confidence"`    // Base confidence from the tier
	LikelyPerson bool    `json:"likely_person"` // Span looks like part of a personal name
}

// Length returns the span length in bytes.
func (c Candidate) Length() int {
	return c.End - c.Start
}

// Overlaps reports whether two candidate spans share at least one byte.
func (c Candidate) Overlaps(other Candidate) bool {
	return c.Start < other.End && other.Start < c.End
}

// Extraction method labels, one per matcher tier.
const (
	MethodGazetteer    = "gazetteer"
	MethodCompound     = "compound"
	MethodPrefecture   = "prefecture"
	MethodMunicipality = "municipality_suffix"
	MethodNatural      = "natural_suffix"
	MethodReligious    = "religious_suffix"
)
