package extract

import "github.com/litmap/litmap/internal/model"

// Matcher is one tier of the extraction hierarchy. Tiers are evaluated
// independently in declared order; a tier never consumes another tier's
// matches. Overlap resolution happens downstream in the span resolver.
type Matcher interface {
	// Tier returns the priority rank (1 = highest)
	Tier() int

	// Method returns the extraction method label recorded on candidates
	Method() string

	// Match scans the sentence text and returns zero or more candidates
	Match(text string) []model.Candidate
}

// Base confidences per tier. Tier 1 uses the per-entry confidence from the
// knowledge base instead.
const (
	confCompound     = 0.98
	confPrefecture   = 0.95
	confMunicipality = 0.85
	confNatural      = 0.75
	confReligious    = 0.70
)
