package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/litmap/litmap/internal/kb"
	"github.com/litmap/litmap/internal/model"
)

// Markers that indicate the preceding span is part of a personal name.
var honorifics = []string{"さん", "君", "氏", "先生", "様", "殿"}

// Extractor produces raw place-name candidates from sentence text by running
// every matcher tier independently. Extraction is pure: no shared mutable
// state, safe to fan out across sentences.
type Extractor struct {
	matchers     []Matcher
	knowledge    *kb.KB
	maxSpanRunes int
}

// NewExtractor creates an extractor with the full tier hierarchy.
func NewExtractor(knowledge *kb.KB, cfg model.ExtractionConfig) *Extractor {
	maxRunes := cfg.MaxSpanRunes
	if maxRunes <= 0 {
		maxRunes = 20
	}
	return &Extractor{
		matchers: []Matcher{
			newGazetteerMatcher(knowledge),
			newCompoundMatcher(knowledge),
			newPrefectureMatcher(knowledge),
			newMunicipalityMatcher(),
			newNaturalMatcher(),
			newReligiousMatcher(),
		},
		knowledge:    knowledge,
		maxSpanRunes: maxRunes,
	}
}

// Extract runs all tiers over the sentence text. Candidates may overlap or
// duplicate each other; the span resolver owns deduplication. An empty
// result is a valid outcome, not an error.
func (e *Extractor) Extract(text string) []model.Candidate {
	var candidates []model.Candidate
	for _, matcher := range e.matchers {
		for _, cand := range matcher.Match(text) {
			if utf8.RuneCountInString(cand.Text) > e.maxSpanRunes {
				// Pathological span, almost certainly a false positive
				continue
			}
			cand.LikelyPerson = e.likelyPerson(text, cand)
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

// likelyPerson tags candidates that read as personal names: either the span
// is directly followed by an honorific, or the name carries a high curated
// person prior. Tagged candidates survive to verification, which makes the
// final call.
func (e *Extractor) likelyPerson(text string, cand model.Candidate) bool {
	rest := text[cand.End:]
	for _, h := range honorifics {
		if strings.HasPrefix(rest, h) {
			return true
		}
	}
	return e.knowledge.PersonLikelihood(cand.Text) > 0.5
}
