package extract

import (
	"regexp"
	"strings"

	"github.com/litmap/litmap/internal/kb"
	"github.com/litmap/litmap/internal/model"
)

// gazetteerMatcher (tier 1) finds verbatim occurrences of curated place
// names. Confidence comes from the knowledge-base entry.
type gazetteerMatcher struct {
	entries []kb.Entry
}

func newGazetteerMatcher(knowledge *kb.KB) *gazetteerMatcher {
	return &gazetteerMatcher{entries: knowledge.MatchableEntries()}
}

func (m *gazetteerMatcher) Tier() int      { return 1 }
func (m *gazetteerMatcher) Method() string { return model.MethodGazetteer }

func (m *gazetteerMatcher) Match(text string) []model.Candidate {
	var candidates []model.Candidate
	for _, entry := range m.entries {
		offset := 0
		for {
			idx := strings.Index(text[offset:], entry.Name)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(entry.Name)
			candidates = append(candidates, model.Candidate{
				Text:       entry.Name,
				Start:      start,
				End:        end,
				Tier:       m.Tier(),
				Method:     m.Method(),
				Confidence: entry.Confidence,
			})
			offset = end
		}
	}
	return candidates
}

// regexMatcher covers tiers 2-6: a compiled pattern with a fixed method and
// base confidence.
type regexMatcher struct {
	tier       int
	method     string
	confidence float64
	pattern    *regexp.Regexp
}

func (m *regexMatcher) Tier() int      { return m.tier }
func (m *regexMatcher) Method() string { return m.method }

func (m *regexMatcher) Match(text string) []model.Candidate {
	var candidates []model.Candidate
	for _, loc := range m.pattern.FindAllStringIndex(text, -1) {
		candidates = append(candidates, model.Candidate{
			Text:       text[loc[0]:loc[1]],
			Start:      loc[0],
			End:        loc[1],
			Tier:       m.tier,
			Method:     m.method,
			Confidence: m.confidence,
		})
	}
	return candidates
}

// newCompoundMatcher (tier 2) matches prefecture name + municipality:
// 東京都千代田区, 京都府宇治市.
func newCompoundMatcher(knowledge *kb.KB) *regexMatcher {
	names := knowledge.PrefectureNames()
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	pattern := regexp.MustCompile(`(?:` + strings.Join(quoted, "|") + `)\p{Han}{1,6}[市区町村]`)
	return &regexMatcher{
		tier:       2,
		method:     model.MethodCompound,
		confidence: confCompound,
		pattern:    pattern,
	}
}

// newPrefectureMatcher (tier 3) matches the closed set of 47 full prefecture
// names.
func newPrefectureMatcher(knowledge *kb.KB) *regexMatcher {
	names := knowledge.PrefectureNames()
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	return &regexMatcher{
		tier:       3,
		method:     model.MethodPrefecture,
		confidence: confPrefecture,
		pattern:    regexp.MustCompile(strings.Join(quoted, "|")),
	}
}

// newMunicipalityMatcher (tier 4) matches kanji runs ending in a
// city/ward/town/village suffix.
func newMunicipalityMatcher() *regexMatcher {
	return &regexMatcher{
		tier:       4,
		method:     model.MethodMunicipality,
		confidence: confMunicipality,
		pattern:    regexp.MustCompile(`\p{Han}{2,8}[市区町村]`),
	}
}

// newNaturalMatcher (tier 5) matches natural-feature suffixes: mountains,
// rivers, islands, lakes, bays, seas, passes.
func newNaturalMatcher() *regexMatcher {
	return &regexMatcher{
		tier:       5,
		method:     model.MethodNatural,
		confidence: confNatural,
		pattern:    regexp.MustCompile(`\p{Han}{1,7}[山川島湖湾海峠]`),
	}
}

// newReligiousMatcher (tier 6) matches temple/shrine/palace/castle suffixes.
func newReligiousMatcher() *regexMatcher {
	return &regexMatcher{
		tier:       6,
		method:     model.MethodReligious,
		confidence: confReligious,
		pattern:    regexp.MustCompile(`\p{Han}{1,7}(?:神社|[寺宮城])`),
	}
}
