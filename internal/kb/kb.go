package kb

import (
	"fmt"
	"os"
	"strings"

	"github.com/litmap/litmap/internal/model"
	"gopkg.in/yaml.v3"
)

// Entry is one coordinate record in the knowledge base.
type Entry struct {
	Name       string          `yaml:"name"`
	Latitude   float64         `yaml:"lat"`
	Longitude  float64         `yaml:"lng"`
	Prefecture string          `yaml:"prefecture,omitempty"`
	Type       model.PlaceType `yaml:"type,omitempty"`
	Confidence float64         `yaml:"confidence"`
}

// KB is the immutable place-name knowledge base. It is loaded once and
// injected into both the extractor and the geocoder; no code mutates it
// after construction.
type KB struct {
	gazetteer   map[string]Entry // Well-known place names, keyed verbatim
	historical  map[string]Entry // Pre-modern names mapped to modern coordinates
	prefectures map[string]Entry // 47 prefecture centroids, keyed by full name
	foreign     map[string]Entry // Foreign places frequent in literary text
	ambiguous   map[string]float64 // Name -> likelihood it is a personal name

	prefectureNames []string // Full names, fixed order
	gazetteerNames  []string // Fixed order for deterministic matching
	historicalNames []string
	foreignNames    []string
}

// New builds the knowledge base from the built-in tables.
func New() *KB {
	kb := &KB{
		gazetteer:   make(map[string]Entry),
		historical:  make(map[string]Entry),
		prefectures: make(map[string]Entry),
		foreign:     make(map[string]Entry),
		ambiguous:   make(map[string]float64),
	}
	for _, e := range builtinGazetteer {
		kb.addGazetteer(e)
	}
	for _, e := range builtinHistorical {
		kb.addHistorical(e)
	}
	for _, e := range builtinPrefectures {
		kb.prefectures[e.Name] = e
		kb.prefectureNames = append(kb.prefectureNames, e.Name)
	}
	for _, e := range builtinForeign {
		kb.addForeign(e)
	}
	for name, likelihood := range builtinAmbiguous {
		kb.ambiguous[name] = likelihood
	}
	return kb
}

// Load builds the knowledge base and overlays entries from a YAML file.
// Overlay entries shadow built-ins with the same name.
func Load(path string) (*KB, error) {
	kb := New()
	if path == "" {
		return kb, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var overlay struct {
		Gazetteer  []Entry `yaml:"gazetteer"`
		Historical []Entry `yaml:"historical"`
		Foreign    []Entry `yaml:"foreign"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}

	for _, e := range overlay.Gazetteer {
		kb.addGazetteer(e)
	}
	for _, e := range overlay.Historical {
		kb.addHistorical(e)
	}
	for _, e := range overlay.Foreign {
		kb.addForeign(e)
	}
	return kb, nil
}

func (kb *KB) addGazetteer(e Entry) {
	if _, exists := kb.gazetteer[e.Name]; !exists {
		kb.gazetteerNames = append(kb.gazetteerNames, e.Name)
	}
	kb.gazetteer[e.Name] = e
}

func (kb *KB) addHistorical(e Entry) {
	if _, exists := kb.historical[e.Name]; !exists {
		kb.historicalNames = append(kb.historicalNames, e.Name)
	}
	kb.historical[e.Name] = e
}

func (kb *KB) addForeign(e Entry) {
	if _, exists := kb.foreign[e.Name]; !exists {
		kb.foreignNames = append(kb.foreignNames, e.Name)
	}
	kb.foreign[e.Name] = e
}

// MatchableEntries returns every entry the exact-match extraction tier should
// scan for: gazetteer, foreign, and historical names, in fixed order.
// Historical entries are matchable even though the geocoder resolves them
// through a separate table.
func (kb *KB) MatchableEntries() []Entry {
	entries := make([]Entry, 0, len(kb.gazetteerNames)+len(kb.foreignNames)+len(kb.historicalNames))
	for _, name := range kb.gazetteerNames {
		entries = append(entries, kb.gazetteer[name])
	}
	for _, name := range kb.foreignNames {
		entries = append(entries, kb.foreign[name])
	}
	for _, name := range kb.historicalNames {
		entries = append(entries, kb.historical[name])
	}
	return entries
}

// LookupExact returns the gazetteer, prefecture, or foreign entry matching
// the name verbatim.
func (kb *KB) LookupExact(name string) (Entry, bool) {
	if e, ok := kb.gazetteer[name]; ok {
		return e, true
	}
	if e, ok := kb.prefectures[name]; ok {
		return e, true
	}
	if e, ok := kb.foreign[name]; ok {
		return e, true
	}
	return Entry{}, false
}

// LookupHistorical returns the historical-name entry for a pre-modern name.
func (kb *KB) LookupHistorical(name string) (Entry, bool) {
	e, ok := kb.historical[name]
	return e, ok
}

// LookupPartial finds a gazetteer or prefecture entry that contains or is
// contained by the name (e.g., 東京市 matches the 東京 entry). Candidates
// shorter than two runes never partial-match; single kanji contain no
// locating information.
func (kb *KB) LookupPartial(name string) (Entry, bool) {
	if len([]rune(name)) < 2 {
		return Entry{}, false
	}
	for _, key := range kb.gazetteerNames {
		if key == name {
			continue
		}
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return kb.gazetteer[key], true
		}
	}
	for _, full := range kb.prefectureNames {
		base := model.NormalizeName(full)
		if strings.Contains(name, base) || strings.Contains(base, name) {
			return kb.prefectures[full], true
		}
	}
	return Entry{}, false
}

// PrefectureCentroid resolves a prefecture inferred from the name to its
// centroid. The name may carry or omit the 都/道/府/県 marker.
func (kb *KB) PrefectureCentroid(name string) (Entry, bool) {
	if e, ok := kb.prefectures[name]; ok {
		return e, true
	}
	for _, full := range kb.prefectureNames {
		if model.NormalizeName(full) == model.NormalizeName(name) {
			return kb.prefectures[full], true
		}
	}
	return Entry{}, false
}

// PersonLikelihood returns the prior probability that the name refers to a
// person rather than a place, for names on the curated ambiguous list.
func (kb *KB) PersonLikelihood(name string) float64 {
	return kb.ambiguous[name]
}

// PrefectureNames returns the 47 full prefecture names in fixed order.
func (kb *KB) PrefectureNames() []string {
	return kb.prefectureNames
}

// GazetteerNames returns all gazetteer names in fixed order.
func (kb *KB) GazetteerNames() []string {
	return kb.gazetteerNames
}
