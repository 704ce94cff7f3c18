package verify

import "regexp"

// ContextAnalyzer scores the sentence context locally, without an API call.
// It backs two decisions: whether a likely-person candidate can be settled
// cheaply when no provider is configured, and the historical-context hint.
type ContextAnalyzer struct {
	placeIndicators      []*regexp.Regexp
	personIndicators     []*regexp.Regexp
	historicalIndicators []*regexp.Regexp
}

// ContextScore is the outcome of local context analysis
type ContextScore struct {
	PlaceSignals      int
	PersonSignals     int
	HistoricalSignals int
}

// IsPlace reports whether place usage outweighs person usage.
func (s ContextScore) IsPlace() bool {
	return s.PlaceSignals+s.HistoricalSignals > s.PersonSignals
}

// Confidence maps the signal balance into [0.5, 0.95].
func (s ContextScore) Confidence() float64 {
	total := s.PlaceSignals + s.HistoricalSignals
	if total == 0 {
		return 0.5
	}
	conf := 0.5 + float64(total)*0.15
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}

func compileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// NewContextAnalyzer creates an analyzer with the curated indicator patterns.
func NewContextAnalyzer() *ContextAnalyzer {
	return &ContextAnalyzer{
		placeIndicators: compileAll([]string{
			`[へに]行`, `[をに]出`, `[に]住`, `[を]通`, `から来`,
			`[に]着`, `[を]訪`, `[に]向`, `[で]生`, `[を]発`,
			`街`, `町`, `村`, `里`, `滞在`, `旅行`, `参拝`, `見物`, `観光`, `散歩`,
			`出身`, `在住`, `移住`, `帰郷`, `故郷`,
			`景色`, `風景`, `名所`, `遺跡`,
			`駅`, `港`, `橋`,
			`から.*まで`, `を経由`, `経由して`, `通過`, `立ち寄`,
		}),
		personIndicators: compileAll([]string{
			`さん`, `君は`, `氏は`, `先生`, `様は`, `殿は`,
			`は話`, `が言`, `と会`, `に聞`, `と話`, `を呼`,
			`の顔`, `の性格`, `の家族`, `という人`,
			`という名`, `呼ばれ`, `呼んで`,
			`機嫌`, `怒`, `笑`, `泣`, `悲し`, `喜`,
			`は.*言った`, `は.*思った`, `は.*感じた`,
		}),
		historicalIndicators: compileAll([]string{
			`国$`, `藩`, `城下`, `宿場`, `街道`,
			`古く`, `昔`, `江戸時代`, `平安`, `時代`, `当時`, `歴史`,
		}),
	}
}

// Score counts indicator hits over the full context window.
func (a *ContextAnalyzer) Score(sentence, before, after string) ContextScore {
	full := before + " " + sentence + " " + after

	var score ContextScore
	for _, p := range a.placeIndicators {
		if p.MatchString(full) {
			score.PlaceSignals++
		}
	}
	for _, p := range a.personIndicators {
		if p.MatchString(full) {
			score.PersonSignals++
		}
	}
	for _, p := range a.historicalIndicators {
		if p.MatchString(full) {
			score.HistoricalSignals++
		}
	}
	return score
}
