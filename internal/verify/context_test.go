package verify

import "testing"

func TestContextAnalyzer_PlaceContext(t *testing.T) {
	a := NewContextAnalyzer()

	score := a.Score("鎌倉へ行き、名所を見物した。", "", "")
	if score.PlaceSignals == 0 {
		t.Error("Expected place signals for travel context")
	}
	if !score.IsPlace() {
		t.Errorf("Expected place-dominated score, got %+v", score)
	}
}

func TestContextAnalyzer_PersonContext(t *testing.T) {
	a := NewContextAnalyzer()

	score := a.Score("清水さんは機嫌よく笑った。", "", "")
	if score.PersonSignals == 0 {
		t.Error("Expected person signals for honorific context")
	}
	if score.IsPlace() {
		t.Errorf("Expected person-dominated score, got %+v", score)
	}
}

func TestContextAnalyzer_HistoricalContext(t *testing.T) {
	a := NewContextAnalyzer()

	score := a.Score("甲斐の国は昔から山に囲まれていた。", "", "")
	if score.HistoricalSignals == 0 {
		t.Errorf("Expected historical signals, got %+v", score)
	}
}

func TestContextAnalyzer_ContextWindowCounts(t *testing.T) {
	a := NewContextAnalyzer()

	// Signals in the surrounding sentences count too
	bare := a.Score("甲斐。", "", "")
	windowed := a.Score("甲斐。", "長い旅行だった。", "景色が美しかった。")
	if windowed.PlaceSignals <= bare.PlaceSignals {
		t.Errorf("Expected window to add signals: bare=%+v windowed=%+v", bare, windowed)
	}
}

func TestContextScore_Confidence(t *testing.T) {
	if got := (ContextScore{}).Confidence(); got != 0.5 {
		t.Errorf("Expected neutral confidence 0.5, got %f", got)
	}
	if got := (ContextScore{PlaceSignals: 2}).Confidence(); got != 0.8 {
		t.Errorf("Expected 0.8 for two signals, got %f", got)
	}
	if got := (ContextScore{PlaceSignals: 10}).Confidence(); got != 0.95 {
		t.Errorf("Expected cap at 0.95, got %f", got)
	}
}
