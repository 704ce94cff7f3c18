package extract

import (
	"strings"
	"testing"

	"github.com/litmap/litmap/internal/kb"
	"github.com/litmap/litmap/internal/model"
)

func newTestExtractor() *Extractor {
	return NewExtractor(kb.New(), model.ExtractionConfig{MaxSpanRunes: 20})
}

func findByText(candidates []model.Candidate, text string) []model.Candidate {
	var out []model.Candidate
	for _, c := range candidates {
		if c.Text == text {
			out = append(out, c)
		}
	}
	return out
}

func TestExtractor_GazetteerMatches(t *testing.T) {
	extractor := newTestExtractor()

	candidates := extractor.Extract("東京帝国大学から鎌倉へ向かった。")

	tokyo := findByText(candidates, "東京")
	if len(tokyo) == 0 {
		t.Fatal("Expected 東京 candidate")
	}
	if tokyo[0].Method != model.MethodGazetteer {
		t.Errorf("Expected gazetteer method, got %s", tokyo[0].Method)
	}
	if tokyo[0].Confidence < 0.9 {
		t.Errorf("Expected tier-1 confidence, got %f", tokyo[0].Confidence)
	}

	kamakura := findByText(candidates, "鎌倉")
	if len(kamakura) == 0 {
		t.Fatal("Expected 鎌倉 candidate")
	}
	if kamakura[0].Start <= tokyo[0].Start {
		t.Error("Expected 鎌倉 to appear after 東京 in the sentence")
	}
}

func TestExtractor_ByteOffsetsMatchText(t *testing.T) {
	extractor := newTestExtractor()
	text := "私は東京から京都へ行き、金閣寺を見学した。"

	for _, cand := range extractor.Extract(text) {
		if text[cand.Start:cand.End] != cand.Text {
			t.Errorf("Offsets [%d,%d) yield %q, candidate text is %q",
				cand.Start, cand.End, text[cand.Start:cand.End], cand.Text)
		}
	}
}

func TestExtractor_CompoundAndPrefectureTiers(t *testing.T) {
	extractor := newTestExtractor()
	text := "東京都千代田区に住んでいた。"

	candidates := extractor.Extract(text)

	compound := findByText(candidates, "東京都千代田区")
	if len(compound) == 0 {
		t.Fatal("Expected compound candidate 東京都千代田区")
	}
	if compound[0].Method != model.MethodCompound || compound[0].Confidence != 0.98 {
		t.Errorf("Expected compound tier at 0.98, got %s at %f",
			compound[0].Method, compound[0].Confidence)
	}

	pref := findByText(candidates, "東京都")
	if len(pref) == 0 {
		t.Fatal("Expected prefecture candidate 東京都")
	}
	foundPrefTier := false
	for _, c := range pref {
		if c.Method == model.MethodPrefecture && c.Confidence == 0.95 {
			foundPrefTier = true
		}
	}
	if !foundPrefTier {
		t.Error("Expected a tier-3 prefecture match for 東京都")
	}
}

func TestExtractor_SuffixTiers(t *testing.T) {
	extractor := newTestExtractor()

	tests := []struct {
		text   string
		want   string
		method string
	}{
		{"遠く松本市の灯が見えた。", "松本市", model.MethodMunicipality},
		{"浅間山が噴煙を上げていた。", "浅間山", model.MethodNatural},
		{"建長寺の門前を通った。", "建長寺", model.MethodReligious},
		{"明治神社に参拝した。", "明治神社", model.MethodReligious},
	}

	for _, tt := range tests {
		candidates := extractor.Extract(tt.text)
		matched := findByText(candidates, tt.want)
		found := false
		for _, c := range matched {
			if c.Method == tt.method {
				found = true
			}
		}
		if !found {
			t.Errorf("Text %q: expected %q via %s, got %v", tt.text, tt.want, tt.method, candidates)
		}
	}
}

func TestExtractor_TiersEmitIndependently(t *testing.T) {
	extractor := newTestExtractor()

	// 京都 is in the gazetteer and 京都府 matches the prefecture tier; both
	// candidates must be emitted, overlapping.
	candidates := extractor.Extract("京都府へ移った。")

	if len(findByText(candidates, "京都")) == 0 {
		t.Error("Expected gazetteer candidate 京都")
	}
	if len(findByText(candidates, "京都府")) == 0 {
		t.Error("Expected prefecture candidate 京都府")
	}
}

func TestExtractor_LengthCap(t *testing.T) {
	extractor := NewExtractor(kb.New(), model.ExtractionConfig{MaxSpanRunes: 20})

	// A 21+ kanji run ending in 市 would match the municipality pattern shape
	// but the suffix tier itself caps at 8 kanji; verify the cap with a
	// configured tighter limit instead.
	tight := NewExtractor(kb.New(), model.ExtractionConfig{MaxSpanRunes: 2})
	candidates := tight.Extract("千代田区")
	if len(findByText(candidates, "千代田区")) != 0 {
		t.Error("Expected 4-rune span to be dropped under a 2-rune cap")
	}

	candidates = extractor.Extract("千代田区")
	if len(findByText(candidates, "千代田区")) == 0 {
		t.Error("Expected 千代田区 under the default cap")
	}
}

func TestExtractor_LikelyPersonTagging(t *testing.T) {
	extractor := newTestExtractor()

	// Honorific directly after the span
	candidates := extractor.Extract("清水さんは笑った。")
	shimizu := findByText(candidates, "清水")
	if len(shimizu) == 0 {
		t.Fatal("Expected 清水 candidate")
	}
	if !shimizu[0].LikelyPerson {
		t.Error("Expected 清水さん to be tagged likely-person")
	}

	// Curated high person prior without honorific
	candidates = extractor.Extract("柏は黙って机に向かった。")
	kashiwa := findByText(candidates, "柏")
	if len(kashiwa) == 0 {
		t.Fatal("Expected 柏 candidate")
	}
	if !kashiwa[0].LikelyPerson {
		t.Error("Expected 柏 to carry the likely-person tag")
	}

	// Plain place usage stays untagged
	candidates = extractor.Extract("鎌倉へ向かった。")
	kamakura := findByText(candidates, "鎌倉")
	if len(kamakura) == 0 {
		t.Fatal("Expected 鎌倉 candidate")
	}
	if kamakura[0].LikelyPerson {
		t.Error("鎌倉 should not be tagged likely-person")
	}
}

func TestExtractor_EmptyResultIsValid(t *testing.T) {
	extractor := newTestExtractor()

	candidates := extractor.Extract("ただ静かな夜だった。")
	for _, c := range candidates {
		if strings.Contains("ただ静かな夜だった。", c.Text) && c.Method == model.MethodGazetteer {
			t.Errorf("Unexpected gazetteer match %q", c.Text)
		}
	}
}
