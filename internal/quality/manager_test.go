package quality

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/litmap/litmap/internal/model"
	"github.com/litmap/litmap/internal/store"
)

func seedStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	// Healthy place: geocoded, multiple confident mentions
	lat, lng := 35.6762, 139.6503
	tokyoID, _ := s.UpsertPlace(ctx, model.Place{CanonicalName: "東京", Latitude: &lat, Longitude: &lng, Source: "kb", Status: model.StatusPending})
	_, _ = s.UpsertMention(ctx, model.Mention{SentenceID: "s1", PlaceID: tokyoID, MatchedText: "東京", Method: "gazetteer", Confidence: 0.95, Status: model.StatusPending})
	_, _ = s.UpsertMention(ctx, model.Mention{SentenceID: "s2", PlaceID: tokyoID, MatchedText: "東京", Method: "gazetteer", Confidence: 0.9, Status: model.StatusPending})

	// Extraction noise: single weak mention, never geocoded
	for _, name := range []string{"先日飯島", "今飯島"} {
		id, _ := s.UpsertPlace(ctx, model.Place{CanonicalName: name, Status: model.StatusPending})
		_, _ = s.UpsertMention(ctx, model.Mention{SentenceID: "s-" + name, PlaceID: id, MatchedText: name, Method: "municipality", Confidence: 0.3, Status: model.StatusPending})
	}

	// Borderline: geocoded but only one mention
	klat, klng := 35.3192, 139.5469
	kamakuraID, _ := s.UpsertPlace(ctx, model.Place{CanonicalName: "鎌倉", Latitude: &klat, Longitude: &klng, Source: "kb", Status: model.StatusPending})
	_, _ = s.UpsertMention(ctx, model.Mention{SentenceID: "s3", PlaceID: kamakuraID, MatchedText: "鎌倉", Method: "gazetteer", Confidence: 0.95, Status: model.StatusPending})

	return s
}

func actionFor(t *testing.T, findings []Finding, name string) string {
	t.Helper()
	for _, f := range findings {
		if f.Place.CanonicalName == name {
			return f.Action
		}
	}
	t.Fatalf("no finding for %s", name)
	return ""
}

func TestManager_Analyze(t *testing.T) {
	s := seedStore(t)
	m := NewManager(s, model.QualityConfig{MinMentions: 2, MinConfidence: 0.5}, t.TempDir())

	findings, err := m.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(findings) != 4 {
		t.Fatalf("Expected 4 findings, got %d", len(findings))
	}

	if got := actionFor(t, findings, "東京"); got != ActionKeep {
		t.Errorf("Expected 東京 kept, got %s", got)
	}
	if got := actionFor(t, findings, "先日飯島"); got != ActionDelete {
		t.Errorf("Expected 先日飯島 flagged for deletion, got %s", got)
	}
	// Fails only the mention-count signal
	if got := actionFor(t, findings, "鎌倉"); got != ActionReview {
		t.Errorf("Expected 鎌倉 flagged for review, got %s", got)
	}
}

func TestManager_PreviewDoesNotDelete(t *testing.T) {
	s := seedStore(t)
	m := NewManager(s, model.QualityConfig{MinMentions: 2, MinConfidence: 0.5}, t.TempDir())
	ctx := context.Background()

	candidates, err := m.Preview(ctx)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 deletion candidates, got %d", len(candidates))
	}

	for _, name := range []string{"先日飯島", "今飯島", "東京", "鎌倉"} {
		p, err := s.GetPlace(ctx, name)
		if err != nil || p == nil {
			t.Errorf("Expected %s untouched after preview", name)
		}
	}
}

func TestManager_CleanupAuto(t *testing.T) {
	s := seedStore(t)
	dir := t.TempDir()
	m := NewManager(s, model.QualityConfig{MinMentions: 2, MinConfidence: 0.5}, dir)
	ctx := context.Background()

	result, err := m.Cleanup(ctx, nil)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if result.Deleted != 2 {
		t.Errorf("Expected 2 deleted, got %d", result.Deleted)
	}

	if p, _ := s.GetPlace(ctx, "先日飯島"); p != nil {
		t.Error("Expected 先日飯島 deleted")
	}
	if p, _ := s.GetPlace(ctx, "東京"); p == nil {
		t.Error("Expected 東京 to survive automatic cleanup")
	}

	data, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatalf("Expected manifest at %s: %v", result.ManifestPath, err)
	}
	var mf struct {
		Mode   string    `json:"mode"`
		Places []Finding `json:"places"`
	}
	if err := json.Unmarshal(data, &mf); err != nil {
		t.Fatalf("Manifest not valid JSON: %v", err)
	}
	if mf.Mode != "auto" || len(mf.Places) != 2 {
		t.Errorf("Unexpected manifest: mode=%s places=%d", mf.Mode, len(mf.Places))
	}
}

func TestManager_CleanupManualBypassesThresholds(t *testing.T) {
	s := seedStore(t)
	m := NewManager(s, model.QualityConfig{MinMentions: 2, MinConfidence: 0.5}, t.TempDir())
	ctx := context.Background()

	// 鎌倉 is only a review candidate, but an explicit request deletes it
	result, err := m.Cleanup(ctx, []string{"鎌倉"})
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if result.Deleted != 1 {
		t.Errorf("Expected 1 deleted, got %d", result.Deleted)
	}
	if p, _ := s.GetPlace(ctx, "鎌倉"); p != nil {
		t.Error("Expected 鎌倉 deleted on explicit request")
	}
	// Automatic candidates stay untouched in manual mode
	if p, _ := s.GetPlace(ctx, "先日飯島"); p == nil {
		t.Error("Expected automatic candidates untouched in manual mode")
	}
}

func TestManager_CleanupManualExplicitList(t *testing.T) {
	s := seedStore(t)
	m := NewManager(s, model.QualityConfig{MinMentions: 2, MinConfidence: 0.5}, t.TempDir())
	ctx := context.Background()

	result, err := m.Cleanup(ctx, []string{"先日飯島", "今飯島"})
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if result.Deleted != 2 {
		t.Errorf("Expected 2 deleted, got %d", result.Deleted)
	}

	for _, name := range []string{"先日飯島", "今飯島"} {
		if p, _ := s.GetPlace(ctx, name); p != nil {
			t.Errorf("Expected %s deleted", name)
		}
	}
	for _, name := range []string{"東京", "鎌倉"} {
		if p, _ := s.GetPlace(ctx, name); p == nil {
			t.Errorf("Expected %s to survive", name)
		}
	}

	data, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatalf("Expected manifest at %s: %v", result.ManifestPath, err)
	}
	var mf struct {
		Mode   string    `json:"mode"`
		Places []Finding `json:"places"`
	}
	if err := json.Unmarshal(data, &mf); err != nil {
		t.Fatalf("Manifest not valid JSON: %v", err)
	}
	if mf.Mode != "manual" {
		t.Errorf("Expected manual mode, got %s", mf.Mode)
	}
	names := make([]string, len(mf.Places))
	for i, f := range mf.Places {
		names[i] = f.Place.CanonicalName
	}
	if len(names) != 2 || names[0] != "先日飯島" || names[1] != "今飯島" {
		t.Errorf("Expected manifest to list exactly [先日飯島 今飯島], got %v", names)
	}
}

func TestManager_CleanupUnknownNameFails(t *testing.T) {
	s := seedStore(t)
	m := NewManager(s, model.QualityConfig{}, t.TempDir())

	if _, err := m.Cleanup(context.Background(), []string{"存在しない"}); err == nil {
		t.Error("Expected error for unknown place name")
	}
}
