package geocode

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/litmap/litmap/internal/kb"
	"github.com/litmap/litmap/internal/model"
	"github.com/litmap/litmap/internal/store"
)

// fakeAPI returns canned results keyed by query.
type fakeAPI struct {
	results map[string]*APIResult
	calls   int
}

func (f *fakeAPI) Lookup(ctx context.Context, name string) (*APIResult, error) {
	f.calls++
	return f.results[name], nil
}

func TestGeocoder_ExactKBHit(t *testing.T) {
	g := NewGeocoder(kb.New(), nil, model.GeocodingConfig{Region: "jp"})

	result := g.Resolve(context.Background(), "東京", "")

	if !result.Found || result.Source != SourceKB {
		t.Fatalf("Expected kb hit, got %+v", result)
	}
	if result.Latitude != 35.6762 || result.Longitude != 139.6503 {
		t.Errorf("Unexpected coordinates: %f, %f", result.Latitude, result.Longitude)
	}
	if !reflect.DeepEqual(result.Attempted, []string{SourceKB}) {
		t.Errorf("Expected only the kb stage attempted, got %v", result.Attempted)
	}
}

func TestGeocoder_PrefectureSuffixNormalizes(t *testing.T) {
	g := NewGeocoder(kb.New(), nil, model.GeocodingConfig{Region: "jp"})

	with := g.Resolve(context.Background(), "山梨県", "")
	without := g.Resolve(context.Background(), "山梨", "")

	if !with.Found || !without.Found {
		t.Fatalf("Expected both forms to resolve, got %+v / %+v", with, without)
	}
	if with.Latitude != without.Latitude || with.Longitude != without.Longitude {
		t.Error("Expected 山梨県 and 山梨 to resolve to the same coordinates")
	}
}

func TestGeocoder_HistoricalName(t *testing.T) {
	g := NewGeocoder(kb.New(), nil, model.GeocodingConfig{Region: "jp"})

	result := g.Resolve(context.Background(), "甲斐", model.PlaceTypeHistorical)

	if !result.Found || result.Source != SourceHistorical {
		t.Fatalf("Expected historical hit, got %+v", result)
	}
	if result.Latitude != 35.6635 || result.Longitude != 138.5681 {
		t.Errorf("Unexpected coordinates: %f, %f", result.Latitude, result.Longitude)
	}
	if result.Confidence != 0.90 {
		t.Errorf("Expected confidence 0.90, got %f", result.Confidence)
	}
	if result.Prefecture != "山梨県" {
		t.Errorf("Expected prefecture 山梨県, got %s", result.Prefecture)
	}
}

func TestGeocoder_PartialMatchPenalized(t *testing.T) {
	g := NewGeocoder(kb.New(), nil, model.GeocodingConfig{Region: "jp", PartialPenalty: 0.25})

	// 東京市 is not in the knowledge base verbatim but contains 東京
	result := g.Resolve(context.Background(), "東京市", "")

	if !result.Found || result.Source != SourcePartial {
		t.Fatalf("Expected partial hit, got %+v", result)
	}
	want := 0.95 - 0.25
	if diff := result.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected penalized confidence %f, got %f", want, result.Confidence)
	}
}

func TestGeocoder_APIStage(t *testing.T) {
	api := &fakeAPI{results: map[string]*APIResult{
		"馬込": {Latitude: 35.589, Longitude: 139.707, Importance: 0.45},
	}}
	g := NewGeocoder(kb.New(), api, model.GeocodingConfig{Region: "jp", APICap: 0.80})

	result := g.Resolve(context.Background(), "馬込", "")

	if !result.Found || result.Source != SourceAPI {
		t.Fatalf("Expected api hit, got %+v", result)
	}
	want := 0.6 + 0.45*0.3
	if diff := result.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected confidence %f, got %f", want, result.Confidence)
	}
}

func TestGeocoder_APIConfidenceCapped(t *testing.T) {
	api := &fakeAPI{results: map[string]*APIResult{
		"馬込": {Latitude: 35.589, Longitude: 139.707, Importance: 0.9},
	}}
	g := NewGeocoder(kb.New(), api, model.GeocodingConfig{Region: "jp", APICap: 0.80})

	result := g.Resolve(context.Background(), "馬込", "")
	if result.Confidence != 0.80 {
		t.Errorf("Expected api confidence capped at 0.80, got %f", result.Confidence)
	}
}

func TestGeocoder_APIHitOutsideJapanRejected(t *testing.T) {
	api := &fakeAPI{results: map[string]*APIResult{
		"馬込": {Latitude: 48.85, Longitude: 2.35, Importance: 0.9}, // Paris
	}}
	g := NewGeocoder(kb.New(), api, model.GeocodingConfig{Region: "jp"})

	result := g.Resolve(context.Background(), "馬込", "")
	if result.Found {
		t.Errorf("Expected out-of-region api hit rejected, got %+v", result)
	}
}

func TestGeocoder_FictionalSkipsAPI(t *testing.T) {
	api := &fakeAPI{results: map[string]*APIResult{}}
	g := NewGeocoder(kb.New(), api, model.GeocodingConfig{Region: "jp"})

	result := g.Resolve(context.Background(), "猫町", model.PlaceTypeFictional)

	if api.calls != 0 {
		t.Errorf("Expected no api call for a fictional place, got %d", api.calls)
	}
	for _, stage := range result.Attempted {
		if stage == SourceAPI {
			t.Error("Expected api stage not attempted for a fictional place")
		}
	}
}

func TestGeocoder_PrefectureCentroidFallback(t *testing.T) {
	g := NewGeocoder(kb.New(), nil, model.GeocodingConfig{Region: "jp"})

	// Unknown place, but the name carries a prefecture
	result := g.Resolve(context.Background(), "岩手県小本", "")

	if !result.Found || result.Source != SourceCentroid {
		t.Fatalf("Expected centroid fallback, got %+v", result)
	}
	if result.Confidence != 0.5 {
		t.Errorf("Expected centroid confidence 0.5, got %f", result.Confidence)
	}
	if result.Prefecture != "岩手県" {
		t.Errorf("Expected prefecture 岩手県, got %s", result.Prefecture)
	}
}

func TestGeocoder_NotFoundRecordsAllStages(t *testing.T) {
	g := NewGeocoder(kb.New(), nil, model.GeocodingConfig{Region: "jp"})

	result := g.Resolve(context.Background(), "ⅩⅩ", "")

	if result.Found {
		t.Fatalf("Expected not-found, got %+v", result)
	}
	// API stage skipped with a nil client
	want := []string{SourceKB, SourceHistorical, SourcePartial, SourceCentroid}
	if !reflect.DeepEqual(result.Attempted, want) {
		t.Errorf("Expected attempted %v, got %v", want, result.Attempted)
	}
}

func TestGeocoder_Idempotent(t *testing.T) {
	g := NewGeocoder(kb.New(), nil, model.GeocodingConfig{Region: "jp"})

	first := g.Resolve(context.Background(), "鎌倉", "")
	second := g.Resolve(context.Background(), "鎌倉", "")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
}

func TestBatch_ResolvesAndPersists(t *testing.T) {
	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	_, _ = s.UpsertPlace(ctx, model.Place{CanonicalName: "甲斐", Type: model.PlaceTypeHistorical, Status: model.StatusPending})
	_, _ = s.UpsertPlace(ctx, model.Place{CanonicalName: "ⅩⅩ", Status: model.StatusPending})

	batch := NewBatch(s, NewGeocoder(kb.New(), nil, model.GeocodingConfig{Region: "jp"}))
	report, err := batch.Run(ctx, 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Processed != 2 || report.Resolved != 1 || report.NotFound != 1 {
		t.Errorf("Unexpected report: %+v", report)
	}

	p, _ := s.GetPlace(ctx, "甲斐")
	if !p.Geocoded() || p.Source != SourceHistorical {
		t.Errorf("Expected persisted historical coordinates, got %+v", p)
	}

	// A second run has nothing left to do
	report, err = batch.Run(ctx, 0)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if report.Processed != 1 || report.NotFound != 1 {
		t.Errorf("Expected only the unresolvable place on replay, got %+v", report)
	}
}
