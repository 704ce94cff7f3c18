package geocode

import (
	"context"
	"strings"

	"github.com/litmap/litmap/internal/kb"
	"github.com/litmap/litmap/internal/model"
)

// Coordinate sources, in the order the chain tries them.
const (
	SourceKB         = "kb"
	SourceHistorical = "historical"
	SourcePartial    = "kb_partial"
	SourceAPI        = "api"
	SourceCentroid   = "prefecture_centroid"
)

// Japan bounding box. API hits outside it are treated as misses when the
// region filter says Japanese places only.
const (
	japanMinLat = 24.0
	japanMaxLat = 45.5
	japanMinLng = 122.0
	japanMaxLng = 146.0
)

// Result is the outcome of one geocoding attempt. Attempted records every
// stage tried, in order, whether or not coordinates were found.
type Result struct {
	Name       string
	Latitude   float64
	Longitude  float64
	Found      bool
	Confidence float64
	Source     string
	Prefecture string
	Attempted  []string
}

// APILookup is the external-service stage of the chain, abstracted so tests
// can substitute a canned service.
type APILookup interface {
	Lookup(ctx context.Context, name string) (*APIResult, error)
}

// Geocoder resolves place names to coordinates through a fixed fallback
// chain: exact knowledge base, historical names, partial knowledge base,
// external API, prefecture centroid.
type Geocoder struct {
	knowledge      *kb.KB
	api            APILookup
	partialPenalty float64
	apiCap         float64
	region         string
}

// NewGeocoder creates a geocoder. A nil api disables the external stage.
func NewGeocoder(knowledge *kb.KB, api APILookup, cfg model.GeocodingConfig) *Geocoder {
	penalty := cfg.PartialPenalty
	if penalty == 0 {
		penalty = 0.25
	}
	cap := cfg.APICap
	if cap == 0 {
		cap = 0.80
	}
	return &Geocoder{
		knowledge:      knowledge,
		api:            api,
		partialPenalty: penalty,
		apiCap:         cap,
		region:         cfg.Region,
	}
}

// Resolve runs the chain for one place name. Resolving the same name twice
// yields the same result; no stage mutates state.
func (g *Geocoder) Resolve(ctx context.Context, name string, placeType model.PlaceType) Result {
	normalized := model.NormalizeName(name)
	result := Result{Name: name}

	result.Attempted = append(result.Attempted, SourceKB)
	if e, ok := g.lookupExact(name, normalized); ok {
		return g.hit(result, e.Latitude, e.Longitude, e.Confidence, SourceKB, e.Prefecture)
	}

	result.Attempted = append(result.Attempted, SourceHistorical)
	if e, ok := g.knowledge.LookupHistorical(normalized); ok {
		return g.hit(result, e.Latitude, e.Longitude, e.Confidence, SourceHistorical, e.Prefecture)
	}

	result.Attempted = append(result.Attempted, SourcePartial)
	if e, ok := g.knowledge.LookupPartial(normalized); ok {
		conf := e.Confidence - g.partialPenalty
		if conf < 0.3 {
			conf = 0.3
		}
		return g.hit(result, e.Latitude, e.Longitude, conf, SourcePartial, e.Prefecture)
	}

	// Invented places never resolve through a real-world service
	if g.api != nil && placeType != model.PlaceTypeFictional {
		result.Attempted = append(result.Attempted, SourceAPI)
		if hit, err := g.api.Lookup(ctx, name); err == nil && hit != nil {
			if g.region != "jp" || inJapan(hit.Latitude, hit.Longitude) {
				conf := 0.6 + hit.Importance*0.3
				if conf > g.apiCap {
					conf = g.apiCap
				}
				return g.hit(result, hit.Latitude, hit.Longitude, conf, SourceAPI, "")
			}
		}
	}

	result.Attempted = append(result.Attempted, SourceCentroid)
	if e, ok := g.inferPrefecture(normalized); ok {
		return g.hit(result, e.Latitude, e.Longitude, 0.5, SourceCentroid, e.Name)
	}

	return result
}

func (g *Geocoder) lookupExact(name, normalized string) (kb.Entry, bool) {
	if e, ok := g.knowledge.LookupExact(name); ok {
		return e, true
	}
	if normalized != name {
		if e, ok := g.knowledge.LookupExact(normalized); ok {
			return e, true
		}
	}
	// Prefecture names arrive with or without the 都/道/府/県 marker
	return g.knowledge.PrefectureCentroid(name)
}

// inferPrefecture finds a prefecture whose base name appears inside the
// place name, e.g. 長野県松本 falls back to the 長野県 centroid.
func (g *Geocoder) inferPrefecture(name string) (kb.Entry, bool) {
	for _, full := range g.knowledge.PrefectureNames() {
		base := model.NormalizeName(full)
		if strings.Contains(name, base) {
			return g.knowledge.PrefectureCentroid(full)
		}
	}
	return kb.Entry{}, false
}

func (g *Geocoder) hit(r Result, lat, lng, conf float64, source, prefecture string) Result {
	r.Latitude = lat
	r.Longitude = lng
	r.Confidence = conf
	r.Source = source
	r.Prefecture = prefecture
	r.Found = true
	return r
}

func inJapan(lat, lng float64) bool {
	return lat >= japanMinLat && lat <= japanMaxLat && lng >= japanMinLng && lng <= japanMaxLng
}
