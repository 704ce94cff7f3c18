package model

// Config holds the complete engine configuration
type Config struct {
	DB          DBConfig          `yaml:"db"`
	Extraction  ExtractionConfig  `yaml:"extraction"`
	Verifier    VerifierConfig    `yaml:"verifier"`
	Geocoding   GeocodingConfig   `yaml:"geocoding"`
	Quality     QualityConfig     `yaml:"quality"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// DBConfig configures the SQLite persistence layer
type DBConfig struct {
	Path string `yaml:"path"` // Database file (default: ~/.litmap/litmap.db)
}

// ExtractionConfig configures the pattern extractor
type ExtractionConfig struct {
	MaxSpanRunes int    `yaml:"max_span_runes"` // Spans longer than this are discarded
	KBPath       string `yaml:"kb_path"`        // Optional YAML knowledge base overlay
}

// VerifierConfig configures the context verification service
type VerifierConfig struct {
	Provider           string  `yaml:"provider"`            // "openai", "ollama", "" (disabled)
	Model              string  `yaml:"model"`               // Provider-specific model name
	APIKey             string  `yaml:"api_key"`             // Read from env when empty
	BaseURL            string  `yaml:"base_url"`            // Custom endpoint (e.g., Ollama)
	Timeout            int     `yaml:"timeout"`             // Seconds per request
	Threshold          float64 `yaml:"threshold"`           // Base confidence below this triggers verification
	Weight             float64 `yaml:"weight"`              // Verification share in blended confidence
	MaxRetries         int     `yaml:"max_retries"`         // Transient-failure retries before degrading
	RequestsPerSecond  float64 `yaml:"requests_per_second"` // Service quota
	Burst              int     `yaml:"burst"`
}

// GeocodingConfig configures the geocoding resolver chain
type GeocodingConfig struct {
	APIEndpoint       string  `yaml:"api_endpoint"`        // External geocoding service
	Region            string  `yaml:"region"`              // Country filter (default "jp")
	PartialPenalty    float64 `yaml:"partial_penalty"`     // Confidence discount for partial KB matches
	APICap            float64 `yaml:"api_cap"`             // Upper bound on API-sourced confidence
	RequestsPerSecond float64 `yaml:"requests_per_second"` // Service quota
	Burst             int     `yaml:"burst"`
	CacheTTLMinutes   int     `yaml:"cache_ttl_minutes"`   // API response cache lifetime
	CacheDir          string  `yaml:"cache_dir"`           // Disk cache location ("" = memory only)
}

// QualityConfig configures the quality manager thresholds
type QualityConfig struct {
	MinMentions   int     `yaml:"min_mentions"`   // Mention-count floor for deletion candidates
	MinConfidence float64 `yaml:"min_confidence"` // Average-confidence floor
}

// ConcurrencyConfig configures worker fan-out
type ConcurrencyConfig struct {
	ExtractionWorkers int `yaml:"extraction_workers"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DB: DBConfig{
			Path: "", // Resolved to ~/.litmap/litmap.db at open time
		},
		Extraction: ExtractionConfig{
			MaxSpanRunes: 20,
		},
		Verifier: VerifierConfig{
			Provider:          "",
			Timeout:           30,
			Threshold:         0.7,
			Weight:            0.6,
			MaxRetries:        3,
			RequestsPerSecond: 1,
			Burst:             1,
		},
		Geocoding: GeocodingConfig{
			APIEndpoint:       "https://nominatim.openstreetmap.org/search",
			Region:            "jp",
			PartialPenalty:    0.25,
			APICap:            0.80,
			RequestsPerSecond: 1,
			Burst:             1,
			CacheTTLMinutes:   24 * 60,
		},
		Quality: QualityConfig{
			MinMentions:   2,
			MinConfidence: 0.5,
		},
		Concurrency: ConcurrencyConfig{
			ExtractionWorkers: 4,
		},
	}
}
