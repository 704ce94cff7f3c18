package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/litmap/litmap/internal/model"
)

// Provider defines the interface for context-verification backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Verify asks the reasoning service whether the candidate is used as a
	// place name in its context
	Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// VerifyRequest contains the candidate span and its context window.
type VerifyRequest struct {
	// Text is the matched span under examination
	Text string

	// Sentence is the sentence containing the span
	Sentence string

	// ContextBefore holds up to two preceding sentences
	ContextBefore string

	// ContextAfter holds up to two following sentences
	ContextAfter string
}

// VerifyResponse is the reasoning service's judgment.
type VerifyResponse struct {
	IsValid        bool            `json:"is_valid"`
	NormalizedName string          `json:"normalized_name"`
	PlaceType      model.PlaceType `json:"place_type"`
	Confidence     float64         `json:"confidence"`
	Reasoning      string          `json:"reasoning,omitempty"`
}

// TransientError marks a failure worth retrying: timeouts, rate limits,
// 5xx responses. Anything else from a provider is permanent.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient verification failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether the error is a retryable service failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// Config holds verification provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for the response
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   30,
		MaxTokens: 300,
	}
}

// BuildPrompt constructs the verification prompt. The service must answer in
// JSON so the response parses deterministically.
func BuildPrompt(req VerifyRequest) string {
	var context strings.Builder
	if req.ContextBefore != "" {
		context.WriteString("前文: " + req.ContextBefore + "\n")
	}
	context.WriteString("文章: " + req.Sentence + "\n")
	if req.ContextAfter != "" {
		context.WriteString("後文: " + req.ContextAfter + "\n")
	}

	return fmt.Sprintf(`以下の文章で使われている「%s」について分析してください。

%s
以下の観点から分析し、JSON形式のみで回答してください:
{
    "is_valid": true/false,
    "normalized_name": "正規化した地名（地名の場合）",
    "place_type": "prefecture/municipality/county/historical/natural/religious/foreign/fictional",
    "confidence": 0.0-1.0,
    "reasoning": "判断理由"
}

判断基準:
- 地名として使われているか、人名として使われているか
- 文学作品での文脈的意味
- 歴史的・地理的な背景`, req.Text, context.String())
}

// ParseResponse extracts the JSON judgment from a provider reply, tolerating
// code fences around the payload.
func ParseResponse(text string) (*VerifyResponse, error) {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+3:]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	}

	resp, err := decodeResponse(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("parse verification response: %w", err)
	}
	return resp, nil
}

func decodeResponse(text string) (*VerifyResponse, error) {
	var raw struct {
		IsValid        bool    `json:"is_valid"`
		NormalizedName string  `json:"normalized_name"`
		PlaceType      string  `json:"place_type"`
		Confidence     float64 `json:"confidence"`
		Reasoning      string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	return &VerifyResponse{
		IsValid:        raw.IsValid,
		NormalizedName: strings.TrimSpace(raw.NormalizedName),
		PlaceType:      mapPlaceType(raw.PlaceType),
		Confidence:     raw.Confidence,
		Reasoning:      raw.Reasoning,
	}, nil
}

// mapPlaceType normalizes the free-form type label a model returns into the
// closed PlaceType set.
func mapPlaceType(s string) model.PlaceType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefecture", "都道府県":
		return model.PlaceTypePrefecture
	case "municipality", "city", "都市", "市区町村":
		return model.PlaceTypeMunicipality
	case "county", "郡":
		return model.PlaceTypeCounty
	case "historical", "歴史地名":
		return model.PlaceTypeHistorical
	case "natural", "自然地名":
		return model.PlaceTypeNatural
	case "religious", "寺社":
		return model.PlaceTypeReligious
	case "foreign", "海外":
		return model.PlaceTypeForeign
	case "fictional", "架空":
		return model.PlaceTypeFictional
	default:
		return ""
	}
}
