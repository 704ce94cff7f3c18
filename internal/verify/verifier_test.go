package verify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/litmap/litmap/internal/model"
)

// fakeProvider returns scripted responses/errors in sequence.
type fakeProvider struct {
	responses []*VerifyResponse
	errs      []error
	calls     int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeProvider) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return nil, fmt.Errorf("no scripted response for call %d", i)
}

func noSleep(t *testing.T) {
	t.Helper()
	orig := sleepFunc
	sleepFunc = func(time.Duration) {}
	t.Cleanup(func() { sleepFunc = orig })
}

func TestVerifier_ShouldVerifyPolicy(t *testing.T) {
	v := NewVerifier(nil, nil, model.VerifierConfig{Threshold: 0.7})

	tests := []struct {
		name string
		cand model.Candidate
		want bool
	}{
		{"high confidence tier 1 skips", model.Candidate{Tier: 1, Confidence: 0.95}, false},
		{"high confidence tier 3 skips", model.Candidate{Tier: 3, Confidence: 0.95}, false},
		{"low confidence triggers", model.Candidate{Tier: 1, Confidence: 0.5}, true},
		{"likely person always triggers", model.Candidate{Tier: 1, Confidence: 0.95, LikelyPerson: true}, true},
		{"tier 4 triggers even above threshold", model.Candidate{Tier: 4, Confidence: 0.85}, true},
		{"tier 6 triggers", model.Candidate{Tier: 6, Confidence: 0.70}, true},
	}

	for _, tt := range tests {
		if got := v.ShouldVerify(tt.cand); got != tt.want {
			t.Errorf("%s: ShouldVerify = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestVerifier_RejectionDiscardsCandidate(t *testing.T) {
	provider := &fakeProvider{
		responses: []*VerifyResponse{
			{IsValid: false, Confidence: 0.9, Reasoning: "surname of the protagonist"},
		},
	}
	v := NewVerifier(provider, nil, model.VerifierConfig{})

	cand := model.Candidate{Text: "夏目", Tier: 1, Confidence: 0.9, LikelyPerson: true}
	sentence := model.Sentence{ID: "s1", Text: "夏目は原稿を書き続けた。"}

	outcome := v.Verify(context.Background(), cand, sentence)

	if outcome.Keep {
		t.Error("Expected rejected candidate to be discarded")
	}
	if outcome.Status != model.StatusRejected {
		t.Errorf("Expected rejected status, got %s", outcome.Status)
	}
}

func TestVerifier_SuccessNormalizesAndBlends(t *testing.T) {
	provider := &fakeProvider{
		responses: []*VerifyResponse{
			{IsValid: true, NormalizedName: "東京", PlaceType: model.PlaceTypeMunicipality, Confidence: 0.9},
		},
	}
	v := NewVerifier(provider, nil, model.VerifierConfig{Weight: 0.6})

	cand := model.Candidate{Text: "東京市", Tier: 4, Confidence: 0.85}
	outcome := v.Verify(context.Background(), cand, model.Sentence{Text: "東京市に出た。"})

	if !outcome.Keep {
		t.Fatal("Expected candidate to survive")
	}
	if outcome.Candidate.Text != "東京" {
		t.Errorf("Expected matched text overwritten with normalized name, got %s", outcome.Candidate.Text)
	}
	want := 0.6*0.9 + 0.4*0.85
	if diff := outcome.Candidate.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected blended confidence %f, got %f", want, outcome.Candidate.Confidence)
	}
	if outcome.Status != model.StatusVerified {
		t.Errorf("Expected verified status, got %s", outcome.Status)
	}
}

func TestVerifier_TransientFailureDegradesToUnverified(t *testing.T) {
	noSleep(t)

	transient := &TransientError{Err: fmt.Errorf("503")}
	provider := &fakeProvider{errs: []error{transient, transient, transient}}
	v := NewVerifier(provider, nil, model.VerifierConfig{MaxRetries: 3})

	cand := model.Candidate{Text: "柏", Tier: 1, Confidence: 0.9, LikelyPerson: true}
	outcome := v.Verify(context.Background(), cand, model.Sentence{Text: "柏に着いた。"})

	if !outcome.Keep {
		t.Error("Expected degraded acceptance, not a discard")
	}
	if !outcome.Degraded {
		t.Error("Expected outcome to be flagged degraded")
	}
	if outcome.Candidate.Confidence != 0.9 {
		t.Errorf("Expected original confidence retained, got %f", outcome.Candidate.Confidence)
	}
	if provider.calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", provider.calls)
	}
}

func TestVerifier_TransientThenSuccessRetries(t *testing.T) {
	noSleep(t)

	provider := &fakeProvider{
		errs: []error{&TransientError{Err: fmt.Errorf("timeout")}, nil},
		responses: []*VerifyResponse{
			nil,
			{IsValid: true, NormalizedName: "鎌倉", Confidence: 0.95},
		},
	}
	v := NewVerifier(provider, nil, model.VerifierConfig{MaxRetries: 3})

	cand := model.Candidate{Text: "鎌倉", Tier: 6, Confidence: 0.7}
	outcome := v.Verify(context.Background(), cand, model.Sentence{Text: "鎌倉へ向かった。"})

	if !outcome.Keep || outcome.Status != model.StatusVerified {
		t.Errorf("Expected verified acceptance after retry, got %+v", outcome)
	}
	if provider.calls != 2 {
		t.Errorf("Expected 2 attempts, got %d", provider.calls)
	}
}

func TestVerifier_PermanentErrorDoesNotRetry(t *testing.T) {
	noSleep(t)

	provider := &fakeProvider{errs: []error{fmt.Errorf("invalid api key")}}
	v := NewVerifier(provider, nil, model.VerifierConfig{MaxRetries: 3})

	cand := model.Candidate{Text: "上野", Tier: 5, Confidence: 0.75}
	outcome := v.Verify(context.Background(), cand, model.Sentence{Text: "上野を歩いた。"})

	if provider.calls != 1 {
		t.Errorf("Expected a single attempt for a permanent error, got %d", provider.calls)
	}
	if !outcome.Keep || !outcome.Degraded {
		t.Errorf("Expected degraded acceptance, got %+v", outcome)
	}
}

func TestVerifier_NoProviderSettlesLocally(t *testing.T) {
	v := NewVerifier(nil, nil, model.VerifierConfig{})

	// Person-dominated context rejects a likely-person span
	cand := model.Candidate{Text: "清水", Tier: 1, Confidence: 0.92, LikelyPerson: true}
	sentence := model.Sentence{Text: "清水さんは静かに笑った。"}
	outcome := v.Verify(context.Background(), cand, sentence)
	if outcome.Keep {
		t.Error("Expected local rejection for person-dominated context")
	}

	// Place-dominated context keeps it
	sentence = model.Sentence{Text: "清水へ行き、名所を見物して滞在した。"}
	outcome = v.Verify(context.Background(), cand, sentence)
	if !outcome.Keep {
		t.Error("Expected local acceptance for place-dominated context")
	}
}

func TestParseResponse_CodeFences(t *testing.T) {
	raw := "```json\n{\"is_valid\": true, \"normalized_name\": \"甲斐\", \"place_type\": \"historical\", \"confidence\": 0.88}\n```"

	resp, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !resp.IsValid || resp.NormalizedName != "甲斐" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.PlaceType != model.PlaceTypeHistorical {
		t.Errorf("Expected historical place type, got %s", resp.PlaceType)
	}
}

func TestParseResponse_Garbage(t *testing.T) {
	if _, err := ParseResponse("the name refers to a person"); err == nil {
		t.Error("Expected parse error for non-JSON reply")
	}
}
