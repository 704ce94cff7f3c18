package verify

import (
	"context"
	"time"

	"github.com/litmap/litmap/internal/model"
	"github.com/litmap/litmap/internal/worker"
)

// sleepFunc is the sleep used between retries (injectable for tests)
var sleepFunc = time.Sleep

// Outcome is the verifier's decision for one candidate.
type Outcome struct {
	Keep      bool
	Candidate model.Candidate
	Status    model.VerificationStatus
	PlaceType model.PlaceType
	Degraded  bool // Accepted unverified after the service kept failing
}

// Verifier decides which candidates need the reasoning service, enforces the
// service quota, and blends the judgment back into the candidate.
type Verifier struct {
	provider   Provider
	analyzer   *ContextAnalyzer
	limiter    *worker.Limiter
	threshold  float64
	weight     float64
	maxRetries int
}

// NewVerifier creates a verifier. A nil provider disables service calls;
// candidates are then settled by local context analysis alone.
func NewVerifier(provider Provider, limiter *worker.Limiter, cfg model.VerifierConfig) *Verifier {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = 0.7
	}
	weight := cfg.Weight
	if weight == 0 {
		weight = 0.6
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Verifier{
		provider:   provider,
		analyzer:   NewContextAnalyzer(),
		limiter:    limiter,
		threshold:  threshold,
		weight:     weight,
		maxRetries: maxRetries,
	}
}

// ShouldVerify applies the trigger policy: likely-person spans always go to
// the service; otherwise low base confidence triggers it, and only tiers 1-3
// may skip on high confidence.
func (v *Verifier) ShouldVerify(cand model.Candidate) bool {
	if cand.LikelyPerson {
		return true
	}
	if cand.Confidence < v.threshold {
		return true
	}
	return cand.Tier > 3
}

// Verify settles one candidate. The returned error is informational only:
// transient service failure never fails the pipeline, it degrades to
// unverified acceptance.
func (v *Verifier) Verify(ctx context.Context, cand model.Candidate, sentence model.Sentence) Outcome {
	if !v.ShouldVerify(cand) {
		return Outcome{Keep: true, Candidate: cand, Status: model.StatusPending}
	}

	if v.provider == nil {
		return v.settleLocally(cand, sentence)
	}

	req := VerifyRequest{
		Text:          cand.Text,
		Sentence:      sentence.Text,
		ContextBefore: sentence.ContextBefore,
		ContextAfter:  sentence.ContextAfter,
	}

	resp, err := v.callWithRetry(ctx, req)
	if err != nil {
		// Service kept failing: accept at the original confidence rather
		// than blocking the pipeline
		return Outcome{Keep: true, Candidate: cand, Status: model.StatusPending, Degraded: true}
	}

	if !resp.IsValid {
		return Outcome{Keep: false, Candidate: cand, Status: model.StatusRejected, PlaceType: resp.PlaceType}
	}

	if resp.NormalizedName != "" {
		cand.Text = resp.NormalizedName
	}
	cand.Confidence = v.blend(cand.Confidence, resp.Confidence)
	return Outcome{Keep: true, Candidate: cand, Status: model.StatusVerified, PlaceType: resp.PlaceType}
}

// settleLocally decides a candidate from context indicators when no service
// is configured. Only likely-person spans can be rejected this way.
func (v *Verifier) settleLocally(cand model.Candidate, sentence model.Sentence) Outcome {
	score := v.analyzer.Score(sentence.Text, sentence.ContextBefore, sentence.ContextAfter)
	if cand.LikelyPerson && !score.IsPlace() {
		return Outcome{Keep: false, Candidate: cand, Status: model.StatusRejected}
	}
	cand.Confidence = v.blend(cand.Confidence, score.Confidence())
	return Outcome{Keep: true, Candidate: cand, Status: model.StatusPending}
}

func (v *Verifier) callWithRetry(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= v.maxRetries; attempt++ {
		if v.limiter != nil {
			if err := v.limiter.Wait(ctx, worker.ServiceVerify); err != nil {
				return nil, err
			}
		}

		resp, err := v.provider.Verify(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsTransient(err) {
			// Malformed responses and permanent API errors count as a failed
			// verification, not something to hammer the service with
			return nil, err
		}
		sleepFunc(time.Duration(attempt) * 500 * time.Millisecond)
	}
	return nil, lastErr
}

// blend merges base extraction confidence with the service judgment,
// weighting the service higher by default.
func (v *Verifier) blend(base, verified float64) float64 {
	return v.weight*verified + (1-v.weight)*base
}
