package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 2)

	if !limiter.Allow(ServiceVerify) {
		t.Error("First request should be allowed")
	}
	if !limiter.Allow(ServiceVerify) {
		t.Error("Second request within burst should be allowed")
	}
	if limiter.Allow(ServiceVerify) {
		t.Error("Third immediate request should exceed the burst")
	}
}

func TestLimiter_ServicesAreIndependent(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow(ServiceVerify) {
		t.Error("Verify quota should start full")
	}
	if !limiter.Allow(ServiceGeocode) {
		t.Error("Geocode quota is independent of verify")
	}
}

func TestLimiter_SetServiceRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetServiceRate(ServiceGeocode, 100, 10)

	allowed := 0
	for i := 0; i < 5; i++ {
		if limiter.Allow(ServiceGeocode) {
			allowed++
		}
	}
	if allowed != 5 {
		t.Errorf("Expected 5 requests under the raised quota, got %d", allowed)
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.Allow(ServiceVerify) // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, ServiceVerify); err == nil {
		t.Error("Expected context error while waiting beyond the quota")
	}
}
