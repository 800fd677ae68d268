package middleware

import "testing"

func TestTokenBucketLimiterAllowsUpToCapacity(t *testing.T) {
	l := NewTokenBucketLimiter(5)

	for i := 0; i < 5; i++ {
		if !l.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.allow("10.0.0.1") {
		t.Error("request over capacity should be rejected")
	}
}

func TestTokenBucketLimiterIsolatesClients(t *testing.T) {
	l := NewTokenBucketLimiter(1)

	if !l.allow("10.0.0.1") {
		t.Fatal("first client should be allowed")
	}
	if l.allow("10.0.0.1") {
		t.Error("first client should be exhausted")
	}
	if !l.allow("10.0.0.2") {
		t.Error("second client should have its own bucket")
	}
}

func TestTokenBucketLimiterDefaultsRate(t *testing.T) {
	l := NewTokenBucketLimiter(0)
	if l.capacity != 60 {
		t.Errorf("capacity = %d, want 60", l.capacity)
	}
}
