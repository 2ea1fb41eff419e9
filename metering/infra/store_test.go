package infra

import (
	"testing"
	"time"

	"tts-gateway/metering/domain"
)

func TestStore_GetSameKeyReturnsSameLimiter(t *testing.T) {
	s := NewStore(10, 1)

	l1 := s.Get(domain.Key("k"))
	l2 := s.Get(domain.Key("k"))
	if l1 != l2 {
		t.Fatalf("expected same limiter pointer for same key")
	}
}

func TestStore_LowBurstRejectsSecondImmediateAllow(t *testing.T) {
	s := NewStore(0.02, 1)

	lim := s.Get(domain.Key("k"))
	if !lim.Allow() {
		t.Fatalf("expected first Allow to be true")
	}
	if lim.Allow() {
		t.Fatalf("expected second immediate Allow to be false (burst=1)")
	}
}

func TestStore_TwentyPerMinuteBurstThenReject(t *testing.T) {
	// mesmo recorte do gateway: 20/min vira rps=20/60 com burst 20
	s := NewStore(20.0/60.0, 20)

	lim := s.Get(domain.Key("203.0.113.7"))
	for i := 0; i < 20; i++ {
		if !lim.Allow() {
			t.Fatalf("expected request %d within the 20-burst to be allowed", i+1)
		}
	}
	if lim.Allow() {
		t.Fatalf("expected the 21st immediate request to be rejected")
	}
}

func TestStore_CleanupRemovesIdleEntries(t *testing.T) {
	s := NewStore(10, 1, WithIdleTTL(2*time.Millisecond), WithCleanupEvery(0))

	before := s.Get(domain.Key("k"))
	time.Sleep(4 * time.Millisecond)

	s.Cleanup()

	after := s.Get(domain.Key("k"))
	if before == after {
		t.Fatalf("expected limiter to be recreated after cleanup")
	}
}
