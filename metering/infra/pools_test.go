package infra

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSlotPools_SameUserGetsSamePool(t *testing.T) {
	s := NewSlotPools(3)

	p1 := s.Get("robert")
	p2 := s.Get("robert")
	if p1 != p2 {
		t.Fatalf("expected same pool for same user")
	}

	p3 := s.Get("karel")
	if p3 == p1 {
		t.Fatalf("expected distinct pools for distinct users")
	}
}

func TestSlotPools_ConcurrentFirstGetCreatesOnePool(t *testing.T) {
	s := NewSlotPools(3)

	const callers = 50
	var wg sync.WaitGroup
	results := make([]any, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Get("robert")
		}(i)
	}
	wg.Wait()

	// dois pools distintos dobrariam o limite efetivo do usuário
	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d got a different pool", i)
		}
	}
}

func TestSlotPools_PoolEnforcesCapacity(t *testing.T) {
	s := NewSlotPools(2)
	pool := s.Get("robert")

	rel1, ok := pool.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected first acquire to succeed")
	}
	rel2, ok := pool.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected second acquire to succeed")
	}

	// terceira não cabe: tem que estourar o timeout do ctx
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	if _, ok := pool.Acquire(ctx); ok {
		t.Fatalf("expected third acquire to block until timeout")
	}

	rel1()

	// com uma vaga devolvida, a próxima entra
	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	rel3, ok := pool.Acquire(ctx2)
	if !ok {
		t.Fatalf("expected acquire to succeed after release")
	}
	rel3()
	rel2()
}
