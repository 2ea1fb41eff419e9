package application

import (
	"context"
	"testing"
	"time"

	"tts-gateway/metering/domain"
)

type blockingPool struct{}

func (p blockingPool) Acquire(ctx context.Context) (func(), bool) {
	select {
	case <-ctx.Done():
		return nil, false
	case <-time.After(5 * time.Second):
		// não deve chegar aqui nos testes
		return nil, false
	}
}

type immediatePool struct {
	acquired int
}

func (p *immediatePool) Acquire(ctx context.Context) (func(), bool) {
	p.acquired++
	return func() {}, true
}

type singlePools struct {
	pool domain.SlotPool
	gets []string
}

func (s *singlePools) Get(user string) domain.SlotPool {
	s.gets = append(s.gets, user)
	return s.pool
}

func TestConcurrencyService_Acquire_AllowsWhenNoPools(t *testing.T) {
	svc := ConcurrencyService{}
	release, ok := svc.Acquire(context.Background(), "robert")
	if !ok {
		t.Fatalf("expected ok")
	}
	release()
}

func TestConcurrencyService_Acquire_UsesTimeout(t *testing.T) {
	pools := &singlePools{pool: blockingPool{}}
	svc := ConcurrencyService{Pools: pools, AcquireTimeout: 10 * time.Millisecond}

	_, ok := svc.Acquire(context.Background(), "robert")
	if ok {
		t.Fatalf("expected timeout and ok=false")
	}
}

func TestConcurrencyService_Acquire_NoTimeoutDelegatesToPool(t *testing.T) {
	pool := &immediatePool{}
	pools := &singlePools{pool: pool}
	svc := ConcurrencyService{Pools: pools, AcquireTimeout: 0}

	_, ok := svc.Acquire(context.Background(), "robert")
	if !ok {
		t.Fatalf("expected ok")
	}
	if pool.acquired != 1 {
		t.Fatalf("expected pool Acquire to be called once, got %d", pool.acquired)
	}
	if len(pools.gets) != 1 || pools.gets[0] != "robert" {
		t.Fatalf("expected pool lookup for robert, got %v", pools.gets)
	}
}
