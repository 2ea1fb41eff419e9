package infra

import (
	"context"
	"sync"

	"tts-gateway/metering/domain"
)

type Counters struct {
	Requests int64
	Credits  int64
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu        sync.Mutex
	byOutcome map[domain.Outcome]Counters
	byUser    map[string]Counters

	trackUsers bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackUsers(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackUsers = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byOutcome: make(map[domain.Outcome]Counters),
		byUser:    make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.byOutcome[ev.Outcome]
	c.Requests++
	c.Credits += int64(ev.Credits)
	s.byOutcome[ev.Outcome] = c

	if s.trackUsers {
		u := s.byUser[ev.User]
		u.Requests++
		// por usuário só contamos crédito efetivamente cobrado
		if ev.Outcome == domain.OutcomeOK {
			u.Credits += int64(ev.Credits)
		}
		s.byUser[ev.User] = u
	}
	return nil
}

func (s *MemoryStatsStore) ByOutcome() map[domain.Outcome]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Outcome]Counters, len(s.byOutcome))
	for k, v := range s.byOutcome {
		out[k] = v
	}
	return out
}

func (s *MemoryStatsStore) ByUser() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byUser))
	for k, v := range s.byUser {
		out[k] = v
	}
	return out
}
