package infra

import (
	"sync"

	"tts-gateway/metering/domain"
)

// SlotPools entrega o semáforo de cada usuário, criando-o na primeira chamada.
//
// O mutex cobre o lookup-e-cria inteiro: duas primeiras chamadas simultâneas
// para o mesmo usuário recebem o mesmo pool (senão o limite efetivo dobraria).
// Pools nunca são removidos; o conjunto de usuários é pequeno e fixo.
type SlotPools struct {
	mu       sync.Mutex
	capacity int
	pools    map[string]domain.SlotPool
}

// NewSlotPools cria o registro com capacidade fixa por usuário.
func NewSlotPools(capacity int) *SlotPools {
	return &SlotPools{
		capacity: capacity,
		pools:    make(map[string]domain.SlotPool),
	}
}

// Get implementa domain.SlotPools.
func (s *SlotPools) Get(user string) domain.SlotPool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[user]
	if !ok {
		pool = NewChanPool(s.capacity)
		s.pools[user] = pool
	}
	return pool
}
