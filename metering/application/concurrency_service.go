package application

import (
	"context"
	"time"

	"tts-gateway/metering/domain"
)

// ConcurrencyService concentra a regra de aquisição/liberação de vagas por
// usuário com timeout, sem saber nada sobre HTTP.
type ConcurrencyService struct {
	Pools          domain.SlotPools
	AcquireTimeout time.Duration
}

// Acquire tenta adquirir uma vaga no pool do usuário.
// - Se `AcquireTimeout <= 0`, espera indefinidamente (até ctx cancelar).
// - Se `AcquireTimeout > 0`, espera até o timeout.
// Retorna (release, ok). Se ok=false, nenhuma vaga foi adquirida.
func (s ConcurrencyService) Acquire(ctx context.Context, user string) (func(), bool) {
	if s.Pools == nil {
		return func() {}, true
	}

	pool := s.Pools.Get(user)

	if s.AcquireTimeout <= 0 {
		return pool.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, s.AcquireTimeout)
	defer cancel()
	return pool.Acquire(acqCtx)
}
