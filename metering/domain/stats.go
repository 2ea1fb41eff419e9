package domain

import (
	"context"
	"time"
)

// Outcome classifica o desfecho de uma requisição medida.
type Outcome string

const (
	// OutcomeOK: chamada externa ok, créditos cobrados (settle).
	OutcomeOK Outcome = "ok"
	// OutcomeRejected: reserva recusada (saldo insuficiente ou usuário inexistente);
	// a chamada externa nem chegou a acontecer.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed: chamada externa falhou, reserva desfeita (rollback).
	OutcomeFailed Outcome = "failed"
)

// StatsEvent representa o desfecho de uma requisição do gateway.
//
// Credits é o custo calculado para a requisição, mesmo quando nada foi
// cobrado (rejected/failed) — útil para enxergar demanda reprimida.
//
// Observação: cuidado com cardinalidade (salvar por usuário sem controle pode
// explodir o número de chaves em uma base como Redis).
type StatsEvent struct {
	User    string
	Outcome Outcome
	Credits int

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas de uso.
//
// Implementações podem armazenar em Redis, memória, etc.
// O gateway trata erro como best-effort (não derruba a requisição).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
