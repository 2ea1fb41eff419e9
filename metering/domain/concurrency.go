package domain

import (
	"context"
	"errors"
)

// ErrTooManyInFlight indica que a vaga de concorrência não foi obtida
// (timeout de espera ou cancelamento do contexto do caller).
var ErrTooManyInFlight = errors.New("too many in-flight requests")

// SlotPool representa um recurso com capacidade finita (ex: chamadas externas
// concorrentes de um mesmo usuário).
//
// A semântica é: Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar.
// Ao adquirir, retorna uma função de release que deve ser chamada exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}

// SlotPools entrega o pool de um usuário, criando-o na primeira vez.
//
// O get-or-create precisa ser atômico: duas primeiras chamadas simultâneas
// para o mesmo usuário não podem criar dois pools distintos (isso dobraria
// o limite efetivo de concorrência).
type SlotPools interface {
	Get(user string) SlotPool
}
