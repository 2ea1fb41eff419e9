package domain

import "errors"

// Account é o registro de um usuário no ledger.
//
// Invariante: 0 <= Reserved <= Credits, mantida exclusivamente pelas
// operações do Ledger (nunca mutada por fora).
type Account struct {
	Credits  int
	Reserved int
	Password string
}

var (
	// ErrUserNotFound indica que o usuário não existe no ledger.
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientCredits indica que a reserva excederia o saldo disponível
	// (credits - reserved). O saldo não muda sozinho, então não faz sentido
	// o caller tentar de novo automaticamente.
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// Ledger serializa todas as mutações de saldo/reserva por usuário.
//
// Contrato de concorrência: nenhuma operação pode observar um par
// (credits, reserved) parcialmente aplicado de outra chamada em andamento.
// Uma implementação com um único mutex é aceitável na escala esperada.
type Ledger interface {
	// Password retorna o segredo do usuário para o colaborador de autenticação.
	Password(user string) (string, error)

	// Balance retorna o total de créditos do usuário (sem descontar reservas).
	Balance(user string) (int, error)

	// Reserve segura `amount` créditos contra uma operação em andamento.
	// Só tem sucesso se credits - reserved >= amount; nesse caso reserved += amount.
	// Check e mutação são atômicos em relação às demais operações.
	Reserve(user string, amount int) error

	// Unreserve desfaz uma reserva sem cobrar (rollback). Deve ser chamada com
	// o mesmo amount passado ao Reserve correspondente, exatamente uma vez.
	Unreserve(user string, amount int) error

	// Settle converte uma reserva em cobrança definitiva:
	// reserved -= amount; credits -= amount, atomicamente.
	Settle(user string, amount int) error
}
