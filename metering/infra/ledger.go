package infra

import (
	"fmt"
	"sync"

	"tts-gateway/metering/domain"
)

// Ledger é a implementação em memória de domain.Ledger.
//
// Um único mutex serializa todas as operações — suficiente para o conjunto
// pequeno de usuários esperado. Sem persistência: reinício zera o estado
// para o seed (não-objetivo do projeto).
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*account
}

type account struct {
	credits  int
	reserved int
	password string
}

// NewLedger cria o ledger a partir do seed de contas provisionadas fora do
// core. O mapa é copiado; mutações posteriores no seed não afetam o ledger.
func NewLedger(seed map[string]domain.Account) *Ledger {
	accounts := make(map[string]*account, len(seed))
	for user, acc := range seed {
		accounts[user] = &account{
			credits:  acc.Credits,
			reserved: acc.Reserved,
			password: acc.Password,
		}
	}
	return &Ledger{accounts: accounts}
}

func (l *Ledger) Password(user string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[user]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUserNotFound, user)
	}
	return acc.password, nil
}

func (l *Ledger) Balance(user string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[user]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, user)
	}
	return acc.credits, nil
}

// Reserved retorna os créditos atualmente reservados do usuário.
// Não faz parte do contrato domain.Ledger; existe para observabilidade e testes.
func (l *Ledger) Reserved(user string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[user]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, user)
	}
	return acc.reserved, nil
}

func (l *Ledger) Reserve(user string, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[user]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, user)
	}

	if acc.credits-acc.reserved < amount {
		return fmt.Errorf("%w: user %s needs %d credits", domain.ErrInsufficientCredits, user, amount)
	}
	acc.reserved += amount
	return nil
}

func (l *Ledger) Unreserve(user string, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[user]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, user)
	}
	acc.reserved -= amount
	return nil
}

func (l *Ledger) Settle(user string, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[user]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, user)
	}
	acc.reserved -= amount
	acc.credits -= amount
	return nil
}
