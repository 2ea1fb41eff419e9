package application

import (
	"crypto/subtle"

	"tts-gateway/metering/domain"
)

// Auth concentra a comparação de credencial contra o ledger.
//
// Ele não implementa challenge/response nem conhece HTTP; só o primitivo
// de verificação usado pela camada de transporte.
type Auth struct {
	Ledger domain.Ledger
}

// Verify compara a senha informada com a guardada no ledger.
// Retorna domain.ErrUserNotFound se o usuário não existe.
func (a Auth) Verify(user, password string) (bool, error) {
	stored, err := a.Ledger.Password(user)
	if err != nil {
		return false, err
	}
	// comparação em tempo constante para não vazar a senha por timing
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1, nil
}
