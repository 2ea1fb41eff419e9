package metering

import (
	"context"
	"net/http"

	"tts-gateway/metering/application"
)

type ctxKey int

const userKey ctxKey = 0

// UserFromContext retorna o usuário autenticado pela BasicAuthMiddleware.
func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(userKey).(string)
	return user, ok
}

type AuthOptions struct {
	Auth  application.Auth
	Realm string
}

// BasicAuthMiddleware valida HTTP Basic contra o ledger e injeta o usuário no
// contexto da requisição. Usuário desconhecido e senha errada respondem o
// mesmo 401, para não revelar quais usuários existem.
func BasicAuthMiddleware(opts AuthOptions) func(next http.Handler) http.Handler {
	if opts.Realm == "" {
		opts.Realm = "tts-gateway"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				challenge(w, opts.Realm)
				return
			}

			valid, err := opts.Auth.Verify(user, pass)
			if err != nil || !valid {
				challenge(w, opts.Realm)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

func challenge(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	http.Error(w, "incorrect username or password", http.StatusUnauthorized)
}
