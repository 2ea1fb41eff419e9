package metering

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader é o header usado para correlacionar logs entre gateway e upstream.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware garante um X-Request-ID por requisição: respeita o que
// vier do cliente e gera um UUID quando ausente. O id também vai na resposta.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r)
	})
}
