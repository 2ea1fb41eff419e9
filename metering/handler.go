package metering

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tts-gateway/metering/application"
	"tts-gateway/metering/domain"
)

// SpeechRequest é o corpo esperado em POST /ttx.
type SpeechRequest struct {
	Text string `json:"text"`
}

type HandlerOptions struct {
	Metering application.Metering
}

// Handler atende POST /ttx: converte o texto do corpo em áudio para o usuário
// autenticado e devolve o stream como attachment audio/mpeg.
//
// Tradução de erros:
//   - usuário desconhecido           -> 401 (não deveria passar da autenticação)
//   - créditos insuficientes         -> 400
//   - falha do sintetizador          -> 400 com o diagnóstico
//   - sem vaga de concorrência (timeout) -> 503
//   - erro de transporte até a API   -> 502
func Handler(opts HandlerOptions) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w, "missing authentication")
			return
		}

		var req SpeechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}

		filename, stream, err := opts.Metering.Process(r.Context(), user, req.Text)
		if err != nil {
			writeProcessError(w, err)
			return
		}
		defer func() { _ = stream.Close() }()

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Content-Disposition", `attachment; filename=`+filename)
		w.WriteHeader(http.StatusOK)

		// stream de passada única: copia até o fim; se o cliente desistir,
		// o Copy falha e o defer fecha o corpo upstream.
		_, _ = io.Copy(w, stream)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Basic")
	http.Error(w, msg, http.StatusUnauthorized)
}

func writeProcessError(w http.ResponseWriter, err error) {
	var synthErr *domain.SynthesisError

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		unauthorized(w, err.Error())
	case errors.Is(err, domain.ErrInsufficientCredits):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &synthErr):
		http.Error(w, synthErr.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrTooManyInFlight):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "upstream error: "+err.Error(), http.StatusBadGateway)
	}
}
