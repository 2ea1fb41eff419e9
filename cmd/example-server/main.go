package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"
)

func main() {
	// Exemplo: upstream local que imita o endpoint de streaming da ElevenLabs,
	// para validar o gateway sem gastar créditos de verdade.
	//
	// Aponte o gateway com ELEVENLABS_URL=http://localhost:8082/v1/text-to-speech/fake/stream
	addr := ":8082"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	delay := 2 * time.Second
	if v := os.Getenv("SYNTH_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			delay = d
		}
	}

	failEvery := 0 // 0 = nunca falha; N = falha a cada N-ésima requisição
	if v := os.Getenv("FAIL_EVERY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			failEvery = n
		}
	}

	var served atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/text-to-speech/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"detail":"invalid body"}`, http.StatusBadRequest)
			return
		}

		n := served.Add(1)
		if failEvery > 0 && n%int64(failEvery) == 0 {
			http.Error(w, `{"detail":"synthetic failure"}`, http.StatusBadRequest)
			log.Printf("request %d: failing on purpose (text=%q)", n, body.Text)
			return
		}

		// simula o tempo de síntese e manda uns bytes quaisquer em chunks
		time.Sleep(delay)

		w.Header().Set("Content-Type", "audio/mpeg")
		flusher, _ := w.(http.Flusher)
		for i := 0; i < 4; i++ {
			_, _ = w.Write([]byte("FAKEMPEGDATA"))
			if flusher != nil {
				flusher.Flush()
			}
		}
		log.Printf("request %d: ok (text=%q, key=%q)", n, body.Text, r.Header.Get("xi-api-key"))
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("fake elevenlabs listening on %s (delay=%s failEvery=%d)", addr, delay, failEvery)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
