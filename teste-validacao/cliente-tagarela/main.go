package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// Cliente de validação manual: dispara N requisições simultâneas no gateway
// com o mesmo usuário para enxergar o limite de concorrência e o consumo de
// créditos acontecendo.
//
// Uso: suba cmd/example-server e cmd/gateway, depois rode este binário.
func main() {
	url := getenv("GATEWAY_URL", "http://localhost:8080/ttx")
	user := getenv("TTS_USER", "oliver")
	pass := getenv("TTS_PASS", "oliverHeslo")
	n := 6

	body := []byte(`{"text": "texto de teste com seis palavras"}`)

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				fmt.Printf("[%d] erro montando request: %v\n", i, err)
				return
			}
			req.SetBasicAuth(user, pass)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Printf("[%d] erro: %v\n", i, err)
				return
			}
			defer resp.Body.Close()

			nbytes, _ := io.Copy(io.Discard, resp.Body)
			fmt.Printf("[%d] status=%d bytes=%d filename=%q depois de %s\n",
				i, resp.StatusCode, nbytes,
				resp.Header.Get("Content-Disposition"), time.Since(start).Round(10*time.Millisecond))
		}(i)
	}

	wg.Wait()
	fmt.Printf("total: %s (com CONCURRENCY_MAX=3 e delay de 2s, espere >= 4s)\n", time.Since(start).Round(10*time.Millisecond))
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
