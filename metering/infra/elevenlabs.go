package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"tts-gateway/metering/domain"
)

// DefaultElevenLabsURL é o endpoint de streaming com a voz padrão.
const DefaultElevenLabsURL = "https://api.elevenlabs.io/v1/text-to-speech/pMsXgVXv3BLzUgSXRplE/stream"

// maxDiagnosticBytes limita quanto do corpo de erro a gente carrega no
// diagnóstico (a API pode devolver payloads grandes).
const maxDiagnosticBytes = 4 << 10

// ElevenLabs é o cliente HTTP do colaborador text-to-speech.
// Implementa domain.Synthesizer.
type ElevenLabs struct {
	url    string
	apiKey string
	client *http.Client
}

type ElevenLabsOption func(*ElevenLabs)

func WithElevenLabsURL(url string) ElevenLabsOption {
	return func(e *ElevenLabs) {
		if v := strings.TrimSpace(url); v != "" {
			e.url = v
		}
	}
}

func WithHTTPClient(c *http.Client) ElevenLabsOption {
	return func(e *ElevenLabs) {
		if c != nil {
			e.client = c
		}
	}
}

func NewElevenLabs(apiKey string, opts ...ElevenLabsOption) *ElevenLabs {
	e := &ElevenLabs{
		url:    DefaultElevenLabsURL,
		apiKey: apiKey,
		// sem timeout global: a resposta é um stream de duração desconhecida;
		// cancelamento vem do ctx da requisição.
		client: &http.Client{Transport: &http.Transport{ResponseHeaderTimeout: 30 * time.Second}},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize chama o endpoint de streaming e retorna o corpo da resposta como
// stream de passada única. Status != 200 vira *domain.SynthesisError com o
// corpo como diagnóstico.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	body, err := json.Marshal(synthesisRequest{
		Text:          text,
		VoiceSettings: voiceSettings{Stability: 0.75, SimilarityBoost: 0.75},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		diag, _ := io.ReadAll(io.LimitReader(resp.Body, maxDiagnosticBytes))
		_ = resp.Body.Close()
		return nil, &domain.SynthesisError{
			Text:       text,
			Diagnostic: resp.Status + ": " + strings.TrimSpace(string(diag)),
		}
	}

	return resp.Body, nil
}
