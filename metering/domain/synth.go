package domain

import (
	"context"
	"fmt"
	"io"
)

// Synthesizer é o colaborador externo medido (text-to-speech).
//
// O stream retornado em caso de sucesso é lazy, de passada única e não
// reiniciável: o consumidor deve drenar até o fim ou chamar Close.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (io.ReadCloser, error)
}

// SynthesisError indica que o colaborador externo respondeu com falha.
// Quando ele é retornado, a reserva de créditos já foi totalmente desfeita.
type SynthesisError struct {
	Text       string
	Diagnostic string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("error while processing text: %s, error: %s", e.Text, e.Diagnostic)
}
