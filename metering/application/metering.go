package application

import (
	"context"
	"io"
	"time"

	"tts-gateway/metering/domain"
)

// Metering orquestra uma requisição medida de ponta a ponta:
// vaga -> custo -> reserva -> chamada externa -> settle/rollback -> release.
//
// Garantias por requisição:
//   - a vaga de concorrência é liberada exatamente uma vez, em todo caminho;
//   - toda reserva é resolvida exatamente uma vez (settle XOR rollback);
//   - a chamada externa só acontece depois de uma reserva bem-sucedida.
type Metering struct {
	Ledger domain.Ledger
	Synth  domain.Synthesizer
	Slots  ConcurrencyService

	// Stats é opcional e best-effort: erro ao gravar nunca derruba a requisição.
	Stats domain.StatsStore

	// NewName gera o identificador do artefato de saída.
	// Se nil, usa RandomAudioName.
	NewName func() string
}

// Process converte texto em áudio para um usuário, cobrando um crédito por
// palavra do texto. Retorna o nome do arquivo gerado e o stream de áudio
// (passada única; o caller deve drenar ou fechar).
//
// Erros possíveis: domain.ErrTooManyInFlight, domain.ErrUserNotFound,
// domain.ErrInsufficientCredits, *domain.SynthesisError e erros de transporte
// do colaborador externo.
func (m Metering) Process(ctx context.Context, user, text string) (string, io.ReadCloser, error) {
	release, ok := m.Slots.Acquire(ctx, user)
	if !ok {
		return "", nil, domain.ErrTooManyInFlight
	}
	// O defer garante release exatamente uma vez e só depois do settle —
	// um settle lento ainda conta contra o limite de concorrência.
	defer release()

	cost := Cost(text)

	if err := m.Ledger.Reserve(user, cost); err != nil {
		// Reserva recusada: a chamada externa nem é tentada.
		m.record(ctx, user, domain.OutcomeRejected, cost)
		return "", nil, err
	}

	stream, err := m.Synth.Synthesize(ctx, text)
	if err != nil {
		// Falha externa: restaura a reserva por inteiro, sem cobrança parcial.
		_ = m.Ledger.Unreserve(user, cost)
		m.record(ctx, user, domain.OutcomeFailed, cost)
		return "", nil, err
	}

	if err := m.Ledger.Settle(user, cost); err != nil {
		// Inalcançável com contas fixas; ainda assim, não vaza stream nem reserva.
		_ = stream.Close()
		_ = m.Ledger.Unreserve(user, cost)
		m.record(ctx, user, domain.OutcomeFailed, cost)
		return "", nil, err
	}

	name := RandomAudioName()
	if m.NewName != nil {
		name = m.NewName()
	}

	m.record(ctx, user, domain.OutcomeOK, cost)
	return name, stream, nil
}

func (m Metering) record(ctx context.Context, user string, outcome domain.Outcome, credits int) {
	if m.Stats == nil {
		return
	}
	_ = m.Stats.Record(ctx, domain.StatsEvent{
		User:    user,
		Outcome: outcome,
		Credits: credits,
		At:      time.Now(),
	})
}
