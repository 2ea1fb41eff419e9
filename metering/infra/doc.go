// Package infra contém implementações concretas (infraestrutura) para os
// contratos definidos no pacote domain.
//
// Exemplos:
//   - Ledger: contas em memória guardadas por mutex
//   - SlotPools: semáforos por usuário criados sob demanda (chanPool)
//   - ElevenLabs: cliente HTTP do colaborador text-to-speech
//   - Store: token bucket por chave usando golang.org/x/time/rate
//   - RedisStatsStore: estatísticas de uso em Redis
package infra
