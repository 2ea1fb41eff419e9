// Package metering fornece adapters HTTP (net/http) para o gateway de
// text-to-speech com medição de créditos.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (ledger, semáforos, sintetizador)
//   - application: casos de uso (Process, Verify, Acquire, Decide) sem net/http
//   - infra: implementações concretas (ledger em memória, chanPool, ElevenLabs,
//     token bucket, stats em Redis)
//   - metering (este pacote): handler + middlewares HTTP + tradução para
//     status/headers
//
// Fluxo no gateway:
//
//  1. Rate limit por IP do cliente (429 quando estourar)
//  2. Basic auth contra o ledger (401 quando falhar)
//  3. POST /ttx: adquire vaga do usuário, reserva créditos, chama o
//     sintetizador, cobra ou devolve, e faz stream do áudio para o cliente
//
// Variáveis de ambiente do binário gateway (cmd/gateway) controlam o
// comportamento, como API_KEY, CONCURRENCY_MAX e AUTH_RATE_PER_MINUTE.
package metering
