// Package application contém os casos de uso (regras de aplicação) do gateway:
// medição de créditos em torno da chamada externa, autenticação básica,
// aquisição de vaga de concorrência e decisão de rate limit.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Metering.Process(ctx, user, text) orquestra vaga -> reserva ->
// síntese -> settle/rollback e devolve (filename, stream).
package application
