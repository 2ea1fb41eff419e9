// Package domain define contratos e tipos de domínio para a medição de créditos
// e o limite de concorrência por usuário.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar regras de negócio
// de detalhes de infraestrutura (ledger em memória, cliente ElevenLabs, Redis).
package domain
