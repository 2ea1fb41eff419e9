package application

import "regexp"

// Tokenização do custo: um crédito por token máximo delimitado por espaço.
//
// As classes precisam ser Unicode: `\s`/`\b` do RE2 são ASCII e deixariam
// "ěšč" de graça e "a b" (non-breaking space) como token único.
var (
	// run de não-espaço (inclui \p{Z} para cobrir espaços Unicode como NBSP)
	tokenPattern = regexp.MustCompile(`[^\s\p{Z}]+`)
	// o run só vira token cobrável se tiver ao menos um caractere de palavra
	wordChar = regexp.MustCompile(`[\p{L}\p{N}_]`)
)

// Cost calcula o custo em créditos de um texto. Determinístico: o mesmo texto
// sempre custa o mesmo. Texto vazio, só com espaços ou só com pontuação custa 0.
func Cost(text string) int {
	n := 0
	for _, token := range tokenPattern.FindAllString(text, -1) {
		if wordChar.MatchString(token) {
			n++
		}
	}
	return n
}
