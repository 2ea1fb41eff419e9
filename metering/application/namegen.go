package application

import "crypto/rand"

const (
	nameAlphabet = "abcdefghijklmnopqrstuvwxyz"
	nameLength   = 10
	nameSuffix   = ".mp3"
)

// RandomAudioName gera um identificador fresco para o artefato de áudio:
// 10 letras minúsculas aleatórias + ".mp3".
//
// A unicidade vem só da aleatoriedade; tratamento de colisão fica fora de escopo.
func RandomAudioName() string {
	b := make([]byte, nameLength)
	// rand.Read de crypto/rand nunca retorna erro (panica se a fonte sumir).
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = nameAlphabet[int(b[i])%len(nameAlphabet)]
	}
	return string(b) + nameSuffix
}
