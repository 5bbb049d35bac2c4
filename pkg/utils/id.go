package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateSessionID gera identificadores mais longos para sessões do painel
func GenerateSessionID() (string, error) {
	return gonanoid.Generate(characters, 16)
}
