package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const qrSecretBytes = 32

// SecretGenerator produces the QR secret attached to a booking. Swapped for
// a deterministic generator in tests.
type SecretGenerator interface {
	GenerateSecret() (string, error)
}

type cryptoSecretGenerator struct{}

func NewSecretGenerator() SecretGenerator { return cryptoSecretGenerator{} }

func (cryptoSecretGenerator) GenerateSecret() (string, error) {
	buf := make([]byte, qrSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate qr secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
