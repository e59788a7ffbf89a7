package randomstringgenerator

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"

	"authflow/internal/core/domain/user"
)

const (
	activationTokenLength    = 8
	passwordResetTokenLength = 32
)

var activationTokenChars = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateActivationToken() user.ActivationToken {
	b := make([]rune, activationTokenLength)
	max := big.NewInt(int64(len(activationTokenChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = activationTokenChars[n.Int64()]
	}
	return user.ActivationToken(b)
}

// GeneratePasswordResetToken returns 32 random bytes encoded as unpadded base64url.
func (g *Generator) GeneratePasswordResetToken() (user.PasswordResetToken, error) {
	b := make([]byte, passwordResetTokenLength)
	if _, err := rand.Read(b); err != nil {
		return user.PasswordResetToken(""), err
	}
	return user.PasswordResetToken(base64.RawURLEncoding.EncodeToString(b)), nil
}
