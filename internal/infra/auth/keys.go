package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

const ephemeralKeyBits = 2048

// LoadKeyPair собирает пару ключей из PEM. Если приватный ключ не задан,
// генерируется временный: токены живут до рестарта процесса.
// Публичный ключ без приватного берется из PEM, иначе выводится из приватного.
func LoadKeyPair(privatePEM, publicPEM []byte) (priv *rsa.PrivateKey, ephemeral bool, err error) {
	if len(privatePEM) == 0 {
		priv, err = rsa.GenerateKey(rand.Reader, ephemeralKeyBits)
		if err != nil {
			return nil, false, fmt.Errorf("generate ephemeral key: %w", err)
		}
		return priv, true, nil
	}

	priv, err = ParseRSAPrivateKey(privatePEM)
	if err != nil {
		return nil, false, err
	}

	if len(publicPEM) > 0 {
		pub, err := ParseRSAPublicKey(publicPEM)
		if err != nil {
			return nil, false, err
		}
		if !pub.Equal(&priv.PublicKey) {
			return nil, false, fmt.Errorf("public key does not match private key")
		}
	}
	return priv, false, nil
}
