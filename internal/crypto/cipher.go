package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const (
	// NonceSize - размер nonce для AES-GCM (12 bytes стандартный размер)
	NonceSize = 12
	// KeySize - размер ключа AES-256
	KeySize = 32
)

// Sealer encrypts short secrets (tokens) with AES-256-GCM.
// Output format: base64(nonce || ciphertext || auth_tag).
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer creates a Sealer for a 32-byte key
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal шифрует строку и возвращает результат в Base64.
// Пустая строка остается пустой (нечего скрывать, и так проще отличить "нет токена").
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal дописывает ciphertext и auth tag после nonce
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open дешифрует строку, полученную из Seal
func (s *Sealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(data) < NonceSize {
		return "", fmt.Errorf("encrypted data too short")
	}

	plaintext, err := s.aead.Open(nil, data[:NonceSize], data[NonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: authentication failed or corrupted data: %w", err)
	}

	return string(plaintext), nil
}
