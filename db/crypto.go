package db

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// tokenCipher encrypts token values with AES-256-GCM. GCM authenticates the
// ciphertext, so a wrong key or tampered row fails loudly on open instead
// of yielding garbage tokens. The random nonce is prepended to the
// ciphertext.
type tokenCipher struct {
	aead cipher.AEAD
}

func newTokenCipher(key []byte) (*tokenCipher, error) {
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes for AES-256")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("error creating AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("error creating GCM: %w", err)
	}

	return &tokenCipher{aead: aead}, nil
}

func (c *tokenCipher) seal(plaintext string) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("error generating nonce: %w", err)
	}

	return c.aead.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

func (c *tokenCipher) open(data []byte) (string, error) {
	if len(data) < c.aead.NonceSize() {
		return "", fmt.Errorf("%w: ciphertext shorter than nonce", ErrCredentialDecrypt)
	}

	nonce, ciphertext := data[:c.aead.NonceSize()], data[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCredentialDecrypt, err)
	}

	return string(plaintext), nil
}
