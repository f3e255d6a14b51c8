package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// nonceSize is the standard 96-bit GCM nonce length.
const nonceSize = 12

// newAEAD builds an AES-256-GCM cipher from a derived key.
func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// newNonce returns a fresh random nonce. Nonces are generated per record and
// per verifier and never reused with the same key; updates are modeled as
// remove+add for the same reason.
func newNonce() ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// newSalt returns a fresh random key derivation salt.
func newSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// seal encrypts and authenticates plaintext under the given nonce.
func seal(aead cipher.AEAD, nonce, plaintext []byte) []byte {
	return aead.Seal(nil, nonce, plaintext, nil)
}

// open decrypts and verifies a sealed payload. Any failure collapses into
// ErrAuthentication: a wrong key and a flipped ciphertext bit must not be
// distinguishable by the caller.
func open(aead cipher.AEAD, nonce, ciphertext []byte) ([]byte, error) {
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
