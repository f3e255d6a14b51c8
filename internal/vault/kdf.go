package vault

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of the per-database key derivation salt.
	SaltSize = 16

	// KeySize is the length of the derived AES-256 key.
	KeySize = 32
)

// Params holds the argon2id cost parameters. They are written into the
// database header at creation time so files created with older defaults
// remain readable after the defaults change.
type Params struct {
	Time        uint32
	MemoryKiB   uint32
	Parallelism uint8
}

// DefaultParams returns the argon2id parameters recommended for interactive
// use: one pass over 64 MiB with four lanes.
func DefaultParams() Params {
	return Params{Time: 1, MemoryKiB: 64 * 1024, Parallelism: 4}
}

func (p Params) validate() error {
	if p.Time == 0 || p.MemoryKiB == 0 || p.Parallelism == 0 {
		return fmt.Errorf("%w: argon2 parameters must be non-zero", ErrInvalidInput)
	}
	return nil
}

// deriveKey stretches a password into a KeySize symmetric key. Deterministic
// for a given password, salt, and params, which is what lets a database be
// reopened later. The caller owns the password buffer and should zero it
// after use.
func deriveKey(password, salt []byte, p Params) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: empty password", ErrInvalidInput)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrInvalidInput, SaltSize, len(salt))
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return argon2.IDKey(password, salt, p.Time, p.MemoryKiB, p.Parallelism, KeySize), nil
}

// Zero overwrites a plaintext or key buffer. Every function that hands out
// decrypted material expects the receiver to call this when done.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
