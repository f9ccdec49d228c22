package repository

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/lifehub/core/internal/domain/entities"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32
)

// scrypt cost parameters (interactive profile).
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// seal encrypts payload with a key derived from the passphrase. Layout
// of the output: salt || nonce || box.
func seal(payload []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+nonceSize+len(payload)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, payload, &nonce, key), nil
}

// open decrypts a sealed payload. A wrong passphrase surfaces as
// entities.ErrWrongPassphrase.
func open(sealed []byte, passphrase string) ([]byte, error) {
	if len(sealed) < saltSize+nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("sealed payload too short")
	}

	salt := sealed[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[saltSize:saltSize+nonceSize])
	box := sealed[saltSize+nonceSize:]

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	payload, ok := secretbox.Open(nil, box, &nonce, key)
	if !ok {
		return nil, entities.ErrWrongPassphrase
	}
	return payload, nil
}

func deriveKey(passphrase string, salt []byte) (*[keySize]byte, error) {
	raw, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	key := new([keySize]byte)
	copy(key[:], raw)
	return key, nil
}
