// Package commitment implements the commit-reveal scheme that fixes a round's
// secret before any wager is placed.
//
// A secret is an unsigned 256-bit integer. Its commitment is the keccak256
// digest of the secret's 32-byte big-endian encoding, hex encoded without a
// 0x prefix. Verify recomputes the digest from a revealed secret and hands the
// secret back as a number once it matches.
package commitment

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the length in bytes of a commitment
const DigestSize = 32

var (
	// ErrCommitmentMismatch is returned when a revealed secret does not hash to the commitment
	ErrCommitmentMismatch = errors.New("revealed secret does not match commitment")

	// ErrInvalidCommitment is returned for commitments that are not a hex encoded 32-byte digest
	ErrInvalidCommitment = errors.New("commitment must be a 32-byte hex digest")

	// ErrInvalidSecret is returned when a secret cannot be parsed
	ErrInvalidSecret = errors.New("secret must be a decimal or 0x-prefixed hex 256-bit integer")
)

// Commit returns the hex encoded commitment of secret
func Commit(secret *uint256.Int) string {
	return hex.EncodeToString(digest(secret))
}

// Verify checks secret against commitment and returns the secret as a number
func Verify(secret *uint256.Int, commitment string) (*uint256.Int, error) {
	if secret == nil {
		return nil, ErrInvalidSecret
	}

	stored, err := DecodeCommitment(commitment)
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare(digest(secret), stored) != 1 {
		return nil, ErrCommitmentMismatch
	}

	return new(uint256.Int).Set(secret), nil
}

// DecodeCommitment parses a hex commitment, with or without a 0x prefix
func DecodeCommitment(commitment string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(commitment), "0x"))
	if err != nil || len(raw) != DigestSize {
		return nil, ErrInvalidCommitment
	}
	return raw, nil
}

// ParseSecret parses a secret written in decimal or as 0x-prefixed hex
func ParseSecret(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidSecret
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		raw, err := hex.DecodeString(s[2:])
		if err != nil || len(raw) == 0 || len(raw) > 32 {
			return nil, ErrInvalidSecret
		}
		return new(uint256.Int).SetBytes(raw), nil
	}

	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, ErrInvalidSecret
	}
	return v, nil
}

// NewSecret draws a fresh secret from crypto/rand
func NewSecret() (*uint256.Int, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	return new(uint256.Int).SetBytes32(buf[:]), nil
}

// FormatSecret renders a secret as 0x-prefixed, zero padded hex
func FormatSecret(secret *uint256.Int) string {
	b := secret.Bytes32()
	return "0x" + hex.EncodeToString(b[:])
}

func digest(secret *uint256.Int) []byte {
	b := secret.Bytes32()
	h := sha3.NewLegacyKeccak256()
	h.Write(b[:])
	return h.Sum(nil)
}
