package schnorr

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

const DigestSize = 32

var ErrEmptySecret = errors.New("secret is empty after normalization")

// Digest is the fixed-width hash binding a proof to its secret.
type Digest [DigestSize]byte

func (d Digest) Int() *big.Int {
	return new(big.Int).SetBytes(d[:])
}

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

// HashFunc maps normalized secret bytes to a digest.
type HashFunc func(data []byte) Digest

func SHA256(data []byte) Digest {
	return sha256.Sum256(data)
}

func Keccak256(data []byte) Digest {
	var d Digest
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	copy(d[:], h.Sum(nil))
	return d
}

// HashFuncByName resolves the digest names used in configuration.
func HashFuncByName(name string) (HashFunc, error) {
	switch strings.ToLower(name) {
	case "", "sha256":
		return SHA256, nil
	case "keccak256":
		return Keccak256, nil
	default:
		return nil, fmt.Errorf("unknown digest %q", name)
	}
}

type HashedSecret struct {
	// Int is Digest reduced mod the group modulus.
	Int    *big.Int
	Digest Digest
}

// NormalizeSecret trims surrounding whitespace and lowercases, so secrets
// differing only in case or padding hash identically.
func NormalizeSecret(secret string) string {
	return strings.ToLower(strings.TrimSpace(secret))
}

func HashSecret(secret string, group Group, hash HashFunc) (HashedSecret, error) {
	normalized := NormalizeSecret(secret)
	if normalized == "" {
		return HashedSecret{}, ErrEmptySecret
	}
	if hash == nil {
		hash = SHA256
	}

	digest := hash([]byte(normalized))

	return HashedSecret{
		Int:    group.ReduceDigest(digest),
		Digest: digest,
	}, nil
}
