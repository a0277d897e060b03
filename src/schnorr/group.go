package schnorr

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var (
	ErrInvalidModulus   = errors.New("modulus must be at least 2")
	ErrInvalidGenerator = errors.New("generator must lie in [2, modulus-1]")
	ErrNonceOutOfRange  = errors.New("nonce must lie in [1, modulus-1]")
)

// Group is the set of operations the proof protocol needs from its
// underlying group. Generator and Modulus are public protocol constants.
type Group interface {
	Name() string
	Generator() *big.Int
	Modulus() *big.Int
	// Exp returns generator^exponent mod modulus.
	Exp(exponent *big.Int) *big.Int
	// SampleNonce draws uniformly from [1, modulus-1].
	SampleNonce(random io.Reader) (*big.Int, error)
	// ReduceDigest maps a digest to an integer mod modulus.
	ReduceDigest(digest Digest) *big.Int
	// ResponseModulus is the modulus responses are reduced by (modulus-1).
	ResponseModulus() *big.Int
}

const (
	ToyGroupName = "toy"

	DefaultGenerator = 2
	DefaultModulus   = 23
)

// ModularGroup is the multiplicative group of integers mod a prime.
type ModularGroup struct {
	name      string
	generator *big.Int
	modulus   *big.Int
	order     *big.Int
}

func NewModularGroup(name string, generator, modulus *big.Int) (*ModularGroup, error) {
	if modulus == nil || modulus.Cmp(big.NewInt(2)) < 0 {
		return nil, ErrInvalidModulus
	}
	if generator == nil || generator.Cmp(big.NewInt(2)) < 0 || generator.Cmp(modulus) >= 0 {
		return nil, fmt.Errorf("%w: got %v for modulus %v", ErrInvalidGenerator, generator, modulus)
	}

	return &ModularGroup{
		name:      name,
		generator: new(big.Int).Set(generator),
		modulus:   new(big.Int).Set(modulus),
		order:     new(big.Int).Sub(modulus, big.NewInt(1)),
	}, nil
}

// ToyGroup returns the default g=2, p=23 parameters.
func ToyGroup() *ModularGroup {
	g, _ := NewModularGroup(ToyGroupName, big.NewInt(DefaultGenerator), big.NewInt(DefaultModulus))
	return g
}

func (mg *ModularGroup) Name() string { return mg.name }

func (mg *ModularGroup) Generator() *big.Int { return new(big.Int).Set(mg.generator) }

func (mg *ModularGroup) Modulus() *big.Int { return new(big.Int).Set(mg.modulus) }

func (mg *ModularGroup) ResponseModulus() *big.Int { return new(big.Int).Set(mg.order) }

func (mg *ModularGroup) Exp(exponent *big.Int) *big.Int {
	return new(big.Int).Exp(mg.generator, exponent, mg.modulus)
}

func (mg *ModularGroup) SampleNonce(random io.Reader) (*big.Int, error) {
	return sampleRange(random, mg.order)
}

func (mg *ModularGroup) ReduceDigest(digest Digest) *big.Int {
	return new(big.Int).Mod(digest.Int(), mg.modulus)
}

// sampleRange returns a uniform integer in [1, upper].
func sampleRange(random io.Reader, upper *big.Int) (*big.Int, error) {
	if random == nil {
		random = rand.Reader
	}

	n, err := rand.Int(random, upper)
	if err != nil {
		return nil, fmt.Errorf("sample nonce: %w", err)
	}

	return n.Add(n, big.NewInt(1)), nil
}
