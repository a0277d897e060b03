package schnorr

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	BN254GroupName = "bn254"

	// bn254FieldGenerator generates the multiplicative group of the BN254
	// scalar field.
	bn254FieldGenerator = 5
)

// FieldGroup runs the protocol in the multiplicative group of the BN254
// scalar field, using gnark-crypto field arithmetic for exponentiation.
type FieldGroup struct {
	generator fr.Element
	modulus   *big.Int
	order     *big.Int
}

func NewBN254FieldGroup() *FieldGroup {
	var g fr.Element
	g.SetUint64(bn254FieldGenerator)

	modulus := fr.Modulus()

	return &FieldGroup{
		generator: g,
		modulus:   modulus,
		order:     new(big.Int).Sub(modulus, big.NewInt(1)),
	}
}

func (fg *FieldGroup) Name() string { return BN254GroupName }

func (fg *FieldGroup) Generator() *big.Int {
	return big.NewInt(bn254FieldGenerator)
}

func (fg *FieldGroup) Modulus() *big.Int { return new(big.Int).Set(fg.modulus) }

func (fg *FieldGroup) ResponseModulus() *big.Int { return new(big.Int).Set(fg.order) }

func (fg *FieldGroup) Exp(exponent *big.Int) *big.Int {
	// Exponents are taken mod the group order so negative or oversized
	// inputs behave like ModularGroup.Exp.
	e := new(big.Int).Mod(exponent, fg.order)

	var z fr.Element
	z.Exp(fg.generator, e)

	return z.BigInt(new(big.Int))
}

func (fg *FieldGroup) SampleNonce(random io.Reader) (*big.Int, error) {
	return sampleRange(random, fg.order)
}

func (fg *FieldGroup) ReduceDigest(digest Digest) *big.Int {
	return new(big.Int).Mod(digest.Int(), fg.modulus)
}
