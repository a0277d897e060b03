package schnorr

import (
	"errors"
	"math/big"
)

var ErrMissingOperand = errors.New("response operands must not be nil")

// Response returns (nonce + challenge*secret) mod (modulus-1), always in
// [0, modulus-2].
func Response(nonce, challenge, secret, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Cmp(big.NewInt(2)) < 0 {
		return nil, ErrInvalidModulus
	}
	if nonce == nil || challenge == nil || secret == nil {
		return nil, ErrMissingOperand
	}

	order := new(big.Int).Sub(modulus, big.NewInt(1))

	s := new(big.Int).Mul(challenge, secret)
	s.Add(s, nonce)

	return s.Mod(s, order), nil
}
