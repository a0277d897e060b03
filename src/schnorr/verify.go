package schnorr

import "math/big"

// PublicKey returns generator^secret, the value a verifier checks against.
func PublicKey(group Group, secret *big.Int) *big.Int {
	return group.Exp(secret)
}

// VerifyProof checks g^s == R * y^c (mod p) with y = g^x.
func VerifyProof(group Group, commitment, response, challenge, secret *big.Int) bool {
	if commitment == nil || response == nil || challenge == nil || secret == nil {
		return false
	}

	p := group.Modulus()

	lhs := group.Exp(response)

	y := PublicKey(group, secret)
	yc := new(big.Int).Exp(y, new(big.Int).Mod(challenge, group.ResponseModulus()), p)
	rhs := new(big.Int).Mul(commitment, yc)
	rhs.Mod(rhs, p)

	return lhs.Cmp(rhs) == 0
}
