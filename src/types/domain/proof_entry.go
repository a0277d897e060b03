package domain

import (
	"math/big"

	"schnorr-batch/src/schnorr"
)

type ProofEntry struct {
	Commitment   *big.Int
	Response     *big.Int
	Generator    *big.Int
	Modulus      *big.Int
	Challenge    *big.Int
	SubjectID    string
	SecretDigest schnorr.Digest
}
