package domain

import (
	"math/big"

	"schnorr-batch/src/schnorr"
)

// Batch is a frozen set of proofs laid out as seven parallel sequences.
// Index i of every sequence belongs to input record i.
type Batch struct {
	Commitments   []*big.Int
	Responses     []*big.Int
	Generators    []*big.Int
	Moduli        []*big.Int
	Challenges    []*big.Int
	SubjectIDs    []string
	SecretDigests []schnorr.Digest
}

func (b Batch) Len() int {
	return len(b.Commitments)
}

func (b Batch) Entry(i int) ProofEntry {
	return ProofEntry{
		Commitment:   b.Commitments[i],
		Response:     b.Responses[i],
		Generator:    b.Generators[i],
		Modulus:      b.Moduli[i],
		Challenge:    b.Challenges[i],
		SubjectID:    b.SubjectIDs[i],
		SecretDigest: b.SecretDigests[i],
	}
}
