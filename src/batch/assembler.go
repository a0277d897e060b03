package batch

import (
	"errors"
	"math/big"
	"strings"

	"schnorr-batch/src/schnorr"
	"schnorr-batch/src/types/domain"
)

var ErrBatchFrozen = errors.New("batch already frozen")

// Assembler collects proof entries into the parallel sequences the verifier
// expects. It is owned by a single run and is not safe for concurrent use.
type Assembler struct {
	batch  domain.Batch
	frozen bool
}

func NewAssembler(capacity int) *Assembler {
	return &Assembler{
		batch: domain.Batch{
			Commitments:   make([]*big.Int, 0, capacity),
			Responses:     make([]*big.Int, 0, capacity),
			Generators:    make([]*big.Int, 0, capacity),
			Moduli:        make([]*big.Int, 0, capacity),
			Challenges:    make([]*big.Int, 0, capacity),
			SubjectIDs:    make([]string, 0, capacity),
			SecretDigests: make([]schnorr.Digest, 0, capacity),
		},
	}
}

func (a *Assembler) Append(entry domain.ProofEntry) error {
	if a.frozen {
		return ErrBatchFrozen
	}

	a.batch.Commitments = append(a.batch.Commitments, entry.Commitment)
	a.batch.Responses = append(a.batch.Responses, entry.Response)
	a.batch.Generators = append(a.batch.Generators, entry.Generator)
	a.batch.Moduli = append(a.batch.Moduli, entry.Modulus)
	a.batch.Challenges = append(a.batch.Challenges, entry.Challenge)
	a.batch.SubjectIDs = append(a.batch.SubjectIDs, CanonicalSubjectID(entry.SubjectID))
	a.batch.SecretDigests = append(a.batch.SecretDigests, entry.SecretDigest)

	return nil
}

func (a *Assembler) Len() int {
	return a.batch.Len()
}

// Freeze stops further appends and returns a copy of the assembled batch.
func (a *Assembler) Freeze() domain.Batch {
	a.frozen = true

	return domain.Batch{
		Commitments:   cloneInts(a.batch.Commitments),
		Responses:     cloneInts(a.batch.Responses),
		Generators:    cloneInts(a.batch.Generators),
		Moduli:        cloneInts(a.batch.Moduli),
		Challenges:    cloneInts(a.batch.Challenges),
		SubjectIDs:    append([]string(nil), a.batch.SubjectIDs...),
		SecretDigests: append([]schnorr.Digest(nil), a.batch.SecretDigests...),
	}
}

// CanonicalSubjectID is the string form the verifier stores subjects under.
func CanonicalSubjectID(subjectID string) string {
	return strings.TrimSpace(subjectID)
}

func cloneInts(in []*big.Int) []*big.Int {
	out := make([]*big.Int, len(in))
	for i, v := range in {
		if v != nil {
			out[i] = new(big.Int).Set(v)
		}
	}
	return out
}
