package batch

import (
	"context"
	"math/big"

	"schnorr-batch/src/types/domain"
)

// ChallengeOracle answers a commitment with the verifier's challenge. One
// call is made per record.
type ChallengeOracle interface {
	GetChallenge(ctx context.Context, commitment *big.Int) (*big.Int, error)
}

// BatchVerifier checks a whole batch in one atomic submission.
type BatchVerifier interface {
	// BatchVerify blocks until the submission is final.
	BatchVerify(ctx context.Context, batch domain.Batch) (domain.Receipt, error)
	UnitPrice(ctx context.Context) (domain.UnitPrice, error)
}

// Ledger is the external verifier the engine is wired to.
type Ledger interface {
	ChallengeOracle
	BatchVerifier
}
