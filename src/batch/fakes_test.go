package batch

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"schnorr-batch/src/types/domain"
)

var errConnectivity = errors.New("connection reset by peer")

type fakeLedger struct {
	mu sync.Mutex

	// failAt makes the n-th challenge call (1-based) fail.
	failAt       int
	nilChallenge bool
	block        bool

	accepted  bool
	unitsUsed uint64
	price     domain.UnitPrice
	submitErr error
	priceErr  error

	challengeCalls int
	submits        int
	submitted      domain.Batch
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accepted:  true,
		unitsUsed: 21000,
		price: domain.UnitPrice{
			PerUnit:  big.NewInt(2_000_000_000),
			Decimals: 18,
			Symbol:   "ETH",
		},
	}
}

// challengeFor derives the challenge from the commitment so tests can check
// each response against its own record's challenge.
func challengeFor(commitment *big.Int) *big.Int {
	c := new(big.Int).Mul(commitment, big.NewInt(3))
	return c.Add(c, big.NewInt(1))
}

func (fl *fakeLedger) GetChallenge(ctx context.Context, commitment *big.Int) (*big.Int, error) {
	fl.mu.Lock()
	fl.challengeCalls++
	call := fl.challengeCalls
	fl.mu.Unlock()

	if fl.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if fl.failAt == call {
		return nil, errConnectivity
	}
	if fl.nilChallenge {
		return nil, nil
	}

	return challengeFor(commitment), nil
}

func (fl *fakeLedger) BatchVerify(ctx context.Context, batch domain.Batch) (domain.Receipt, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	fl.submits++
	fl.submitted = batch
	if fl.submitErr != nil {
		return domain.Receipt{}, fl.submitErr
	}

	return domain.Receipt{
		Accepted:  fl.accepted,
		UnitsUsed: fl.unitsUsed,
		Reference: "0xabc",
	}, nil
}

func (fl *fakeLedger) UnitPrice(ctx context.Context) (domain.UnitPrice, error) {
	if fl.priceErr != nil {
		return domain.UnitPrice{}, fl.priceErr
	}
	return fl.price, nil
}

type tickClock struct {
	mu sync.Mutex
	t  time.Time
}

func (tc *tickClock) Now() time.Time {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.t = tc.t.Add(time.Second)
	return tc.t
}

func newClock() *tickClock {
	return &tickClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}
