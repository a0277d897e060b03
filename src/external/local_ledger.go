package external

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"schnorr-batch/src/schnorr"
	"schnorr-batch/src/types/domain"
)

const (
	DefaultLocalBaseUnits     = 21000
	DefaultLocalUnitsPerEntry = 5000
	LocalSymbol               = "LOCAL"
)

// LocalLedger is an in-process verifier for development runs. Challenges are
// derived from the commitment and batches are checked the way the on-chain
// program checks them.
type LocalLedger struct {
	group         schnorr.Group
	price         domain.UnitPrice
	baseUnits     uint64
	unitsPerEntry uint64

	mu          sync.Mutex
	submissions int
}

type LocalLedgerOption func(*LocalLedger)

func WithLocalUnitPrice(price domain.UnitPrice) LocalLedgerOption {
	return func(ll *LocalLedger) {
		ll.price = price
	}
}

func WithLocalCostModel(baseUnits, unitsPerEntry uint64) LocalLedgerOption {
	return func(ll *LocalLedger) {
		ll.baseUnits = baseUnits
		ll.unitsPerEntry = unitsPerEntry
	}
}

func NewLocalLedger(group schnorr.Group, opts ...LocalLedgerOption) *LocalLedger {
	ll := &LocalLedger{
		group: group,
		price: domain.UnitPrice{
			PerUnit:  big.NewInt(1),
			Decimals: 9,
			Symbol:   LocalSymbol,
		},
		baseUnits:     DefaultLocalBaseUnits,
		unitsPerEntry: DefaultLocalUnitsPerEntry,
	}

	for _, opt := range opts {
		opt(ll)
	}

	return ll
}

// LocalChallenge is sha256(commitment as uint256) mod p.
func LocalChallenge(group schnorr.Group, commitment *big.Int) (*big.Int, error) {
	word, err := toUint256(commitment)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(word[:])
	return new(big.Int).Mod(new(big.Int).SetBytes(digest[:]), group.Modulus()), nil
}

func (ll *LocalLedger) GetChallenge(ctx context.Context, commitment *big.Int) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LocalChallenge(ll.group, commitment)
}

// BatchVerify accepts the batch only if every entry verifies. The batch is
// round-tripped through the instruction codec first.
func (ll *LocalLedger) BatchVerify(ctx context.Context, batch domain.Batch) (domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, err
	}

	data, err := EncodeBatchInstruction(batch)
	if err != nil {
		return domain.Receipt{}, err
	}
	decoded, err := DecodeBatchInstruction(data)
	if err != nil {
		return domain.Receipt{}, err
	}

	ll.mu.Lock()
	ll.submissions++
	ll.mu.Unlock()

	reference := sha256.Sum256(data)

	return domain.Receipt{
		Accepted:  ll.verify(decoded) == nil,
		UnitsUsed: ll.baseUnits + ll.unitsPerEntry*uint64(decoded.Len()),
		Reference: hex.EncodeToString(reference[:]),
	}, nil
}

func (ll *LocalLedger) UnitPrice(ctx context.Context) (domain.UnitPrice, error) {
	if err := ctx.Err(); err != nil {
		return domain.UnitPrice{}, err
	}
	return ll.price, nil
}

func (ll *LocalLedger) Submissions() int {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return ll.submissions
}

func (ll *LocalLedger) verify(batch domain.Batch) error {
	n := batch.Len()
	for _, l := range []int{
		len(batch.Responses), len(batch.Generators), len(batch.Moduli),
		len(batch.Challenges), len(batch.SubjectIDs), len(batch.SecretDigests),
	} {
		if l != n {
			return fmt.Errorf("sequence length %d does not match %d commitments", l, n)
		}
	}

	for i := 0; i < n; i++ {
		e := batch.Entry(i)
		if e.Generator.Cmp(ll.group.Generator()) != 0 || e.Modulus.Cmp(ll.group.Modulus()) != 0 {
			return fmt.Errorf("entry %d: unexpected group parameters", i)
		}

		expected, err := LocalChallenge(ll.group, e.Commitment)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if expected.Cmp(e.Challenge) != 0 {
			return fmt.Errorf("entry %d: challenge was not issued for this commitment", i)
		}

		x := ll.group.ReduceDigest(e.SecretDigest)
		if !schnorr.VerifyProof(ll.group, e.Commitment, e.Response, e.Challenge, x) {
			return fmt.Errorf("entry %d: proof does not verify", i)
		}
	}

	return nil
}
