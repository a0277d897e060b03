package external

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"schnorr-batch/pkg/logger"
	"schnorr-batch/src/types/domain"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	// Compute unit prices are quoted in micro-lamports; 10^15 of them make
	// one SOL.
	microLamportDecimals = 15
	solSymbol            = "SOL"

	defaultPollInterval = 500 * time.Millisecond
)

var ErrTransactionNotFound = errors.New("finalized transaction not found")

// SolanaLedger talks to the on-chain Schnorr verifier program. Challenges are
// read by simulating a get-challenge instruction; batches are sent as one
// signed transaction and awaited until finalized.
type SolanaLedger struct {
	Config       *SharedSolanaConfig
	RpcClient    *rpc.Client
	PollInterval time.Duration
	// MinUnitPrice is used when the cluster reports no recent priority fees.
	MinUnitPrice uint64
	Logger       *logger.Logger
}

func NewSolanaLedger(rpcClient *rpc.Client, config *SharedSolanaConfig) *SolanaLedger {
	return &SolanaLedger{
		Config:       config,
		RpcClient:    rpcClient,
		PollInterval: defaultPollInterval,
		Logger:       logger.Default(),
	}
}

func (sl *SolanaLedger) GetChallenge(ctx context.Context, commitment *big.Int) (*big.Int, error) {
	data, err := EncodeChallengeInstruction(commitment)
	if err != nil {
		return nil, err
	}

	tx, programID, err := sl.signedTransaction(ctx, data)
	if err != nil {
		return nil, err
	}

	sim, err := sl.RpcClient.SimulateTransaction(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("simulate call: %w", err)
	}
	if sim.Value.Err != nil {
		for _, l := range sim.Value.Logs {
			sl.Logger.Debug(l)
		}
		return nil, fmt.Errorf("simulate err: %+v", sim.Value.Err)
	}

	ret, err := ParseReturnData(sim.Value.Logs, programID.String())
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(ret), nil
}

func (sl *SolanaLedger) BatchVerify(ctx context.Context, batch domain.Batch) (domain.Receipt, error) {
	data, err := EncodeBatchInstruction(batch)
	if err != nil {
		return domain.Receipt{}, err
	}
	sl.Logger.Infof("Serialized batch instruction size: %d bytes for %d proofs", len(data), batch.Len())

	tx, _, err := sl.signedTransaction(ctx, data)
	if err != nil {
		return domain.Receipt{}, err
	}

	// Preflight is skipped so a failed verification still lands on chain
	// and is reported through the transaction meta.
	signature, err := sl.RpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       true,
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("send batch transaction: %w", err)
	}
	sl.Logger.Infof("Sent batch transaction: %s", signature)

	if err := sl.waitFinalized(ctx, signature); err != nil {
		return domain.Receipt{}, err
	}

	out, err := sl.RpcClient.GetTransaction(ctx, signature, &rpc.GetTransactionOpts{
		Commitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("get transaction %s: %w", signature, err)
	}
	if out == nil || out.Meta == nil {
		return domain.Receipt{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, signature)
	}

	receipt := domain.Receipt{
		Accepted:  out.Meta.Err == nil,
		Reference: signature.String(),
	}
	if out.Meta.ComputeUnitsConsumed != nil {
		receipt.UnitsUsed = *out.Meta.ComputeUnitsConsumed
	}
	if !receipt.Accepted {
		sl.Logger.Warnf("Batch transaction %s failed verification: %+v", signature, out.Meta.Err)
	}

	return receipt, nil
}

// UnitPrice is the highest recent priority fee paid for the verifier program,
// in micro-lamports per compute unit.
func (sl *SolanaLedger) UnitPrice(ctx context.Context) (domain.UnitPrice, error) {
	sl.Config.Mu.Lock()
	programID := sl.Config.Keys.ProgramPublicKey
	sl.Config.Mu.Unlock()

	fees, err := sl.RpcClient.GetRecentPrioritizationFees(ctx, []solana.PublicKey{programID})
	if err != nil {
		return domain.UnitPrice{}, fmt.Errorf("recent prioritization fees: %w", err)
	}

	price := sl.MinUnitPrice
	for _, f := range fees {
		if f.PrioritizationFee > price {
			price = f.PrioritizationFee
		}
	}

	return domain.UnitPrice{
		PerUnit:  new(big.Int).SetUint64(price),
		Decimals: microLamportDecimals,
		Symbol:   solSymbol,
	}, nil
}

func (sl *SolanaLedger) waitFinalized(ctx context.Context, signature solana.Signature) error {
	interval := sl.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		statuses, err := sl.RpcClient.GetSignatureStatuses(ctx, true, signature)
		if err != nil {
			sl.Logger.Warnf("Signature status lookup for %s failed: %v", signature, err)
		} else if len(statuses.Value) > 0 && statuses.Value[0] != nil {
			status := statuses.Value[0]
			if status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return nil
			}
			sl.Logger.Debugf("Transaction %s status: %s", signature, status.ConfirmationStatus)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for finality of %s: %w", signature, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (sl *SolanaLedger) signedTransaction(ctx context.Context, data []byte) (*solana.Transaction, solana.PublicKey, error) {
	// mutex lock to read correct values at current time
	sl.Config.Mu.Lock()
	keys := *sl.Config.Keys
	sl.Config.Mu.Unlock()

	instruction := solana.NewInstruction(
		keys.ProgramPublicKey,
		[]*solana.AccountMeta{
			solana.NewAccountMeta(keys.PayerPublicKey, true, true),
		},
		data,
	)

	latest, err := sl.RpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, keys.ProgramPublicKey, fmt.Errorf("latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		latest.Value.Blockhash,
		solana.TransactionPayer(keys.PayerPublicKey),
	)
	if err != nil {
		return nil, keys.ProgramPublicKey, err
	}

	_, err = tx.Sign(func(pk solana.PublicKey) *solana.PrivateKey {
		if pk.Equals(keys.PayerPublicKey) {
			return &keys.PayerPrivateKey
		}
		return nil
	})
	if err != nil {
		return nil, keys.ProgramPublicKey, fmt.Errorf("sign transaction: %w", err)
	}

	return tx, keys.ProgramPublicKey, nil
}
