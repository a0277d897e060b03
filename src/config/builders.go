package config

import (
	"context"
	"fmt"
	"math/big"

	"schnorr-batch/pkg/logger"
	"schnorr-batch/src/batch"
	"schnorr-batch/src/external"
	"schnorr-batch/src/schnorr"
	"schnorr-batch/src/types/domain"

	"github.com/gagliardetto/solana-go/rpc"
)

// BuildGroup resolves the configured group. The toy group accepts custom
// generator and modulus values.
func BuildGroup(pc ProtocolConfig) (schnorr.Group, error) {
	switch pc.Group {
	case schnorr.ToyGroupName:
		if pc.Generator == "" && pc.Modulus == "" {
			return schnorr.ToyGroup(), nil
		}
		generator, ok := new(big.Int).SetString(pc.Generator, 10)
		if !ok {
			return nil, fmt.Errorf("invalid generator %q", pc.Generator)
		}
		modulus, ok := new(big.Int).SetString(pc.Modulus, 10)
		if !ok {
			return nil, fmt.Errorf("invalid modulus %q", pc.Modulus)
		}
		return schnorr.NewModularGroup(schnorr.ToyGroupName, generator, modulus)
	case schnorr.BN254GroupName:
		return schnorr.NewBN254FieldGroup(), nil
	default:
		return nil, fmt.Errorf("unknown group %q", pc.Group)
	}
}

// BuildLedger returns the configured ledger. A solana ledger is only
// returned once the verifier program is confirmed executable.
func BuildLedger(ctx context.Context, lc LedgerConfig, group schnorr.Group) (batch.Ledger, error) {
	switch lc.Kind {
	case LedgerKindLocal:
		return external.NewLocalLedger(group, external.WithLocalUnitPrice(domain.UnitPrice{
			PerUnit:  new(big.Int).SetUint64(lc.LocalUnitPrice),
			Decimals: lc.LocalDecimals,
			Symbol:   external.LocalSymbol,
		})), nil
	case LedgerKindSolana:
		solanaConfig, err := external.LoadSolanaKeys(lc.ProgramId, lc.PayerKeypairPath)
		if err != nil {
			return nil, fmt.Errorf("unable to load keypairs for solana: %w", err)
		}

		rpcClient := rpc.New(lc.RpcUrl)
		if err := solanaConfig.ValidateProgramExecutable(ctx, rpcClient); err != nil {
			return nil, err
		}

		ledger := external.NewSolanaLedger(rpcClient, solanaConfig)
		if lc.PollInterval > 0 {
			ledger.PollInterval = lc.PollInterval
		}
		ledger.MinUnitPrice = lc.MinUnitPrice
		return ledger, nil
	default:
		return nil, fmt.Errorf("unknown ledger kind %q", lc.Kind)
	}
}

func BuildEngine(pc ProtocolConfig, group schnorr.Group, ledger batch.Ledger, l *logger.Logger) (*batch.Engine, error) {
	hash, err := schnorr.HashFuncByName(pc.Digest)
	if err != nil {
		return nil, err
	}

	return batch.NewEngine(group, ledger,
		batch.WithConcurrency(pc.Concurrency),
		batch.WithChallengeTimeout(pc.ChallengeTimeout),
		batch.WithSubmissionTimeout(pc.SubmissionTimeout),
		batch.WithHashFunc(hash),
		batch.WithLogger(l),
	), nil
}
