package external

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"schnorr-batch/pkg/logger"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type Keys struct {
	ProgramPublicKey solana.PublicKey
	PayerPublicKey   solana.PublicKey
	PayerPrivateKey  solana.PrivateKey
}

type SharedSolanaConfig struct {
	Mu   sync.Mutex
	Keys *Keys
}

// LoadSolanaKeys resolves the verifier program id and the payer keypair.
// Empty arguments fall back to PROGRAM_ID and PAYER_KEYPAIR_PATH.
func LoadSolanaKeys(programIDStr, keypairPath string) (*SharedSolanaConfig, error) {
	if programIDStr == "" {
		programIDStr = os.Getenv("PROGRAM_ID")
	}
	if programIDStr == "" {
		return nil, fmt.Errorf("program id is not configured and PROGRAM_ID env var is not set")
	}
	programID, err := solana.PublicKeyFromBase58(programIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid program id %q: %w", programIDStr, err)
	}

	if keypairPath == "" {
		keypairPath = os.Getenv("PAYER_KEYPAIR_PATH")
	}
	if keypairPath == "" {
		homeDir, _ := os.UserHomeDir()
		keypairPath = filepath.Join(homeDir, ".config", "solana", "id.json")
	}
	payerPriv, err := solana.PrivateKeyFromSolanaKeygenFile(keypairPath)
	if err != nil {
		return nil, fmt.Errorf("reading payer keypair from %s failed: %w", keypairPath, err)
	}

	keys := &Keys{
		ProgramPublicKey: programID,
		PayerPublicKey:   payerPriv.PublicKey(),
		PayerPrivateKey:  payerPriv,
	}

	logger.Default().Debugf("Verifier program: %s", keys.ProgramPublicKey.String())
	logger.Default().Debugf("Payer: %s", keys.PayerPublicKey.String())

	return &SharedSolanaConfig{Keys: keys}, nil
}

func (sc *SharedSolanaConfig) ValidateProgramExecutable(ctx context.Context, rpcClient *rpc.Client) error {
	sc.Mu.Lock()
	programID := sc.Keys.ProgramPublicKey
	sc.Mu.Unlock()

	acc, err := rpcClient.GetAccountInfo(ctx, programID)
	if err != nil {
		return fmt.Errorf("GetAccountInfo(program) failed: %w", err)
	}
	if acc == nil || acc.Value == nil || !acc.Value.Executable {
		return fmt.Errorf("program id %s is not an executable account", programID)
	}
	return nil
}
