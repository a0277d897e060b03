package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"schnorr-batch/pkg/utilities"
	"schnorr-batch/src/database"
	"schnorr-batch/src/external"
	"schnorr-batch/src/schnorr"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := utilities.ReadConfig[BatchClientConfigJson, BatchClientConfig](path)
	require.NoError(t, err)

	assert.Equal(t, zerolog.InfoLevel, cfg.GetLoggerConfig().LogLevel)
	assert.False(t, cfg.GetRabbitmqConfig().Enabled)
	assert.Equal(t, uint16(defaultRestPort), cfg.GetRestApiPort())
	assert.False(t, cfg.DatabaseConf.Enabled)
	assert.Equal(t, database.DriverSqlite, cfg.DatabaseConf.Driver)

	assert.Equal(t, schnorr.ToyGroupName, cfg.ProtocolConf.Group)
	assert.Equal(t, "sha256", cfg.ProtocolConf.Digest)
	assert.Equal(t, defaultConcurrency, cfg.ProtocolConf.Concurrency)
	assert.Zero(t, cfg.ProtocolConf.ChallengeTimeout)

	assert.Equal(t, LedgerKindLocal, cfg.LedgerConf.Kind)
	assert.Equal(t, uint64(1), cfg.LedgerConf.LocalUnitPrice)
	assert.Equal(t, uint8(defaultLocalDecimal), cfg.LedgerConf.LocalDecimals)
	assert.Equal(t, defaultAclPath, cfg.RecordsConf.AclPath)
	assert.Empty(t, cfg.Schedule)
}

func TestReadConfigValues(t *testing.T) {
	path := writeConfig(t, `{
		"logger": {"log_level": 0},
		"rest": {"port": 9200},
		"protocol": {"group": "bn254", "digest": "keccak256", "concurrency": 1,
			"challenge_timeout_ms": 1500, "submission_timeout_ms": 30000},
		"ledger": {"kind": "solana", "rpc_url": "http://solana:8899", "poll_interval_ms": 250,
			"min_unit_price": 10, "local_decimals": 0},
		"records": {"acl_path": "a.json", "payload_path": "p.json"},
		"schedule": "@every 5m"
	}`)

	cfg, err := utilities.ReadConfig[BatchClientConfigJson, BatchClientConfig](path)
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, cfg.LoggerConf.LogLevel)
	assert.Equal(t, uint16(9200), cfg.GetRestApiPort())
	assert.Equal(t, schnorr.BN254GroupName, cfg.ProtocolConf.Group)
	assert.Equal(t, 1, cfg.ProtocolConf.Concurrency)
	assert.Equal(t, 1500*time.Millisecond, cfg.ProtocolConf.ChallengeTimeout)
	assert.Equal(t, 30*time.Second, cfg.ProtocolConf.SubmissionTimeout)
	assert.Equal(t, LedgerKindSolana, cfg.LedgerConf.Kind)
	assert.Equal(t, "http://solana:8899", cfg.LedgerConf.RpcUrl)
	assert.Equal(t, 250*time.Millisecond, cfg.LedgerConf.PollInterval)
	assert.Zero(t, cfg.LedgerConf.LocalDecimals)
	assert.Equal(t, "p.json", cfg.RecordsConf.PayloadPath)
	assert.Equal(t, "@every 5m", cfg.Schedule)
}

func TestBuildGroup(t *testing.T) {
	toy, err := BuildGroup(ProtocolConfig{Group: "toy"})
	require.NoError(t, err)
	assert.Equal(t, int64(23), toy.Modulus().Int64())

	custom, err := BuildGroup(ProtocolConfig{Group: "toy", Generator: "5", Modulus: "47"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), custom.Generator().Int64())
	assert.Equal(t, int64(47), custom.Modulus().Int64())

	bn, err := BuildGroup(ProtocolConfig{Group: "bn254"})
	require.NoError(t, err)
	assert.Equal(t, schnorr.BN254GroupName, bn.Name())

	_, err = BuildGroup(ProtocolConfig{Group: "toy", Generator: "x", Modulus: "47"})
	assert.Error(t, err)
	_, err = BuildGroup(ProtocolConfig{Group: "toy", Generator: "30", Modulus: "23"})
	assert.ErrorIs(t, err, schnorr.ErrInvalidGenerator)
	_, err = BuildGroup(ProtocolConfig{Group: "p256"})
	assert.Error(t, err)
}

func TestBuildLocalLedgerAndEngine(t *testing.T) {
	group := schnorr.ToyGroup()

	ledger, err := BuildLedger(context.Background(), LedgerConfig{Kind: LedgerKindLocal, LocalUnitPrice: 3, LocalDecimals: 2}, group)
	require.NoError(t, err)

	price, err := ledger.UnitPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), price.PerUnit.Int64())
	assert.Equal(t, uint8(2), price.Decimals)
	assert.Equal(t, external.LocalSymbol, price.Symbol)

	engine, err := BuildEngine(ProtocolConfig{Digest: "keccak256", Concurrency: 2}, group, ledger, nil)
	require.NoError(t, err)
	assert.Equal(t, group, engine.Group())

	_, err = BuildEngine(ProtocolConfig{Digest: "md5"}, group, ledger, nil)
	assert.Error(t, err)

	_, err = BuildLedger(context.Background(), LedgerConfig{Kind: "ethereum"}, group)
	assert.Error(t, err)
}
