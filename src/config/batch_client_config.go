package config

import (
	"time"

	"schnorr-batch/pkg/logger"
	"schnorr-batch/pkg/rabbitmq"
	"schnorr-batch/pkg/utilities"
	"schnorr-batch/src/database"
)

const (
	LedgerKindLocal  = "local"
	LedgerKindSolana = "solana"

	defaultRestPort     = 9100
	defaultRpcUrl       = "http://127.0.0.1:8899"
	defaultConcurrency  = 4
	defaultAclPath      = "acl.json"
	defaultPayloadPath  = "batch_verification_payload.json"
	defaultLocalDecimal = 9
)

type BatchClientConfigJson struct {
	LoggerConf   logger.LoggerConfigJson     `json:"logger"`
	RabbitmqConf rabbitmq.RabbitmqConfigJson `json:"rabbitmq"`
	RestConf     BatchClientRestConfigJson   `json:"rest"`
	DatabaseConf database.DatabaseConfigJson `json:"database"`
	ProtocolConf ProtocolConfigJson          `json:"protocol"`
	LedgerConf   LedgerConfigJson            `json:"ledger"`
	RecordsConf  RecordsConfigJson           `json:"records"`
	Schedule     string                      `json:"schedule"`
}

func (bccj BatchClientConfigJson) ConvertToDomain() BatchClientConfig {
	return BatchClientConfig{
		LoggerConf:   bccj.LoggerConf.ConvertToDomain(),
		RabbitmqConf: bccj.RabbitmqConf.ConvertToDomain(),
		RestConf:     bccj.RestConf.ConvertToDomain(),
		DatabaseConf: bccj.DatabaseConf.ConvertToDomain(),
		ProtocolConf: bccj.ProtocolConf.ConvertToDomain(),
		LedgerConf:   bccj.LedgerConf.ConvertToDomain(),
		RecordsConf:  bccj.RecordsConf.ConvertToDomain(),
		Schedule:     bccj.Schedule,
	}
}

type BatchClientConfig struct {
	LoggerConf   logger.LoggerConfig
	RabbitmqConf rabbitmq.RabbitmqConfig
	RestConf     BatchClientRestConfig
	DatabaseConf database.DatabaseConfig
	ProtocolConf ProtocolConfig
	LedgerConf   LedgerConfig
	RecordsConf  RecordsConfig
	Schedule     string
}

func (bcc BatchClientConfig) GetLoggerConfig() logger.LoggerConfig {
	return bcc.LoggerConf
}

func (bcc BatchClientConfig) GetRabbitmqConfig() rabbitmq.RabbitmqConfig {
	return bcc.RabbitmqConf
}

func (bcc BatchClientConfig) GetRestApiPort() uint16 {
	return bcc.RestConf.Port
}

type BatchClientRestConfigJson struct {
	Port uint16 `json:"port"`
}

type BatchClientRestConfig struct {
	Port uint16
}

func (bcrcj BatchClientRestConfigJson) ConvertToDomain() BatchClientRestConfig {
	return BatchClientRestConfig{
		Port: utilities.Ternary(bcrcj.Port == 0, uint16(defaultRestPort), bcrcj.Port),
	}
}

// ProtocolConfigJson selects the group and digest. Generator and modulus are
// decimal strings and only apply to the toy group; empty means g=2, p=23.
type ProtocolConfigJson struct {
	Group               string `json:"group"`
	Generator           string `json:"generator"`
	Modulus             string `json:"modulus"`
	Digest              string `json:"digest"`
	Concurrency         int    `json:"concurrency"`
	ChallengeTimeoutMs  int64  `json:"challenge_timeout_ms"`
	SubmissionTimeoutMs int64  `json:"submission_timeout_ms"`
}

type ProtocolConfig struct {
	Group             string
	Generator         string
	Modulus           string
	Digest            string
	Concurrency       int
	ChallengeTimeout  time.Duration
	SubmissionTimeout time.Duration
}

func (pcj ProtocolConfigJson) ConvertToDomain() ProtocolConfig {
	return ProtocolConfig{
		Group:             utilities.Ternary(pcj.Group == "", "toy", pcj.Group),
		Generator:         pcj.Generator,
		Modulus:           pcj.Modulus,
		Digest:            utilities.Ternary(pcj.Digest == "", "sha256", pcj.Digest),
		Concurrency:       utilities.Ternary(pcj.Concurrency == 0, defaultConcurrency, pcj.Concurrency),
		ChallengeTimeout:  time.Duration(pcj.ChallengeTimeoutMs) * time.Millisecond,
		SubmissionTimeout: time.Duration(pcj.SubmissionTimeoutMs) * time.Millisecond,
	}
}

type LedgerConfigJson struct {
	Kind             string `json:"kind"`
	RpcUrl           string `json:"rpc_url"`
	ProgramId        string `json:"program_id"`
	PayerKeypairPath string `json:"payer_keypair_path"`
	PollIntervalMs   int64  `json:"poll_interval_ms"`
	MinUnitPrice     uint64 `json:"min_unit_price"`
	LocalUnitPrice   uint64 `json:"local_unit_price"`
	LocalDecimals    *uint8 `json:"local_decimals"`
}

type LedgerConfig struct {
	Kind             string
	RpcUrl           string
	ProgramId        string
	PayerKeypairPath string
	PollInterval     time.Duration
	MinUnitPrice     uint64
	LocalUnitPrice   uint64
	LocalDecimals    uint8
}

func (lcj LedgerConfigJson) ConvertToDomain() LedgerConfig {
	decimals := uint8(defaultLocalDecimal)
	if lcj.LocalDecimals != nil {
		decimals = *lcj.LocalDecimals
	}

	return LedgerConfig{
		Kind:             utilities.Ternary(lcj.Kind == "", LedgerKindLocal, lcj.Kind),
		RpcUrl:           utilities.Ternary(lcj.RpcUrl == "", defaultRpcUrl, lcj.RpcUrl),
		ProgramId:        lcj.ProgramId,
		PayerKeypairPath: lcj.PayerKeypairPath,
		PollInterval:     time.Duration(lcj.PollIntervalMs) * time.Millisecond,
		MinUnitPrice:     lcj.MinUnitPrice,
		LocalUnitPrice:   utilities.Ternary(lcj.LocalUnitPrice == 0, uint64(1), lcj.LocalUnitPrice),
		LocalDecimals:    decimals,
	}
}

type RecordsConfigJson struct {
	AclPath     string `json:"acl_path"`
	PayloadPath string `json:"payload_path"`
}

type RecordsConfig struct {
	AclPath     string
	PayloadPath string
}

func (rcj RecordsConfigJson) ConvertToDomain() RecordsConfig {
	return RecordsConfig{
		AclPath:     utilities.Ternary(rcj.AclPath == "", defaultAclPath, rcj.AclPath),
		PayloadPath: utilities.Ternary(rcj.PayloadPath == "", defaultPayloadPath, rcj.PayloadPath),
	}
}
