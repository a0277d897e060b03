package reasoncodes

type ReasonCode string

const (
	ErrUnmarshal          ReasonCode = "UnmarshalError"
	ErrInvalidRecord      ReasonCode = "InvalidRecordError"
	ErrRecordSource       ReasonCode = "RecordSourceError"
	ErrProofGeneration    ReasonCode = "ProofGenerationError"
	ErrChallengeOracle    ReasonCode = "ChallengeOracleError"
	ErrBatchSubmission    ReasonCode = "BatchSubmissionError"
	ErrBatchRejected      ReasonCode = "BatchRejected"
	ErrHistoryPersistence ReasonCode = "HistoryPersistenceError"
)
