package verification

import (
	"context"
	"errors"

	dtocommon "schnorr-batch/pkg/dto_common"
	"schnorr-batch/pkg/logger"
	reasoncodes "schnorr-batch/pkg/reason_codes"
	"schnorr-batch/src/batch"
	"schnorr-batch/src/history"
	"schnorr-batch/src/records"
	"schnorr-batch/src/types/domain"

	"github.com/google/uuid"
)

var ErrFileSourceDisabled = errors.New("no record files configured")

// BatchVerificationService loads records, runs the engine and records the
// outcome in the run history.
type BatchVerificationService interface {
	RunFromFiles(ctx context.Context, requestId, source string) dtocommon.BatchVerificationResultDto
	RunRecords(ctx context.Context, requestId string, recs []domain.Record, source string) dtocommon.BatchVerificationResultDto
}

type batchVerificationService struct {
	engine  *batch.Engine
	files   records.Source
	history history.BatchRunService
	logger  *logger.Logger
}

// NewBatchVerificationService wires the engine to its record files and an
// optional history store; files and runHistory may be nil.
func NewBatchVerificationService(
	engine *batch.Engine,
	files records.Source,
	runHistory history.BatchRunService,
	l *logger.Logger,
) BatchVerificationService {
	if l == nil {
		l = logger.Nop()
	}

	return &batchVerificationService{
		engine:  engine,
		files:   files,
		history: runHistory,
		logger:  l,
	}
}

func (s *batchVerificationService) RunFromFiles(ctx context.Context, requestId, source string) dtocommon.BatchVerificationResultDto {
	if s.files == nil {
		return s.finish(requestId, source, batch.AbortedOutcome(uuid.New(), 0,
			&batch.RunError{Reason: reasoncodes.ErrRecordSource, Index: -1, Err: ErrFileSourceDisabled}))
	}

	return s.run(ctx, requestId, s.files, source)
}

func (s *batchVerificationService) RunRecords(ctx context.Context, requestId string, recs []domain.Record, source string) dtocommon.BatchVerificationResultDto {
	return s.run(ctx, requestId, records.StaticSource(recs), source)
}

func (s *batchVerificationService) run(ctx context.Context, requestId string, src records.Source, source string) dtocommon.BatchVerificationResultDto {
	recs, err := src.Load(ctx)
	if err != nil {
		reason := reasoncodes.ErrRecordSource
		if errors.Is(err, records.ErrLengthMismatch) {
			reason = reasoncodes.ErrInvalidRecord
		}
		s.logger.Errorf(err, "Could not load records for request %s", requestId)

		return s.finish(requestId, source, batch.AbortedOutcome(uuid.New(), 0,
			&batch.RunError{Reason: reason, Index: -1, Err: err}))
	}

	return s.finish(requestId, source, s.engine.Run(ctx, recs))
}

func (s *batchVerificationService) finish(requestId, source string, outcome batch.Outcome) dtocommon.BatchVerificationResultDto {
	result := outcome.ToDto()
	result.RequestId = requestId

	if s.history != nil {
		if err := s.history.RecordRun(result, source); err != nil {
			s.logger.Errorf(err, "[%s] Failed to persist batch run %s", reasoncodes.ErrHistoryPersistence, result.RunId)
		}
	}

	return result
}
