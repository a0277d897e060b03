package history

import (
	"errors"

	dtocommon "schnorr-batch/pkg/dto_common"
	"schnorr-batch/src/model"

	"gorm.io/gorm"
)

// Sources a run can be started from.
const (
	SourceHttp     = "http"
	SourceQueue    = "queue"
	SourceSchedule = "schedule"
	SourceCli      = "cli"
)

var ErrRunNotFound = errors.New("batch run not found")

type BatchRunService interface {
	RecordRun(result dtocommon.BatchVerificationResultDto, source string) error
	GetRuns(limit, offset int) ([]model.BatchRun, error)
	GetRunsByOutcome(outcome string, limit, offset int) ([]model.BatchRun, error)
	GetRun(runId string) (model.BatchRun, error)
}

type batchRunService struct {
	repository BatchRunRepository
}

func NewBatchRunService(repository BatchRunRepository) BatchRunService {
	return &batchRunService{repository: repository}
}

func (s *batchRunService) RecordRun(result dtocommon.BatchVerificationResultDto, source string) error {
	run := model.BatchRun{
		RunId:            result.RunId,
		RequestId:        result.RequestId,
		Source:           source,
		Outcome:          result.Outcome,
		Success:          result.Success,
		Message:          result.Message,
		Records:          result.Records,
		VerificationTime: result.VerificationTime,
		TotalTime:        result.TotalTime,
		UnitsUsed:        result.UnitsUsed,
		UnitPrice:        result.UnitPrice,
		TotalCost:        result.TotalCost,
		TotalCostDisplay: result.TotalCostDisplay,
		CostUnit:         result.CostUnit,
		Reference:        result.Reference,
		ReasonCode:       string(result.ReasonCode),
	}

	return s.repository.SaveRun(&run)
}

func (s *batchRunService) GetRuns(limit, offset int) ([]model.BatchRun, error) {
	return s.repository.GetRuns(limit, offset)
}

func (s *batchRunService) GetRunsByOutcome(outcome string, limit, offset int) ([]model.BatchRun, error) {
	return s.repository.GetRunsByOutcome(outcome, limit, offset)
}

func (s *batchRunService) GetRun(runId string) (model.BatchRun, error) {
	run, err := s.repository.GetRun(runId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return run, ErrRunNotFound
	}
	return run, err
}
