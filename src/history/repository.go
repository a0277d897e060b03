package history

import (
	"schnorr-batch/src/model"

	"gorm.io/gorm"
)

type BatchRunRepository interface {
	SaveRun(run *model.BatchRun) error
	GetRuns(limit, offset int) ([]model.BatchRun, error)
	GetRunsByOutcome(outcome string, limit, offset int) ([]model.BatchRun, error)
	GetRun(runId string) (model.BatchRun, error)
}

type batchRunRepository struct {
	db *gorm.DB
}

func NewBatchRunRepository(db *gorm.DB) BatchRunRepository {
	return &batchRunRepository{db: db}
}

func (r *batchRunRepository) SaveRun(run *model.BatchRun) error {
	return r.db.Create(run).Error
}

func (r *batchRunRepository) GetRuns(limit, offset int) ([]model.BatchRun, error) {
	var runs []model.BatchRun
	result := r.db.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&runs)
	return runs, result.Error
}

func (r *batchRunRepository) GetRunsByOutcome(outcome string, limit, offset int) ([]model.BatchRun, error) {
	var runs []model.BatchRun
	result := r.db.Where("outcome = ?", outcome).Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&runs)
	return runs, result.Error
}

func (r *batchRunRepository) GetRun(runId string) (model.BatchRun, error) {
	var run model.BatchRun
	err := r.db.Where("run_id = ?", runId).First(&run).Error
	return run, err
}
