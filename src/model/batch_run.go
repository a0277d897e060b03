package model

import "time"

// BatchRun is the persisted summary of one finished or aborted batch run.
type BatchRun struct {
	Id               int       `gorm:"primaryKey;autoIncrement" json:"-"`
	RunId            string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"run_id"`
	RequestId        string    `gorm:"type:varchar(64);index" json:"request_id,omitempty"`
	Source           string    `gorm:"type:varchar(20);not null" json:"source"`
	Outcome          string    `gorm:"type:varchar(10);index;not null" json:"outcome"`
	Success          bool      `json:"success"`
	Message          string    `gorm:"type:text" json:"message"`
	Records          int       `json:"records"`
	VerificationTime float64   `json:"verification_time"`
	TotalTime        float64   `json:"total_time"`
	UnitsUsed        uint64    `json:"units_used"`
	UnitPrice        string    `gorm:"type:varchar(80)" json:"unit_price"`
	TotalCost        string    `gorm:"type:varchar(80)" json:"total_cost"`
	TotalCostDisplay float64   `json:"total_cost_display"`
	CostUnit         string    `gorm:"type:varchar(10)" json:"cost_unit"`
	Reference        string    `gorm:"type:varchar(128)" json:"reference"`
	ReasonCode       string    `gorm:"type:varchar(40)" json:"reason_code,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (BatchRun) TableName() string {
	return "batch_runs"
}
