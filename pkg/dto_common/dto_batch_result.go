package dtocommon

import (
	reasoncodes "schnorr-batch/pkg/reason_codes"
	"schnorr-batch/pkg/utilities"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// BatchVerificationResultDto is the structured outcome handed to callers of a
// batch run. Aborted runs only carry status, success, message and reason code.
type BatchVerificationResultDto struct {
	RunId            string                 `json:"run_id"`
	RequestId        string                 `json:"request_id,omitempty"`
	Status           string                 `json:"status"`
	Success          bool                   `json:"success"`
	Outcome          string                 `json:"outcome"`
	Message          string                 `json:"message"`
	Records          int                    `json:"records"`
	VerificationTime float64                `json:"verification_time,omitempty"`
	TotalTime        float64                `json:"total_time,omitempty"`
	UnitsUsed        uint64                 `json:"units_used,omitempty"`
	UnitPrice        string                 `json:"unit_price,omitempty"`
	TotalCost        string                 `json:"total_cost,omitempty"`
	TotalCostDisplay float64                `json:"total_cost_display,omitempty"`
	CostUnit         string                 `json:"cost_unit,omitempty"`
	Reference        string                 `json:"reference,omitempty"`
	ReasonCode       reasoncodes.ReasonCode `json:"reason_code,omitempty"`
}

func (bvr BatchVerificationResultDto) Serialize() ([]byte, error) {
	return utilities.Serialize[BatchVerificationResultDto](bvr)
}
