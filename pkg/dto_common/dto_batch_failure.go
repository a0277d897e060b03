package dtocommon

import (
	reasoncodes "schnorr-batch/pkg/reason_codes"
	"schnorr-batch/pkg/utilities"
)

type BatchFailureDto struct {
	RequestId   string                 `json:"request_id"`
	RequestBody []byte                 `json:"request_body"`
	Error       string                 `json:"error"`
	ReasonCode  reasoncodes.ReasonCode `json:"reason_code"`
}

func (bf BatchFailureDto) Serialize() ([]byte, error) {
	return utilities.Serialize[BatchFailureDto](bf)
}

type BatchFailureDtoFactory interface {
	CreateErrorDto(error, reasoncodes.ReasonCode) utilities.Serializable
}

type batchFailureDtoFactory struct {
	RequestId   string
	RequestBody []byte
}

func NewBatchFailureFactory(requestId string, requestBody []byte) BatchFailureDtoFactory {
	return batchFailureDtoFactory{
		RequestId:   requestId,
		RequestBody: requestBody,
	}
}

func (bfdf batchFailureDtoFactory) CreateErrorDto(
	err error,
	reasonCode reasoncodes.ReasonCode) utilities.Serializable {
	return BatchFailureDto{
		RequestId:   bfdf.RequestId,
		RequestBody: bfdf.RequestBody,
		Error:       err.Error(),
		ReasonCode:  reasonCode,
	}
}
