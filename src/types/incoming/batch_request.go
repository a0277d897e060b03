package incoming

import (
	"schnorr-batch/pkg/utilities"
	"schnorr-batch/src/types/domain"
)

type BatchRecordDto struct {
	Secret    string `json:"secret"`
	SubjectID string `json:"subject_id"`
}

func (brd BatchRecordDto) ConvertToDomain() domain.Record {
	return domain.Record{
		Secret:    brd.Secret,
		SubjectID: brd.SubjectID,
		Acl:       domain.AclEntry{Email: brd.Secret},
	}
}

// BatchRunRequestDto starts a run either from inline records or, with
// UseFiles set, from the configured record files.
type BatchRunRequestDto struct {
	RequestId string           `json:"request_id"`
	Records   []BatchRecordDto `json:"records"`
	UseFiles  bool             `json:"use_files"`
}

func (brr BatchRunRequestDto) DomainRecords() []domain.Record {
	return utilities.ConvertJsonArrayToDomain[BatchRecordDto, domain.Record](brr.Records)
}
