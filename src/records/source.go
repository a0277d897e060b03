package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"schnorr-batch/src/types/domain"
	"schnorr-batch/src/types/incoming"
)

var ErrLengthMismatch = errors.New("acl and payload student lists differ in length")

// Source produces the records of one batch run.
type Source interface {
	Load(ctx context.Context) ([]domain.Record, error)
}

// FileSource reads the ACL and verification payload files. Entries are
// correlated by index.
type FileSource struct {
	AclPath     string
	PayloadPath string
}

func NewFileSource(aclPath, payloadPath string) *FileSource {
	return &FileSource{AclPath: aclPath, PayloadPath: payloadPath}
}

func (fs *FileSource) Load(ctx context.Context) ([]domain.Record, error) {
	var acl incoming.AclFileJson
	if err := readJsonFile(fs.AclPath, &acl); err != nil {
		return nil, err
	}

	var payload incoming.PayloadFileJson
	if err := readJsonFile(fs.PayloadPath, &payload); err != nil {
		return nil, err
	}

	if len(acl.Students) != len(payload.Students) {
		return nil, fmt.Errorf("%w: %d acl entries, %d payload entries",
			ErrLengthMismatch, len(acl.Students), len(payload.Students))
	}

	records := make([]domain.Record, len(payload.Students))
	for i, student := range payload.Students {
		records[i] = domain.Record{
			Secret:    student.Email,
			SubjectID: student.StudentDid,
			Acl:       domain.AclEntry{Email: acl.Students[i].Email},
		}
	}

	return records, ctx.Err()
}

func readJsonFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// StaticSource serves records that are already in memory.
type StaticSource []domain.Record

func (ss StaticSource) Load(ctx context.Context) ([]domain.Record, error) {
	return append([]domain.Record(nil), ss...), nil
}
