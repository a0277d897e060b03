package batch

import (
	"errors"
	"fmt"

	reasoncodes "schnorr-batch/pkg/reason_codes"
)

var (
	ErrNoRecords    = errors.New("no records to prove")
	ErrEmptySubject = errors.New("subject id is empty")
	ErrNilChallenge = errors.New("oracle returned no challenge")
)

// RunError aborts a run before submission. Index is the failing record, or
// -1 when the failure is not tied to one record.
type RunError struct {
	Reason reasoncodes.ReasonCode
	Index  int
	Err    error
}

func (re *RunError) Error() string {
	if re.Index < 0 {
		return fmt.Sprintf("%s: %v", re.Reason, re.Err)
	}
	return fmt.Sprintf("%s at record %d: %v", re.Reason, re.Index, re.Err)
}

func (re *RunError) Unwrap() error {
	return re.Err
}

func newRunError(reason reasoncodes.ReasonCode, index int, err error) *RunError {
	return &RunError{Reason: reason, Index: index, Err: err}
}
