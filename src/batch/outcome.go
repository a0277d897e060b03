package batch

import (
	"errors"
	"math/big"
	"time"

	dtocommon "schnorr-batch/pkg/dto_common"
	reasoncodes "schnorr-batch/pkg/reason_codes"
	"schnorr-batch/src/types/domain"

	"github.com/google/uuid"
)

type OutcomeKind int

const (
	// OutcomeAborted means no batch was submitted, or the submission never
	// reached finality.
	OutcomeAborted OutcomeKind = iota
	OutcomeSuccess
	OutcomeRejected
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	default:
		return "aborted"
	}
}

const (
	MessageVerified = "Batch Schnorr proofs verified successfully"
	MessageRejected = "Batch verification failed"
)

// displayPrecision is the number of decimals kept when printing display costs.
const displayPrecision = 18

// Outcome is the terminal result of one run.
type Outcome struct {
	RunId   uuid.UUID
	Kind    OutcomeKind
	Message string
	Records int
	// Elapsed covers submission through finality; TotalElapsed covers the
	// whole run including proof generation.
	Elapsed      time.Duration
	TotalElapsed time.Duration
	UnitsUsed    uint64
	UnitPrice    domain.UnitPrice
	Cost         *big.Int
	DisplayCost  *big.Rat
	Reference    string
	Reason       reasoncodes.ReasonCode
	Err          error
}

// AbortedOutcome is the result of a run that failed before the verifier
// reached a verdict.
func AbortedOutcome(runId uuid.UUID, records int, err error) Outcome {
	reason := reasoncodes.ErrProofGeneration
	var runErr *RunError
	if errors.As(err, &runErr) {
		reason = runErr.Reason
	}

	return Outcome{
		RunId:   runId,
		Kind:    OutcomeAborted,
		Message: err.Error(),
		Records: records,
		Reason:  reason,
		Err:     err,
	}
}

func (o Outcome) Success() bool {
	return o.Kind == OutcomeSuccess
}

// Completed reports whether the verifier reached a verdict.
func (o Outcome) Completed() bool {
	return o.Kind != OutcomeAborted
}

func (o Outcome) DisplayCostString() string {
	if o.DisplayCost == nil {
		return ""
	}
	return o.DisplayCost.FloatString(displayPrecision)
}

func (o Outcome) ToDto() dtocommon.BatchVerificationResultDto {
	dto := dtocommon.BatchVerificationResultDto{
		RunId:      o.RunId.String(),
		Status:     dtocommon.StatusFailed,
		Success:    o.Success(),
		Outcome:    o.Kind.String(),
		Message:    o.Message,
		Records:    o.Records,
		ReasonCode: o.Reason,
	}
	if o.Success() {
		dto.Status = dtocommon.StatusSuccess
	}
	if !o.Completed() {
		return dto
	}

	dto.VerificationTime = o.Elapsed.Seconds()
	dto.TotalTime = o.TotalElapsed.Seconds()
	dto.UnitsUsed = o.UnitsUsed
	dto.Reference = o.Reference
	dto.CostUnit = o.UnitPrice.Symbol
	if o.UnitPrice.PerUnit != nil {
		dto.UnitPrice = o.UnitPrice.PerUnit.String()
	}
	if o.Cost != nil {
		dto.TotalCost = o.Cost.String()
	}
	if o.DisplayCost != nil {
		dto.TotalCostDisplay, _ = o.DisplayCost.Float64()
	}

	return dto
}

// settlementCost returns units*price and the same amount scaled down by
// 10^decimals.
func settlementCost(units uint64, price domain.UnitPrice) (*big.Int, *big.Rat) {
	perUnit := price.PerUnit
	if perUnit == nil {
		perUnit = new(big.Int)
	}

	cost := new(big.Int).Mul(new(big.Int).SetUint64(units), perUnit)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(price.Decimals)), nil)

	return cost, new(big.Rat).SetFrac(cost, scale)
}
