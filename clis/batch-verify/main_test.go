package main

import (
	"bytes"
	"testing"

	dtocommon "schnorr-batch/pkg/dto_common"
	reasoncodes "schnorr-batch/pkg/reason_codes"

	"github.com/stretchr/testify/assert"
)

func TestPrintCompletedResult(t *testing.T) {
	var out bytes.Buffer
	printResult(&out, dtocommon.BatchVerificationResultDto{
		RunId:            "run-1",
		Outcome:          "success",
		Message:          "Batch Schnorr proofs verified successfully",
		Records:          3,
		UnitsUsed:        36000,
		UnitPrice:        "1",
		TotalCost:        "36000",
		TotalCostDisplay: 0.000036,
		CostUnit:         "LOCAL",
		Reference:        "ab12",
	})

	text := out.String()
	assert.Contains(t, text, "run-1")
	assert.Contains(t, text, "36000")
	assert.Contains(t, text, "Total cost (LOCAL)")
	assert.Contains(t, text, "0.000036")
	assert.Contains(t, text, "ab12")
}

func TestPrintAbortedResultOmitsCost(t *testing.T) {
	var out bytes.Buffer
	printResult(&out, dtocommon.BatchVerificationResultDto{
		RunId:      "run-2",
		Outcome:    "aborted",
		Message:    "challenge oracle unavailable",
		ReasonCode: reasoncodes.ErrChallengeOracle,
	})

	text := out.String()
	assert.Contains(t, text, string(reasoncodes.ErrChallengeOracle))
	assert.NotContains(t, text, "Units used")
	assert.NotContains(t, text, "Reference")
}
