package batch

import (
	"fmt"
	"math/big"
	"testing"

	"schnorr-batch/src/schnorr"
	"schnorr-batch/src/types/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(i int) domain.ProofEntry {
	return domain.ProofEntry{
		Commitment:   big.NewInt(int64(100 + i)),
		Response:     big.NewInt(int64(200 + i)),
		Generator:    big.NewInt(2),
		Modulus:      big.NewInt(23),
		Challenge:    big.NewInt(int64(300 + i)),
		SubjectID:    fmt.Sprintf("  did:example:%d ", i),
		SecretDigest: schnorr.SHA256([]byte(fmt.Sprint(i))),
	}
}

func TestAssemblerKeepsSequencesAligned(t *testing.T) {
	const n = 7
	a := NewAssembler(n)
	for i := 0; i < n; i++ {
		require.NoError(t, a.Append(entryAt(i)))
	}

	b := a.Freeze()
	require.Equal(t, n, b.Len())

	for _, l := range []int{
		len(b.Commitments), len(b.Responses), len(b.Generators), len(b.Moduli),
		len(b.Challenges), len(b.SubjectIDs), len(b.SecretDigests),
	} {
		assert.Equal(t, n, l)
	}

	for i := 0; i < n; i++ {
		e := b.Entry(i)
		assert.Equal(t, int64(100+i), e.Commitment.Int64())
		assert.Equal(t, int64(200+i), e.Response.Int64())
		assert.Equal(t, int64(300+i), e.Challenge.Int64())
		assert.Equal(t, fmt.Sprintf("did:example:%d", i), e.SubjectID)
		assert.Equal(t, schnorr.SHA256([]byte(fmt.Sprint(i))), e.SecretDigest)
	}
}

func TestAssemblerKeepsDuplicates(t *testing.T) {
	a := NewAssembler(2)
	require.NoError(t, a.Append(entryAt(1)))
	require.NoError(t, a.Append(entryAt(1)))
	assert.Equal(t, 2, a.Len())
}

func TestAssemblerRejectsAppendAfterFreeze(t *testing.T) {
	a := NewAssembler(1)
	require.NoError(t, a.Append(entryAt(0)))
	a.Freeze()

	assert.ErrorIs(t, a.Append(entryAt(1)), ErrBatchFrozen)
	assert.Equal(t, 1, a.Len())
}

func TestFrozenBatchIsACopy(t *testing.T) {
	a := NewAssembler(1)
	entry := entryAt(0)
	require.NoError(t, a.Append(entry))

	b := a.Freeze()
	entry.Commitment.SetInt64(999)
	b.SubjectIDs[0] = "changed"

	again := a.Freeze()
	assert.Equal(t, int64(100), b.Commitments[0].Int64())
	assert.Equal(t, "did:example:0", again.SubjectIDs[0])
}
