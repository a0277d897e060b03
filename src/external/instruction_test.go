package external

import (
	"encoding/base64"
	"math/big"
	"testing"

	"schnorr-batch/src/schnorr"
	"schnorr-batch/src/types/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBatch() domain.Batch {
	return domain.Batch{
		Commitments:   []*big.Int{big.NewInt(18), big.NewInt(4)},
		Responses:     []*big.Int{big.NewInt(19), big.NewInt(0)},
		Generators:    []*big.Int{big.NewInt(2), big.NewInt(2)},
		Moduli:        []*big.Int{big.NewInt(23), big.NewInt(23)},
		Challenges:    []*big.Int{big.NewInt(5), new(big.Int).Lsh(big.NewInt(1), 255)},
		SubjectIDs:    []string{"did:example:alice", "did:example:bob"},
		SecretDigests: []schnorr.Digest{schnorr.SHA256([]byte("a")), schnorr.SHA256([]byte("b"))},
	}
}

func TestEncodeChallengeInstruction(t *testing.T) {
	data, err := EncodeChallengeInstruction(big.NewInt(18))
	require.NoError(t, err)

	require.Len(t, data, 1+uint256Size)
	assert.Equal(t, tagGetChallenge, data[0])
	assert.Equal(t, byte(18), data[len(data)-1])
	for _, b := range data[1 : len(data)-1] {
		assert.Zero(t, b)
	}
}

func TestEncodeRejectsOutOfRangeValues(t *testing.T) {
	tooWide := new(big.Int).Lsh(big.NewInt(1), 256)

	for _, v := range []*big.Int{nil, big.NewInt(-1), tooWide} {
		_, err := EncodeChallengeInstruction(v)
		assert.ErrorIs(t, err, ErrValueOutOfRange)
	}

	batch := sampleBatch()
	batch.Responses[1] = big.NewInt(-3)
	_, err := EncodeBatchInstruction(batch)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
	assert.Contains(t, err.Error(), "responses")
}

func TestBatchInstructionDecodesToSameBatch(t *testing.T) {
	batch := sampleBatch()

	data, err := EncodeBatchInstruction(batch)
	require.NoError(t, err)
	assert.Equal(t, tagBatchVerify, data[0])

	decoded, err := DecodeBatchInstruction(data)
	require.NoError(t, err)
	require.Equal(t, batch.Len(), decoded.Len())

	for i := 0; i < batch.Len(); i++ {
		want, got := batch.Entry(i), decoded.Entry(i)
		assert.Equal(t, 0, want.Commitment.Cmp(got.Commitment))
		assert.Equal(t, 0, want.Response.Cmp(got.Response))
		assert.Equal(t, 0, want.Generator.Cmp(got.Generator))
		assert.Equal(t, 0, want.Modulus.Cmp(got.Modulus))
		assert.Equal(t, 0, want.Challenge.Cmp(got.Challenge))
		assert.Equal(t, want.SubjectID, got.SubjectID)
		assert.Equal(t, want.SecretDigest, got.SecretDigest)
	}
}

func TestDecodeRejectsOtherInstructions(t *testing.T) {
	data, err := EncodeChallengeInstruction(big.NewInt(18))
	require.NoError(t, err)

	_, err = DecodeBatchInstruction(data)
	assert.Error(t, err)
}

func TestParseReturnData(t *testing.T) {
	const programID = "Verif1er11111111111111111111111111111111111"
	value := []byte{0x01, 0x02, 0x03}

	logs := []string{
		"Program " + programID + " invoke [1]",
		"Program log: Instruction: GetChallenge",
		"Program return: 11111111111111111111111111111111 AAAA",
		"Program return: " + programID + " " + base64.StdEncoding.EncodeToString(value),
		"Program " + programID + " success",
	}

	data, err := ParseReturnData(logs, programID)
	require.NoError(t, err)
	assert.Equal(t, value, data)

	_, err = ParseReturnData(logs[:3], programID)
	assert.ErrorIs(t, err, ErrNoReturnData)

	_, err = ParseReturnData([]string{"Program return: " + programID + " !!!"}, programID)
	assert.Error(t, err)
}
