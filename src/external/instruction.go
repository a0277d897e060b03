package external

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"schnorr-batch/src/types/domain"

	"github.com/near/borsh-go"
)

// Instruction tags understood by the verifier program.
const (
	tagGetChallenge uint8 = iota
	tagBatchVerify
)

const uint256Size = 32

var (
	ErrValueOutOfRange = errors.New("value does not fit in an unsigned 256-bit integer")
	ErrNoReturnData    = errors.New("program produced no return data")
	ErrUnknownTag      = errors.New("unknown instruction tag")
)

type uint256 [uint256Size]byte

type challengeInstruction struct {
	Tag        uint8
	Commitment uint256
}

type batchVerifyInstruction struct {
	Tag           uint8
	Commitments   []uint256
	Responses     []uint256
	Generators    []uint256
	Moduli        []uint256
	Challenges    []uint256
	SubjectIDs    []string
	SecretDigests [][32]byte
}

// toUint256 writes v big-endian into a 32-byte word.
func toUint256(v *big.Int) (uint256, error) {
	var word uint256
	if v == nil || v.Sign() < 0 || v.BitLen() > uint256Size*8 {
		return word, fmt.Errorf("%w: %v", ErrValueOutOfRange, v)
	}
	v.FillBytes(word[:])
	return word, nil
}

func (w uint256) Int() *big.Int {
	return new(big.Int).SetBytes(w[:])
}

func toUint256s(values []*big.Int) ([]uint256, error) {
	words := make([]uint256, len(values))
	for i, v := range values {
		word, err := toUint256(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		words[i] = word
	}
	return words, nil
}

func fromUint256s(words []uint256) []*big.Int {
	values := make([]*big.Int, len(words))
	for i, w := range words {
		values[i] = w.Int()
	}
	return values
}

func EncodeChallengeInstruction(commitment *big.Int) ([]byte, error) {
	word, err := toUint256(commitment)
	if err != nil {
		return nil, fmt.Errorf("commitment: %w", err)
	}

	return borsh.Serialize(challengeInstruction{
		Tag:        tagGetChallenge,
		Commitment: word,
	})
}

// EncodeBatchInstruction lays the batch out as the verifier's seven argument
// arrays.
func EncodeBatchInstruction(batch domain.Batch) ([]byte, error) {
	instruction := batchVerifyInstruction{
		Tag:           tagBatchVerify,
		SubjectIDs:    batch.SubjectIDs,
		SecretDigests: make([][32]byte, len(batch.SecretDigests)),
	}

	fields := []struct {
		name   string
		values []*big.Int
		dst    *[]uint256
	}{
		{"commitments", batch.Commitments, &instruction.Commitments},
		{"responses", batch.Responses, &instruction.Responses},
		{"generators", batch.Generators, &instruction.Generators},
		{"moduli", batch.Moduli, &instruction.Moduli},
		{"challenges", batch.Challenges, &instruction.Challenges},
	}
	for _, f := range fields {
		words, err := toUint256s(f.values)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = words
	}

	for i, d := range batch.SecretDigests {
		instruction.SecretDigests[i] = d
	}

	return borsh.Serialize(instruction)
}

func DecodeBatchInstruction(data []byte) (domain.Batch, error) {
	var instruction batchVerifyInstruction
	if err := borsh.Deserialize(&instruction, data); err != nil {
		return domain.Batch{}, fmt.Errorf("decode batch instruction: %w", err)
	}
	if instruction.Tag != tagBatchVerify {
		return domain.Batch{}, fmt.Errorf("%w: %d", ErrUnknownTag, instruction.Tag)
	}

	batch := domain.Batch{
		Commitments: fromUint256s(instruction.Commitments),
		Responses:   fromUint256s(instruction.Responses),
		Generators:  fromUint256s(instruction.Generators),
		Moduli:      fromUint256s(instruction.Moduli),
		Challenges:  fromUint256s(instruction.Challenges),
		SubjectIDs:  instruction.SubjectIDs,
	}
	for _, d := range instruction.SecretDigests {
		batch.SecretDigests = append(batch.SecretDigests, d)
	}

	return batch, nil
}

// ParseReturnData extracts the value a program set with set_return_data from
// simulation logs ("Program return: <program id> <base64>").
func ParseReturnData(logs []string, programID string) ([]byte, error) {
	prefix := "Program return: " + programID + " "

	for i := len(logs) - 1; i >= 0; i-- {
		line := logs[i]
		if !strings.HasPrefix(line, prefix) {
			continue
		}

		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
		if err != nil {
			return nil, fmt.Errorf("decode return data: %w", err)
		}
		return data, nil
	}

	return nil, ErrNoReturnData
}
