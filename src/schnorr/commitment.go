package schnorr

import (
	"encoding/json"
	"errors"
	"io"
	"math/big"
)

var ErrNonceConsumed = errors.New("commitment nonce already used")

// Commitment is the prover's first message. The nonce never leaves this
// type; Respond consumes it.
type Commitment struct {
	nonce *big.Int
	Value *big.Int
}

func Commit(group Group, random io.Reader) (*Commitment, error) {
	nonce, err := group.SampleNonce(random)
	if err != nil {
		return nil, err
	}

	return &Commitment{
		nonce: nonce,
		Value: group.Exp(nonce),
	}, nil
}

// CommitWithNonce builds a commitment from a caller-chosen nonce.
func CommitWithNonce(group Group, nonce *big.Int) (*Commitment, error) {
	if nonce == nil || nonce.Sign() <= 0 || nonce.Cmp(group.Modulus()) >= 0 {
		return nil, ErrNonceOutOfRange
	}

	return &Commitment{
		nonce: new(big.Int).Set(nonce),
		Value: group.Exp(nonce),
	}, nil
}

// Respond computes the response for challenge and zeroes the nonce.
func (c *Commitment) Respond(challenge *big.Int, secret HashedSecret, group Group) (*big.Int, error) {
	if c.nonce == nil {
		return nil, ErrNonceConsumed
	}

	s, err := Response(c.nonce, challenge, secret.Int, group.Modulus())
	if err != nil {
		return nil, err
	}

	c.nonce.SetInt64(0)
	c.nonce = nil

	return s, nil
}

func (c *Commitment) Consumed() bool {
	return c.nonce == nil
}

func (c *Commitment) String() string {
	return c.Value.String()
}

func (c *Commitment) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value.String())
}
