package domain

import "math/big"

// Receipt is what the verifier reports once a batch submission is final.
type Receipt struct {
	Accepted  bool
	UnitsUsed uint64
	// Reference identifies the submission on the ledger, e.g. a signature.
	Reference string
}

// UnitPrice is the price of one execution unit in the ledger's smallest
// denomination. Decimals converts it to Symbol for display.
type UnitPrice struct {
	PerUnit  *big.Int
	Decimals uint8
	Symbol   string
}
