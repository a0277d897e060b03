// Package schnorr implements the prover side of a three-move Schnorr
// identification protocol over an abstract group: secret hashing,
// commitments, and responses.
//
// The default ToyGroup (g=2, p=23) matches the deployed verifier contract and
// offers no real security. FieldGroup runs the same protocol in the BN254
// scalar field.
package schnorr
