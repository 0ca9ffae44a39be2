package verify

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ProofVerifier is the on-chain verifier boundary. Implementations submit a
// proof and its public inputs to a deployed contract and report whether the
// contract accepted them. This package consumes the interface; it never
// constructs proofs and never talks to a chain itself. The verifier package
// provides the eth_call-backed implementation.
type ProofVerifier interface {
	VerifyProof(ctx context.Context, proof []byte, publicInputs []*big.Int) (bool, error)
}

// PublicInputs builds the public-inputs array a verifier contract expects
// for an address proof: exactly one element, the target address read as an
// unsigned field value. The array carries the address and nothing else; the
// signature and key stay inside the proof.
func PublicInputs(target common.Address) []*big.Int {
	return []*big.Int{new(big.Int).SetBytes(target.Bytes())}
}
