package verifier

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/proofgate/addrproof/pkg/verify"
)

// VerifyProofMethod is the signature of the verifier contract entrypoint:
// an opaque proof blob and the public-inputs array.
const VerifyProofMethod = "verifyProof(bytes,uint256[])"

// ContractCaller is the read-only chain access the verifier needs. An
// *ethclient.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Verifier submits proofs to a deployed verifier contract through eth_call.
// It implements verify.ProofVerifier, so the verification side can consume a
// live contract the same way it consumes any other collaborator.
type Verifier struct {
	address common.Address
	caller  ContractCaller
}

var _ verify.ProofVerifier = (*Verifier)(nil)

// NewVerifier binds a verifier at the given contract address.
func NewVerifier(address common.Address, caller ContractCaller) *Verifier {
	return &Verifier{address: address, caller: caller}
}

// Address returns the bound contract address.
func (v *Verifier) Address() common.Address { return v.address }

// VerifyProof calls verifyProof on the bound contract at the latest block and
// decodes the contract's boolean verdict.
func (v *Verifier) VerifyProof(ctx context.Context, proof []byte, publicInputs []*big.Int) (bool, error) {
	calldata, err := PackVerifyProofCall(proof, publicInputs)
	if err != nil {
		return false, err
	}

	to := v.address
	res, err := v.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: calldata}, nil)
	if err != nil {
		return false, fmt.Errorf("verifier call failed: %w", err)
	}
	if len(res) == 0 {
		return false, fmt.Errorf("verifier at %s returned no data", v.address.Hex())
	}

	boolT, _ := abi.NewType("bool", "", nil)
	values, err := abi.Arguments{{Type: boolT}}.Unpack(res)
	if err != nil {
		return false, fmt.Errorf("failed to decode verifier result: %w", err)
	}
	accepted, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("verifier result is not a boolean")
	}
	return accepted, nil
}

// PackVerifyProofCall ABI-encodes the full calldata for a VerifyProofMethod
// call: the 4-byte selector followed by the packed (bytes, uint256[])
// arguments, in the same layout Solidity expects.
func PackVerifyProofCall(proof []byte, publicInputs []*big.Int) ([]byte, error) {
	proofT, _ := abi.NewType("bytes", "", nil)
	inputsT, _ := abi.NewType("uint256[]", "", nil)
	arguments := abi.Arguments{
		{
			Type: proofT,
		},
		{
			Type: inputsT,
		},
	}

	encoded, err := arguments.Pack(proof, publicInputs)
	if err != nil {
		return nil, fmt.Errorf("failed to pack verifier calldata: %w", err)
	}

	selector := crypto.Keccak256([]byte(VerifyProofMethod))[:4]
	return append(selector, encoded...), nil
}

// ProofID returns the keccak256 hash of the ABI-encoded proof and public
// inputs. Two submissions carry the same ID exactly when both the blob and
// the claimed inputs match, which makes it a stable key for logs and caches.
func ProofID(proof []byte, publicInputs []*big.Int) (common.Hash, error) {
	proofT, _ := abi.NewType("bytes", "", nil)
	inputsT, _ := abi.NewType("uint256[]", "", nil)
	arguments := abi.Arguments{
		{
			Type: proofT,
		},
		{
			Type: inputsT,
		},
	}

	encoded, err := arguments.Pack(proof, publicInputs)
	if err != nil {
		return [32]byte{}, err
	}

	// Hash the encoded bytes with Keccak-256
	return crypto.Keccak256Hash(encoded), nil
}
