package verify

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decred_ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// NativeEngine is the production evaluation context. Curve and scalar math
// come from the decred secp256k1 implementation and the address derivation
// from go-ethereum, the same composition go-ethereum builds its own
// signature backend on.
type NativeEngine struct{}

// NewNativeEngine creates the native evaluation context.
func NewNativeEngine() *NativeEngine {
	return &NativeEngine{}
}

// Name implements the Engine interface.
func (*NativeEngine) Name() string { return "native" }

// Verify implements the Engine interface. The stage order is fixed: point
// precondition, scalar range preconditions, the verification equation, then
// the address comparison. The first failing stage tags the outcome and
// nothing after it runs.
func (*NativeEngine) Verify(in Inputs) Outcome {
	pub, err := parsePubKey(in)
	if err != nil {
		return invalidOutcome(ReasonPointNotOnCurve)
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(in.Signature[:32]); overflow || r.IsZero() {
		return invalidOutcome(ReasonMalformedInput)
	}
	if overflow := s.SetByteSlice(in.Signature[32:]); overflow || s.IsZero() {
		return invalidOutcome(ReasonMalformedInput)
	}

	if !decred_ecdsa.NewSignature(&r, &s).Verify(in.Digest[:], pub) {
		return invalidOutcome(ReasonRecoveryFailed)
	}

	derived := ethcrypto.PubkeyToAddress(*pub.ToECDSA())
	if derived != in.TargetAddress {
		return invalidOutcome(ReasonAddressMismatch)
	}
	return validOutcome(derived)
}

// parsePubKey reassembles the coordinates into the uncompressed encoding and
// lets the curve library reject anything that is not a point on secp256k1,
// including coordinates at or above the field modulus.
func parsePubKey(in Inputs) (*secp256k1.PublicKey, error) {
	var encoded [65]byte
	encoded[0] = 4 // uncompressed form marker
	copy(encoded[1:33], in.PubKeyX[:])
	copy(encoded[33:], in.PubKeyY[:])
	return secp256k1.ParsePubKey(encoded[:])
}
