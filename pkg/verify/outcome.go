package verify

import (
	"github.com/ethereum/go-ethereum/common"
)

// Reason classifies why a verification did not produce a valid outcome.
type Reason string

const (
	// ReasonMalformedInput covers structural failures: bad hex, wrong
	// lengths, or signature scalars outside [1, n-1].
	ReasonMalformedInput Reason = "malformed_input"
	// ReasonPointNotOnCurve marks a public key whose coordinates do not
	// name a point on secp256k1, including coordinates at or above the
	// field modulus and the point at infinity.
	ReasonPointNotOnCurve Reason = "point_not_on_curve"
	// ReasonRecoveryFailed marks a well-formed tuple whose signature does
	// not verify over the digest under the supplied public key.
	ReasonRecoveryFailed Reason = "recovery_failed"
	// ReasonAddressMismatch marks a verified signature whose derived
	// address differs from the target address.
	ReasonAddressMismatch Reason = "address_mismatch"
)

// Outcome is the single result type of the verification pipeline.
// Exactly one of the two shapes occurs: Valid with the derived address set,
// or invalid with a Reason and the zero address. Outcomes are comparable,
// so two evaluation contexts agree exactly when their Outcomes are equal.
type Outcome struct {
	Valid   bool           `json:"valid"`
	Reason  Reason         `json:"reason,omitempty"`
	Address common.Address `json:"address"`
}

// String implements fmt.Stringer for log lines and divergence reports.
func (o Outcome) String() string {
	if o.Valid {
		return "valid " + o.Address.Hex()
	}
	return "invalid " + string(o.Reason)
}

func validOutcome(addr common.Address) Outcome {
	return Outcome{Valid: true, Address: addr}
}

func invalidOutcome(reason Reason) Outcome {
	return Outcome{Reason: reason}
}
