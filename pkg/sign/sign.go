package sign

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/proofgate/addrproof/pkg/verify"
)

// Signer produces ECDSA signatures over 32-byte digests.
type Signer interface {
	PublicKey() PublicKey                    // Public key associated with this signer.
	Sign(digest [32]byte) (Signature, error) // Sign generates a signature for the given digest.
}

// PublicKey exposes the three views of a signing key the verification
// pipeline consumes: the derived address, the affine coordinates, and the
// raw uncompressed encoding.
type PublicKey interface {
	Address() common.Address
	Coordinates() (x, y [32]byte)
	Bytes() []byte
}

// Signature is a byte slice holding an ECDSA signature: either the 64-byte
// r||s pair or the 65-byte r||s||v form with a trailing recovery byte.
type Signature []byte

// RS returns the fixed-width r||s pair, dropping the recovery byte when one
// is present.
func (s Signature) RS() ([64]byte, error) {
	var rs [64]byte
	switch len(s) {
	case 64, 65:
		copy(rs[:], s[:64])
		return rs, nil
	default:
		return rs, fmt.Errorf("signature must hold 64 or 65 bytes, got %d", len(s))
	}
}

// MarshalJSON implements the json.Marshaler interface, encoding the signature as a hex string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := hexutil.Decode(hexStr)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// String implements the fmt.Stringer interface
func (s Signature) String() string {
	return hexutil.Encode(s)
}

// Attest signs the digest and assembles the five-field tuple that claims the
// signer's own address. The result feeds verify.ParseInputs unchanged and
// verifies as valid under any evaluation context.
func Attest(signer Signer, digest [32]byte) (verify.RawInputs, error) {
	sig, err := signer.Sign(digest)
	if err != nil {
		return verify.RawInputs{}, fmt.Errorf("failed to sign digest: %w", err)
	}
	x, y := signer.PublicKey().Coordinates()
	return verify.RawInputs{
		PubKeyX:       hexutil.Encode(x[:]),
		PubKeyY:       hexutil.Encode(y[:]),
		Signature:     sig.String(),
		Digest:        hexutil.Encode(digest[:]),
		TargetAddress: signer.PublicKey().Address().Hex(),
	}, nil
}
