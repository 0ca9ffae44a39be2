package verify

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrMalformedInput is wrapped by every error the encoding adapter returns.
// Callers branch with errors.Is; the message names the offending field.
var ErrMalformedInput = errors.New("malformed input")

// RawInputs carries the five caller-facing values as hex strings, each with
// an optional 0x prefix. The signature may carry a trailing recovery byte
// (65 bytes total); it is stripped during decoding and never interpreted.
// The target address additionally accepts an unprefixed base-10 integer
// below 2^160; a string of exactly 40 hex digits is always read as hex.
type RawInputs struct {
	PubKeyX       string `json:"pub_key_x"`
	PubKeyY       string `json:"pub_key_y"`
	Signature     string `json:"signature"`
	Digest        string `json:"digest"`
	TargetAddress string `json:"target_address"`
}

// Inputs is the decoded, fixed-width form of RawInputs. Fields are plain
// byte values; nothing is interpreted numerically until an engine runs.
type Inputs struct {
	PubKeyX       [32]byte
	PubKeyY       [32]byte
	Signature     [64]byte // r || s, recovery byte already stripped
	Digest        [32]byte
	TargetAddress common.Address
}

// ParseInputs decodes the five raw strings into their fixed-width form.
// It fails on the first field that does not decode; every error wraps
// ErrMalformedInput. Decoding is pure: identical inputs yield identical
// results and no state survives the call.
func ParseInputs(raw RawInputs) (Inputs, error) {
	var in Inputs
	if err := decodeFixed("public key x", raw.PubKeyX, in.PubKeyX[:]); err != nil {
		return Inputs{}, err
	}
	if err := decodeFixed("public key y", raw.PubKeyY, in.PubKeyY[:]); err != nil {
		return Inputs{}, err
	}
	if err := decodeSignature(raw.Signature, in.Signature[:]); err != nil {
		return Inputs{}, err
	}
	if err := decodeFixed("digest", raw.Digest, in.Digest[:]); err != nil {
		return Inputs{}, err
	}
	target, err := decodeTargetAddress(raw.TargetAddress)
	if err != nil {
		return Inputs{}, err
	}
	in.TargetAddress = target
	return in, nil
}

// trimHexPrefix drops one optional 0x or 0X prefix.
func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// decodeFixed decodes s into dst, requiring exactly len(dst) bytes of hex.
func decodeFixed(field, s string, dst []byte) error {
	h := trimHexPrefix(s)
	if len(h) != 2*len(dst) {
		return fmt.Errorf("%w: %s must be %d hex digits, got %d", ErrMalformedInput, field, 2*len(dst), len(h))
	}
	if _, err := hex.Decode(dst, []byte(h)); err != nil {
		return fmt.Errorf("%w: %s is not valid hex", ErrMalformedInput, field)
	}
	return nil
}

// decodeSignature decodes the r||s pair. A 65-byte encoding (130 hex digits)
// has its final recovery byte stripped first; whatever remains must be
// exactly 64 bytes.
func decodeSignature(s string, dst []byte) error {
	h := trimHexPrefix(s)
	digits := len(h)
	if digits == 130 {
		h = h[:128]
	}
	if len(h) != 128 {
		return fmt.Errorf("%w: signature must be 128 or 130 hex digits, got %d", ErrMalformedInput, digits)
	}
	if _, err := hex.Decode(dst, []byte(h)); err != nil {
		return fmt.Errorf("%w: signature is not valid hex", ErrMalformedInput)
	}
	return nil
}

// decodeTargetAddress accepts the 20-byte address either as 40 hex digits
// (optionally 0x-prefixed) or as an unprefixed base-10 integer.
func decodeTargetAddress(s string) (common.Address, error) {
	var addr common.Address
	h := trimHexPrefix(s)
	if len(h) == 40 {
		if _, err := hex.Decode(addr[:], []byte(h)); err == nil {
			return addr, nil
		}
	}
	if h == s && isDecimal(s) {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok || v.BitLen() > 8*common.AddressLength {
			return common.Address{}, fmt.Errorf("%w: target address field value exceeds 160 bits", ErrMalformedInput)
		}
		v.FillBytes(addr[:])
		return addr, nil
	}
	return common.Address{}, fmt.Errorf("%w: target address must be 40 hex digits or a base-10 field value", ErrMalformedInput)
}

func isDecimal(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
