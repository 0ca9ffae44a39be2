// Package verify proves that a named Ethereum address was produced by a
// valid ECDSA signature over a known digest, without trusting anything but
// the caller-supplied public values.
//
// The pipeline has three stages: an encoding adapter that turns the five
// caller-facing hex strings into fixed-width byte values, a recovery engine
// that checks the supplied public key is a real secp256k1 point and that the
// signature verifies over the digest under it, and an equality predicate
// that compares the address derived from that key against the target
// address. Every stage is pure: no I/O, no shared state, no randomness.
//
// The primary types are:
//
//   - RawInputs / Inputs: the hex-string and decoded forms of the five inputs
//   - Engine: one evaluation context for the recover-and-compare pipeline
//   - Outcome: the single tagged result every verification produces
//   - ProofVerifier: the on-chain verifier boundary this package consumes
//
// Two Engine implementations exist. NativeEngine runs on the production
// curve stack (decred secp256k1 plus Ethereum Keccak). ArithmeticEngine
// re-derives the same answer from exact modular big-integer arithmetic with
// a fixed operation sequence, the shape the computation has inside a
// constrained evaluation. CrossCheck runs both and treats any disagreement
// as fatal.
//
// # Failure Model
//
// Verification never panics and never returns partial results. Every
// non-valid input maps to an Outcome tagged with one of four reasons
// (malformed_input, point_not_on_curve, recovery_failed, address_mismatch).
// The tags exist for diagnostics; callers must treat every non-valid
// outcome identically.
//
// Usage
//
//	raw := verify.RawInputs{
//	    PubKeyX:       "0x...", // 32-byte x coordinate
//	    PubKeyY:       "0x...", // 32-byte y coordinate
//	    Signature:     "0x...", // r || s, a trailing recovery byte is stripped
//	    Digest:        "0x...", // 32-byte message digest
//	    TargetAddress: "0x...", // 20-byte address to prove
//	}
//	outcome := verify.VerifyRaw(raw)
//	if outcome.Valid {
//	    fmt.Println("proved:", outcome.Address)
//	}
package verify
