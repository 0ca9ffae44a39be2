// Package sign produces the signed tuples the verification pipeline consumes.
//
// A Signer wraps a secp256k1 private key and signs 32-byte digests; Attest
// assembles the full five-field claim (public key coordinates, signature,
// digest, and the signer's own address) in the raw hex form accepted by
// pkg/verify. Tests and corpus tooling use it to mint valid inputs without
// touching key material by hand.
//
// The primary types are:
//
//   - Signer: signs digests and exposes its public key
//   - PublicKey: address, affine coordinates, and raw encoding of a key
//   - Signature: 64- or 65-byte ECDSA signature bytes
//
// # Security Design
//
// Private key material never crosses an interface boundary: Signer exposes
// only signing and public key access, and NewRandomSigner keys exist only in
// memory. The verification side of the system (pkg/verify) takes public data
// exclusively and never sees this package's key handling.
//
// Usage
//
//	// Create a new Ethereum signer from a hex-encoded private key
//	signer, err := sign.NewEthereumSigner(privateKeyHex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Attest to the signer's address over a digest
//	digest := ethcrypto.Keccak256Hash([]byte("hello world"))
//	raw, err := sign.Attest(signer, digest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// The tuple verifies as valid
//	outcome := verify.VerifyRaw(raw)
//	fmt.Println(outcome.Valid)
package sign
