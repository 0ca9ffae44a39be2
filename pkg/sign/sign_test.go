package sign

import (
	"encoding/json"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofgate/addrproof/pkg/verify"
)

const testKeyHex = "0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef"
const testKeyAddress = "0x1Be31A94361a391bBaFB2a4CCd704F57dc04d4bb"

func TestSignature(t *testing.T) {
	t.Run("RS extraction", func(t *testing.T) {
		tests := []struct {
			name    string
			sig     Signature
			wantErr bool
		}{
			{"r||s pair (64 bytes)", make(Signature, 64), false},
			{"r||s||v form (65 bytes)", make(Signature, 65), false},
			{"short signature", make(Signature, 32), true},
			{"empty signature", Signature{}, true},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := test.sig.RS()
				if test.wantErr {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("RS drops the recovery byte only", func(t *testing.T) {
		sig := make(Signature, 65)
		for i := range sig {
			sig[i] = byte(i)
		}
		rs, err := sig.RS()
		require.NoError(t, err)
		assert.Equal(t, []byte(sig[:64]), rs[:])
	})

	t.Run("JSON marshaling", func(t *testing.T) {
		sig := Signature{0x01, 0x02, 0x03}

		jsonData, err := json.Marshal(sig)
		require.NoError(t, err)
		assert.Equal(t, `"0x010203"`, string(jsonData))

		var unmarshaled Signature
		err = json.Unmarshal(jsonData, &unmarshaled)
		require.NoError(t, err)
		assert.Equal(t, sig, unmarshaled)
	})

	t.Run("JSON unmarshaling errors", func(t *testing.T) {
		tests := []struct {
			name     string
			jsonData string
		}{
			{"Invalid JSON", `{invalid}`},
			{"Invalid hex", `"0xinvalidhex"`},
			{"Non-string", `123`},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				var sig Signature
				err := json.Unmarshal([]byte(test.jsonData), &sig)
				assert.Error(t, err)
			})
		}
	})

	t.Run("String representation", func(t *testing.T) {
		sig := Signature{0x01, 0x23, 0x45}
		assert.Equal(t, "0x012345", sig.String())
	})
}

func TestEthereumSigner(t *testing.T) {
	t.Run("known key derives known address", func(t *testing.T) {
		signer, err := NewEthereumSigner(testKeyHex)
		require.NoError(t, err)
		assert.Equal(t, testKeyAddress, signer.PublicKey().Address().Hex())
	})

	t.Run("invalid key hex is rejected", func(t *testing.T) {
		_, err := NewEthereumSigner("0xzznotakey")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not parse ethereum private key")
	})

	t.Run("signatures carry an adjusted recovery byte", func(t *testing.T) {
		signer, err := NewEthereumSigner(testKeyHex)
		require.NoError(t, err)

		digest := ethcrypto.Keccak256Hash([]byte("recovery byte"))
		sig, err := signer.Sign(digest)
		require.NoError(t, err)
		require.Len(t, []byte(sig), 65)
		assert.Contains(t, []byte{27, 28}, sig[64])
	})

	t.Run("coordinates match the uncompressed encoding", func(t *testing.T) {
		signer, err := NewRandomSigner()
		require.NoError(t, err)

		pub := signer.PublicKey()
		x, y := pub.Coordinates()
		raw := pub.Bytes()
		require.Len(t, raw, 65)
		assert.Equal(t, raw[1:33], x[:])
		assert.Equal(t, raw[33:65], y[:])
	})

	t.Run("public key round-trips through bytes", func(t *testing.T) {
		signer, err := NewRandomSigner()
		require.NoError(t, err)

		restored, err := NewEthereumPublicKeyFromBytes(signer.PublicKey().Bytes())
		require.NoError(t, err)
		assert.Equal(t, signer.PublicKey().Address(), restored.Address())
	})
}

func TestAttest(t *testing.T) {
	t.Run("attested tuple verifies as valid", func(t *testing.T) {
		signer, err := NewRandomSigner()
		require.NoError(t, err)

		digest := ethcrypto.Keccak256Hash([]byte("attested tuple"))
		raw, err := Attest(signer, digest)
		require.NoError(t, err)

		outcome := verify.VerifyRaw(raw)
		require.True(t, outcome.Valid, "outcome: %s", outcome)
		assert.Equal(t, signer.PublicKey().Address(), outcome.Address)
	})

	t.Run("both evaluation contexts accept the tuple", func(t *testing.T) {
		signer, err := NewRandomSigner()
		require.NoError(t, err)

		raw, err := Attest(signer, ethcrypto.Keccak256Hash([]byte("context agreement")))
		require.NoError(t, err)

		in, err := verify.ParseInputs(raw)
		require.NoError(t, err)

		outcome, err := verify.CrossCheck(in)
		require.NoError(t, err)
		assert.True(t, outcome.Valid)
		assert.Equal(t, signer.PublicKey().Address(), outcome.Address)
	})

	t.Run("tuple claims the signer's own address", func(t *testing.T) {
		signer, err := NewEthereumSigner(testKeyHex)
		require.NoError(t, err)

		raw, err := Attest(signer, ethcrypto.Keccak256Hash([]byte("claimed address")))
		require.NoError(t, err)
		assert.Equal(t, testKeyAddress, raw.TargetAddress)
	})

	t.Run("foreign digest does not verify", func(t *testing.T) {
		signer, err := NewRandomSigner()
		require.NoError(t, err)

		raw, err := Attest(signer, ethcrypto.Keccak256Hash([]byte("signed digest")))
		require.NoError(t, err)
		raw.Digest = ethcrypto.Keccak256Hash([]byte("other digest")).Hex()

		outcome := verify.VerifyRaw(raw)
		assert.False(t, outcome.Valid)
	})
}
