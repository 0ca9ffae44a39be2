package sign

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Ensure our types implement the interfaces at compile time.
var _ Signer = (*EthereumSigner)(nil)
var _ PublicKey = (*EthereumPublicKey)(nil)

// EthereumPublicKey implements the PublicKey interface for secp256k1 keys.
type EthereumPublicKey struct{ *ecdsa.PublicKey }

// NewEthereumPublicKey creates a new Ethereum public key from an ECDSA public key.
func NewEthereumPublicKey(pub *ecdsa.PublicKey) EthereumPublicKey {
	return EthereumPublicKey{pub}
}

// NewEthereumPublicKeyFromBytes creates a new Ethereum public key from the
// 65-byte uncompressed encoding.
func NewEthereumPublicKeyFromBytes(pubBytes []byte) (EthereumPublicKey, error) {
	pub, err := ethcrypto.UnmarshalPubkey(pubBytes)
	if err != nil {
		return EthereumPublicKey{}, fmt.Errorf("failed to unmarshal public key: %w", err)
	}
	return EthereumPublicKey{pub}, nil
}

// Address derives the account address: Keccak-256 of the affine coordinates,
// truncated to the low 20 bytes.
func (p EthereumPublicKey) Address() common.Address {
	return ethcrypto.PubkeyToAddress(*p.PublicKey)
}

// Coordinates returns the affine x and y values left-padded to 32 bytes each.
func (p EthereumPublicKey) Coordinates() (x, y [32]byte) {
	p.X.FillBytes(x[:])
	p.Y.FillBytes(y[:])
	return x, y
}

// Bytes returns the 65-byte uncompressed SEC1 encoding (0x04 || x || y).
func (p EthereumPublicKey) Bytes() []byte { return ethcrypto.FromECDSAPub(p.PublicKey) }

// EthereumSigner is the secp256k1 implementation of the Signer interface.
type EthereumSigner struct {
	privateKey *ecdsa.PrivateKey
	publicKey  EthereumPublicKey
}

// NewEthereumSigner creates a new Ethereum signer from a hex-encoded private key.
func NewEthereumSigner(privateKeyHex string) (Signer, error) {
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")
	key, err := ethcrypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("could not parse ethereum private key: %w", err)
	}
	return &EthereumSigner{
		privateKey: key,
		publicKey:  EthereumPublicKey{key.Public().(*ecdsa.PublicKey)},
	}, nil
}

// NewRandomSigner creates an Ethereum signer around a freshly generated key.
// The key lives only in memory; nothing is persisted.
func NewRandomSigner() (Signer, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	return &EthereumSigner{
		privateKey: key,
		publicKey:  EthereumPublicKey{key.Public().(*ecdsa.PublicKey)},
	}, nil
}

func (s *EthereumSigner) PublicKey() PublicKey { return s.publicKey }

// Sign produces the 65-byte r||s||v signature over the digest.
func (s *EthereumSigner) Sign(digest [32]byte) (Signature, error) {
	sig, err := ethcrypto.Sign(digest[:], s.privateKey)
	if err != nil {
		return nil, err
	}
	// Adjust V from 0/1 to 27/28 for Ethereum compatibility.
	if sig[64] < 27 {
		sig[64] += 27
	}
	return Signature(sig), nil
}
