package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer holds a secp256k1 key and signs EIP-191 personal messages,
// the same format browser wallets produce via personal_sign.
type Signer struct {
	key *ecdsa.PrivateKey
}

// NewSignerFromHex parses a hex-encoded private key (with or without 0x).
func NewSignerFromHex(keyHex string) (*Signer, error) {
	keyHex = strings.TrimPrefix(strings.TrimSpace(keyHex), "0x")
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &Signer{key: key}, nil
}

// GenerateSigner creates a signer with a fresh random key.
func GenerateSigner() (*Signer, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &Signer{key: key}, nil
}

// Address returns the signer's account address.
func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// AddressHex returns the EIP-55 checksummed address string.
func (s *Signer) AddressHex() string {
	return s.Address().Hex()
}

// PrivateKey exposes the underlying key for transaction signing.
func (s *Signer) PrivateKey() *ecdsa.PrivateKey {
	return s.key
}

// SignPersonal signs a message in EIP-191 personal_sign format and
// returns the 65-byte R|S|V signature as 0x-prefixed hex with V in 27/28.
func (s *Signer) SignPersonal(message string) (string, error) {
	hash := accounts.TextHash([]byte(message))
	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	// Wallets report V as 27/28 rather than the raw recovery id
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// VerifyPersonal verifies an EIP-191 personal_sign signature against an address.
func VerifyPersonal(address, message, signature string) (bool, error) {
	normalizedAddr, err := NormalizeAddress(address)
	if err != nil {
		return false, fmt.Errorf("invalid address format: %w", err)
	}

	sig, err := hexutil.Decode(strings.TrimSpace(signature))
	if err != nil {
		return false, fmt.Errorf("invalid signature format: %w", err)
	}
	if len(sig) != 65 {
		return false, fmt.Errorf("signature must be 65 bytes, got %d", len(sig))
	}

	// Transform V from 27/28 to 0/1 if needed
	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return false, fmt.Errorf("invalid recovery id: %d", sig[64])
	}
	recSig := make([]byte, 65)
	copy(recSig, sig[:64])
	recSig[64] = v

	hash := accounts.TextHash([]byte(message))
	pubKey, err := crypto.SigToPub(hash, recSig)
	if err != nil {
		return false, fmt.Errorf("failed to recover public key: %w", err)
	}
	recovered := crypto.PubkeyToAddress(*pubKey).Hex()

	return strings.EqualFold(recovered, normalizedAddr), nil
}

// NormalizeAddress converts an Ethereum address to EIP-55 checksum format.
func NormalizeAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("ethereum address must be 40 hex characters")
	}
	return common.HexToAddress(address).Hex(), nil
}
