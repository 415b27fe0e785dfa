// Package wallet simulates a browser wallet provider. It owns a secp256k1
// key only to derive a realistic checksummed address; no transaction is ever
// signed or submitted.
package wallet

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// Config controls how the provider resolves its account.
type Config struct {
	// PrivateKey is a hex-encoded key (with or without 0x prefix). Takes
	// precedence when set.
	PrivateKey string

	// EncryptedKeyPath points to a JSON blob produced by EncryptKey,
	// decrypted with KeyPassword. Used when PrivateKey is empty.
	EncryptedKeyPath string
	KeyPassword      string

	// Approve mirrors the user's response to the connection prompt. When
	// false every RequestAccounts call fails with ErrUserRejected.
	Approve bool
}

// Provider is the eth_requestAccounts analogue.
type Provider struct {
	address common.Address
	approve bool
}

// New resolves the account key per cfg, falling back to a freshly generated
// key so every unconfigured run still gets a plausible address.
func New(cfg Config) (*Provider, error) {
	var (
		hexKey string
		err    error
	)
	switch {
	case cfg.PrivateKey != "":
		hexKey = cfg.PrivateKey
	case cfg.EncryptedKeyPath != "":
		hexKey, err = DecryptKeyFile(cfg.EncryptedKeyPath, cfg.KeyPassword)
		if err != nil {
			return nil, fmt.Errorf("wallet: decrypt key file: %w", err)
		}
	default:
		key, genErr := ethcrypto.GenerateKey()
		if genErr != nil {
			return nil, fmt.Errorf("wallet: generate key: %w", genErr)
		}
		return &Provider{
			address: ethcrypto.PubkeyToAddress(key.PublicKey),
			approve: cfg.Approve,
		}, nil
	}

	key, err := ethcrypto.HexToECDSA(strip0x(hexKey))
	if err != nil {
		return nil, fmt.Errorf("wallet: parse private key: %w", err)
	}
	return &Provider{
		address: ethcrypto.PubkeyToAddress(key.PublicKey),
		approve: cfg.Approve,
	}, nil
}

// NewStatic builds a provider for a known address without any key material.
// Intended for tests and demos.
func NewStatic(address string) (*Provider, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("wallet: %q is not a hex address: %w", address, domain.ErrInvalidArgument)
	}
	return &Provider{
		address: common.HexToAddress(address),
		approve: true,
	}, nil
}

// RequestAccounts returns the approved account's checksummed address, or
// ErrUserRejected when the simulated user declines.
func (p *Provider) RequestAccounts(_ context.Context) (string, error) {
	if !p.approve {
		return "", domain.ErrUserRejected
	}
	return p.address.Hex(), nil
}

func strip0x(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}

var _ domain.WalletProvider = (*Provider)(nil)
