// Package xrpl is the wallet facade used by the HTTP handlers: it ties the
// credential vault, the ledger client and metadata resolution together.
package xrpl

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/xrpl-wallet/internal/model"
	"github.com/AlexZinkM/xrpl-wallet/internal/vault"
)

// ImportWallet stores a full credential, replacing any stored identity.
func ImportWallet(v *vault.Vault, c vault.FullCredential) (*model.WalletResponse, error) {
	if err := v.Store(c); err != nil {
		return nil, fmt.Errorf("failed to import wallet: %w", err)
	}
	return Describe(v)
}

// AddReadOnlyWallet stores an address to observe, replacing any stored identity.
func AddReadOnlyWallet(v *vault.Vault, address, publicKey string) (*model.WalletResponse, error) {
	c := vault.ReadOnlyCredential{Address: address, PublicKey: publicKey}
	if err := v.Store(c); err != nil {
		return nil, fmt.Errorf("failed to add read-only wallet: %w", err)
	}
	return Describe(v)
}

// Logout removes the stored identity.
func Logout(v *vault.Vault) error {
	return v.Clear()
}

// Describe returns the stored identity with a receive QR code. It fails
// with vault.ErrNoWallet when nothing readable is stored.
func Describe(v *vault.Vault) (*model.WalletResponse, error) {
	s, ok := v.Summary()
	if !ok {
		return nil, vault.ErrNoWallet
	}

	qrCode, err := generateQRCode(s.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	resp := &model.WalletResponse{
		Address:   s.Address,
		PublicKey: s.PublicKey,
		Kind:      string(s.Kind),
		ReadOnly:  s.Kind == vault.KindReadOnly,
		QR:        qrCode,
	}
	if !s.CreatedAt.IsZero() {
		createdAt := s.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
