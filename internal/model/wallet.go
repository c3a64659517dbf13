package model

import "time"

// ImportWalletRequest represents request for POST /wallet/import
type ImportWalletRequest struct {
	Seed       string `json:"seed" validate:"required"`
	Address    string `json:"address" validate:"required,xrpaddress"`
	PublicKey  string `json:"publicKey" validate:"omitempty,hexadecimal"`
	PrivateKey string `json:"privateKey" validate:"omitempty,hexadecimal"`
}

// ReadOnlyWalletRequest represents request for POST /wallet/readonly
type ReadOnlyWalletRequest struct {
	Address   string `json:"address" validate:"required,xrpaddress"`
	PublicKey string `json:"publicKey" validate:"omitempty,hexadecimal"`
}

// WalletResponse represents the stored identity. It never carries secrets.
type WalletResponse struct {
	Address   string     `json:"address"`
	PublicKey string     `json:"publicKey,omitempty"`
	Kind      string     `json:"kind"` // "full" or "readonly"
	ReadOnly  bool       `json:"readOnly"`
	QR        string     `json:"QR"` // base64 PNG of the address
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// NetworkRequest represents request for PUT /network
type NetworkRequest struct {
	Network string `json:"network" validate:"required"`
}

// NetworkResponse represents response for GET|PUT /network
type NetworkResponse struct {
	Network   string   `json:"network"`
	Connected bool     `json:"connected"`
	Networks  []string `json:"networks"`
}
