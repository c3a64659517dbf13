package vault

import (
	"github.com/zarlcorp/core/pkg/zcrypto"

	"github.com/AlexZinkM/xrpl-wallet/internal/common"
)

// Kind tags the stored credential variant.
type Kind string

const (
	KindFull     Kind = "full"
	KindReadOnly Kind = "readonly"
)

const redacted = "[REDACTED]"

// Secret is key material. It never prints or marshals its contents.
type Secret []byte

func (s Secret) String() string   { return redacted }
func (s Secret) GoString() string { return redacted }

// MarshalJSON always yields the redaction marker.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// Account is the public part of any credential.
type Account struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey,omitempty"`
}

// Credential is either a FullCredential or a ReadOnlyCredential. The set of
// implementations is closed; signing code must ask for FullCredential
// explicitly (see Vault.LoadSigner).
type Credential interface {
	Account() Account
	Kind() Kind
	isCredential()
}

// FullCredential can sign.
type FullCredential struct {
	Address    string
	PublicKey  string
	Seed       Secret
	PrivateKey Secret
}

func (c FullCredential) Account() Account {
	return Account{Address: c.Address, PublicKey: c.PublicKey}
}

func (c FullCredential) Kind() Kind { return KindFull }

func (FullCredential) isCredential() {}

// Wipe zeroes the secret bytes in place.
func (c FullCredential) Wipe() {
	zcrypto.Erase(c.Seed)
	zcrypto.Erase(c.PrivateKey)
}

// ReadOnlyCredential observes an account. It carries no secret fields.
type ReadOnlyCredential struct {
	Address   string
	PublicKey string
}

func (c ReadOnlyCredential) Account() Account {
	return Account{Address: c.Address, PublicKey: c.PublicKey}
}

func (c ReadOnlyCredential) Kind() Kind { return KindReadOnly }

func (ReadOnlyCredential) isCredential() {}

func validate(c Credential) error {
	switch v := c.(type) {
	case FullCredential:
		if !common.IsClassicAddress(v.Address) {
			return invalid("address %q is not a classic address", v.Address)
		}
		if len(v.Seed) == 0 {
			return invalid("full credential requires a seed")
		}
	case ReadOnlyCredential:
		if !common.IsClassicAddress(v.Address) {
			return invalid("address %q is not a classic address", v.Address)
		}
	default:
		return invalid("unsupported credential %T", c)
	}
	return nil
}
