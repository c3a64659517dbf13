package vault

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gowebpki/jcs"

	"github.com/AlexZinkM/xrpl-wallet/internal/common"
	"github.com/AlexZinkM/xrpl-wallet/internal/crypto"
)

const envelopeVersion = 2

// envelope is the slot format. Only the sealed blob holds secrets; the rest
// is readable without the password.
type envelope struct {
	Version   int            `json:"version"`
	Kind      Kind           `json:"kind"`
	Address   string         `json:"address"`
	PublicKey string         `json:"publicKey,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Sealed    *crypto.Sealed `json:"sealed,omitempty"`
}

// header is the part of the envelope bound to the ciphertext.
type header struct {
	Version   int    `json:"version"`
	Kind      Kind   `json:"kind"`
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

type secrets struct {
	Seed       []byte `json:"seed"`
	PrivateKey []byte `json:"privateKey,omitempty"`
}

// legacyRecord is the unencrypted base64(JSON) slot written by older releases.
type legacyRecord struct {
	Seed       string `json:"seed"`
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// additionalData is the canonical (RFC 8785) JSON of the envelope header.
func (e *envelope) additionalData() ([]byte, error) {
	raw, err := json.Marshal(header{
		Version:   e.Version,
		Kind:      e.Kind,
		Address:   e.Address,
		PublicKey: e.PublicKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal header: %w", err)
	}
	return jcs.Transform(raw)
}

func seal(c Credential, password []byte, params crypto.KDFParams, now time.Time) (*envelope, error) {
	acc := c.Account()
	env := &envelope{
		Version:   envelopeVersion,
		Kind:      c.Kind(),
		Address:   acc.Address,
		PublicKey: acc.PublicKey,
		CreatedAt: now.UTC(),
	}

	full, ok := c.(FullCredential)
	if !ok {
		return env, nil
	}
	if len(password) == 0 {
		return nil, invalid("full credential needs a vault password")
	}

	aad, err := env.additionalData()
	if err != nil {
		return nil, err
	}
	plaintext, err := json.Marshal(secrets{Seed: full.Seed, PrivateKey: full.PrivateKey})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal secrets: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	env.Sealed, err = crypto.Seal(plaintext, password, aad, params)
	if err != nil {
		return nil, fmt.Errorf("failed to seal credential: %w", err)
	}
	return env, nil
}

// open turns an envelope back into a credential. Any inconsistency is an
// error; callers never see a partially populated credential.
func (e *envelope) open(password []byte) (Credential, error) {
	if e.Version != envelopeVersion {
		return nil, corrupt("unsupported version %d", e.Version)
	}
	if !common.IsClassicAddress(e.Address) {
		return nil, corrupt("bad address")
	}

	switch e.Kind {
	case KindReadOnly:
		if e.Sealed != nil {
			return nil, corrupt("read-only slot carries sealed data")
		}
		return ReadOnlyCredential{Address: e.Address, PublicKey: e.PublicKey}, nil
	case KindFull:
		if e.Sealed == nil {
			return nil, corrupt("full slot has no sealed data")
		}
	default:
		return nil, corrupt("unknown kind %q", e.Kind)
	}

	aad, err := e.additionalData()
	if err != nil {
		return nil, err
	}
	plaintext, err := crypto.Open(e.Sealed, password, aad)
	if err != nil {
		return nil, err
	}
	defer clear(plaintext)

	var s secrets
	if err := json.Unmarshal(plaintext, &s); err != nil {
		return nil, corrupt("sealed payload: %v", err)
	}
	if len(s.Seed) == 0 {
		return nil, corrupt("sealed payload has no seed")
	}
	return FullCredential{
		Address:    e.Address,
		PublicKey:  e.PublicKey,
		Seed:       Secret(s.Seed),
		PrivateKey: Secret(s.PrivateKey),
	}, nil
}

// isEnvelope tells the current JSON format apart from the legacy base64 one.
func isEnvelope(raw string) bool {
	return bytes.HasPrefix(bytes.TrimSpace([]byte(raw)), []byte("{"))
}

func parseEnvelope(raw string) (*envelope, error) {
	var e envelope
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, corrupt("envelope: %v", err)
	}
	return &e, nil
}

// parseLegacy reads base64(JSON). A seed makes it full, otherwise an address
// makes it read-only.
func parseLegacy(raw string) (Credential, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, corrupt("legacy base64: %v", err)
	}
	defer clear(data)

	var rec legacyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, corrupt("legacy json: %v", err)
	}
	if !common.IsClassicAddress(rec.Address) {
		return nil, corrupt("legacy record has no valid address")
	}
	if rec.Seed != "" {
		return FullCredential{
			Address:    rec.Address,
			PublicKey:  rec.PublicKey,
			Seed:       Secret(rec.Seed),
			PrivateKey: Secret(rec.PrivateKey),
		}, nil
	}
	return ReadOnlyCredential{Address: rec.Address, PublicKey: rec.PublicKey}, nil
}
