// Package vault owns the single persisted credential slot. The slot holds
// zero or one credential; it changes only by a full overwrite (Store) or
// removal (Clear).
package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"go.uber.org/zap"

	"github.com/AlexZinkM/xrpl-wallet/internal/crypto"
	"github.com/AlexZinkM/xrpl-wallet/internal/kv"
	"github.com/AlexZinkM/xrpl-wallet/internal/logging"
)

// SlotKey is the key the credential lives under.
const SlotKey = "encrypted_wallet"

var (
	// ErrNoWallet means no readable credential is stored.
	ErrNoWallet = errors.New("no wallet configured")
	// ErrReadOnly means the stored credential cannot sign.
	ErrReadOnly = errors.New("wallet is read-only")
	// ErrInvalidCredential is returned by Store for credentials that fail validation.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrCorrupt describes a slot that cannot be decoded.
	ErrCorrupt = errors.New("vault slot corrupt")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCredential, fmt.Sprintf(format, args...))
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}

// Summary is what may be shown about the stored identity.
type Summary struct {
	Account
	Kind      Kind
	CreatedAt time.Time // zero for legacy slots
	Legacy    bool
}

// Option configures a Vault.
type Option func(*Vault)

// WithKDF sets the scrypt parameters used for new blobs.
func WithKDF(params crypto.KDFParams) Option {
	return func(v *Vault) { v.kdf = params }
}

// WithLogger sets the vault logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Vault) { v.logger = logging.OrNop(logger).Named("vault") }
}

// Vault serializes every access to the slot.
type Vault struct {
	mu       sync.Mutex
	store    kv.Store
	password []byte
	kdf      crypto.KDFParams
	logger   *zap.Logger
	now      func() time.Time

	// verified summary of the slot as last written or loaded by this Vault
	summary *Summary
}

// New creates a Vault over store. password is copied; call Close to wipe it.
func New(store kv.Store, password []byte, opts ...Option) *Vault {
	v := &Vault{
		store:    store,
		password: append([]byte(nil), password...),
		kdf:      crypto.DefaultKDF(),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Close wipes the in-memory password.
func (v *Vault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	zcrypto.Erase(v.password)
	v.password = nil
	return nil
}

// Store validates c and overwrites the slot with it.
func (v *Vault) Store(c Credential) error {
	c = deref(c)
	if err := validate(c); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	env, err := seal(c, v.password, v.kdf, v.now())
	if err != nil {
		return err
	}
	if err := v.write(env); err != nil {
		return err
	}
	v.summary = &Summary{Account: c.Account(), Kind: c.Kind(), CreatedAt: env.CreatedAt}

	v.logger.Info("credential stored",
		zap.String("address", env.Address),
		zap.String("kind", string(env.Kind)),
	)
	return nil
}

// Load returns the stored credential. Absence and every decode failure
// (corruption, tampering, wrong password) report ok=false.
func (v *Vault) Load() (Credential, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	c, _, err := v.read()
	if err != nil {
		if !errors.Is(err, ErrNoWallet) {
			v.logger.Warn("vault slot unreadable", zap.Error(err))
		}
		v.summary = nil
		return nil, false
	}
	return c, true
}

// LoadSigner returns the stored full credential. It fails with ErrNoWallet
// when nothing readable is stored and ErrReadOnly for a read-only identity.
// The caller should Wipe the result when done.
func (v *Vault) LoadSigner() (FullCredential, error) {
	c, ok := v.Load()
	if !ok {
		return FullCredential{}, ErrNoWallet
	}
	full, ok := c.(FullCredential)
	if !ok {
		return FullCredential{}, ErrReadOnly
	}
	return full, nil
}

// Summary describes the stored identity without exposing secrets.
func (v *Vault) Summary() (Summary, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.summary != nil {
		return *v.summary, true
	}
	c, s, err := v.read()
	if err != nil {
		return Summary{}, false
	}
	if full, ok := c.(FullCredential); ok {
		full.Wipe()
	}
	v.summary = &s
	return s, true
}

// Clear removes the slot.
func (v *Vault) Clear() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.store.Delete(SlotKey); err != nil {
		return fmt.Errorf("failed to clear vault: %w", err)
	}
	v.summary = nil
	v.logger.Info("credential cleared")
	return nil
}

// Exists reports whether the slot is present. It does not decrypt; Load may
// still report absence for a slot that exists.
func (v *Vault) Exists() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok, err := v.store.Get(SlotKey)
	return err == nil && ok
}

// Migrate rewrites a legacy slot in the current format. It reports whether a
// rewrite happened; an empty or current slot is left alone.
func (v *Vault) Migrate() (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	raw, ok, err := v.store.Get(SlotKey)
	if err != nil {
		return false, fmt.Errorf("failed to read vault: %w", err)
	}
	if !ok || isEnvelope(raw) {
		return false, nil
	}

	c, err := parseLegacy(raw)
	if err != nil {
		return false, err
	}
	if full, ok := c.(FullCredential); ok {
		defer full.Wipe()
	}

	env, err := seal(c, v.password, v.kdf, v.now())
	if err != nil {
		return false, err
	}
	if err := v.write(env); err != nil {
		return false, err
	}
	v.summary = &Summary{Account: c.Account(), Kind: c.Kind(), CreatedAt: env.CreatedAt}

	v.logger.Info("legacy slot migrated",
		zap.String("address", env.Address),
		zap.String("kind", string(env.Kind)),
	)
	return true, nil
}

// read decodes the slot. Callers hold v.mu.
func (v *Vault) read() (Credential, Summary, error) {
	raw, ok, err := v.store.Get(SlotKey)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to read vault: %w", err)
	}
	if !ok {
		return nil, Summary{}, ErrNoWallet
	}

	if !isEnvelope(raw) {
		c, err := parseLegacy(raw)
		if err != nil {
			return nil, Summary{}, err
		}
		s := Summary{Account: c.Account(), Kind: c.Kind(), Legacy: true}
		v.summary = &s
		return c, s, nil
	}

	env, err := parseEnvelope(raw)
	if err != nil {
		return nil, Summary{}, err
	}
	c, err := env.open(v.password)
	if err != nil {
		return nil, Summary{}, err
	}
	s := Summary{Account: c.Account(), Kind: c.Kind(), CreatedAt: env.CreatedAt}
	v.summary = &s
	return c, s, nil
}

func (v *Vault) write(env *envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	if err := v.store.Set(SlotKey, string(data)); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}
	return nil
}

func deref(c Credential) Credential {
	switch p := c.(type) {
	case *FullCredential:
		if p != nil {
			return *p
		}
	case *ReadOnlyCredential:
		if p != nil {
			return *p
		}
	}
	return c
}
