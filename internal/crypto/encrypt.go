package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// N=2^18 (~256MB RAM, 0.5-2s) keeps brute force expensive while still
	// fitting the per-app memory limits of mobile devices.
	// N=2^20 (~1GB) is accepted on read but not used for new blobs.
	defaultN      = 1 << 18
	maxN          = 1 << 20
	defaultR      = 8
	defaultP      = 1
	defaultKeyLen = 32
	saltLen       = 32
	nonceLen      = 12
)

var (
	// ErrInvalidPassword is returned when a blob cannot be opened: wrong
	// password, altered additional data or altered ciphertext.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidParams is returned for KDF parameters outside the accepted range.
	ErrInvalidParams = errors.New("invalid kdf parameters")
)

// KDFParams are the scrypt parameters a blob was sealed with
type KDFParams struct {
	N      int `json:"n"`
	R      int `json:"r"`
	P      int `json:"p"`
	KeyLen int `json:"keyLen"`
}

// DefaultKDF returns the parameters used for new blobs.
func DefaultKDF() KDFParams {
	return KDFParams{N: defaultN, R: defaultR, P: defaultP, KeyLen: defaultKeyLen}
}

// WithN returns a copy of p using cost n.
func (p KDFParams) WithN(n int) KDFParams {
	p.N = n
	return p
}

func (p KDFParams) validate() error {
	if p.N < 2 || p.N > maxN || p.N&(p.N-1) != 0 {
		return fmt.Errorf("%w: N=%d", ErrInvalidParams, p.N)
	}
	if p.R < 1 || p.P < 1 || p.KeyLen != 32 {
		return fmt.Errorf("%w: r=%d p=%d keyLen=%d", ErrInvalidParams, p.R, p.P, p.KeyLen)
	}
	return nil
}

// Sealed is an AES-256-GCM blob with the scrypt parameters needed to open it.
// Byte fields are base64 in JSON.
type Sealed struct {
	KDF        KDFParams `json:"kdf"`
	Salt       []byte    `json:"salt"`
	Nonce      []byte    `json:"nonce"`
	CipherText []byte    `json:"cipherText"`
}

// Seal encrypts plaintext under a key derived from password. aad is
// authenticated but not encrypted; Open must be given the same bytes.
// password must be []byte for security (caller should zero it after use)
func Seal(plaintext, password, aad []byte, params KDFParams) (*Sealed, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, params)
	if err != nil {
		return nil, err
	}

	return &Sealed{
		KDF:        params,
		Salt:       salt,
		Nonce:      nonce,
		CipherText: aesGCM.Seal(nil, nonce, plaintext, aad),
	}, nil
}

func newGCM(password, salt []byte, params KDFParams) (cipher.AEAD, error) {
	// Derive key from password
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, params.KeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
