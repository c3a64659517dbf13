package crypto

import (
	"errors"
	"fmt"
)

// Open decrypts s. The caller owns the returned plaintext and should clear
// it after use.
// password must be []byte for security (caller should zero it after use)
func Open(s *Sealed, password, aad []byte) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nothing to open")
	}
	if err := s.KDF.validate(); err != nil {
		return nil, err
	}
	if len(s.Salt) == 0 || len(s.Nonce) != nonceLen {
		return nil, fmt.Errorf("malformed blob: salt %d bytes, nonce %d bytes", len(s.Salt), len(s.Nonce))
	}

	aesGCM, err := newGCM(password, s.Salt, s.KDF)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, s.Nonce, s.CipherText, aad)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	return plaintext, nil
}
