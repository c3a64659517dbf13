// Package kv is the persistent key-value slot store the vault writes to.
package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"github.com/zarlcorp/core/pkg/zfilesystem"
)

const (
	slotExt  = ".slot"
	slotMode = 0o600
)

// ErrInvalidKey is returned for keys outside [A-Za-z0-9_.-].
var ErrInvalidKey = errors.New("invalid key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store holds string values under string keys. A write fully replaces the
// previous value; a reader sees either the old value or the new one.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

func checkKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// slots maps keys to <key>.slot files on a zfilesystem backend. write
// replaces a whole slot file.
type slots struct {
	fsys  zfilesystem.ReadWriteFileFS
	write func(name string, data []byte) error
}

// Get returns the value for key; ok is false when the slot does not exist.
func (s *slots) Get(key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	data, err := s.fsys.ReadFile(key + slotExt)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot: %w", err)
	}
	return string(data), true, nil
}

// Set replaces the slot.
func (s *slots) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.write(key+slotExt, []byte(value)); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// Delete removes the slot. A missing slot is not an error.
func (s *slots) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.fsys.Remove(key + slotExt); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove slot: %w", err)
	}
	return nil
}
