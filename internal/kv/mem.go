package kv

import "github.com/zarlcorp/core/pkg/zfilesystem"

// MemStore is a Store backed by an in-memory filesystem.
type MemStore struct {
	slots
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	fsys := zfilesystem.NewMemFS()
	return &MemStore{slots{
		fsys: fsys,
		write: func(name string, data []byte) error {
			return fsys.WriteFile(name, data, slotMode)
		},
	}}
}
