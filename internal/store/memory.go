package store

import (
	"sync"

	"go-agrichain/internal/model"
)

type memoryStore struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryStore returns a LedgerStore holding the encoded document in
// memory. It round-trips through the same codec as the persistent
// backends, so tests exercise the real serialization path.
func NewMemoryStore() LedgerStore {
	return &memoryStore{}
}

// NewMemoryStoreWithRaw seeds the store with an arbitrary blob, valid
// or not, for exercising the malformed-document recovery path.
func NewMemoryStoreWithRaw(raw []byte) LedgerStore {
	return &memoryStore{raw: raw}
}

func (s *memoryStore) Load() (*model.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeState(s.raw), nil
}

func (s *memoryStore) Save(state *model.LedgerState) error {
	raw, err := encodeState(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
	return nil
}
