package store

import (
	"context"
	"sort"
	"sync"

	"github.com/olofgunnarsson/photowall/pkg/album"
)

// MemoryStore is an in-memory album store for development and testing.
// Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	albums map[string]album.Album
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{albums: make(map[string]album.Album)}
}

// Get retrieves an album by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (album.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.albums[id]
	if !ok {
		return album.Album{}, ErrAlbumNotFound
	}
	return a, nil
}

// Put stores an album.
func (s *MemoryStore) Put(ctx context.Context, a album.Album) error {
	if err := validateForPut(a); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums[a.ID] = a
	return nil
}

// Delete removes an album.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.albums[id]; !ok {
		return ErrAlbumNotFound
	}
	delete(s.albums, id)
	return nil
}

// List returns the stored album IDs, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.albums))
	for id := range s.albums {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
