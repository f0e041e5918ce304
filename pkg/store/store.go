// Package store provides album storage backends for the serve command.
//
// One [Store] interface, three implementations:
//   - [MemoryStore]: in-memory storage for development and testing
//   - [SQLiteStore]: single-file storage for deployments without external services
//   - [MongoStore]: document storage for production multi-instance deployments
//
// # Architecture
//
// A store holds complete albums keyed by album ID. Albums are small
// (metadata only, never photo bytes), so backends persist them whole
// instead of splitting items into their own records. Walls are not
// stored here; they are pure functions of an album and layout options,
// so they live in pkg/cache.
//
// # Usage
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Single-binary deployment
//	st, err := store.NewSQLiteStore("photowall.db")
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: uri})
//
//	if err := st.Put(ctx, a); err != nil { ... }
//	a, err := st.Get(ctx, "album-id")
package store

import (
	"context"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/errors"
)

// ErrAlbumNotFound is returned by Get and Delete for unknown album IDs.
// Check with errors.Is(err, errors.ErrCodeAlbumNotFound).
var ErrAlbumNotFound = errors.New(errors.ErrCodeAlbumNotFound, "album not found")

// Store is the interface for album storage backends.
type Store interface {
	// Get retrieves an album by ID. Returns an ALBUM_NOT_FOUND error for
	// unknown IDs.
	Get(ctx context.Context, id string) (album.Album, error)

	// Put stores an album, replacing any existing album with the same ID.
	// The album must validate and carry a non-empty ID.
	Put(ctx context.Context, a album.Album) error

	// Delete removes an album. Returns an ALBUM_NOT_FOUND error for
	// unknown IDs.
	Delete(ctx context.Context, id string) error

	// List returns the stored album IDs, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// validateForPut checks that an album can be stored.
func validateForPut(a album.Album) error {
	if a.ID == "" {
		return errors.New(errors.ErrCodeInvalidAlbum, "album has no ID")
	}
	if err := a.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAlbum, err, "album %s", a.ID)
	}
	return nil
}
