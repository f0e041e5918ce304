package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/errors"
)

// backends under test. Mongo needs a server and is covered by the
// integration test instead.
func testStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func testAlbum(id string) album.Album {
	return album.Album{
		ID:    id,
		Title: "Test Album",
		Items: []album.Item{
			{ID: "p1", URL: "http://example.com/1.jpg", Width: 600, Height: 400},
			{ID: "p2", URL: "http://example.com/2.jpg", Width: 400, Height: 400},
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			a := testAlbum("round-trip")
			if err := st.Put(ctx, a); err != nil {
				t.Fatalf("Put() error: %v", err)
			}

			got, err := st.Get(ctx, "round-trip")
			if err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			if got.ID != a.ID || got.Title != a.Title {
				t.Errorf("Get() = %q/%q, want %q/%q", got.ID, got.Title, a.ID, a.Title)
			}
			if len(got.Items) != 2 {
				t.Fatalf("got %d items, want 2", len(got.Items))
			}
			if got.Items[0].Width != 600 {
				t.Errorf("item width = %d, want 600", got.Items[0].Width)
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()

	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(ctx, "nope")
			if !errors.Is(err, errors.ErrCodeAlbumNotFound) {
				t.Errorf("Get(missing) = %v, want ALBUM_NOT_FOUND", err)
			}
		})
	}
}

func TestStorePutReplaces(t *testing.T) {
	ctx := context.Background()

	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.Put(ctx, testAlbum("a")); err != nil {
				t.Fatal(err)
			}

			updated := testAlbum("a")
			updated.Title = "Renamed"
			if err := st.Put(ctx, updated); err != nil {
				t.Fatalf("Put() replace error: %v", err)
			}

			got, err := st.Get(ctx, "a")
			if err != nil {
				t.Fatal(err)
			}
			if got.Title != "Renamed" {
				t.Errorf("Title = %q, want Renamed", got.Title)
			}

			ids, err := st.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(ids) != 1 {
				t.Errorf("List() = %v, want one entry", ids)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()

	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.Put(ctx, testAlbum("gone")); err != nil {
				t.Fatal(err)
			}
			if err := st.Delete(ctx, "gone"); err != nil {
				t.Fatalf("Delete() error: %v", err)
			}
			if _, err := st.Get(ctx, "gone"); !errors.Is(err, errors.ErrCodeAlbumNotFound) {
				t.Errorf("Get(deleted) = %v, want ALBUM_NOT_FOUND", err)
			}
			if err := st.Delete(ctx, "gone"); !errors.Is(err, errors.ErrCodeAlbumNotFound) {
				t.Errorf("Delete(missing) = %v, want ALBUM_NOT_FOUND", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()

	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"c", "a", "b"} {
				if err := st.Put(ctx, testAlbum(id)); err != nil {
					t.Fatal(err)
				}
			}

			ids, err := st.List(ctx)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			want := []string{"a", "b", "c"}
			if len(ids) != len(want) {
				t.Fatalf("List() = %v, want %v", ids, want)
			}
			for i := range want {
				if ids[i] != want[i] {
					t.Errorf("List()[%d] = %q, want %q", i, ids[i], want[i])
				}
			}
		})
	}
}

func TestStoreRejectsInvalidAlbum(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		album album.Album
	}{
		{"empty id", album.Album{}},
		{"duplicate items", album.Album{
			ID:    "dup",
			Items: []album.Item{{ID: "x"}, {ID: "x"}},
		}},
	}

	for name, st := range testStores(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				if err := st.Put(ctx, tt.album); !errors.Is(err, errors.ErrCodeInvalidAlbum) {
					t.Errorf("Put() = %v, want INVALID_ALBUM", err)
				}
			})
		}
	}
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	st, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Put(ctx, testAlbum("keep")); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st2.Close()

	got, err := st2.Get(ctx, "keep")
	if err != nil {
		t.Fatalf("Get() after reopen error: %v", err)
	}
	if got.ID != "keep" {
		t.Errorf("ID = %q, want keep", got.ID)
	}
}
