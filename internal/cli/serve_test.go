package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/cache"
	"github.com/olofgunnarsson/photowall/pkg/pipeline"
	"github.com/olofgunnarsson/photowall/pkg/store"
)

func newTestServer(t *testing.T) (*server, *store.MemoryStore) {
	t.Helper()
	c := New(io.Discard, log.ErrorLevel)
	st := store.NewMemoryStore()
	srv := &server{
		logger:   c.Logger,
		store:    st,
		runner:   pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger),
		defaults: c.pipelineOptions(),
	}
	return srv, st
}

func seedAlbum(t *testing.T, st *store.MemoryStore, id string, n int) album.Album {
	t.Helper()
	a := album.Album{ID: id, Title: "Test Album"}
	for i := 0; i < n; i++ {
		a.Items = append(a.Items, album.Item{
			ID:     fmt.Sprintf("photo-%02d", i),
			URL:    fmt.Sprintf("https://example.com/%02d.jpg", i),
			Width:  900,
			Height: 600,
		})
	}
	if err := st.Put(context.Background(), a); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	return a
}

func doRequest(t *testing.T, srv *server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestHandleListAlbums(t *testing.T) {
	srv, st := newTestServer(t)

	rec := doRequest(t, srv, "/api/albums")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var empty struct {
		Albums []string `json:"albums"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &empty); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(empty.Albums) != 0 {
		t.Errorf("empty store should list no albums, got %v", empty.Albums)
	}

	seedAlbum(t, st, "summer", 3)
	seedAlbum(t, st, "winter", 2)

	rec = doRequest(t, srv, "/api/albums")
	var body struct {
		Albums []string `json:"albums"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Albums) != 2 {
		t.Errorf("albums = %v, want 2 entries", body.Albums)
	}
}

func TestHandleGetAlbum(t *testing.T) {
	srv, st := newTestServer(t)
	seedAlbum(t, st, "summer", 3)

	rec := doRequest(t, srv, "/api/albums/summer")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var a album.Album
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.ID != "summer" || a.Len() != 3 {
		t.Errorf("got album %s with %d items, want summer with 3", a.ID, a.Len())
	}
}

func TestHandleGetAlbumNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "/api/albums/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["code"] != "ALBUM_NOT_FOUND" {
		t.Errorf("code = %q, want ALBUM_NOT_FOUND", body["code"])
	}
}

func TestHandleGetItems(t *testing.T) {
	srv, st := newTestServer(t)
	seedAlbum(t, st, "summer", 10)

	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantCount  int
		wantFirst  string
	}{
		{name: "default window", query: "", wantOffset: 0, wantCount: 10, wantFirst: "photo-00"},
		{name: "middle window", query: "?offset=3&count=4", wantOffset: 3, wantCount: 4, wantFirst: "photo-03"},
		{name: "over-run clamps", query: "?offset=8&count=10", wantOffset: 8, wantCount: 2, wantFirst: "photo-08"},
		{name: "past the end", query: "?offset=50&count=5", wantOffset: 10, wantCount: 0},
		{name: "negative offset clamps", query: "?offset=-3&count=2", wantOffset: 0, wantCount: 2, wantFirst: "photo-00"},
		{name: "bad count falls back", query: "?count=abc", wantOffset: 0, wantCount: 10, wantFirst: "photo-00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, "/api/albums/summer/items"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var body struct {
				Items  []album.Item `json:"items"`
				Offset int          `json:"offset"`
				Count  int          `json:"count"`
				Total  int          `json:"total"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if body.Offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", body.Offset, tt.wantOffset)
			}
			if body.Count != tt.wantCount || len(body.Items) != tt.wantCount {
				t.Errorf("count = %d (%d items), want %d", body.Count, len(body.Items), tt.wantCount)
			}
			if body.Total != 10 {
				t.Errorf("total = %d, want 10", body.Total)
			}
			if tt.wantFirst != "" && body.Items[0].ID != tt.wantFirst {
				t.Errorf("first item = %q, want %q", body.Items[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestHandleGetWall(t *testing.T) {
	srv, st := newTestServer(t)
	seedAlbum(t, st, "summer", 6)

	rec := doRequest(t, srv, "/api/albums/summer/wall?width=800")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var w album.Wall
	if err := json.Unmarshal(rec.Body.Bytes(), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Width != 800 {
		t.Errorf("wall width = %d, want 800", w.Width)
	}
	if len(w.Tiles) != 6 {
		t.Errorf("tiles = %d, want 6", len(w.Tiles))
	}
	if w.RowCount == 0 {
		t.Error("wall should have rows")
	}
}

func TestHandleWallPage(t *testing.T) {
	srv, st := newTestServer(t)
	seedAlbum(t, st, "summer", 4)

	rec := doRequest(t, srv, "/albums/summer")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<html") {
		t.Error("wall page should be an HTML document")
	}
	if !strings.Contains(body, "Test Album") {
		t.Error("wall page should carry the album title")
	}
}

func TestNewStoreUnknownBackend(t *testing.T) {
	_, err := newStore(context.Background(), ServeConfig{Store: "etcd"})
	if err == nil {
		t.Error("newStore() should reject unknown backends")
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?a=5&b=junk", nil)

	if got := queryInt(req, "a", 1); got != 5 {
		t.Errorf("queryInt(a) = %d, want 5", got)
	}
	if got := queryInt(req, "b", 7); got != 7 {
		t.Errorf("queryInt(b) = %d, want fallback 7", got)
	}
	if got := queryInt(req, "missing", 9); got != 9 {
		t.Errorf("queryInt(missing) = %d, want fallback 9", got)
	}
}
