package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/buildinfo"
	"github.com/olofgunnarsson/photowall/pkg/cache"
	perrors "github.com/olofgunnarsson/photowall/pkg/errors"
	"github.com/olofgunnarsson/photowall/pkg/pipeline"
	"github.com/olofgunnarsson/photowall/pkg/store"
)

// Server timeouts.
const (
	serveRequestTimeout  = 30 * time.Second
	serveShutdownTimeout = 10 * time.Second
	serveDefaultPageSize = 50
)

// serveCommand creates the serve command for the HTTP gallery server.
func (c *CLI) serveCommand() *cobra.Command {
	var albumFiles []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve albums and walls over HTTP",
		Long: `Serve albums and walls over HTTP.

The server exposes albums from the configured store (memory, sqlite, or
mongo) through a JSON API and renders walls as HTML pages:

  GET /api/albums                            album IDs
  GET /api/albums/{id}                       album metadata and items
  GET /api/albums/{id}/items?offset&count    an item window in display order
  GET /api/albums/{id}/wall?width&row_height the computed wall
  GET /albums/{id}                           the wall as an HTML page

The items endpoint is the pagination source for incremental clients:
windows are clamped to the album, so over-running requests return what
remains instead of erroring. Walls are computed on demand and cached
(optionally in Redis for multi-instance deployments).

Albums given via --album are loaded into the store at startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Serve
			if cmd.Flags().Changed("addr") {
				cfg.Addr, _ = cmd.Flags().GetString("addr")
			}
			if cmd.Flags().Changed("store") {
				cfg.Store, _ = cmd.Flags().GetString("store")
			}
			if cmd.Flags().Changed("sqlite-path") {
				cfg.SQLitePath, _ = cmd.Flags().GetString("sqlite-path")
			}
			if cmd.Flags().Changed("mongo-uri") {
				cfg.MongoURI, _ = cmd.Flags().GetString("mongo-uri")
			}
			if cmd.Flags().Changed("redis-addr") {
				cfg.RedisAddr, _ = cmd.Flags().GetString("redis-addr")
			}
			return c.runServe(cmd.Context(), cfg, albumFiles)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	cmd.Flags().String("store", "", "album store: memory (default), sqlite, mongo")
	cmd.Flags().String("sqlite-path", "", "sqlite database file")
	cmd.Flags().String("mongo-uri", "", "mongodb connection string")
	cmd.Flags().String("redis-addr", "", "redis address for the wall cache")
	cmd.Flags().StringArrayVar(&albumFiles, "album", nil, "album.json to load into the store (repeatable)")

	return cmd
}

// runServe wires the store, cache, and router, then serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg ServeConfig, albumFiles []string) error {
	st, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer st.Close()

	for _, path := range albumFiles {
		a, err := album.ReadAlbumFile(path)
		if err != nil {
			return fmt.Errorf("load album %s: %w", path, err)
		}
		if err := st.Put(ctx, a); err != nil {
			return fmt.Errorf("store album %s: %w", a.ID, err)
		}
		c.Logger.Info("album loaded", "id", a.ID, "photos", a.Len())
	}

	wallCache, err := newServeCache(ctx, cfg, c.Config.Cache.Dir)
	if err != nil {
		return fmt.Errorf("open wall cache: %w", err)
	}

	srv := &server{
		logger:   c.Logger,
		store:    st,
		runner:   pipeline.NewRunner(wallCache, nil, c.Logger),
		defaults: c.pipelineOptions(),
	}
	defer srv.runner.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", "addr", cfg.Addr, "store", cfg.Store)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newStore opens the configured album store backend.
func newStore(ctx context.Context, cfg ServeConfig) (store.Store, error) {
	switch cfg.Store {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "sqlite":
		return store.NewSQLiteStore(cfg.SQLitePath)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.MongoURI})
	default:
		return nil, fmt.Errorf("unknown store %q (want memory, sqlite, or mongo)", cfg.Store)
	}
}

// newServeCache picks Redis when configured, otherwise the file cache.
func newServeCache(ctx context.Context, cfg ServeConfig, dir string) (cache.Cache, error) {
	if cfg.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr})
	}
	return newCache(false, dir)
}

// =============================================================================
// Server
// =============================================================================

// server holds the HTTP handler dependencies.
type server struct {
	logger   *log.Logger
	store    store.Store
	runner   *pipeline.Runner
	defaults pipeline.Options
}

// router assembles the chi router with middleware and routes.
func (s *server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(serveRequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/albums", func(r chi.Router) {
		r.Get("/", s.handleListAlbums)
		r.Get("/{id}", s.handleGetAlbum)
		r.Get("/{id}/items", s.handleGetItems)
		r.Get("/{id}/wall", s.handleGetWall)
	})
	r.Get("/albums/{id}", s.handleWallPage)

	return r
}

// requestLogger logs one line per request through the CLI logger.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"albums": ids})
}

func (s *server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handleGetItems returns a contiguous item window in display order.
// Windows past the end are clamped, never an error.
func (s *server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	offset := queryInt(r, "offset", 0)
	count := queryInt(r, "count", serveDefaultPageSize)
	if offset < 0 {
		offset = 0
	}
	if count <= 0 {
		count = serveDefaultPageSize
	}
	if offset > a.Len() {
		offset = a.Len()
	}
	end := offset + count
	if end > a.Len() {
		end = a.Len()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":  a.Items[offset:end],
		"offset": offset,
		"count":  end - offset,
		"total":  a.Len(),
	})
}

// handleGetWall computes (or fetches from cache) the album's wall at the
// requested width.
func (s *server) handleGetWall(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.wallOptions(r)
	wall, _, err := s.runner.BuildWallWithCacheInfo(r.Context(), a, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wall)
}

// handleWallPage renders the album's wall as an HTML page.
func (s *server) handleWallPage(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.wallOptions(r)
	opts.Formats = []string{pipeline.FormatHTML}
	if opts.PageTitle == "" {
		opts.PageTitle = a.Title
	}

	wall, err := s.runner.BuildWall(r.Context(), a, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), wall, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[pipeline.FormatHTML])
}

// wallOptions derives layout options from query parameters on top of the
// configured defaults.
func (s *server) wallOptions(r *http.Request) pipeline.Options {
	opts := s.defaults
	if width := queryInt(r, "width", 0); width > 0 {
		opts.Width = width
	}
	if rh := queryInt(r, "row_height", 0); rh > 0 {
		opts.Layout.TargetRowHeight = rh
	}
	return opts
}

// writeError maps coded errors to HTTP statuses and writes a JSON body.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch perrors.GetCode(err) {
	case perrors.ErrCodeAlbumNotFound, perrors.ErrCodeNotFound, perrors.ErrCodeItemNotFound:
		status = http.StatusNotFound
	case perrors.ErrCodeInvalidInput, perrors.ErrCodeInvalidAlbum, perrors.ErrCodeInvalidOptions:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{
		"code":  string(perrors.GetCode(err)),
		"error": perrors.UserMessage(err),
	})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// queryInt parses an integer query parameter, falling back to def.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
