// Package httputil provides HTTP utilities for photo source clients.
//
// # Overview
//
// This package provides infrastructure used when probing remote photos:
//
//   - [Cache]: File-based caching of probe results
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores probe results in the filesystem (~/.cache/photowall/)
// with configurable TTL. Photo dimensions never change for a given URL,
// so caching them makes repeated scans of remote albums close to free.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	var dims Size
//	ok, _ := cache.Get("probe:"+url, &dims)  // Check cache
//	if !ok {
//	    dims = probePhoto(url)
//	    cache.Set("probe:"+url, dims)        // Store for later
//	}
//
// Cache keys should be namespaced by probe kind to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Wrap such failures in [RetryableError] so that Retry attempts them
// again; anything else fails fast:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchHeader(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/photowall/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `photowall cache clear` or by deleting
// the cache directory.
package httputil
