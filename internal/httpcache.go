/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/foosstats/s3cache"
	"github.com/rs/zerolog"
)

// CacheOptions configures the http client used to fetch remote sheet
// exports.
type CacheOptions struct {
	// Bucket names the S3 bucket backing the cache. When empty, or when the
	// bucket cannot be reached, responses are cached in memory.
	Bucket string
	// MaxAge is the TTL enforced on every response regardless of the origin's
	// cache headers. Zero means DefaultCacheTTL.
	MaxAge time.Duration
	// Transport performs the uncached requests. Nil means
	// http.DefaultTransport.
	Transport http.RoundTripper
	Logger    zerolog.Logger
}

// NewCachedHttpClient returns an http.Client that caches responses via
// httpcache, backed by S3 when possible.
func NewCachedHttpClient(ctx context.Context, opts CacheOptions) *http.Client {
	var cache httpcache.Cache
	if opts.Bucket != "" {
		s3c := s3cache.New(ctx, opts.Bucket, s3cache.WithGzip(),
			s3cache.WithLogger(opts.Logger))
		if err := s3c.Init(); err != nil {
			opts.Logger.Warn().
				Err(err).
				Str("bucket", opts.Bucket).
				Msg("failed to init S3 cache; falling back to in-memory cache")
		} else {
			cache = s3c
		}
	}
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultCacheTTL
	}
	wrapped := opts.Transport
	if wrapped == nil {
		wrapped = http.DefaultTransport
	}

	hc := httpcache.NewTransport(cache)
	// sheet exports are usually served with no-cache headers, so the TTL has
	// to be imposed below the caching layer
	hc.Transport = &maxAgeTransport{wrapped: wrapped, maxAge: maxAge}

	return &http.Client{Transport: hc}
}

// maxAgeTransport sets the project User-Agent on outgoing requests and
// replaces the origin's cache headers with a fixed max-age.
type maxAgeTransport struct {
	wrapped http.RoundTripper
	maxAge  time.Duration
}

func (t *maxAgeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	if req2.Header.Get("User-Agent") == "" {
		req2.Header.Set("User-Agent", UserAgent)
	}

	resp, err := t.wrapped.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	resp.Header.Del("Pragma")
	resp.Header.Del("Expires")
	resp.Header.Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d", int(t.maxAge/time.Second)))

	return resp, nil
}
