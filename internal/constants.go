/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent      = "foosstats/0.4.0 (+https://github.com/mikeb26/foosstats)"
	WebCacheBucket = "bopmatic-foosstats-prod-webcache"
	// DefaultCacheTTL bounds how stale a remote sheet export may be.
	DefaultCacheTTL = time.Hour
)
