/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mikeb26/foosstats/internal"
	"github.com/mikeb26/foosstats/sheet"
)

// this program exists just to seed the http cache with the configured
// remote sheet exports

func main() {
	fs := flag.NewFlagSet("cacheseed", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	cfg, err := internal.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := internal.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client := internal.NewCachedHttpClient(ctx, internal.CacheOptions{
		Bucket: cfg.Cache.Bucket,
		MaxAge: cfg.Cache.TTL,
		Logger: logger,
	})

	seen := make(map[string]bool)
	for _, loc := range []string{cfg.Source.Games, cfg.Source.Players} {
		if !sheet.IsRemote(loc) || seen[loc] {
			continue
		}
		seen[loc] = true

		rc, err := sheet.Open(ctx, loc, client)
		if err != nil {
			// best effort
			logger.Warn().Err(err).Str("location", loc).Msg("failed to seed")
			continue
		}
		n, err := io.Copy(io.Discard, rc)
		rc.Close()
		if err != nil {
			logger.Warn().Err(err).Str("location", loc).Msg("failed to seed")
			continue
		}
		logger.Info().Str("location", loc).Int64("bytes", n).Msg("seeded")
		time.Sleep(2 * time.Second) // avoid pegging the sheet host
	}
}
