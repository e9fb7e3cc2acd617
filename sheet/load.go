/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/mikeb26/foosstats/foos"
	"github.com/mikeb26/foosstats/internal"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultGamesSheet   = "Games"
	DefaultPlayersSheet = "Players"
)

var ErrNoPlayersSource = errors.New("a players location is required for CSV games exports")

// IsRemote reports whether location is fetched over http(s).
func IsRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Open returns a reader for a local path or an http(s) URL. Remote exports
// are fetched with client, or http.DefaultClient when client is nil.
func Open(ctx context.Context, location string,
	client *http.Client) (io.ReadCloser, error) {

	if !IsRemote(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open %v: %w", location, err)
		}
		return f, nil
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %v: %w",
			location, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %v: %w", location, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %v: HTTP %v", location,
			resp.StatusCode)
	}

	return resp.Body, nil
}

// ReadTable opens location and reads one sheet from it. sheetName is only
// consulted for workbooks.
func ReadTable(ctx context.Context, location string, sheetName string,
	client *http.Client) (*Table, error) {

	rc, err := Open(ctx, location, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var t *Table
	if FormatOf(location) == FormatXLSX {
		t, err = ReadXLSX(rc, sheetName)
	} else {
		t, err = ReadCSV(rc)
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", location, err)
	}

	return t, nil
}

// Options locates the Games and Players tables.
type Options struct {
	// Games is a path or URL of a CSV or XLSX export.
	Games      string
	GamesSheet string
	// Players defaults to the Games workbook when Games is an XLSX export.
	Players      string
	PlayersSheet string

	Client *http.Client
	Logger zerolog.Logger
}

// Snapshot is one consistent read of both tables with game slots linked.
type Snapshot struct {
	Games   []foos.RawGame
	Players []foos.Record
}

// Load reads both tables concurrently and links them.
func Load(ctx context.Context, opts Options) (*Snapshot, error) {
	if opts.Games == "" {
		return nil, fmt.Errorf("no games location configured")
	}
	if opts.GamesSheet == "" {
		opts.GamesSheet = DefaultGamesSheet
	}
	if opts.PlayersSheet == "" {
		opts.PlayersSheet = DefaultPlayersSheet
	}
	if opts.Players == "" {
		if FormatOf(opts.Games) != FormatXLSX {
			return nil, ErrNoPlayersSource
		}
		opts.Players = opts.Games
	}

	var games, players *Table
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		games, err = ReadTable(gctx, opts.Games, opts.GamesSheet, opts.Client)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = ReadTable(gctx, opts.Players, opts.PlayersSheet,
			opts.Client)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.Logger.Debug().
		Str("games", opts.Games).
		Int("gameRows", len(games.Rows)).
		Str("players", opts.Players).
		Int("playerRows", len(players.Rows)).
		Msg("loaded sheets")

	return &Snapshot{
		Games:   Link(games, players),
		Players: players.Rows,
	}, nil
}
