/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mikeb26/foosstats/foos"
	"github.com/mikeb26/foosstats/internal"
	"github.com/mikeb26/foosstats/sheet"
	"github.com/rs/zerolog"
)

// commonFlags are accepted by every reporting subcommand. Zero values leave
// the config file's setting in place.
type commonFlags struct {
	configPath string
	games      string
	players    string
	outcome    string
	kFactor    float64
	initial    float64
	sortByDate bool
	json       bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.StringVar(&cf.configPath, "config", "",
		"Config file (default "+internal.DefaultConfigFile+" if present)")
	fs.StringVar(&cf.games, "games", "", "Games export path or URL (csv|xlsx)")
	fs.StringVar(&cf.players, "players", "", "Players export path or URL")
	fs.StringVar(&cf.outcome, "outcome", "", "Outcome rule: completion|goal_share")
	fs.Float64Var(&cf.kFactor, "k", 0, "Elo K-factor")
	fs.Float64Var(&cf.initial, "initial", 0, "Rating of a player's first game")
	fs.BoolVar(&cf.sortByDate, "sort", false,
		"Rate games in date order instead of sheet order")
	fs.BoolVar(&cf.json, "json", false, "Print JSON instead of a table")
	return cf
}

// apply overlays the flags that were given onto cfg.
func (cf *commonFlags) apply(cfg *internal.Config) {
	if cf.games != "" {
		cfg.Source.Games = cf.games
	}
	if cf.players != "" {
		cfg.Source.Players = cf.players
	}
	if cf.outcome != "" {
		cfg.Rating.Outcome = cf.outcome
	}
	if cf.kFactor != 0 {
		cfg.Rating.KFactor = cf.kFactor
	}
	if cf.initial != 0 {
		cfg.Rating.Initial = cf.initial
	}
	if cf.sortByDate {
		cfg.Rating.SortByDate = true
	}
}

// engineConfig maps the file configuration onto the rating engine's.
func engineConfig(cfg *internal.Config, logger zerolog.Logger) (foos.Config, error) {
	outcome, err := foos.ParseOutcome(cfg.Rating.Outcome)
	if err != nil {
		return foos.Config{}, err
	}

	return foos.Config{
		InitialRating: cfg.Rating.Initial,
		KFactor:       cfg.Rating.KFactor,
		WinningScore:  cfg.Rating.WinningScore,
		Outcome:       outcome,
		Logger:        logger,
	}, nil
}

type session struct {
	players []foos.Player
	result  *foos.Result
}

func mustLoadSession(ctx context.Context, cf *commonFlags) *session {
	sess, err := loadSession(ctx, cf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return sess
}

func loadSession(ctx context.Context, cf *commonFlags) (*session, error) {
	cfg, err := internal.LoadConfig(cf.configPath)
	if err != nil {
		return nil, err
	}
	cf.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Source.Games == "" {
		return nil, fmt.Errorf("no games source; set source.games or pass --games")
	}

	logger, err := internal.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	ecfg, err := engineConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := sheet.Options{
		Games:        cfg.Source.Games,
		GamesSheet:   cfg.Source.GamesSheet,
		Players:      cfg.Source.Players,
		PlayersSheet: cfg.Source.PlayersSheet,
		Logger:       logger,
	}
	if sheet.IsRemote(opts.Games) || sheet.IsRemote(opts.Players) {
		opts.Client = internal.NewCachedHttpClient(ctx, internal.CacheOptions{
			Bucket: cfg.Cache.Bucket,
			MaxAge: cfg.Cache.TTL,
			Logger: logger,
		})
	}
	snap, err := sheet.Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	players, err := foos.NormalizePlayers(snap.Players)
	if err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}
	games, err := foos.NormalizeGames(snap.Games)
	if err != nil {
		return nil, fmt.Errorf("games: %w", err)
	}
	if cfg.Rating.SortByDate {
		foos.SortChronological(games)
	}

	res := foos.ComputeRatings(games, nil, ecfg)
	logger.Info().
		Int("rated", len(res.Games)).
		Int("skipped", len(res.Skipped)).
		Int("players", len(res.Ratings)).
		Str("outcome", ecfg.Outcome.String()).
		Msg("computed ratings")

	return &session{players: players, result: res}, nil
}

type slotView struct {
	Slot   string         `json:"slot"`
	Key    foos.PlayerKey `json:"key"`
	Name   string         `json:"name"`
	Before float64        `json:"before"`
	After  float64        `json:"after"`
	Change float64        `json:"change"`
}

type gameView struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"`
	BlueScore      int        `json:"blueScore"`
	OrangeScore    int        `json:"orangeScore"`
	BlueExpected   float64    `json:"blueExpected"`
	OrangeExpected float64    `json:"orangeExpected"`
	Slots          []slotView `json:"slots"`
}

func newGameView(rg *foos.RatedGame) gameView {
	v := gameView{
		ID:             rg.ID,
		Date:           rg.Date,
		BlueScore:      rg.BlueScore.Goals,
		OrangeScore:    rg.OrangeScore.Goals,
		BlueExpected:   rg.BlueExpected,
		OrangeExpected: rg.OrangeExpected,
	}
	for _, s := range foos.Slots {
		p := rg.Player(s)
		c := rg.Change(s)
		v.Slots = append(v.Slots, slotView{
			Slot:   s.String(),
			Key:    p.Key,
			Name:   p.Name,
			Before: c.Before,
			After:  c.After,
			Change: c.Change,
		})
	}
	return v
}

type playerGameView struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Slot   string  `json:"slot"`
	Won    bool    `json:"won"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Change float64 `json:"change"`
}

func newPlayerGameView(pg foos.PlayerGame) playerGameView {
	return playerGameView{
		ID:     pg.Game.ID,
		Date:   pg.Game.Date,
		Slot:   pg.Slot.String(),
		Won:    pg.Won,
		Before: pg.Change.Before,
		After:  pg.Change.After,
		Change: pg.Change.Change,
	}
}
