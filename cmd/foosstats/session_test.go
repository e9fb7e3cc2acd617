/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikeb26/foosstats/foos"
	"github.com/mikeb26/foosstats/internal"
	"github.com/rs/zerolog"
)

func TestCommonFlagsApply(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	err := fs.Parse([]string{"--games", "g.csv", "--k", "16", "--outcome",
		"goal_share", "--sort"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := internal.DefaultConfig()
	cf.apply(cfg)

	if cfg.Source.Games != "g.csv" || cfg.Rating.KFactor != 16 ||
		cfg.Rating.Outcome != "goal_share" || !cfg.Rating.SortByDate {
		t.Errorf("flags not applied: %+v", cfg)
	}
	// unset flags keep the file values
	if cfg.Rating.Initial != 1500 || cfg.Source.Players != "" {
		t.Errorf("unset flags overrode config: %+v", cfg)
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := internal.DefaultConfig()
	ecfg, err := engineConfig(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("engineConfig: %v", err)
	}
	want := foos.DefaultConfig()
	if ecfg.InitialRating != want.InitialRating || ecfg.KFactor != want.KFactor ||
		ecfg.WinningScore != want.WinningScore || ecfg.Outcome != want.Outcome {
		t.Errorf("engineConfig = %+v; want %+v", ecfg, want)
	}

	cfg.Rating.Outcome = "bogus"
	if _, err := engineConfig(cfg, zerolog.Nop()); err == nil {
		t.Errorf("expected error for unknown outcome")
	}
}

func TestLoadSession(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	games := "ID,Date,Blue Score,Orange Score,Blue Back,Blue Front,Orange Front,Orange Back\n" +
		"1,2019-03-14,10,4,Ann,Bob,Cat,Dan\n" +
		"2,2019-03-15,10,10,Ann,Bob,Cat,Dan\n"
	players := "Player ID,Name,Game Count,Win Count\n" +
		"p1,Ann,1,1\np2,Bob,1,1\np3,Cat,1,0\np4,Dan,1,0\n"
	for name, data := range map[string]string{
		"games.csv":   games,
		"players.csv": players,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data),
			0o644); err != nil {
			t.Fatal(err)
		}
	}

	cf := &commonFlags{games: "games.csv", players: "players.csv"}
	sess, err := loadSession(context.Background(), cf)
	if err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	if len(sess.players) != 4 {
		t.Errorf("players = %d; want 4", len(sess.players))
	}
	if len(sess.result.Games) != 1 || len(sess.result.Skipped) != 1 {
		t.Fatalf("rated %d, skipped %d; want 1, 1", len(sess.result.Games),
			len(sess.result.Skipped))
	}
	if got := sess.result.Ratings["p4"]; got != 1484 {
		t.Errorf("Dan = %v; want 1484", got)
	}

	if _, err := loadSession(context.Background(), &commonFlags{}); err == nil {
		t.Errorf("expected error without a games source")
	}
}
