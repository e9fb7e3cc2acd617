/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package foos

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Column names in the league's Players and Games tables.
const (
	FieldPlayerID  = "Player ID"
	FieldName      = "Name"
	FieldGameCount = "Game Count"
	FieldWinCount  = "Win Count"

	FieldGameID      = "ID"
	FieldDate        = "Date"
	FieldBlueScore   = "Blue Score"
	FieldOrangeScore = "Orange Score"
)

// Record is one row of a source table keyed by column name.
type Record map[string]string

// RawGame is a Games row plus the Players rows linked from its team slots. A
// slot with no entry in Links is unlinked.
type RawGame struct {
	Fields Record
	Links  map[Slot]Record
}

func (r Record) require(field string) (string, error) {
	v, ok := r[field]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrMissingField, field)
	}
	return v, nil
}

// NormalizePlayer converts a Players row into a Player. A nil record yields
// Ghost. A blank name, or counts that are not non-negative integers with
// wins <= games, also yield Ghost: such a row cannot be rated or charted. A
// record missing one of the required columns is an error.
func NormalizePlayer(rec Record) (Player, error) {
	if rec == nil {
		return Ghost, nil
	}

	name, err := rec.require(FieldName)
	if err != nil {
		return Player{}, err
	}
	games, err := rec.require(FieldGameCount)
	if err != nil {
		return Player{}, err
	}
	wins, err := rec.require(FieldWinCount)
	if err != nil {
		return Player{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Ghost, nil
	}
	gameCount, ok := parseCount(games)
	if !ok {
		return Ghost, nil
	}
	winCount, ok := parseCount(wins)
	if !ok || winCount > gameCount {
		return Ghost, nil
	}

	key := PlayerKey(strings.TrimSpace(rec[FieldPlayerID]))
	if key == "" {
		key = KeyForName(name)
	}

	return Player{
		Key:       key,
		Name:      name,
		GameCount: gameCount,
		WinCount:  winCount,
	}, nil
}

// NormalizeGame converts a Games row and its linked players into a Game.
// Unparsable scores and dates are kept as invalid values for the rating
// pass to judge; only a missing column is an error.
func NormalizeGame(raw RawGame) (Game, error) {
	fields := make(map[string]string, 4)
	for _, f := range []string{FieldGameID, FieldDate, FieldBlueScore,
		FieldOrangeScore} {
		v, err := raw.Fields.require(f)
		if err != nil {
			return Game{}, err
		}
		fields[f] = v
	}

	g := Game{
		ID:          strings.TrimSpace(fields[FieldGameID]),
		Date:        fields[FieldDate],
		PlayedAt:    parseDateOrZero(fields[FieldDate]),
		BlueScore:   parseScore(fields[FieldBlueScore]),
		OrangeScore: parseScore(fields[FieldOrangeScore]),
	}

	for _, s := range Slots {
		p, err := NormalizePlayer(raw.Links[s])
		if err != nil {
			return Game{}, fmt.Errorf("%v: %w", s, err)
		}
		switch s {
		case BlueBack:
			g.BlueBack = p
		case BlueFront:
			g.BlueFront = p
		case OrangeFront:
			g.OrangeFront = p
		case OrangeBack:
			g.OrangeBack = p
		}
	}

	return g, nil
}

// NormalizePlayers converts every Players row, stopping at the first row
// that breaks the table contract.
func NormalizePlayers(recs []Record) ([]Player, error) {
	players := make([]Player, 0, len(recs))
	for i, rec := range recs {
		p, err := NormalizePlayer(rec)
		if err != nil {
			return nil, fmt.Errorf("player row %d: %w", i+1, err)
		}
		players = append(players, p)
	}

	return players, nil
}

// NormalizeGames converts every Games row in order, stopping at the first
// row that breaks the table contract.
func NormalizeGames(raws []RawGame) ([]Game, error) {
	games := make([]Game, 0, len(raws))
	for i, raw := range raws {
		g, err := NormalizeGame(raw)
		if err != nil {
			return nil, fmt.Errorf("game row %d (id %q): %w", i+1,
				raw.Fields[FieldGameID], err)
		}
		games = append(games, g)
	}

	return games, nil
}

func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseScore(s string) Score {
	n, ok := parseCount(s)
	return Score{Goals: n, Valid: ok}
}

// parseDateOrZero returns the parsed date, or the zero time for blank,
// "null" or unrecognized values.
func parseDateOrZero(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
