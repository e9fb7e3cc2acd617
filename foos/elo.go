/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package foos

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
)

// Team Elo for 2v2 games. Each team's strength is the mean of its two
// players' ratings; both players on a team then move by the same
// K*(actual-expected) from their own rating, so regular partners still drift
// apart over time.
//
// Games are rated in the order supplied. Nothing here sorts: callers with an
// unordered source should use SortChronological first.

const (
	DefaultInitialRating = 1500.0
	DefaultKFactor       = 32.0
	// DefaultWinningScore is the house rule for a completed game: first team
	// to 10.
	DefaultWinningScore = 10
)

// Outcome selects how a game's result becomes an actual score. Exactly one
// rule applies to a whole pass.
type Outcome int

const (
	// OutcomeCompletion scores the winner 1 and the loser 0, and only rates
	// games where one team reached the winning score.
	OutcomeCompletion Outcome = iota
	// OutcomeGoalShare scores each team by its share of the goals and rates
	// any untied game.
	OutcomeGoalShare
)

func (o Outcome) String() string {
	if o == OutcomeCompletion {
		return "completion"
	} else if o == OutcomeGoalShare {
		return "goal_share"
	} else {
		return "?"
	}
}

func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "completion":
		return OutcomeCompletion, nil
	case "goal_share", "goalshare", "goal-share":
		return OutcomeGoalShare, nil
	default:
		return 0, fmt.Errorf("unknown outcome rule %q: want completion|goal_share", s)
	}
}

type Config struct {
	InitialRating float64
	KFactor       float64
	WinningScore  int
	Outcome       Outcome
	// Logger receives a debug event for every skipped game. The zero Logger
	// discards everything.
	Logger zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		InitialRating: DefaultInitialRating,
		KFactor:       DefaultKFactor,
		WinningScore:  DefaultWinningScore,
		Outcome:       OutcomeCompletion,
		Logger:        zerolog.Nop(),
	}
}

// Ratings maps each player seen so far to their current rating.
type Ratings map[PlayerKey]float64

func (r Ratings) Clone() Ratings {
	out := make(Ratings, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type EloChange struct {
	Before float64
	After  float64
	Change float64
}

func newEloChange(before, after float64) EloChange {
	return EloChange{Before: before, After: after, Change: after - before}
}

// RatedGame is a game accepted by the rating pass together with what it did
// to each participant.
type RatedGame struct {
	Game
	// Changes is indexed by Slot.
	Changes        [len(Slots)]EloChange
	BlueExpected   float64
	OrangeExpected float64
}

func (rg *RatedGame) Change(s Slot) EloChange {
	return rg.Changes[s]
}

type SkippedGame struct {
	Game   Game
	Reason error
}

type Result struct {
	Ratings Ratings
	// Names holds the most recent display name seen for each rated key.
	Names   map[PlayerKey]string
	Games   []RatedGame
	Skipped []SkippedGame
}

// Name returns the display name for key, falling back to the key itself for
// players that only appear in a seed map.
func (res *Result) Name(key PlayerKey) string {
	if n, ok := res.Names[key]; ok {
		return n
	}
	return string(key)
}

// Lookup finds the key of a rated player by display name or key.
func (res *Result) Lookup(name string) (PlayerKey, bool) {
	want := KeyForName(name)
	if _, ok := res.Ratings[want]; ok {
		return want, true
	}
	if _, ok := res.Ratings[PlayerKey(strings.TrimSpace(name))]; ok {
		return PlayerKey(strings.TrimSpace(name)), true
	}
	for k, n := range res.Names {
		if KeyForName(n) == want {
			return k, true
		}
	}
	return "", false
}

// expectedScore is the logistic Elo expectation of a side rated myRating
// against one rated oppRating.
func expectedScore(myRating float64, oppRating float64) float64 {
	exp := math.Pow(10, (oppRating-myRating)/400.0)
	return 1.0 / (exp + 1.0)
}

// CheckGame reports why g cannot be rated under cfg, or nil if it can.
func CheckGame(g Game, cfg Config) error {
	seen := make(map[PlayerKey]Slot, len(Slots))
	for _, s := range Slots {
		p := g.Player(s)
		if p.IsGhost() {
			return fmt.Errorf("%w: %v", ErrMissingParticipant, s)
		}
		if prior, ok := seen[p.Key]; ok {
			return fmt.Errorf("%w: %v in %v and %v", ErrDuplicateParticipant,
				p.Name, prior, s)
		}
		seen[p.Key] = s
	}

	if !g.BlueScore.Valid || !g.OrangeScore.Valid {
		return ErrMalformedScore
	}
	blue, orange := g.BlueScore.Goals, g.OrangeScore.Goals
	if blue == orange {
		return fmt.Errorf("%w: tied %d-%d", ErrDegenerateOutcome, blue, orange)
	}
	if cfg.Outcome == OutcomeCompletion && blue != cfg.WinningScore &&
		orange != cfg.WinningScore {
		return fmt.Errorf("%w: %d-%d never reached %d", ErrDegenerateOutcome,
			blue, orange, cfg.WinningScore)
	}

	return nil
}

// actualScores returns the blue and orange actual scores of a valid game.
func actualScores(g *Game, outcome Outcome) (float64, float64) {
	var blue float64
	if outcome == OutcomeGoalShare {
		total := g.BlueScore.Goals + g.OrangeScore.Goals
		blue = float64(g.BlueScore.Goals) / float64(total)
	} else if g.BlueScore.Goals > g.OrangeScore.Goals {
		blue = 1.0
	}
	return blue, 1.0 - blue
}

// ComputeRatings runs one rating pass over games in the supplied order.
// start seeds the ratings of already known players and may be nil; it is
// never modified. Invalid games change nothing and are listed in
// Result.Skipped.
func ComputeRatings(games []Game, start Ratings, cfg Config) *Result {
	res := &Result{
		Ratings: start.Clone(),
		Names:   make(map[PlayerKey]string),
	}

	for _, g := range games {
		if err := CheckGame(g, cfg); err != nil {
			cfg.Logger.Debug().
				Str("game_id", g.ID).
				Str("date", g.Date).
				Err(err).
				Msg("skipping game")
			res.Skipped = append(res.Skipped, SkippedGame{Game: g, Reason: err})
			continue
		}
		res.Games = append(res.Games, res.rate(g, cfg))
	}

	return res
}

func (res *Result) rate(g Game, cfg Config) RatedGame {
	var before [len(Slots)]float64
	for _, s := range Slots {
		p := g.Player(s)
		r, ok := res.Ratings[p.Key]
		if !ok {
			r = cfg.InitialRating
		}
		before[s] = r
		res.Names[p.Key] = p.Name
	}

	blueTeam := (before[BlueBack] + before[BlueFront]) / 2.0
	orangeTeam := (before[OrangeFront] + before[OrangeBack]) / 2.0

	rg := RatedGame{
		Game:           g,
		BlueExpected:   expectedScore(blueTeam, orangeTeam),
		OrangeExpected: expectedScore(orangeTeam, blueTeam),
	}
	blueActual, orangeActual := actualScores(&g, cfg.Outcome)

	for _, s := range Slots {
		expected, actual := rg.BlueExpected, blueActual
		if s.Team() == Orange {
			expected, actual = rg.OrangeExpected, orangeActual
		}
		after := before[s] + cfg.KFactor*(actual-expected)
		res.Ratings[g.Player(s).Key] = after
		rg.Changes[s] = newEloChange(before[s], after)
	}

	return rg
}
