/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package foos

import (
	"sort"
	"time"
)

type Team int

const (
	Blue Team = iota
	Orange
)

func (t Team) String() string {
	if t == Blue {
		return "Blue"
	} else if t == Orange {
		return "Orange"
	} else {
		return "?"
	}
}

// Slot is one of the four fixed positions in a game. The String form matches
// the column header used by the league's Games table.
type Slot int

const (
	BlueBack Slot = iota
	BlueFront
	OrangeFront
	OrangeBack
)

// Slots lists every position in table column order.
var Slots = [...]Slot{BlueBack, BlueFront, OrangeFront, OrangeBack}

func (s Slot) String() string {
	switch s {
	case BlueBack:
		return "Blue Back"
	case BlueFront:
		return "Blue Front"
	case OrangeFront:
		return "Orange Front"
	case OrangeBack:
		return "Orange Back"
	default:
		return "?"
	}
}

func (s Slot) Team() Team {
	if s == BlueBack || s == BlueFront {
		return Blue
	}
	return Orange
}

// Score is a team's recorded goal count. Valid is false when the source
// value was not a non-negative integer.
type Score struct {
	Goals int
	Valid bool
}

type Game struct {
	ID string
	// Date is the value as recorded; PlayedAt is its parsed form, or the zero
	// time when the value could not be parsed.
	Date     string
	PlayedAt time.Time

	BlueScore   Score
	OrangeScore Score

	BlueBack    Player
	BlueFront   Player
	OrangeFront Player
	OrangeBack  Player
}

// Player returns the participant in slot s.
func (g *Game) Player(s Slot) Player {
	switch s {
	case BlueBack:
		return g.BlueBack
	case BlueFront:
		return g.BlueFront
	case OrangeFront:
		return g.OrangeFront
	default:
		return g.OrangeBack
	}
}

// Score returns the score of team t.
func (g *Game) Score(t Team) Score {
	if t == Blue {
		return g.BlueScore
	}
	return g.OrangeScore
}

// Winner returns the team with more goals. It is only meaningful for games
// that pass CheckGame.
func (g *Game) Winner() Team {
	if g.BlueScore.Goals > g.OrangeScore.Goals {
		return Blue
	}
	return Orange
}

// SortChronological orders games by PlayedAt, keeping the supplied order for
// games recorded at the same time. Games with an unparsable date go last.
func SortChronological(games []Game) {
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i].PlayedAt, games[j].PlayedAt
		if a.IsZero() {
			return false
		}
		return b.IsZero() || a.Before(b)
	})
}
