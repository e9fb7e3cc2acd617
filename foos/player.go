/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package foos rates foosball players from a league's 2v2 match history and
// groups them by experience and win rate for charting.
package foos

import "strings"

// PlayerKey identifies a player across games. Rating state is keyed by
// PlayerKey rather than by display name so that a renamed player or two
// players whose names differ only in case or spacing are handled explicitly.
type PlayerKey string

// GhostName is the display name of the placeholder used for an unlinked
// team slot.
const GhostName = "???"

// Ghost stands in for a team slot with no resolvable player. Any game with a
// Ghost participant is excluded from rating.
var Ghost = Player{Name: GhostName}

type Player struct {
	Key       PlayerKey
	Name      string
	GameCount int
	WinCount  int
}

// IsGhost reports whether p is the placeholder player. Real players always
// carry a non-empty key.
func (p Player) IsGhost() bool {
	return p.Key == ""
}

// WinPercent returns 100*WinCount/GameCount, or 0 for a player with no games.
func (p Player) WinPercent() float64 {
	if p.GameCount <= 0 {
		return 0
	}
	return 100 * float64(p.WinCount) / float64(p.GameCount)
}

// KeyForName derives the identity key used when a record has no explicit
// player id.
func KeyForName(name string) PlayerKey {
	return PlayerKey(strings.ToLower(strings.Join(strings.Fields(name), " ")))
}
