/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package foos

import "sort"

// Standing is one row of the rating leaderboard. Games and Wins count only
// games accepted by the rating pass.
type Standing struct {
	Rank   int       `json:"rank"`
	Key    PlayerKey `json:"key"`
	Name   string    `json:"name"`
	Rating float64   `json:"rating"`
	Games  int       `json:"games"`
	Wins   int       `json:"wins"`
}

// Standings ranks every rated player, highest rating first. Players with
// equal ratings share a rank and are listed by name.
func Standings(res *Result) []Standing {
	type tally struct{ games, wins int }
	tallies := make(map[PlayerKey]*tally, len(res.Ratings))
	for i := range res.Games {
		rg := &res.Games[i]
		winner := rg.Winner()
		for _, s := range Slots {
			key := rg.Player(s).Key
			t, ok := tallies[key]
			if !ok {
				t = &tally{}
				tallies[key] = t
			}
			t.games++
			if s.Team() == winner {
				t.wins++
			}
		}
	}

	standings := make([]Standing, 0, len(res.Ratings))
	for key, rating := range res.Ratings {
		st := Standing{Key: key, Name: res.Name(key), Rating: rating}
		if t, ok := tallies[key]; ok {
			st.Games, st.Wins = t.games, t.wins
		}
		standings = append(standings, st)
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Rating != standings[j].Rating {
			return standings[i].Rating > standings[j].Rating
		}
		if standings[i].Name != standings[j].Name {
			return standings[i].Name < standings[j].Name
		}
		return standings[i].Key < standings[j].Key
	})

	for i := range standings {
		if i > 0 && standings[i].Rating == standings[i-1].Rating {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}
	}

	return standings
}

// PlayerGame is one rated game from a single player's point of view.
type PlayerGame struct {
	Game   Game
	Slot   Slot
	Won    bool
	Change EloChange
}

// PlayerHistory returns the rated games key played, in rating order.
func PlayerHistory(res *Result, key PlayerKey) []PlayerGame {
	var history []PlayerGame
	for i := range res.Games {
		rg := &res.Games[i]
		for _, s := range Slots {
			if rg.Player(s).Key != key {
				continue
			}
			history = append(history, PlayerGame{
				Game:   rg.Game,
				Slot:   s,
				Won:    rg.Winner() == s.Team(),
				Change: rg.Change(s),
			})
			break
		}
	}

	return history
}
