/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package foos

import (
	"fmt"
	"strings"
)

// writeTable writes rows under header with each column padded to its widest
// cell.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if i < len(widths) && len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, c := range cells {
			if i == len(cells)-1 {
				sb.WriteString(c)
				break
			}
			sb.WriteString(fmt.Sprintf("%-*s  ", widths[i], c))
		}
		sb.WriteString("\n")
	}

	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}
}

func formatRating(r float64) string {
	return fmt.Sprintf("%.1f", r)
}

func formatChange(c EloChange) string {
	return fmt.Sprintf("%+.1f", c.Change)
}

// BuildLeaderboardOutput formats standings as an aligned table. Tied players
// after the first show no rank.
func BuildLeaderboardOutput(standings []Standing) string {
	if len(standings) == 0 {
		return "No rated games found\n"
	}

	var rows [][]string
	for i, st := range standings {
		rank := fmt.Sprintf("%v.", st.Rank)
		if i > 0 && standings[i-1].Rank == st.Rank {
			rank = ""
		}
		winPct := 0.0
		if st.Games > 0 {
			winPct = 100 * float64(st.Wins) / float64(st.Games)
		}
		rows = append(rows, []string{
			rank,
			st.Name,
			formatRating(st.Rating),
			fmt.Sprintf("%d", st.Games),
			fmt.Sprintf("%.0f%%", winPct),
		})
	}

	var sb strings.Builder
	writeTable(&sb, []string{"Place", "Name", "Rating", "Games", "Win%"}, rows)
	return sb.String()
}

// BuildHistoryOutput lists rated games in rating order with each
// participant's rating change.
func BuildHistoryOutput(games []RatedGame) string {
	if len(games) == 0 {
		return "No rated games found\n"
	}

	var rows [][]string
	for i := range games {
		rg := &games[i]
		cell := func(s Slot) string {
			return fmt.Sprintf("%v (%v)", rg.Player(s).Name,
				formatChange(rg.Change(s)))
		}
		rows = append(rows, []string{
			rg.Date,
			cell(BlueBack),
			cell(BlueFront),
			fmt.Sprintf("%d-%d", rg.BlueScore.Goals, rg.OrangeScore.Goals),
			cell(OrangeFront),
			cell(OrangeBack),
		})
	}

	var sb strings.Builder
	writeTable(&sb, []string{"Date", BlueBack.String(), BlueFront.String(),
		"Score", OrangeFront.String(), OrangeBack.String()}, rows)
	return sb.String()
}

// BuildBucketsOutput lists chart points, one line per occupant.
func BuildBucketsOutput(buckets []Bucket) string {
	if len(buckets) == 0 {
		return "No players found\n"
	}

	var rows [][]string
	for _, b := range buckets {
		for i, name := range strings.Split(b.Label, "\n") {
			games, winPct := "", ""
			if i == 0 {
				games = fmt.Sprintf("%d", b.X)
				winPct = fmt.Sprintf("%d", b.Y)
			}
			rows = append(rows, []string{games, winPct, name})
		}
	}

	var sb strings.Builder
	writeTable(&sb, []string{"Games", "Win%", "Players"}, rows)
	return sb.String()
}

// BuildPlayerOutput summarizes one player's rating and rated games.
func BuildPlayerOutput(st Standing, history []PlayerGame) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v\n", st.Name))
	sb.WriteString(fmt.Sprintf("Rating: %v (#%v)\n", formatRating(st.Rating),
		st.Rank))
	sb.WriteString(fmt.Sprintf("Record: %d-%d\n\n", st.Wins, st.Games-st.Wins))

	if len(history) == 0 {
		sb.WriteString("No rated games found\n")
		return sb.String()
	}

	var rows [][]string
	for _, pg := range history {
		result := "L"
		if pg.Won {
			result = "W"
		}
		g := pg.Game
		mine, theirs := g.Score(pg.Slot.Team()), g.Score(Blue)
		if pg.Slot.Team() == Blue {
			theirs = g.Score(Orange)
		}
		rows = append(rows, []string{
			g.Date,
			pg.Slot.String(),
			fmt.Sprintf("%v %d-%d", result, mine.Goals, theirs.Goals),
			formatRating(pg.Change.Before),
			formatChange(pg.Change),
			formatRating(pg.Change.After),
		})
	}
	writeTable(&sb, []string{"Date", "Position", "Result", "Before", "Change",
		"After"}, rows)

	return sb.String()
}
