/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package foos

import (
	"math"
	"sort"
	"strings"
)

// Bucket is one point of the "Win % vs Games Played" scatter chart. Label
// lists every player at that point, one per line.
type Bucket struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label"`
}

type cell struct {
	games  int
	winPct int
}

// BuildBuckets groups players by (games played, floor of win percent). Only
// occupied cells are returned, ordered by games then win percent; within a
// cell names keep their input order. Ghost players are left out.
func BuildBuckets(players []Player) []Bucket {
	names := make(map[cell][]string)
	for _, p := range players {
		if p.IsGhost() {
			continue
		}
		c := cell{games: p.GameCount, winPct: int(math.Floor(p.WinPercent()))}
		names[c] = append(names[c], p.Name)
	}

	cells := make([]cell, 0, len(names))
	for c := range names {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].games != cells[j].games {
			return cells[i].games < cells[j].games
		}
		return cells[i].winPct < cells[j].winPct
	})

	buckets := make([]Bucket, 0, len(cells))
	for _, c := range cells {
		buckets = append(buckets, Bucket{
			X:     c.games,
			Y:     c.winPct,
			Label: strings.Join(names[c], "\n"),
		})
	}

	return buckets
}
