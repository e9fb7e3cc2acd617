/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package sheet

import (
	"strings"

	"github.com/mikeb26/foosstats/foos"
)

// Link pairs every Games row with the Players rows named in its team slots.
//
// Exports render a linked record as the linked row's primary field (the
// player's name); a cell linking several records separates them with commas
// and only the first is used. A blank cell, or a name with no Players row,
// leaves the slot unlinked.
func Link(games *Table, players *Table) []foos.RawGame {
	byName := make(map[foos.PlayerKey]foos.Record, len(players.Rows))
	for _, rec := range players.Rows {
		key := foos.KeyForName(rec[foos.FieldName])
		if key == "" {
			continue
		}
		if _, dup := byName[key]; !dup {
			byName[key] = rec
		}
	}

	raws := make([]foos.RawGame, 0, len(games.Rows))
	for _, rec := range games.Rows {
		raw := foos.RawGame{Fields: rec, Links: make(map[foos.Slot]foos.Record)}
		for _, s := range foos.Slots {
			name := firstLink(rec[s.String()])
			if name == "" {
				continue
			}
			if p, ok := byName[foos.KeyForName(name)]; ok {
				raw.Links[s] = p
			}
		}
		raws = append(raws, raw)
	}

	return raws
}

func firstLink(cell string) string {
	if i := strings.IndexByte(cell, ','); i >= 0 {
		cell = cell[:i]
	}
	return strings.Trim(strings.TrimSpace(cell), `"`)
}
