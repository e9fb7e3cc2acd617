/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package sheet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mikeb26/foosstats/foos"
	"github.com/mikeb26/foosstats/internal"
	"github.com/xuri/excelize/v2"
)

var gamesRows = [][]string{
	{"ID", "Date", "Blue Score", "Orange Score", "Blue Back", "Blue Front",
		"Orange Front", "Orange Back"},
	{"1", "2019-03-14", "10", "4", "Ann", "Bob", "Cat", "Dan"},
	{"2", "2019-03-15", "10", "7", "ann, Bob", "", "Cat", "Nobody"},
}

var playersRows = [][]string{
	{"Player ID", "Name", "Game Count", "Win Count"},
	{"p1", "Ann", "2", "2"},
	{"p2", "Bob", "2", "1"},
	{"p3", "Cat", "2", "0"},
	{"p4", "Dan", "1", "0"},
}

func writeWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", DefaultGamesSheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if _, err := f.NewSheet(DefaultPlayersSheet); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	for sheetName, rows := range map[string][][]string{
		DefaultGamesSheet:   gamesRows,
		DefaultPlayersSheet: playersRows,
	} {
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			vals := make([]interface{}, len(row))
			for j, v := range row {
				vals[j] = v
			}
			if err := f.SetSheetRow(sheetName, cell, &vals); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %v: %v", p, err)
	}
	return p
}

func TestReadCSV(t *testing.T) {
	in := "\ufeffID, Date ,Blue Score,Orange Score\n" +
		"1,2019-03-14,10,4\n" +
		",,,\n" +
		"2,2019-03-15\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	wantHeader := []string{"ID", "Date", "Blue Score", "Orange Score"}
	if diff := cmp.Diff(wantHeader, tbl.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	want := []foos.Record{
		{"ID": "1", "Date": "2019-03-14", "Blue Score": "10", "Orange Score": "4"},
		{"ID": "2", "Date": "2019-03-15", "Blue Score": "", "Orange Score": ""},
	}
	if diff := cmp.Diff(want, tbl.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Errorf("expected error for empty CSV")
	}
}

func TestReadXLSX(t *testing.T) {
	data := writeWorkbook(t)

	players, err := ReadXLSX(strings.NewReader(string(data)), DefaultPlayersSheet)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if players.Name != DefaultPlayersSheet || len(players.Rows) != 4 {
		t.Fatalf("players = %v with %d rows", players.Name, len(players.Rows))
	}
	if got := players.Rows[1][foos.FieldName]; got != "Bob" {
		t.Errorf("second player = %q; want Bob", got)
	}

	first, err := ReadXLSX(strings.NewReader(string(data)), "")
	if err != nil {
		t.Fatalf("ReadXLSX first sheet: %v", err)
	}
	if first.Name != DefaultGamesSheet {
		t.Errorf("first sheet = %q; want %q", first.Name, DefaultGamesSheet)
	}
	// the Blue Front cell of game 2 is blank but still present
	if v, ok := first.Rows[1]["Blue Front"]; !ok || v != "" {
		t.Errorf("blank cell = %q, %v", v, ok)
	}

	if _, err := ReadXLSX(strings.NewReader(string(data)), "Nope"); err == nil {
		t.Errorf("expected error for a missing sheet")
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		loc  string
		want Format
	}{
		{"games.csv", FormatCSV},
		{"league.XLSX", FormatXLSX},
		{"https://example.com/export/league.xlsx?sheet=1", FormatXLSX},
		{"https://example.com/export?format=csv", FormatCSV},
		{"games", FormatCSV},
	}
	for _, tc := range tests {
		if got := FormatOf(tc.loc); got != tc.want {
			t.Errorf("FormatOf(%q) = %v; want %v", tc.loc, got, tc.want)
		}
	}
}

func TestLink(t *testing.T) {
	games, err := newTable(DefaultGamesSheet, gamesRows)
	if err != nil {
		t.Fatal(err)
	}
	players, err := newTable(DefaultPlayersSheet, playersRows)
	if err != nil {
		t.Fatal(err)
	}

	raws := Link(games, players)
	if len(raws) != 2 {
		t.Fatalf("linked %d games; want 2", len(raws))
	}

	if len(raws[0].Links) != 4 {
		t.Errorf("game 1 links = %d; want 4", len(raws[0].Links))
	}
	if got := raws[0].Links[foos.OrangeBack][foos.FieldPlayerID]; got != "p4" {
		t.Errorf("game 1 Orange Back = %q; want p4", got)
	}

	// multi-link cell keeps the first name, matched case-insensitively
	if got := raws[1].Links[foos.BlueBack][foos.FieldPlayerID]; got != "p1" {
		t.Errorf("game 2 Blue Back = %q; want p1", got)
	}
	if _, ok := raws[1].Links[foos.BlueFront]; ok {
		t.Errorf("blank Blue Front should be unlinked")
	}
	if _, ok := raws[1].Links[foos.OrangeBack]; ok {
		t.Errorf("unknown Orange Back should be unlinked")
	}
}

func TestLoadWorkbook(t *testing.T) {
	p := writeTemp(t, "league.xlsx", writeWorkbook(t))

	snap, err := Load(context.Background(), Options{Games: p})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Players) != 4 || len(snap.Games) != 2 {
		t.Fatalf("snapshot = %d players, %d games", len(snap.Players),
			len(snap.Games))
	}

	games, err := foos.NormalizeGames(snap.Games)
	if err != nil {
		t.Fatalf("NormalizeGames: %v", err)
	}
	res := foos.ComputeRatings(games, nil, foos.DefaultConfig())
	if len(res.Games) != 1 || len(res.Skipped) != 1 {
		t.Fatalf("rated %d, skipped %d; want 1, 1", len(res.Games),
			len(res.Skipped))
	}
	if got := res.Ratings["p1"]; got != 1516 {
		t.Errorf("Ann = %v; want 1516", got)
	}
	if !errors.Is(res.Skipped[0].Reason, foos.ErrMissingParticipant) {
		t.Errorf("skip reason = %v", res.Skipped[0].Reason)
	}
}

func TestLoadCSV(t *testing.T) {
	var gb, pb strings.Builder
	for _, r := range gamesRows {
		gb.WriteString(strings.Join(quoteAll(r), ",") + "\n")
	}
	for _, r := range playersRows {
		pb.WriteString(strings.Join(r, ",") + "\n")
	}
	gp := writeTemp(t, "games.csv", []byte(gb.String()))
	pp := writeTemp(t, "players.csv", []byte(pb.String()))

	if _, err := Load(context.Background(), Options{Games: gp}); !errors.Is(err,
		ErrNoPlayersSource) {
		t.Errorf("Load without players = %v; want ErrNoPlayersSource", err)
	}

	snap, err := Load(context.Background(), Options{Games: gp, Players: pp})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := snap.Games[1].Links[foos.BlueBack][foos.FieldName]; got != "Ann" {
		t.Errorf("game 2 Blue Back = %q; want Ann", got)
	}
}

func quoteAll(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = `"` + v + `"`
	}
	return out
}

func TestOpenRemote(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/players.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("Player ID,Name,Game Count,Win Count\np1,Ann,1,1\n"))
	}))
	defer srv.Close()

	tbl, err := ReadTable(context.Background(), srv.URL+"/players.csv", "",
		srv.Client())
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0][foos.FieldName] != "Ann" {
		t.Errorf("rows = %v", tbl.Rows)
	}
	if gotUA != internal.UserAgent {
		t.Errorf("User-Agent = %q; want %q", gotUA, internal.UserAgent)
	}

	if _, err := Open(context.Background(), srv.URL+"/missing.csv",
		srv.Client()); err == nil {
		t.Errorf("expected error for HTTP 404")
	}
}

func TestIsRemote(t *testing.T) {
	if !IsRemote("HTTPS://example.com/a.csv") || IsRemote("/tmp/a.csv") {
		t.Errorf("IsRemote misclassified a location")
	}
}
