/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mikeb26/foosstats/foos"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":        handleHelp,
	"leaderboard": handleLeaderboard,
	"history":     handleHistory,
	"buckets":     handleBuckets,
	"player":      handlePlayer,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func handleLeaderboard(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("leaderboard", flag.ExitOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	sess := mustLoadSession(ctx, cf)
	standings := foos.Standings(sess.result)
	if cf.json {
		printJSON(standings)
		return
	}
	fmt.Print(foos.BuildLeaderboardOutput(standings))
}

func handleHistory(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	sess := mustLoadSession(ctx, cf)
	if cf.json {
		views := make([]gameView, 0, len(sess.result.Games))
		for i := range sess.result.Games {
			views = append(views, newGameView(&sess.result.Games[i]))
		}
		printJSON(views)
		return
	}
	fmt.Print(foos.BuildHistoryOutput(sess.result.Games))
}

func handleBuckets(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("buckets", flag.ExitOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	sess := mustLoadSession(ctx, cf)
	buckets := foos.BuildBuckets(sess.players)
	if cf.json {
		printJSON(buckets)
		return
	}
	fmt.Print(foos.BuildBucketsOutput(buckets))
}

func handlePlayer(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("player", flag.ExitOnError)
	cf := addCommonFlags(fs)
	name := fs.String("name", "", "Player name or Player ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --name.")
		fs.Usage()
		os.Exit(1)
	}

	sess := mustLoadSession(ctx, cf)
	key, ok := sess.result.Lookup(*name)
	if !ok {
		fmt.Fprintf(os.Stderr, "No rated player named %q\n", *name)
		os.Exit(1)
	}
	var st foos.Standing
	for _, s := range foos.Standings(sess.result) {
		if s.Key == key {
			st = s
			break
		}
	}
	history := foos.PlayerHistory(sess.result, key)

	if cf.json {
		views := make([]playerGameView, 0, len(history))
		for _, pg := range history {
			views = append(views, newPlayerGameView(pg))
		}
		printJSON(struct {
			Standing foos.Standing    `json:"standing"`
			Games    []playerGameView `json:"games"`
		}{st, views})
		return
	}
	fmt.Print(foos.BuildPlayerOutput(st, history))
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
