package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"chapter-quiz/internal/cli"
)

func main() {
	defaultBanks := os.Getenv("BANK_DIR")
	if defaultBanks == "" {
		defaultBanks = "."
	}

	banks := flag.String("banks", defaultBanks, "directory holding the question bank JSON files")
	db := flag.String("db", os.Getenv("RESULTS_DB"), "sqlite path for the run archive (empty disables it)")
	seed := flag.Int64("seed", 0, "shuffle seed (0 = time-based)")
	flag.Parse()

	err := cli.Run(context.Background(), os.Stdin, os.Stdout, cli.Config{
		BankDir:   *banks,
		ResultsDB: *db,
		Seed:      *seed,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
