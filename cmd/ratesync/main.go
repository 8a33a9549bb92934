// Command ratesync loads a daily exchange-rate file into the global rate
// table used to price transactions.
//
//	ratesync [-dry-run] rates.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/letehaha/budget-tracker-be-sub001/internal/config"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency/ratefile"
	currencyStore "github.com/letehaha/budget-tracker-be-sub001/internal/currency/store"
	"github.com/letehaha/budget-tracker-be-sub001/internal/database"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "parse and report without writing")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-dry-run] FILE\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), flag.Arg(0), *dryRun); err != nil {
		slog.Error("rate sync failed", "file", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, dryRun bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening rate file: %w", err)
	}
	defer f.Close()

	res, err := ratefile.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing rate file: %w", err)
	}

	if !dryRun && len(res.Rates) > 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to load .env", "error", err)
		}

		cfg, err := config.LoadDB()
		if err != nil {
			return err
		}

		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()

		if err := currencyStore.New(db).UpsertDailyRates(ctx, res.Rates); err != nil {
			return err
		}
	}

	fmt.Print(renderReport(path, res, dryRun))

	return nil
}
