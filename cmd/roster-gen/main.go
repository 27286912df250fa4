package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/valuation"
	"github.com/okian/portalrank/internal/replay"
	"github.com/okian/portalrank/internal/roster"
	"github.com/okian/portalrank/internal/sample"
	"github.com/okian/portalrank/pkg/logger"
)

// Default configuration constants.
const (
	defaultTopN        = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRetries     = 5
	defaultSettle      = 2 * time.Second
	defaultRunDeadline = 10 * time.Minute
)

func main() {
	var (
		seed    = flag.Int64("seed", 0, "Seed for the generated sample league")
		input   = flag.String("input", "", "Read the league from this CSV instead of generating one")
		output  = flag.String("output", "-", "Write the league as CSV to this file (\"-\" for stdout, \"\" to skip)")
		values  = flag.Bool("values", true, "Include player values and scores in the CSV")
		baseURL = flag.String("url", "", "Replay the league against this server (e.g. http://localhost:9080)")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		topN    = flag.Int("top", defaultTopN, "Number of ranked teams to fetch after replay")
		verbose = flag.Bool("verbose", false, "Log every failed submission")
	)
	flag.Parse()

	if err := logger.InitWithWriter(os.Stderr, logger.FormatText); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunDeadline)
	defer cancel()

	teams, err := league(*input, *seed)
	if err != nil {
		logger.Get().Fatal(ctx, "load league failed", logger.Error(err))
	}

	if *output != "" {
		if err := writeCSV(*output, teams, *values); err != nil {
			logger.Get().Fatal(ctx, "write csv failed", logger.Error(err))
		}
	}

	if *baseURL == "" {
		return
	}
	cfg := &replay.Config{
		BaseURL: *baseURL,
		Workers: *workers,
		Timeout: *timeout,
		TopN:    *topN,
		Retries: defaultRetries,
		Settle:  defaultSettle,
		Verbose: *verbose,
	}
	stats, err := replay.Run(ctx, cfg, sample.Transfers(teams, *seed, time.Now().UTC()))
	if err != nil {
		logger.Get().Fatal(ctx, "replay failed", logger.Error(err))
	}
	if stats.Failed > 0 {
		logger.Get().Fatal(ctx, "some transfers were not accepted", logger.Int64("failed", stats.Failed))
	}
}

func league(input string, seed int64) ([]model.Team, error) {
	if input != "" {
		return roster.ReadFile(input)
	}
	return sample.New(sample.WithSeed(seed)).League(), nil
}

func writeCSV(path string, teams []model.Team, withValues bool) error {
	var v roster.Valuer
	if withValues {
		v = valuation.New()
	}

	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	return roster.Write(w, teams, v)
}
