package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"trade-backtest-lab/internal/backtest"
	"trade-backtest-lab/internal/config"
	"trade-backtest-lab/internal/domain"
	"trade-backtest-lab/internal/marketdata"
	"trade-backtest-lab/internal/util"
)

func main() {
	configPath := flag.String("config", "", "Batch run YAML config (required)")
	outputJSON := flag.Bool("json", false, "Output the full batch result as JSON")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "--config is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := util.NewLogger(cfg.LogLevel)

	// A series whose file is missing is skipped, not fatal: partial
	// data is expected across a fleet of instruments.
	series := make(map[string][]*domain.Bar, len(cfg.Series))
	for sym, path := range cfg.Series {
		bars, err := marketdata.LoadCSV(path)
		if err != nil {
			logger.Warn().Err(err).Str("symbol", sym).Str("path", path).Msg("skipping series")
			continue
		}
		series[sym] = bars
	}

	runner := backtest.NewRunner(backtest.DefaultAdapters(), logger)
	result, err := runner.RunBatch(context.Background(), series, cfg.Strategy, backtest.RunOptions{
		TargetVol:      cfg.TargetVol,
		StopMultiplier: cfg.StopMultiplier,
		StopLookback:   cfg.StopLookback,
		Workers:        cfg.Workers,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("batch failed")
	}
	logger.Info().Int("series", len(result.Summary)).Msg("batch complete")

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatal().Err(err).Msg("encode result")
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tCAGR\tSHARPE\tMAXDD\tEXPOSURE\tFINAL EQ\tTRADES")
	for _, row := range result.Summary {
		fmt.Fprintf(w, "%s\t%.4f\t%.2f\t%.4f\t%.3f\t%.4f\t%d\n",
			row.Symbol, row.Stats.CAGR, row.Stats.Sharpe, row.Stats.MaxDrawdown,
			row.Stats.AverageExposure, row.Stats.FinalEquity, row.Stats.TradesApprox)
	}
	w.Flush()
}
