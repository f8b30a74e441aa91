package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"trade-backtest-lab/internal/backtest"
	"trade-backtest-lab/internal/domain"
	"trade-backtest-lab/internal/marketdata"
	"trade-backtest-lab/internal/signal"
	"trade-backtest-lab/internal/util"
)

func main() {
	csvPath := flag.String("csv", "", "Daily bar CSV file (required)")
	strategy := flag.String("strategy", "", "Strategy: SMA_CROSSOVER or RSI_MEAN_REVERSION (required)")

	// Strategy parameters (0 keeps the default)
	fast := flag.Int("fast", 0, "Fast moving-average window (SMA_CROSSOVER)")
	slow := flag.Int("slow", 0, "Slow moving-average window (SMA_CROSSOVER)")
	lookback := flag.Int("lookback", 0, "Oscillator lookback (RSI_MEAN_REVERSION)")
	buyLT := flag.Float64("buy-lt", 0, "Buy when oscillator below this (RSI_MEAN_REVERSION)")
	sellGT := flag.Float64("sell-gt", 0, "Sell when oscillator above this (RSI_MEAN_REVERSION)")
	volWindow := flag.Int("vol-window", 0, "Realized volatility window")

	targetVol := flag.Float64("target-vol", domain.DefaultTargetVol, "Annualized target volatility")
	stopMult := flag.Float64("stop-mult", 0, "Trailing stop multiple of ATR; 0 disables the stop")
	stopLookback := flag.Int("stop-lookback", 0, "ATR window for the trailing stop")

	outputJSON := flag.Bool("json", false, "Output the full daily table and stats as JSON")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger := util.NewLogger(*logLevel)

	if *csvPath == "" {
		logger.Fatal().Msg("--csv is required")
	}
	if *strategy == "" {
		logger.Fatal().Msg("--strategy is required")
	}
	*strategy = strings.ToUpper(*strategy)
	if err := signal.ValidateVariant(*strategy); err != nil {
		logger.Fatal().Err(err).Msg("invalid strategy")
	}

	bars, err := marketdata.LoadCSV(*csvPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *csvPath).Msg("load bars")
	}
	logger.Info().Int("bars", len(bars)).Str("strategy", *strategy).Msg("running backtest")

	cfg := domain.StrategyConfig{
		Variant:       *strategy,
		FastWindow:    *fast,
		SlowWindow:    *slow,
		Lookback:      *lookback,
		BuyThreshold:  *buyLT,
		SellThreshold: *sellGT,
		VolWindow:     *volWindow,
	}
	opts := backtest.RunOptions{
		TargetVol:    *targetVol,
		StopLookback: *stopLookback,
	}
	if *stopMult > 0 {
		opts.StopMultiplier = stopMult
	}

	runner := backtest.NewRunner(backtest.DefaultAdapters(), logger)
	result, err := runner.Run(context.Background(), bars, cfg, opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("backtest failed")
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatal().Err(err).Msg("encode result")
		}
		return
	}

	s := result.Stats
	fmt.Printf("Bars:             %d\n", result.Table.Len())
	fmt.Printf("CAGR:             %.4f\n", s.CAGR)
	fmt.Printf("Sharpe:           %.2f\n", s.Sharpe)
	fmt.Printf("Max drawdown:     %.4f\n", s.MaxDrawdown)
	fmt.Printf("Average exposure: %.3f\n", s.AverageExposure)
	fmt.Printf("Final equity:     %.4f\n", s.FinalEquity)
	fmt.Printf("Trades (approx):  %d\n", s.TradesApprox)
}
