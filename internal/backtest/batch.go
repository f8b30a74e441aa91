package backtest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"trade-backtest-lab/internal/domain"
	"trade-backtest-lab/internal/signal"
)

// maxDefaultWorkers caps the batch fan-out when RunOptions.Workers is
// left at zero.
const maxDefaultWorkers = 8

// RunBatch applies the single-series pipeline independently across a
// collection of named series and aggregates per-name statistics into one
// summary table. Identifiers are processed in sorted order so results
// are deterministic regardless of map iteration.
//
// Missing or empty series are skipped rather than failing: partial data
// is expected across a fleet of instruments, and the same applies to a
// series rejected with ErrInsufficientData. Any other failure aborts the
// whole batch, since it reflects a configuration or adapter error shared
// by every series. The strategy variant is validated up front so an
// invalid configuration fails before any computation.
func (r *Runner) RunBatch(ctx context.Context, series map[string][]*domain.Bar, cfg domain.StrategyConfig, opts RunOptions) (*domain.BatchResult, error) {
	cfg = cfg.WithDefaults()
	if err := signal.ValidateVariant(cfg.Variant); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	symbols := make([]string, 0, len(series))
	for sym := range series {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	workers := opts.Workers
	if workers <= 0 {
		workers = len(symbols)
		if workers > maxDefaultWorkers {
			workers = maxDefaultWorkers
		}
	}
	if workers < 1 {
		workers = 1
	}

	// Per-series runs share no state; one worker per identifier up to
	// the bound, first hard failure cancels the rest.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		tables   = make(map[string]*domain.DailyTable)
		rows     = make(map[string]domain.Stats)
	)

	jobs := make(chan string)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range jobs {
				bars := series[sym]
				if len(bars) == 0 {
					r.log.Debug().Str("symbol", sym).Msg("skipping series with no data")
					continue
				}
				res, err := r.Run(ctx, bars, cfg, opts)
				switch {
				case err == nil:
					mu.Lock()
					tables[sym] = res.Table
					rows[sym] = res.Stats
					mu.Unlock()
				case errors.Is(err, domain.ErrInsufficientData):
					r.log.Debug().Str("symbol", sym).Msg("skipping series with insufficient data")
				case errors.Is(err, context.Canceled):
					// another series already failed the batch
				default:
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					cancel()
				}
			}
		}()
	}

	for _, sym := range symbols {
		jobs <- sym
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	out := &domain.BatchResult{Tables: tables}
	for _, sym := range symbols {
		if st, ok := rows[sym]; ok {
			out.Summary = append(out.Summary, domain.SummaryRow{Symbol: sym, Stats: st})
		}
	}
	return out, nil
}
