// Package marketdata loads daily price history from CSV files into bar
// series. It owns the cleaning the core does not do: ordering and
// duplicate-timestamp rejection.
package marketdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"trade-backtest-lab/internal/domain"
)

// ErrDuplicateTimestamp is returned when two rows share a date.
var ErrDuplicateTimestamp = errors.New("duplicate timestamp")

// Date layouts accepted in the first column.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// LoadCSV reads one instrument's daily bars from a CSV file in the
// conventional export layout (Date,Open,High,Low,Close,Adj Close,Volume).
// Columns are matched by header name; a missing Adj Close column falls
// back to Close. Rows are sorted by date and duplicate dates rejected.
func LoadCSV(path string) ([]*domain.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bars, err := ReadBars(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bars, nil
}

// ReadBars parses CSV bar rows from a reader.
func ReadBars(r io.Reader) ([]*domain.Bar, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var bars []*domain.Bar
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		bar, err := cols.parse(record)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].TimestampMs < bars[j].TimestampMs })
	for i := 1; i < len(bars); i++ {
		if bars[i].TimestampMs == bars[i-1].TimestampMs {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTimestamp,
				time.UnixMilli(bars[i].TimestampMs).UTC().Format("2006-01-02"))
		}
	}
	return bars, nil
}

// columnMap holds header indexes; -1 marks an absent optional column.
type columnMap struct {
	date, open, high, low, close, adjClose, volume int
}

func mapColumns(header []string) (*columnMap, error) {
	cols := &columnMap{date: -1, open: -1, high: -1, low: -1, close: -1, adjClose: -1, volume: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "open":
			cols.open = i
		case "high":
			cols.high = i
		case "low":
			cols.low = i
		case "close":
			cols.close = i
		case "adj close", "adjclose", "adj_close":
			cols.adjClose = i
		case "volume":
			cols.volume = i
		}
	}
	if cols.date == -1 || cols.close == -1 {
		return nil, fmt.Errorf("csv header missing Date or Close column: %v", header)
	}
	return cols, nil
}

func (c *columnMap) parse(record []string) (*domain.Bar, error) {
	ts, err := parseDate(record[c.date])
	if err != nil {
		return nil, err
	}
	bar := &domain.Bar{TimestampMs: ts}
	if bar.Close, err = parseFloat(record, c.close); err != nil {
		return nil, err
	}
	if bar.Open, err = parseFloat(record, c.open); err != nil {
		return nil, err
	}
	if bar.High, err = parseFloat(record, c.high); err != nil {
		return nil, err
	}
	if bar.Low, err = parseFloat(record, c.low); err != nil {
		return nil, err
	}
	if bar.Volume, err = parseFloat(record, c.volume); err != nil {
		return nil, err
	}
	if c.adjClose >= 0 {
		if bar.AdjClose, err = parseFloat(record, c.adjClose); err != nil {
			return nil, err
		}
	} else {
		bar.AdjClose = bar.Close
	}
	return bar, nil
}

func parseDate(s string) (int64, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("unparseable date %q", s)
}

func parseFloat(record []string, idx int) (float64, error) {
	if idx < 0 || idx >= len(record) {
		return 0, nil
	}
	s := strings.TrimSpace(record[idx])
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable number %q: %w", s, err)
	}
	return v, nil
}
