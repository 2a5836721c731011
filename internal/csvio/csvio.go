// Package csvio reads OHLCV bars from CSV.
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evdnx/tacore/indicator/core"
)

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (core.OHLCV, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.OHLCV{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses timestamp,open,high,low,close[,volume] rows. A header row is
// skipped when present. Timestamps are Unix seconds or one of the layouts
// in timeLayouts; they become Unix seconds in the index. A missing volume
// is NaN.
func Read(r io.Reader) (core.OHLCV, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var bars core.OHLCV
	lineNum := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return core.OHLCV{}, fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		lineNum++

		if lineNum == 1 && isHeader(record) {
			continue
		}
		if len(record) < 5 {
			return core.OHLCV{}, fmt.Errorf("line %d: want at least 5 fields, got %d", lineNum, len(record))
		}
		if err := appendRecord(&bars, record); err != nil {
			return core.OHLCV{}, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	return bars, nil
}

func appendRecord(bars *core.OHLCV, record []string) error {
	ts, err := parseTimestamp(record[0])
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	var ohlc [4]float64
	for i, name := range []string{"open", "high", "low", "close"} {
		d, err := decimal.NewFromString(strings.TrimSpace(record[i+1]))
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		ohlc[i] = d.InexactFloat64()
	}
	vol := math.NaN()
	if len(record) > 5 && strings.TrimSpace(record[5]) != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(record[5]))
		if err != nil {
			return fmt.Errorf("parse volume: %w", err)
		}
		vol = d.InexactFloat64()
	}

	bars.Index = append(bars.Index, ts.Unix())
	bars.Open = append(bars.Open, ohlc[0])
	bars.High = append(bars.High, ohlc[1])
	bars.Low = append(bars.Low, ohlc[2])
	bars.Close = append(bars.Close, ohlc[3])
	bars.Volume = append(bars.Volume, vol)
	return nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown timestamp format: %s", s)
}

// isHeader checks if a record looks like a header row.
func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(record[0])) {
	case "timestamp", "time", "date", "datetime":
		return true
	}
	return false
}
