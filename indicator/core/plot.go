package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// PlotData is the export shape shared by the JSON and CSV formatters.
type PlotData struct {
	Name      string    `json:"name"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Type      string    `json:"type,omitempty"`
	Signal    string    `json:"signal,omitempty"`
	Timestamp []int64   `json:"timestamp,omitempty"`
}

// PlotData converts the series into plot form. NaN samples (warm-up, gaps)
// are dropped because JSON has no representation for them; X keeps the
// original position so gaps stay visible.
func (s Series) PlotData() PlotData {
	pd := PlotData{Name: s.Name, Type: "line", Signal: s.Category}
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pd.X = append(pd.X, float64(i))
		pd.Y = append(pd.Y, v)
		if i < len(s.Index) {
			pd.Timestamp = append(pd.Timestamp, s.Index[i])
		}
	}
	return pd
}

// PlotData converts every column of the frame.
func (f Frame) PlotData() []PlotData {
	out := make([]PlotData, 0, len(f.Columns))
	for _, c := range f.Columns {
		out = append(out, c.PlotData())
	}
	return out
}

// GenerateTimestamps builds an evenly spaced index.
func GenerateTimestamps(startTime int64, count int, interval int64) []int64 {
	if count <= 0 {
		return nil
	}
	ts := make([]int64, count)
	for i := 0; i < count; i++ {
		ts[i] = startTime + int64(i)*interval
	}
	return ts
}

// FormatPlotDataJSON renders plot data as a JSON array.
func FormatPlotDataJSON(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "[]", nil
	}
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plot data: %w", err)
	}
	return string(b), nil
}

// FormatPlotDataCSV renders plot data as long-format CSV, one row per point.
func FormatPlotDataCSV(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("Name,X,Y,Type,Signal,Timestamp\n")
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
		for i := 0; i < len(d.X); i++ {
			ts := ""
			if i < len(d.Timestamp) {
				ts = fmt.Sprintf("%d", d.Timestamp[i])
			}
			fmt.Fprintf(&sb, "%s,%f,%f,%s,%s,%s\n",
				d.Name, d.X[i], d.Y[i], d.Type, d.Signal, ts)
		}
	}
	return sb.String(), nil
}
