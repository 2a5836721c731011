package core

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func eqNaN(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

/*
--------------------------------------------------------------

	Naming
	--------------------------------------------------------------
*/
func TestName(t *testing.T) {
	tests := []struct {
		prefix string
		params []any
		want   string
	}{
		{"TRENDFLEX", []any{20, 20, 0.04}, "TRENDFLEX_20_20_0.04"},
		{"T3", []any{10, 0.7}, "T3_10_0.7"},
		{"BBL", []any{20, 2.0}, "BBL_20_2.0"},
		{"REMAP", []any{0.0, 100.0, -1.0, 1.0}, "REMAP_0.0_100.0_-1.0_1.0"},
		{"HLC3", nil, "HLC3"},
		{"", []any{14, 3}, "_14_3"},
	}
	for _, tt := range tests {
		if got := Name(tt.prefix, tt.params...); got != tt.want {
			t.Fatalf("Name(%q, %v) = %q, want %q", tt.prefix, tt.params, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	for v, want := range map[float64]string{2: "2.0", 0.04: "0.04", 1e6: "1000000.0", -0.5: "-0.5"} {
		if got := FormatFloat(v); got != want {
			t.Fatalf("FormatFloat(%v) = %q, want %q", v, got, want)
		}
	}
	if got := FormatFloat(math.NaN()); got != "NaN" {
		t.Fatalf("FormatFloat(NaN) = %q", got)
	}
}

/*
--------------------------------------------------------------

	Series helpers
	--------------------------------------------------------------
*/
func TestOHLCVValidate(t *testing.T) {
	ok := OHLCV{High: []float64{1, 2}, Low: []float64{0, 1}, Close: []float64{1, 1}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := ok
	bad.Index = []int64{1}
	if err := bad.Validate(); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
}

func TestAligned(t *testing.T) {
	if err := Aligned(); err != nil {
		t.Fatalf("empty input: %v", err)
	}
	if err := Aligned([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
}

func TestFirstValidAndFillNaN(t *testing.T) {
	s := []float64{math.NaN(), math.NaN(), 3, 4}
	if got := FirstValid(s); got != 2 {
		t.Fatalf("FirstValid = %d, want 2", got)
	}
	if got := FirstValid(NaNs(3)); got != 3 {
		t.Fatalf("FirstValid(all NaN) = %d, want 3", got)
	}
	FillNaN(s, -5, 10)
	if got := LeadingNaNs(s); got != 4 {
		t.Fatalf("LeadingNaNs after FillNaN = %d, want 4", got)
	}
}

func TestCopyHelpers(t *testing.T) {
	src := []float64{1, 2}
	dst := CopySlice(src)
	dst[0] = 9
	if src[0] != 1 {
		t.Fatal("CopySlice shares memory with its input")
	}
	if CopySlice(nil) != nil || CopyIndex(nil) != nil {
		t.Fatal("nil input should stay nil")
	}
	if !reflect.DeepEqual(CopyIndex([]int64{4, 5}), []int64{4, 5}) {
		t.Fatal("CopyIndex mismatch")
	}
}

func TestFrameColumn(t *testing.T) {
	f := Frame{Columns: []Series{{Name: "a"}, {Name: "b", Values: []float64{1}}}}
	c, ok := f.Column("b")
	if !ok || c.Len() != 1 {
		t.Fatalf("Column(b) = %+v, %v", c, ok)
	}
	if _, ok := f.Column("z"); ok {
		t.Fatal("unexpected column z")
	}
}

/*
--------------------------------------------------------------

	Post-processing
	--------------------------------------------------------------
*/
func TestShift(t *testing.T) {
	nan := math.NaN()
	in := []float64{1, 2, 3, 4}
	tests := []struct {
		offset int
		want   []float64
	}{
		{0, []float64{1, 2, 3, 4}},
		{1, []float64{nan, 1, 2, 3}},
		{-2, []float64{3, 4, nan, nan}},
		{4, []float64{nan, nan, nan, nan}},
		{-9, []float64{nan, nan, nan, nan}},
	}
	for _, tt := range tests {
		if got := Shift(in, tt.offset); !eqNaN(got, tt.want) {
			t.Fatalf("Shift(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
	if !reflect.DeepEqual(in, []float64{1, 2, 3, 4}) {
		t.Fatal("Shift modified its input")
	}
}

func TestPostApply(t *testing.T) {
	nan := math.NaN()
	in := []float64{nan, 1, nan, 3, nan}
	zero := 0.0

	tests := []struct {
		name string
		post Post
		want []float64
	}{
		{"none", Post{}, in},
		{"fill value", Post{Fill: &zero}, []float64{0, 1, 0, 3, 0}},
		{"ffill", Post{Method: FillForward}, []float64{nan, 1, 1, 3, 3}},
		{"bfill", Post{Method: FillBackward}, []float64{1, 1, 3, 3, nan}},
		{"offset then ffill", Post{Offset: 1, Method: FillForward}, []float64{nan, nan, 1, 1, 3}},
		{"fill wins over method", Post{Fill: &zero, Method: FillBackward}, []float64{0, 1, 0, 3, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.Apply(in); !eqNaN(got, tt.want) {
				t.Fatalf("Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPostValidate(t *testing.T) {
	if err := (Post{Method: "sideways"}).Validate(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	f := Post{Offset: 1}.ApplyFrame(Frame{Columns: []Series{{Values: []float64{1, 2}}}})
	if !math.IsNaN(f.Columns[0].Values[0]) || f.Columns[0].Values[1] != 1 {
		t.Fatalf("ApplyFrame = %v", f.Columns[0].Values)
	}
}

/*
--------------------------------------------------------------

	Plot data
	--------------------------------------------------------------
*/
func TestSeriesPlotDataSkipsNaN(t *testing.T) {
	s := Series{
		Name:     "X_3",
		Category: CategoryTrend,
		Index:    []int64{10, 20, 30},
		Values:   []float64{math.NaN(), 1.5, math.Inf(1)},
	}
	pd := s.PlotData()
	if !reflect.DeepEqual(pd.X, []float64{1}) || !reflect.DeepEqual(pd.Y, []float64{1.5}) {
		t.Fatalf("unexpected points: %+v", pd)
	}
	if !reflect.DeepEqual(pd.Timestamp, []int64{20}) || pd.Signal != CategoryTrend {
		t.Fatalf("unexpected metadata: %+v", pd)
	}

	out, err := FormatPlotDataJSON([]PlotData{pd})
	if err != nil {
		t.Fatalf("FormatPlotDataJSON: %v", err)
	}
	var back []PlotData
	if err := json.Unmarshal([]byte(out), &back); err != nil || back[0].Name != "X_3" {
		t.Fatalf("round trip failed: %v %+v", err, back)
	}

	csv, err := FormatPlotDataCSV([]PlotData{pd})
	if err != nil {
		t.Fatalf("FormatPlotDataCSV: %v", err)
	}
	if !strings.Contains(csv, "X_3,1.000000,1.500000,line,trend,20") {
		t.Fatalf("unexpected csv: %q", csv)
	}
}

func TestFormatPlotDataMismatch(t *testing.T) {
	bad := []PlotData{{Name: "bad", X: []float64{1}}}
	if _, err := FormatPlotDataJSON(bad); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
	if _, err := FormatPlotDataCSV(bad); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
	if out, _ := FormatPlotDataJSON(nil); out != "[]" {
		t.Fatalf("empty JSON = %q", out)
	}
}

func TestGenerateTimestamps(t *testing.T) {
	if got := GenerateTimestamps(100, 3, 60); !reflect.DeepEqual(got, []int64{100, 160, 220}) {
		t.Fatalf("GenerateTimestamps = %v", got)
	}
}
