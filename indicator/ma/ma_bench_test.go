package ma

import (
	"testing"

	"github.com/evdnx/tacore/indicator/backend"
)

func benchmarkMode(b *testing.B, sel *backend.Selector, m Mode) {
	data := randomWalk(10_000, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := MA(sel, m, data, 20, Params{}); err != nil {
			b.Fatalf("MA error: %v", err)
		}
	}
}

func BenchmarkSMA(b *testing.B) { benchmarkMode(b, nil, SMA) }
func BenchmarkEMA(b *testing.B) { benchmarkMode(b, nil, EMA) }
func BenchmarkT3(b *testing.B)  { benchmarkMode(b, nil, T3) }
func BenchmarkHMA(b *testing.B) { benchmarkMode(b, nil, HMA) }
func BenchmarkWMA(b *testing.B) { benchmarkMode(b, nil, WMA) }

func BenchmarkT3Optimized(b *testing.B) {
	benchmarkMode(b, backend.Default(), T3)
}
