package balance_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/gravity/balance"
	"github.com/katalvlaran/gravity/dataset"
)

func benchDataset(b *testing.B, n int) *dataset.Dataset {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	w := make([]float64, n)
	for i := range w {
		w[i] = 100
	}
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = 1 + 50*rng.Float64()
		}
	}
	ds, err := dataset.New(w, w, dist)
	if err != nil {
		b.Fatal(err)
	}
	return ds
}

func BenchmarkBalance_50x50(b *testing.B) {
	ds := benchDataset(b, 50)
	opts := balance.DefaultOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := balance.Balance(ds, []float64{-0.05}, opts); err != nil {
			b.Fatal(err)
		}
	}
}
