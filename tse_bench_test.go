package tse

import (
	"math"
	"testing"

	"github.com/pkg/profile"
	"github.com/surveytse/tse/columnset"
)

func setupBenchEngine(b *testing.B, rows, cols, schemes int) *Engine {
	b.Helper()

	makeSet := func(scale float64) *columnset.ColumnSet {
		data := make([][]float64, cols)
		for j := 0; j < cols; j++ {
			col := make([]float64, rows)
			for i := 0; i < rows; i++ {
				col[i] = scale * (1.0 + math.Sin(float64(i*cols+j)))
			}
			data[j] = col
		}
		cs, err := columnset.New(nil, data)
		if err != nil {
			panic(err)
		}
		return cs
	}

	weights := make([]*columnset.ColumnSet, 0, schemes)
	for k := 0; k < schemes; k++ {
		weights = append(weights, makeSet(1.0+0.01*float64(k)))
	}

	eng, err := New(makeSet(10.0), makeSet(9.5), weights, nil)
	if err != nil {
		panic(err)
	}
	return eng
}

func BenchmarkFullScaleDependent(b *testing.B) {
	eng := setupBenchEngine(b, 10000, 8, 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.FullScaleDependent(); err != nil {
			panic(err)
		}
	}
}

func BenchmarkFullScaleIndependentProfile(b *testing.B) {
	eng := setupBenchEngine(b, 10000, 8, 4)
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.FullScaleIndependent(); err != nil {
			panic(err)
		}
	}
}
