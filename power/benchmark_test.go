package power

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rushteam/powerrank/core"
)

func benchmarkVotes(items, votes int) ([]string, []core.Comparison) {
	rng := rand.New(rand.NewSource(1))
	catalog := make([]string, items)
	for i := range catalog {
		catalog[i] = fmt.Sprintf("item-%d", i)
	}
	out := make([]core.Comparison, votes)
	for i := range out {
		out[i] = core.Comparison{
			AlphaID:    catalog[rng.Intn(items)],
			BetaID:     catalog[rng.Intn(items)],
			Preference: core.Preference(rng.Intn(3) - 1),
		}
	}
	return catalog, out
}

// BenchmarkComputeRanking_Small benchmarks a budget-box sized ranking.
func BenchmarkComputeRanking_Small(b *testing.B) {
	catalog, votes := benchmarkVotes(20, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ComputeRanking(catalog, votes, 0.85); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkComputeRanking_Large benchmarks a large catalog with many votes.
func BenchmarkComputeRanking_Large(b *testing.B) {
	catalog, votes := benchmarkVotes(1000, 50000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ComputeRanking(catalog, votes, 0.85); err != nil {
			b.Fatal(err)
		}
	}
}
