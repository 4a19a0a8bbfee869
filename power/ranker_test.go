package power

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/powerrank/core"
)

func repeat(c core.Comparison, n int) []core.Comparison {
	out := make([]core.Comparison, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func ids(r *Ranking) []string {
	out := make([]string, 0, r.Len())
	for _, e := range r.Entries() {
		out = append(out, e.ItemID)
	}
	return out
}

func participantSum(r *Ranking) float64 {
	total := 0.0
	for _, e := range r.Entries() {
		total += e.Power
	}
	return total
}

func TestComputeRanking_Scenarios(t *testing.T) {
	t.Run("single vote", func(t *testing.T) {
		r, err := ComputeRanking([]string{"A", "B"}, []core.Comparison{
			{AlphaID: "A", BetaID: "B", Preference: core.AlphaWins},
		}, 0.85)
		require.NoError(t, err)
		require.Equal(t, 2, r.Len())
		assert.Equal(t, []string{"A", "B"}, ids(r))
		assert.Greater(t, r.At(0).Power, r.At(1).Power)
		assert.InDelta(t, 1.0, participantSum(r), 1e-9)
		assert.False(t, r.InsufficientData())
		assert.Equal(t, 2, r.Participants())
	})

	t.Run("no votes", func(t *testing.T) {
		r, err := ComputeRanking([]string{"A", "B", "C"}, nil, 0.85)
		require.NoError(t, err)
		assert.True(t, r.InsufficientData())
		assert.Equal(t, []core.RankedItem{
			{ItemID: "A", Power: 0},
			{ItemID: "B", Power: 0},
			{ItemID: "C", Power: 0},
		}, r.Entries())
		assert.Equal(t, Stats{}, r.Stats())
	})

	t.Run("opposite votes cancel", func(t *testing.T) {
		r, err := ComputeRanking([]string{"A", "B"}, []core.Comparison{
			{AlphaID: "A", BetaID: "B", Preference: core.AlphaWins},
			{AlphaID: "A", BetaID: "B", Preference: core.BetaWins},
		}, 0.85)
		require.NoError(t, err)
		a, _ := r.Power("A")
		b, _ := r.Power("B")
		assert.Equal(t, a, b)
		assert.InDelta(t, 0.5, a, 1e-12)
		assert.Equal(t, []string{"A", "B"}, ids(r))
	})

	t.Run("authority propagates along a chain", func(t *testing.T) {
		votes := append(repeat(beats("A", "B"), 3), repeat(beats("B", "C"), 3)...)
		r, err := ComputeRanking([]string{"C", "B", "A"}, votes, 0.85)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, ids(r))
		assert.InDelta(t, 1.0, participantSum(r), 1e-9)
	})

	t.Run("damping out of range", func(t *testing.T) {
		r, err := ComputeRanking([]string{"A", "B"}, []core.Comparison{beats("A", "B")}, 1.5)
		require.Error(t, err)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, core.ErrInvalidParameter)
	})
}

func TestComputeRanking_Guard(t *testing.T) {
	tests := []struct {
		name  string
		votes []core.Comparison
	}{
		{name: "only abstains", votes: []core.Comparison{{AlphaID: "A", BetaID: "B", Preference: core.Abstain}}},
		{name: "self comparison", votes: []core.Comparison{beats("A", "A")}},
		{name: "missing beta", votes: []core.Comparison{{AlphaID: "A", Preference: core.AlphaWins}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ComputeRanking([]string{"B", "A", "C"}, tt.votes, 0.85)
			require.NoError(t, err)
			assert.True(t, r.InsufficientData())
			assert.Equal(t, []string{"B", "A", "C"}, ids(r))
			for _, e := range r.Entries() {
				assert.Zero(t, e.Power)
			}
		})
	}
}

func TestComputeRanking_GuardStillValidatesDamping(t *testing.T) {
	_, err := ComputeRanking([]string{"A"}, nil, -0.5)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestComputeRanking_CatalogDefaults(t *testing.T) {
	// D 在目录中但从未被投票；E 被投票但不在目录中
	votes := []core.Comparison{beats("A", "B"), beats("E", "A")}
	r, err := ComputeRanking([]string{"D", "A", "B", "A"}, votes, 0.85)
	require.NoError(t, err)

	assert.Equal(t, 4, r.Len(), "one entry per catalog item, duplicates kept")
	assert.Equal(t, 3, r.Participants())
	d, ok := r.Power("D")
	require.True(t, ok)
	assert.Zero(t, d)
	assert.Equal(t, "D", r.At(3).ItemID)
	_, ok = r.Power("E")
	assert.False(t, ok)
}

func TestComputeRanking_Determinism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	catalog := []string{"p1", "p2", "p3", "p4", "p5", "p6"}
	votes := make([]core.Comparison, 0, 200)
	for i := 0; i < 200; i++ {
		a, b := catalog[rng.Intn(len(catalog))], catalog[rng.Intn(len(catalog))]
		votes = append(votes, core.Comparison{AlphaID: a, BetaID: b, Preference: core.Preference(rng.Intn(3) - 1)})
	}

	first, err := ComputeRanking(catalog, votes, 0.85)
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := ComputeRanking(catalog, votes, 0.85)
		require.NoError(t, err)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(firstJSON), string(againJSON))
	}
}

func TestComputeRanking_Normalization(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	catalog := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for round := 0; round < 20; round++ {
		votes := make([]core.Comparison, 0, 30)
		for i := 0; i < 30; i++ {
			votes = append(votes, core.Comparison{
				AlphaID:    catalog[rng.Intn(len(catalog))],
				BetaID:     catalog[rng.Intn(len(catalog))],
				Preference: core.Preference(rng.Intn(3) - 1),
			})
		}
		d := rng.Float64()
		r, err := ComputeRanking(catalog, votes, d)
		require.NoError(t, err)
		if r.InsufficientData() {
			continue
		}
		assert.InDelta(t, 1.0, participantSum(r), 1e-9, "round %d", round)
		for _, e := range r.Entries() {
			assert.GreaterOrEqual(t, e.Power, 0.0)
			assert.LessOrEqual(t, e.Power, 1.0)
		}
	}
}

func TestComputeRanking_Monotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	catalog := []string{"A", "B", "C", "D", "E"}
	precise := []Option{WithTolerance(1e-13), WithMaxIterations(5000)}

	for round := 0; round < 50; round++ {
		// A 与 B 必须已是参与者，保证参与者集合不因新增的一票而改变
		votes := []core.Comparison{beats("C", "A"), beats("B", "D")}
		for i := 0; i < 12; i++ {
			votes = append(votes, core.Comparison{
				AlphaID:    catalog[rng.Intn(len(catalog))],
				BetaID:     catalog[rng.Intn(len(catalog))],
				Preference: core.Preference(rng.Intn(3) - 1),
			})
		}
		d := 0.5 + 0.45*rng.Float64()

		before, err := ComputeRanking(catalog, votes, d, precise...)
		require.NoError(t, err)
		after, err := ComputeRanking(catalog, append(votes, beats("A", "B")), d, precise...)
		require.NoError(t, err)

		a0, _ := before.Power("A")
		a1, _ := after.Power("A")
		assert.GreaterOrEqual(t, a1, a0-1e-10, "round %d", round)
	}
}

func TestComputeRanking_SymmetryCancellation(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		votes := append(repeat(beats("A", "B"), n), repeat(beats("B", "A"), n)...)
		for _, d := range []float64{0, 0.3, 0.85, 1} {
			r, err := ComputeRanking([]string{"B", "A"}, votes, d)
			require.NoError(t, err)
			a, _ := r.Power("A")
			b, _ := r.Power("B")
			assert.Equal(t, a, b, "n=%d d=%v", n, d)
		}
	}
}

func TestComputeRanking_DanglingWinner(t *testing.T) {
	// A 只赢不输：悬挂节点
	votes := append(repeat(beats("A", "B"), 10), repeat(beats("A", "C"), 10)...)
	votes = append(votes, beats("B", "C"))

	for _, d := range []float64{0.5, 0.85, 0.99, 1} {
		r, err := ComputeRanking([]string{"A", "B", "C"}, votes, d)
		require.NoError(t, err)
		a, _ := r.Power("A")
		assert.False(t, isNaNOrInf(a))
		assert.LessOrEqual(t, a, 1.0)
		assert.Equal(t, "A", r.At(0).ItemID)
		assert.InDelta(t, 1.0, participantSum(r), 1e-9)
	}
}

func TestRanker_InvalidOptions(t *testing.T) {
	_, err := NewRanker(WithMaxIterations(0)).Rank([]string{"A", "B"}, []core.Comparison{beats("A", "B")}, 0.85)
	assert.True(t, core.IsInvalidParameter(err))

	_, err = NewRanker(WithTolerance(-1)).Rank([]string{"A", "B"}, nil, 0.85)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestRanker_Defaults(t *testing.T) {
	opts := NewRanker().Options()
	assert.Equal(t, 100, opts.MaxIterations)
	assert.Equal(t, 1e-6, opts.Tolerance)

	opts = NewRanker(WithMaxIterations(7), WithTolerance(1e-3)).Options()
	assert.Equal(t, IterateOptions{MaxIterations: 7, Tolerance: 1e-3}, opts)
}

func TestRanking_EntriesAreCopies(t *testing.T) {
	r, err := ComputeRanking([]string{"A", "B"}, []core.Comparison{beats("A", "B")}, 0.85)
	require.NoError(t, err)

	entries := r.Entries()
	entries[0].Power = -1
	assert.NotEqual(t, -1.0, r.At(0).Power)
}

func isNaNOrInf(f float64) bool {
	return !isFinite(f)
}
