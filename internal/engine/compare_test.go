package engine

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FlagRing/internal/model"
)

func TestCompareSeeds(t *testing.T) {
	pieces := flagSet(20, 20, 31)
	seeds := []int64{1, 2, 3, 4}

	results, err := CompareSeeds(context.Background(), model.DefaultSettings(), pieces, seeds)
	require.NoError(t, err)
	require.Len(t, results, len(seeds))

	for i, r := range results {
		assert.Equal(t, seeds[i], r.Seed)
		assert.Equal(t, r.Layout.Radius, r.Radius)
		assert.Equal(t, r.Layout.CanvasSide(), r.CanvasSide)
		assert.Len(t, r.Layout.Placements, len(pieces))
		assert.NoError(t, Verify(r.Layout))
	}

	// Concurrent runs match a sequential run with the same seed
	single, err := New(seeded(3)).Pack(context.Background(), pieces)
	require.NoError(t, err)
	assert.Equal(t, single, results[2].Layout)
}

func TestCompareSeeds_PropagatesError(t *testing.T) {
	pieces := []model.Piece{
		model.NewPiece("A", 10, 10),
		model.NewPiece("B", 10, 20),
	}

	_, err := CompareSeeds(context.Background(), model.DefaultSettings(), pieces, []int64{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestBestRun(t *testing.T) {
	tests := []struct {
		name  string
		radii []float64
		want  int
	}{
		{"empty", nil, -1},
		{"single", []float64{10}, 0},
		{"smallest wins", []float64{30, 12, 20}, 1},
		{"tie goes to first", []float64{15, 12, 12}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]RunResult, len(tt.radii))
			for i, r := range tt.radii {
				results[i].Radius = r
			}
			assert.Equal(t, tt.want, BestRun(results))
		})
	}
}

func TestRandomSeeds(t *testing.T) {
	seeds := RandomSeeds(50, rand.New(rand.NewSource(1)))
	require.Len(t, seeds, 50)

	seen := make(map[int64]bool)
	for _, s := range seeds {
		assert.NotZero(t, s)
		assert.False(t, seen[s], "duplicate seed %d", s)
		seen[s] = true
	}

	assert.Equal(t, seeds, RandomSeeds(50, rand.New(rand.NewSource(1))))
}
