package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func draws(src *Source, turn, actor, n int) []int {
	rng := src.Stream(turn, actor)
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(1 << 20)
	}
	return out
}

func TestStreamIsReproducible(t *testing.T) {
	src := NewSource(1234)
	assert.Equal(t, draws(src, 5, 2, 10), draws(src, 5, 2, 10))

	// A second source with the same seed agrees.
	assert.Equal(t, draws(NewSource(1234), 5, 2, 10), draws(src, 5, 2, 10))
}

func TestStreamKeyedByTurnAndActor(t *testing.T) {
	src := NewSource(1234)
	base := draws(src, 5, 2, 10)

	assert.NotEqual(t, base, draws(src, 6, 2, 10))
	assert.NotEqual(t, base, draws(src, 5, 3, 10))
	assert.NotEqual(t, base, draws(NewSource(99), 5, 2, 10))
}

func TestSeedAccessor(t *testing.T) {
	assert.Equal(t, int64(77), NewSource(77).Seed())
}
