package worley

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// constSource always returns the same draw.
type constSource float32

func (s constSource) Float32() float32 { return float32(s) }

// seqSource cycles through a fixed list of draws.
type seqSource struct {
	values []float32
	next   int
}

func (s *seqSource) Float32() float32 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-3, "component %d of %v", i, got)
	}
}

func TestNewSourceIsReproducible(t *testing.T) {
	a, b := NewSource(11), NewSource(11)
	for i := 0; i < 100; i++ {
		va, vb := a.Float32(), b.Float32()
		assert.Equal(t, va, vb)
		assert.GreaterOrEqual(t, va, float32(0))
		assert.Less(t, va, float32(1))
	}
}

func TestChannelSeedsAreDistinct(t *testing.T) {
	seeds := channelSeeds(5)
	assert.Equal(t, seeds, channelSeeds(5))

	seen := map[int64]bool{}
	for _, s := range seeds {
		assert.False(t, seen[s], "seed %d repeated", s)
		seen[s] = true
	}
}
