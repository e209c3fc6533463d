package worley

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLatticeCellCenters(t *testing.T) {
	lat := NewLattice(4, 100, DefaultLiveProbability, constSource(0.5))

	require.Equal(t, 4, lat.Freq)
	assert.Equal(t, float32(25), lat.CellSize)
	assert.Equal(t, 64, lat.LiveCount())

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				p := lat.At(i, j, k)
				want := mgl32.Vec3{float32(i) + 0.5, float32(j) + 0.5, float32(k) + 0.5}.Mul(25)
				assert.True(t, p.Live)
				assertVecNear(t, want, p.Position)
			}
		}
	}
}

func TestNewLatticeDrawOrder(t *testing.T) {
	// One cell: the first draw decides liveness, the next three are the offset.
	lat := NewLattice(1, 100, DefaultLiveProbability, &seqSource{values: []float32{0.1, 0.2, 0.3, 0.4}})

	p := lat.At(0, 0, 0)
	require.True(t, p.Live)
	assertVecNear(t, mgl32.Vec3{20, 30, 40}, p.Position)
}

func TestNewLatticeDropsCells(t *testing.T) {
	tests := []struct {
		name string
		draw float32
		live bool
	}{
		{"below threshold", 0.2, true},
		{"at threshold", 0.6, true},
		{"above threshold", 0.61, false},
		{"near one", 0.99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat := NewLattice(3, 100, DefaultLiveProbability, constSource(tt.draw))
			want := 0
			if tt.live {
				want = 27
			}
			assert.Equal(t, want, lat.LiveCount())
		})
	}
}

func TestNewLatticeSkipsOffsetDrawsForDroppedCells(t *testing.T) {
	// Cell 0 is dropped and consumes one draw; cell 1 reads the next four.
	src := &seqSource{values: []float32{0.9, 0.5, 0.25, 0.5, 0.75}}
	lat := NewLattice(2, 100, DefaultLiveProbability, src)

	assert.False(t, lat.At(0, 0, 0).Live)
	second := lat.At(0, 0, 1)
	require.True(t, second.Live)
	assertVecNear(t, mgl32.Vec3{12.5, 25, 87.5}, second.Position)
}

func TestNewLatticeLiveFraction(t *testing.T) {
	lat := NewLattice(32, 100, DefaultLiveProbability, NewSource(3))
	frac := float64(lat.LiveCount()) / float64(32*32*32)
	assert.InDelta(t, 0.6, frac, 0.02)
}

func TestNewLatticePointsStayInTheirCells(t *testing.T) {
	lat := NewLattice(8, 100, 1, NewSource(17))
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			for k := 0; k < 8; k++ {
				p := lat.At(i, j, k)
				require.True(t, p.Live)
				assert.Equal(t, i, int(p.Position.X()/lat.CellSize))
				assert.Equal(t, j, int(p.Position.Y()/lat.CellSize))
				assert.Equal(t, k, int(p.Position.Z()/lat.CellSize))
			}
		}
	}
}

func TestNewLatticeRejectsZeroFrequency(t *testing.T) {
	assert.Panics(t, func() {
		NewLattice(0, 100, DefaultLiveProbability, constSource(0.5))
	})
}
