package worley

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// FeaturePoint is the point assigned to one lattice cell. Cells dropped by
// the live probability test carry no point and have Live set to false.
type FeaturePoint struct {
	Position mgl32.Vec3
	Live     bool
}

// Lattice holds one feature point per cell of a Freq×Freq×Freq grid
// covering the domain cube. It is never mutated after construction.
type Lattice struct {
	Freq     int
	CellSize float32
	points   []FeaturePoint
}

// NewLattice scatters one jittered feature point in every cell. A cell keeps
// its point only when its first draw is at most liveProbability; otherwise
// it is left empty, thinning the lattice into clusters.
func NewLattice(freq int, domain, liveProbability float32, rng Source) *Lattice {
	if freq < 1 {
		panic(fmt.Sprintf("worley: lattice frequency must be at least 1, got %d", freq))
	}

	l := &Lattice{
		Freq:     freq,
		CellSize: domain / float32(freq),
		points:   make([]FeaturePoint, freq*freq*freq),
	}

	for i := 0; i < freq; i++ {
		for j := 0; j < freq; j++ {
			for k := 0; k < freq; k++ {
				if rng.Float32() > liveProbability {
					continue
				}
				// Offset inside the cell, then scale the cell coordinate up to domain units.
				offset := mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()}
				cell := mgl32.Vec3{float32(i), float32(j), float32(k)}
				l.points[l.index(i, j, k)] = FeaturePoint{
					Position: cell.Add(offset).Mul(l.CellSize),
					Live:     true,
				}
			}
		}
	}

	return l
}

// At returns the feature point of cell (i, j, k). Indices must be in [0, Freq).
func (l *Lattice) At(i, j, k int) FeaturePoint {
	return l.points[l.index(i, j, k)]
}

// LiveCount reports how many cells carry a feature point.
func (l *Lattice) LiveCount() int {
	n := 0
	for _, p := range l.points {
		if p.Live {
			n++
		}
	}
	return n
}

func (l *Lattice) index(i, j, k int) int {
	return i + l.Freq*(j+l.Freq*k)
}
