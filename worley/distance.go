package worley

import (
	"math"

	"github.com/dgravesa/go-parallel/parallel"
	"github.com/go-gl/mathgl/mgl32"
)

// Dims is the voxel resolution of a generated volume.
type Dims struct {
	X, Y, Z int
}

// Voxels returns the number of voxels in the grid.
func (d Dims) Voxels() int {
	return d.X * d.Y * d.Z
}

// Index maps voxel (x, y, z) to its offset in a single-channel field.
func (d Dims) Index(x, y, z int) int {
	return x + d.X*(y+d.Y*z)
}

// voxelCenter returns the domain position at the centre of voxel (x, y, z).
func (d Dims) voxelCenter(x, y, z int, domain float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(float32(x) + 0.5) / float32(d.X),
		(float32(y) + 0.5) / float32(d.Y),
		(float32(z) + 0.5) / float32(d.Z),
	}.Mul(domain)
}

// DistanceField computes, for every voxel centre, the squared distance to the
// nearest live feature point of the lattice, treating the domain as periodic
// on all three axes. It also returns the largest finite value in the field,
// which is the normalization denominator for the channel.
//
// A positive distCap bounds every value: it is the starting minimum of each
// search, so voxels whose neighbourhood is empty or far away read distCap.
// With distCap == 0 a voxel with no live neighbour reads +Inf.
func DistanceField(dims Dims, lat *Lattice, domain, distCap float32) ([]float32, float32) {
	field := make([]float32, dims.Voxels())

	// Slices along z are independent; fill them concurrently.
	parallel.For(dims.Z, func(z, _ int) {
		for y := 0; y < dims.Y; y++ {
			for x := 0; x < dims.X; x++ {
				pos := dims.voxelCenter(x, y, z, domain)
				field[dims.Index(x, y, z)] = nearestSquared(pos, lat, domain, distCap)
			}
		}
	})

	var maxDist float32
	for _, d := range field {
		if !math.IsInf(float64(d), 1) && d > maxDist {
			maxDist = d
		}
	}
	return field, maxDist
}

// nearestSquared searches the 3×3×3 block of cells around pos.
func nearestSquared(pos mgl32.Vec3, lat *Lattice, domain, distCap float32) float32 {
	minDist := float32(math.Inf(1))
	if distCap > 0 {
		minDist = distCap
	}

	home := [3]int{
		homeCell(pos.X(), lat.Freq, domain),
		homeCell(pos.Y(), lat.Freq, domain),
		homeCell(pos.Z(), lat.Freq, domain),
	}

	for di := -1; di <= 1; di++ {
		qi, si := wrapCell(home[0]+di, lat.Freq, domain)
		for dj := -1; dj <= 1; dj++ {
			qj, sj := wrapCell(home[1]+dj, lat.Freq, domain)
			for dk := -1; dk <= 1; dk++ {
				qk, sk := wrapCell(home[2]+dk, lat.Freq, domain)

				p := lat.At(qi, qj, qk)
				if !p.Live {
					continue
				}
				// Move the point to the image of its cell that lies next to the voxel.
				query := p.Position.Add(mgl32.Vec3{si, sj, sk})
				dis := pos.Sub(query)
				if dist := dis.Dot(dis); dist < minDist {
					minDist = dist
				}
			}
		}
	}

	return minDist
}

// homeCell returns the lattice index containing coordinate v.
func homeCell(v float32, freq int, domain float32) int {
	i := int(v * float32(freq) / domain)
	if i < 0 {
		return 0
	}
	if i >= freq {
		return freq - 1
	}
	return i
}

// wrapCell folds a neighbour index back into [0, freq) and returns the shift
// to apply to the queried point: -domain when the low face was crossed,
// +domain when the high face was crossed.
func wrapCell(i, freq int, domain float32) (int, float32) {
	switch {
	case i < 0:
		return freq - 1, -domain
	case i >= freq:
		return 0, domain
	default:
		return i, 0
	}
}
