package worley

import "math"

// Normalize rescales a channel's squared-distance field in place so that
// voxels on a feature point read 1 and the farthest voxel reads 0.
//
// Voxels that found no live neighbour (+Inf) read 0. A zero maxDist cannot
// happen with jittered points; if it does the remaining voxels read 1.
func Normalize(field []float32, maxDist float32) {
	for i, raw := range field {
		switch {
		case math.IsInf(float64(raw), 1):
			field[i] = 0
		case maxDist <= 0:
			field[i] = 1
		default:
			field[i] = clamp01(1 - raw/maxDist)
		}
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
