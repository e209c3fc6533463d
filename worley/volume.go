package worley

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Volume is a generated 4-channel density field. Data is laid out the way
// GL expects RGBA texels of a 3D texture: x fastest, then y, then z, with
// the four channels of a voxel adjacent.
type Volume struct {
	Dims        Dims
	Frequencies [NumChannels]int
	Data        []float32
}

// ChannelStats summarises one channel of a volume.
type ChannelStats struct {
	Min, Max, Mean float32
}

var ErrInvalidWeights = errors.New("worley: density weights must be non-negative with a positive sum")

// DefaultWeights blend the octaves so the lowest frequency dominates.
var DefaultWeights = [NumChannels]float32{1, 0.5, 0.25, 0.125}

// At returns channel c of voxel (x, y, z).
func (v *Volume) At(x, y, z, c int) float32 {
	return v.Data[c+NumChannels*v.Dims.Index(x, y, z)]
}

// Channel copies channel c out into a single-channel field indexed by Dims.Index.
func (v *Volume) Channel(c int) []float32 {
	out := make([]float32, v.Dims.Voxels())
	for i := range out {
		out[i] = v.Data[c+NumChannels*i]
	}
	return out
}

// Stats returns the minimum, maximum and mean of channel c.
func (v *Volume) Stats(c int) ChannelStats {
	n := v.Dims.Voxels()
	s := ChannelStats{Min: 1, Max: 0}
	var sum float64
	for i := 0; i < n; i++ {
		val := v.Data[c+NumChannels*i]
		if val < s.Min {
			s.Min = val
		}
		if val > s.Max {
			s.Max = val
		}
		sum += float64(val)
	}
	if n > 0 {
		s.Mean = float32(sum / float64(n))
	}
	return s
}

// Density combines the four octaves into one field: the weighted sum of the
// channels divided by the sum of the weights, so the result stays in [0,1].
func (v *Volume) Density(weights [NumChannels]float32) ([]float32, error) {
	var total float32
	for c, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: channel %d has weight %v", ErrInvalidWeights, c, w)
		}
		total += w
	}
	if total <= 0 {
		return nil, ErrInvalidWeights
	}

	out := make([]float32, v.Dims.Voxels())
	for i := range out {
		var d float32
		for c, w := range weights {
			d += w * v.Data[c+NumChannels*i]
		}
		out[i] = clamp01(d / total)
	}
	return out, nil
}

// WriteRaw writes the texels as little-endian float32 values in upload order.
func (v *Volume) WriteRaw(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, v.Data)
}
