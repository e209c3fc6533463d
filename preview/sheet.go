// Package preview renders slices of a generated cloud volume to images so
// the noise can be inspected without a GPU.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/braheezy/volumetric-clouds/worley"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	padding     = 4
	labelHeight = 16
)

var (
	background = color.RGBA{R: 32, G: 48, B: 48, A: 255}
	labelColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

var channelNames = [worley.NumChannels]string{"R", "G", "B", "A"}

// ContactSheet lays out slice z of every channel, followed by the combined
// density, as labelled grayscale tiles scaled up by scale.
func ContactSheet(vol *worley.Volume, z, scale int, weights [worley.NumChannels]float32) (*image.RGBA, error) {
	if z < 0 || z >= vol.Dims.Z {
		return nil, fmt.Errorf("slice %d outside volume depth %d", z, vol.Dims.Z)
	}
	if scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", scale)
	}
	density, err := vol.Density(weights)
	if err != nil {
		return nil, err
	}

	tileW, tileH := vol.Dims.X*scale, vol.Dims.Y*scale
	tiles := worley.NumChannels + 1
	width := padding + tiles*(tileW+padding)
	height := padding + labelHeight + tileH + padding

	sheet := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for t := 0; t < tiles; t++ {
		var tile *image.Gray
		var label string
		if t < worley.NumChannels {
			tile = channelSlice(vol, z, t)
			label = fmt.Sprintf("%s f=%d", channelNames[t], vol.Frequencies[t])
		} else {
			tile = fieldSlice(density, vol.Dims, z)
			label = "density"
		}

		x0 := padding + t*(tileW+padding)
		y0 := padding + labelHeight
		dst := image.Rect(x0, y0, x0+tileW, y0+tileH)
		// Nearest neighbour keeps the voxel edges visible.
		draw.NearestNeighbor.Scale(sheet, dst, tile, tile.Bounds(), draw.Src, nil)

		drawLabel(sheet, x0, padding+labelHeight-4, label)
	}

	return sheet, nil
}

// channelSlice converts slice z of one channel into a grayscale image.
func channelSlice(vol *worley.Volume, z, c int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, vol.Dims.X, vol.Dims.Y))
	for y := 0; y < vol.Dims.Y; y++ {
		for x := 0; x < vol.Dims.X; x++ {
			// Texture rows start at the bottom; image rows at the top.
			img.SetGray(x, vol.Dims.Y-1-y, toGray(vol.At(x, y, z, c)))
		}
	}
	return img
}

// fieldSlice does the same for a single-channel field such as the density.
func fieldSlice(field []float32, dims worley.Dims, z int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, dims.X, dims.Y))
	for y := 0; y < dims.Y; y++ {
		for x := 0; x < dims.X; x++ {
			img.SetGray(x, dims.Y-1-y, toGray(field[dims.Index(x, y, z)]))
		}
	}
	return img
}

func toGray(v float32) color.Gray {
	if v <= 0 {
		return color.Gray{Y: 0}
	}
	if v >= 1 {
		return color.Gray{Y: 255}
	}
	return color.Gray{Y: uint8(v*255 + 0.5)}
}

// drawLabel writes text with its baseline at (x, y) using a 7x13 bitmap font.
func drawLabel(dst draw.Image, x, y int, text string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
