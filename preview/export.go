package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/braheezy/volumetric-clouds/worley"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/tiff"
)

// HDRSlice copies the R, G and B channels of slice z at full precision.
// The alpha channel has no place in a Radiance image and is left out.
func HDRSlice(vol *worley.Volume, z int) (*hdr.RGB, error) {
	if z < 0 || z >= vol.Dims.Z {
		return nil, fmt.Errorf("slice %d outside volume depth %d", z, vol.Dims.Z)
	}

	img := hdr.NewRGB(image.Rect(0, 0, vol.Dims.X, vol.Dims.Y))
	for y := 0; y < vol.Dims.Y; y++ {
		for x := 0; x < vol.Dims.X; x++ {
			img.Set(x, vol.Dims.Y-1-y, hdrcolor.RGB{
				R: float64(vol.At(x, y, z, 0)),
				G: float64(vol.At(x, y, z, 1)),
				B: float64(vol.At(x, y, z, 2)),
			})
		}
	}
	return img, nil
}

// Encode writes img in the format named by ext (".png", ".tif", ".tiff" or ".hdr").
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".hdr":
		m, ok := img.(hdr.Image)
		if !ok {
			return fmt.Errorf("image of type %T has no HDR data", img)
		}
		return rgbe.Encode(w, m)
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}
}

// Save encodes img to path, picking the format from the file extension.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, filepath.Ext(path)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// SaveRaw dumps the volume texels as little-endian float32 values.
func SaveRaw(path string, vol *worley.Volume) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := vol.WriteRaw(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
