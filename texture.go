package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture3D is a volume texture holding the baked cloud noise.
type Texture3D struct {
	// holds the ID of the texture object, used for all texture operations to reference to this particular texture
	ID uint32
	// texture dimensions in texels
	Width, Height, Depth int32
	// texture Format
	// format of texture object
	Internal_Format int32
	// format of uploaded texels
	Image_Format uint32
	// texture configuration
	// wrapping mode on S, T and R axis; the noise tiles, so all repeat
	Wrap_S, Wrap_T, Wrap_R int32
	// filtering mode if texture pixels < screen pixels
	Filter_Min int32
	// filtering mode if texture pixels > screen pixels
	Filter_Max int32
}

func NewTexture3D() *Texture3D {
	t := Texture3D{
		Internal_Format: gl.RGBA8,
		Image_Format:    gl.RGBA,
		Wrap_S:          gl.REPEAT,
		Wrap_T:          gl.REPEAT,
		Wrap_R:          gl.REPEAT,
		Filter_Min:      gl.LINEAR,
		Filter_Max:      gl.LINEAR,
	}
	gl.GenTextures(1, &t.ID)
	return &t
}

// Generate uploads RGBA float texels laid out x fastest, then y, then z.
func (tex *Texture3D) Generate(width, height, depth int32, texels []float32) error {
	if want := int(width) * int(height) * int(depth) * 4; len(texels) != want {
		return fmt.Errorf("texture needs %d floats for %dx%dx%d RGBA texels, got %d", want, width, height, depth, len(texels))
	}
	tex.Width = width
	tex.Height = height
	tex.Depth = depth

	gl.BindTexture(gl.TEXTURE_3D, tex.ID)
	// set Texture wrap and filter modes
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, tex.Wrap_S)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, tex.Wrap_T)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, tex.Wrap_R)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, tex.Filter_Min)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, tex.Filter_Max)
	// float texels are converted to the internal format by the driver
	gl.TexImage3D(gl.TEXTURE_3D, 0, tex.Internal_Format, width, height, depth, 0, tex.Image_Format, gl.FLOAT, gl.Ptr(texels))
	// unbind texture
	gl.BindTexture(gl.TEXTURE_3D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("failed to upload 3D texture: GL error 0x%x", code)
	}
	return nil
}

func (tex *Texture3D) Bind() {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_3D, tex.ID)
}

func (tex *Texture3D) Delete() {
	gl.DeleteTextures(1, &tex.ID)
	tex.ID = 0
}
