package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"time"

	"github.com/braheezy/volumetric-clouds/config"
	"github.com/braheezy/volumetric-clouds/preview"
	"github.com/braheezy/volumetric-clouds/worley"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// This is needed to arrange that main() runs on main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a JSON config file (defaults are used when empty)")
	seed := flag.Int64("seed", 0, "root seed for the noise; 0 keeps the config value")
	outDir := flag.String("out", "", "output directory; overrides output.dir")
	upload := flag.Bool("upload", false, "upload the volume to a GL 3D texture to check the driver accepts it")
	flag.Parse()

	/*
	 * Load configuration
	 */
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	/*
	 * Bake the noise
	 */
	start := time.Now()
	generator := worley.NewGenerator(cfg.WorleyOptions())
	vol, err := generator.Generate(cfg.Dims(), cfg.Frequencies)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("generated %dx%dx%d volume with frequencies %v in %v",
		vol.Dims.X, vol.Dims.Y, vol.Dims.Z, vol.Frequencies, time.Since(start).Round(time.Millisecond))
	for c := 0; c < worley.NumChannels; c++ {
		s := vol.Stats(c)
		log.Printf("channel %d: min %.3f max %.3f mean %.3f", c, s.Min, s.Max, s.Mean)
	}

	/*
	 * Write previews and the raw texels
	 */
	if err := export(cfg, vol); err != nil {
		log.Fatal(err)
	}

	/*
	 * Optional GPU upload
	 */
	if *upload {
		if err := uploadVolume(vol); err != nil {
			log.Fatal(err)
		}
	}
}

// export writes every artifact enabled in the output config.
func export(cfg *config.Config, vol *worley.Volume) error {
	dir := cfg.Output.Dir
	z := cfg.PreviewSlice()

	var images []string
	if cfg.Output.PNG {
		images = append(images, ".png")
	}
	if cfg.Output.TIFF {
		images = append(images, ".tiff")
	}
	if len(images) > 0 {
		sheet, err := preview.ContactSheet(vol, z, cfg.Output.SliceScale, cfg.Weights)
		if err != nil {
			return err
		}
		for _, ext := range images {
			path := filepath.Join(dir, fmt.Sprintf("slice_%03d%s", z, ext))
			if err := preview.Save(path, sheet); err != nil {
				return err
			}
			log.Printf("wrote %s", path)
		}
	}

	if cfg.Output.HDR {
		img, err := preview.HDRSlice(vol, z)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("slice_%03d.hdr", z))
		if err := preview.Save(path, img); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}

	if cfg.Output.Raw {
		path := filepath.Join(dir, fmt.Sprintf("worley_%dx%dx%d_rgba32f.raw", vol.Dims.X, vol.Dims.Y, vol.Dims.Z))
		if err := preview.SaveRaw(path, vol); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

// uploadVolume creates a hidden window to get a GL context, then uploads the
// volume the way the cloud renderer does.
func uploadVolume(vol *worley.Volume) error {
	/*
	 * GLFW init and configure
	 */
	if err := glfw.Init(); err != nil {
		return err
	}
	// Free resources used by GLFW when the upload is done.
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	// Nothing is drawn, so the window never needs to be shown.
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(1, 1, "Clouds", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	/*
	 * Load OS-specific OpenGL function pointers
	 */
	if err := gl.Init(); err != nil {
		return err
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	tex := NewTexture3D()
	defer tex.Delete()
	if err := tex.Generate(int32(vol.Dims.X), int32(vol.Dims.Y), int32(vol.Dims.Z), vol.Data); err != nil {
		return err
	}
	log.Printf("uploaded volume as 3D texture %d (%dx%dx%d RGBA)", tex.ID, tex.Width, tex.Height, tex.Depth)
	return nil
}
