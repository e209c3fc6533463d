// Package config loads the settings of the cloud volume bake.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/braheezy/volumetric-clouds/worley"
)

// Output controls which artifacts a bake writes.
type Output struct {
	Dir        string `json:"dir"`
	Slice      int    `json:"slice"` // z index shown in previews; negative picks the middle slice
	SliceScale int    `json:"sliceScale"`
	PNG        bool   `json:"png"`
	TIFF       bool   `json:"tiff"`
	HDR        bool   `json:"hdr"`
	Raw        bool   `json:"raw"`
}

type Config struct {
	Resolution      [3]int                      `json:"resolution"`
	Frequencies     [worley.NumChannels]int     `json:"frequencies"`
	Domain          float32                     `json:"domain"`
	LiveProbability float32                     `json:"liveProbability"`
	DistanceCap     float32                     `json:"distanceCap"`
	Seed            int64                       `json:"seed,omitempty"`
	Weights         [worley.NumChannels]float32 `json:"weights"`
	Output          Output                      `json:"output"`
}

var ErrInvalid = errors.New("invalid config")

// Default returns the settings the cloud renderer ships with.
func Default() *Config {
	return &Config{
		Resolution:      [3]int{worley.DefaultDims.X, worley.DefaultDims.Y, worley.DefaultDims.Z},
		Frequencies:     worley.DefaultFrequencies,
		Domain:          worley.DefaultDomain,
		LiveProbability: worley.DefaultLiveProbability,
		DistanceCap:     worley.ReferenceDistanceCap,
		Weights:         worley.DefaultWeights,
		Output: Output{
			Dir:        "out",
			Slice:      -1,
			SliceScale: 4,
			PNG:        true,
			HDR:        true,
			Raw:        true,
		},
	}
}

// Load reads a JSON config file. Fields missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a JSON config over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against the ranges the generator accepts.
func (c *Config) Validate() error {
	for i, n := range c.Resolution {
		if n < 1 {
			return fmt.Errorf("%w: resolution[%d] = %d, must be at least 1", ErrInvalid, i, n)
		}
	}
	for i, f := range c.Frequencies {
		if f < 1 {
			return fmt.Errorf("%w: frequencies[%d] = %d, must be at least 1", ErrInvalid, i, f)
		}
	}
	if err := c.WorleyOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var total float32
	for i, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("%w: weights[%d] = %v is negative", ErrInvalid, i, w)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%w: weights must not all be zero", ErrInvalid)
	}

	if c.Output.SliceScale < 1 {
		return fmt.Errorf("%w: output.sliceScale = %d, must be at least 1", ErrInvalid, c.Output.SliceScale)
	}
	if c.Output.Slice >= c.Resolution[2] {
		return fmt.Errorf("%w: output.slice = %d outside %d z slices", ErrInvalid, c.Output.Slice, c.Resolution[2])
	}
	return nil
}

// Dims returns the voxel resolution as generator dimensions.
func (c *Config) Dims() worley.Dims {
	return worley.Dims{X: c.Resolution[0], Y: c.Resolution[1], Z: c.Resolution[2]}
}

// PreviewSlice resolves the z slice used for previews.
func (c *Config) PreviewSlice() int {
	if c.Output.Slice < 0 {
		return c.Resolution[2] / 2
	}
	return c.Output.Slice
}

// WorleyOptions maps the config onto generator options.
func (c *Config) WorleyOptions() worley.Options {
	return worley.Options{
		Domain:          c.Domain,
		LiveProbability: c.LiveProbability,
		DistanceCap:     c.DistanceCap,
		Seed:            c.Seed,
	}
}
