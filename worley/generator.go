package worley

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/dgravesa/go-parallel/parallel"
)

// NumChannels is the number of noise channels packed into every voxel (RGBA).
const NumChannels = 4

// Reference parameters of the cloud volume.
const (
	DefaultDomain          = 100.0
	DefaultLiveProbability = 0.6

	// ReferenceDistanceCap is the search starting minimum the cloud renderer was
	// tuned with. It flattens voxels farther than ~31.6 units from any point.
	ReferenceDistanceCap = 1000.0
)

var (
	DefaultDims        = Dims{X: 64, Y: 64, Z: 64}
	DefaultFrequencies = [NumChannels]int{4, 8, 16, 32}
)

var (
	ErrInvalidDimensions = errors.New("worley: voxel dimensions must be at least 1")
	ErrInvalidFrequency  = errors.New("worley: channel frequency must be at least 1")
	ErrInvalidOptions    = errors.New("worley: invalid generator options")
)

// Options configures a Generator.
type Options struct {
	// Domain is the side length of the periodic cube the lattices cover.
	Domain float32
	// LiveProbability is the chance a lattice cell keeps its feature point.
	LiveProbability float32
	// DistanceCap bounds raw squared distances; 0 leaves them uncapped.
	DistanceCap float32
	// Seed is the root seed of the per-channel streams; 0 seeds from the clock.
	Seed int64
	// Source, when set, supplies the random stream of each channel instead of
	// the seeded ones.
	Source func(channel int) Source
}

// DefaultOptions returns the reference domain and live probability with an
// uncapped distance search and a clock seed.
func DefaultOptions() Options {
	return Options{
		Domain:          DefaultDomain,
		LiveProbability: DefaultLiveProbability,
	}
}

// Validate reports whether the options can drive a generation.
func (o Options) Validate() error {
	if !(o.Domain > 0) {
		return fmt.Errorf("%w: domain %v must be positive", ErrInvalidOptions, o.Domain)
	}
	if o.LiveProbability < 0 || o.LiveProbability > 1 {
		return fmt.Errorf("%w: live probability %v outside [0,1]", ErrInvalidOptions, o.LiveProbability)
	}
	if o.DistanceCap < 0 {
		return fmt.Errorf("%w: distance cap %v is negative", ErrInvalidOptions, o.DistanceCap)
	}
	return nil
}

// Generator builds 4-channel Worley volumes. The root random stream advances
// with every call, so successive volumes differ while a fixed Seed makes the
// whole sequence reproducible. A Generator is safe for concurrent use.
type Generator struct {
	opts Options

	mu   sync.Mutex
	root *rand.Rand
}

// NewGenerator returns a Generator for the given options.
func NewGenerator(opts Options) *Generator {
	seed := opts.Seed
	if seed == 0 {
		seed = clockSeed()
	}
	return &Generator{
		opts: opts,
		root: rand.New(rand.NewSource(seed)),
	}
}

// Options returns the options the generator was built with.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate computes every channel from scratch and interleaves them into a
// new Volume. Channel c uses freqs[c] cells per axis; channels share nothing
// but the voxel grid and the domain, and run concurrently.
func (g *Generator) Generate(dims Dims, freqs [NumChannels]int) (*Volume, error) {
	if dims.X < 1 || dims.Y < 1 || dims.Z < 1 {
		return nil, fmt.Errorf("%w: got %dx%dx%d", ErrInvalidDimensions, dims.X, dims.Y, dims.Z)
	}
	for c, f := range freqs {
		if f < 1 {
			return nil, fmt.Errorf("%w: channel %d has frequency %d", ErrInvalidFrequency, c, f)
		}
	}
	if err := g.opts.Validate(); err != nil {
		return nil, err
	}

	sources := g.channelSources()
	vol := &Volume{
		Dims:        dims,
		Frequencies: freqs,
		Data:        make([]float32, dims.Voxels()*NumChannels),
	}

	parallel.For(NumChannels, func(c, _ int) {
		field := g.channel(dims, freqs[c], sources[c])
		// Interleave: channel-minor, voxel-major.
		for i, v := range field {
			vol.Data[c+NumChannels*i] = v
		}
	})

	return vol, nil
}

// channel runs lattice → distance field → normalization for one channel.
func (g *Generator) channel(dims Dims, freq int, rng Source) []float32 {
	lat := NewLattice(freq, g.opts.Domain, g.opts.LiveProbability, rng)
	field, maxDist := DistanceField(dims, lat, g.opts.Domain, g.opts.DistanceCap)
	Normalize(field, maxDist)
	return field
}

func (g *Generator) channelSources() [NumChannels]Source {
	var sources [NumChannels]Source
	if g.opts.Source != nil {
		for c := range sources {
			sources[c] = g.opts.Source(c)
		}
		return sources
	}

	g.mu.Lock()
	seeds := channelSeeds(g.root.Int63())
	g.mu.Unlock()

	for c := range sources {
		sources[c] = NewSource(seeds[c])
	}
	return sources
}

var (
	defaultOnce      sync.Once
	defaultGenerator *Generator
)

// GenerateVolumeNoise builds a dimX×dimY×dimZ volume with four Worley channels
// of the given frequencies, using the reference options and a process-wide
// generator seeded once from the clock. The result has dimX*dimY*dimZ*4
// values in [0,1], laid out as c + 4*(x + dimX*(y + dimY*z)), and belongs
// to the caller.
func GenerateVolumeNoise(dimX, dimY, dimZ, freq1, freq2, freq3, freq4 int) ([]float32, error) {
	defaultOnce.Do(func() {
		defaultGenerator = NewGenerator(DefaultOptions())
	})
	vol, err := defaultGenerator.Generate(
		Dims{X: dimX, Y: dimY, Z: dimZ},
		[NumChannels]int{freq1, freq2, freq3, freq4},
	)
	if err != nil {
		return nil, err
	}
	return vol.Data, nil
}
