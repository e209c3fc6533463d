package worley

import (
	"math/rand"
	"time"
)

// Source supplies uniform random values in [0,1).
type Source interface {
	Float32() float32
}

// NewSource returns a Source backed by its own math/rand generator.
// Sources are not safe for concurrent use; give every goroutine its own.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// clockSeed is used when no seed was configured.
func clockSeed() int64 {
	return time.Now().UnixNano()
}

// channelSeeds derives one independent seed per channel from a root seed.
// All seeds are drawn up front so a channel's stream never depends on how
// many values another channel consumed.
func channelSeeds(root int64) [NumChannels]int64 {
	r := rand.New(rand.NewSource(root))
	var seeds [NumChannels]int64
	for c := range seeds {
		seeds[c] = r.Int63()
	}
	return seeds
}
