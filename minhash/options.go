package minhash

// DefaultCharNGram is the default shingle width in bytes.
const DefaultCharNGram = 8

// DefaultCacheSize is the default number of memoized fingerprints.
const DefaultCacheSize = 4096

type options struct {
	charNGram   int
	randomState *uint64
	seeds       []uint32
	cacheSize   int
}

// Option configures a Hasher.
type Option func(*options)

// WithCharNGram sets the shingle width in bytes.
func WithCharNGram(n int) Option {
	return func(o *options) {
		o.charNGram = n
	}
}

// WithRandomState makes seed generation deterministic.
// Without it, seeds are drawn from a randomly seeded generator.
func WithRandomState(state uint64) Option {
	return func(o *options) {
		o.randomState = &state
	}
}

// WithSeeds uses the given seeds verbatim. len(seeds) must equal numSeeds.
func WithSeeds(seeds []uint32) Option {
	return func(o *options) {
		o.seeds = append([]uint32(nil), seeds...)
	}
}

// WithCacheSize sets how many fingerprints are memoized. Zero disables memoization.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}
