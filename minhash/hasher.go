package minhash

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hupe1980/lshdedup/internal/cache"
	"github.com/spaolacci/murmur3"
)

var (
	// ErrInvalidNumSeeds is returned when numSeeds is not positive.
	ErrInvalidNumSeeds = errors.New("minhash: number of seeds must be positive")

	// ErrInvalidCharNGram is returned when the shingle width is not positive.
	ErrInvalidCharNGram = errors.New("minhash: char n-gram must be positive")

	// ErrSeedCount is returned when explicit seeds do not match numSeeds.
	ErrSeedCount = errors.New("minhash: seed count does not match number of seeds")
)

// Config is the persisted form of a Hasher.
type Config struct {
	NumSeeds  int      `json:"num_seeds"`
	CharNGram int      `json:"char_ngram"`
	Seeds     []uint32 `json:"seeds"`
}

// Hasher produces MinHash fingerprints. It is safe for concurrent use.
type Hasher struct {
	seeds     []uint32
	charNGram int
	memo      *cache.LRU[string, []uint64]
}

// New creates a Hasher with numSeeds component hash functions.
func New(numSeeds int, optFns ...Option) (*Hasher, error) {
	if numSeeds <= 0 {
		return nil, ErrInvalidNumSeeds
	}

	opts := options{
		charNGram: DefaultCharNGram,
		cacheSize: DefaultCacheSize,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.charNGram <= 0 {
		return nil, ErrInvalidCharNGram
	}

	seeds := opts.seeds
	if seeds == nil {
		seeds = generateSeeds(numSeeds, opts.randomState)
	} else if len(seeds) != numSeeds {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSeedCount, len(seeds), numSeeds)
	}

	return &Hasher{
		seeds:     seeds,
		charNGram: opts.charNGram,
		memo:      cache.NewLRU[string, []uint64](opts.cacheSize),
	}, nil
}

// FromConfig rebuilds a Hasher from ExportConfig output.
func FromConfig(data []byte, optFns ...Option) (*Hasher, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("minhash: decode config: %w", err)
	}

	if cfg.NumSeeds <= 0 {
		return nil, ErrInvalidNumSeeds
	}
	if cfg.CharNGram <= 0 {
		return nil, ErrInvalidCharNGram
	}
	if len(cfg.Seeds) != cfg.NumSeeds {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSeedCount, len(cfg.Seeds), cfg.NumSeeds)
	}

	optFns = append(optFns, WithCharNGram(cfg.CharNGram), WithSeeds(cfg.Seeds))
	return New(cfg.NumSeeds, optFns...)
}

// generateSeeds draws distinct seeds so no two components share a hash function.
func generateSeeds(n int, state *uint64) []uint32 {
	var rng *rand.Rand
	if state != nil {
		rng = rand.New(rand.NewPCG(*state, *state^0x9e3779b97f4a7c15))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	seen := make(map[uint32]struct{}, n)
	seeds := make([]uint32, 0, n)
	for len(seeds) < n {
		s := rng.Uint32()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		seeds = append(seeds, s)
	}
	return seeds
}

// NumSeeds returns the fingerprint length.
func (h *Hasher) NumSeeds() int { return len(h.seeds) }

// CharNGram returns the shingle width in bytes.
func (h *Hasher) CharNGram() int { return h.charNGram }

// Seeds returns a copy of the component seeds.
func (h *Hasher) Seeds() []uint32 { return append([]uint32(nil), h.seeds...) }

// Fingerprint returns the MinHash fingerprint of doc.
// The returned slice is shared with the memo and must not be modified.
func (h *Hasher) Fingerprint(doc []byte) []uint64 {
	key := string(doc)
	if fp, ok := h.memo.Get(key); ok {
		return fp
	}

	fp := h.compute(doc)
	h.memo.Set(key, fp)
	return fp
}

func (h *Hasher) compute(doc []byte) []uint64 {
	fp := make([]uint64, len(h.seeds))
	for i := range fp {
		fp[i] = math.MaxUint64
	}

	if len(doc) == 0 {
		return fp
	}

	n := h.charNGram
	if len(doc) < n {
		n = len(doc)
	}

	for start := 0; start+n <= len(doc); start++ {
		shingle := doc[start : start+n]
		for i, seed := range h.seeds {
			if v := murmur3.Sum64WithSeed(shingle, seed); v < fp[i] {
				fp[i] = v
			}
		}
	}

	return fp
}

// Jaccard estimates the Jaccard similarity of the documents behind a and b
// as the fraction of equal components. Fingerprints of different length
// are incomparable and score 0.
func (h *Hasher) Jaccard(a, b []uint64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	same := 0
	for i := range a {
		if a[i] == b[i] {
			same++
		}
	}
	return float64(same) / float64(len(a))
}

// ResetCache drops memoized fingerprints. Output is unaffected.
func (h *Hasher) ResetCache() {
	h.memo.Purge()
}

// CacheStats returns memo hit and miss counts.
func (h *Hasher) CacheStats() (hits, misses int64) {
	return h.memo.Stats()
}

// ExportConfig returns the JSON config from which FromConfig rebuilds an identical Hasher.
func (h *Hasher) ExportConfig() ([]byte, error) {
	return json.Marshal(Config{
		NumSeeds:  len(h.seeds),
		CharNGram: h.charNGram,
		Seeds:     h.seeds,
	})
}
