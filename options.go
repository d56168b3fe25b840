package lshdedup

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/lshdedup/codec"
	"github.com/hupe1980/lshdedup/minhash"
	"github.com/hupe1980/lshdedup/persistence"
)

// DefaultNumBands is the number of bands used when WithNumBands is not given.
const DefaultNumBands = 10

type options struct {
	numBands         int
	logger           *Logger
	metricsCollector MetricsCollector
	concurrency      int
	factory          FingerprinterFactory
	codec            codec.Codec
}

func defaultOptions() options {
	return options{
		numBands:         DefaultNumBands,
		logger:           defaultLogger(),
		metricsCollector: NoopMetricsCollector{},
		concurrency:      runtime.GOMAXPROCS(0),
		factory:          MinHashFactory,
		codec:            codec.Default,
	}
}

// Option configures cache construction and snapshot loading.
type Option func(*options)

// WithNumBands sets the number of bands each fingerprint is split into.
// More bands raise recall and lower precision of the candidate set.
func WithNumBands(n int) Option {
	return func(o *options) {
		o.numBands = n
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithLogLevel replaces the logger with a text logger at the given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector sets the metrics collector.
//
// Example:
//
//	collector := &lshdedup.BasicMetricsCollector{}
//	c, _ := lshdedup.New[int](hasher, lshdedup.WithMetricsCollector(collector))
//	stats := collector.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithConcurrency bounds the number of goroutines UpdateBatch fingerprints with.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

// WithFingerprinterFactory sets how a fingerprinter is rebuilt from the
// configuration stored in a snapshot. Defaults to MinHashFactory.
func WithFingerprinterFactory(f FingerprinterFactory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithCodec sets the codec snapshots are written and read with.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

type queryOptions struct {
	minJaccard *float64
}

// QueryOption configures a duplicate query.
type QueryOption func(*queryOptions)

// WithMinJaccard re-scores banding candidates with the fingerprinter and keeps
// only those whose Jaccard estimate is strictly greater than t.
func WithMinJaccard(t float64) QueryOption {
	return func(o *queryOptions) {
		o.minJaccard = &t
	}
}

func applyQueryOptions(optFns []QueryOption) queryOptions {
	var o queryOptions
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

type saveOptions struct {
	codec       codec.Codec
	compression persistence.Compression
}

// SaveOption configures how a snapshot is written.
type SaveOption func(*saveOptions)

// WithSaveCodec overrides the cache's codec for a single save.
func WithSaveCodec(c codec.Codec) SaveOption {
	return func(o *saveOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression wraps the snapshot in a compression frame.
// Loading detects the frame automatically.
func WithCompression(c persistence.Compression) SaveOption {
	return func(o *saveOptions) {
		o.compression = c
	}
}

// MinHashFactory rebuilds a minhash.Hasher from its exported configuration.
func MinHashFactory(config []byte) (Fingerprinter, error) {
	h, err := minhash.FromConfig(config)
	if err != nil {
		return nil, err
	}
	return h, nil
}
