package lshdedup

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/hupe1980/lshdedup/blobstore"
	"github.com/hupe1980/lshdedup/internal/docid"
	"github.com/hupe1980/lshdedup/persistence"
)

// Snapshot captures the full state of the cache. The snapshot shares no
// memory with the cache.
func (c *Cache[ID]) Snapshot() (*persistence.Snapshot[ID], error) {
	hasher, err := c.fingerprinter.ExportConfig()
	if err != nil {
		return nil, fmt.Errorf("export fingerprinter config: %w", err)
	}

	numBands := c.bands.NumBands()
	bins := make([]map[string][]ID, numBands)
	for b := range numBands {
		bins[b] = make(map[string][]ID)
		for sig, members := range c.bands.Buckets(b) {
			ids := make([]ID, 0, members.GetCardinality())
			it := members.Iterator()
			for it.HasNext() {
				ids = append(ids, c.ids.ID(it.Next()))
			}
			bins[b][strconv.FormatUint(sig, 10)] = ids
		}
	}

	fingerprints := make(map[string][]uint64, c.store.Len())
	for idx, fp := range c.store.All() {
		fingerprints[docid.Format(c.ids.ID(idx))] = slices.Clone(fp)
	}

	s := &persistence.Snapshot[ID]{
		Hasher:           hasher,
		NumBands:         &numBands,
		Bins:             bins,
		Fingerprints:     fingerprints,
		SignatureVersion: persistence.CurrentSignatureVersion,
	}
	if len(fingerprints) > 0 {
		s.IDKeyType = docid.KeyType[ID]()
	}

	return s, nil
}

// FromSnapshot builds a new cache from s. The fingerprinter is rebuilt first
// with the configured FingerprinterFactory. Fingerprints are copied out of s.
func FromSnapshot[ID DocID](s *persistence.Snapshot[ID], optFns ...Option) (*Cache[ID], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	fp, err := opts.factory(s.Hasher)
	if err != nil {
		return nil, fmt.Errorf("%w: rebuild fingerprinter: %w", persistence.ErrCorrupt, err)
	}

	c, err := New[ID](fp, append(slices.Clone(optFns), WithNumBands(*s.NumBands))...)
	if err != nil {
		return nil, err
	}

	for b, bin := range s.Bins {
		for key, members := range bin {
			sig, err := strconv.ParseUint(key, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: band %d: bucket signature %q: %w", persistence.ErrCorrupt, b, key, err)
			}
			docs := make([]uint32, 0, len(members))
			for _, id := range members {
				idx, err := c.ids.Intern(id)
				if err != nil {
					return nil, err
				}
				docs = append(docs, idx)
			}
			if err := c.bands.Restore(b, sig, docs...); err != nil {
				return nil, fmt.Errorf("%w: %w", persistence.ErrCorrupt, err)
			}
		}
	}

	for key, values := range s.Fingerprints {
		id, err := docid.Parse[ID](key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", persistence.ErrCorrupt, err)
		}
		if len(values) != fp.NumSeeds() {
			return nil, fmt.Errorf("%w: fingerprint of %q has %d values, expected %d",
				persistence.ErrCorrupt, key, len(values), fp.NumSeeds())
		}
		idx, err := c.ids.Intern(id)
		if err != nil {
			return nil, err
		}
		c.store.Put(idx, slices.Clone(values))
	}

	return c, nil
}

func (c *Cache[ID]) marshal(optFns []SaveOption) ([]byte, error) {
	opts := saveOptions{codec: c.opts.codec}
	for _, fn := range optFns {
		fn(&opts)
	}

	s, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return persistence.Encode(s, opts.codec, opts.compression)
}

func unmarshal[ID DocID](data []byte, optFns []Option) (*Cache[ID], error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	s, err := persistence.Decode[ID](data, opts.codec)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(s, optFns...)
}

// Save writes a snapshot of the cache to store under name.
// The object is replaced in one step; a failed save leaves any previous
// snapshot intact.
func (c *Cache[ID]) Save(ctx context.Context, store blobstore.BlobStore, name string, optFns ...SaveOption) error {
	start := time.Now()

	data, err := c.marshal(optFns)
	if err == nil {
		err = store.Put(ctx, name, data)
	}

	c.opts.metricsCollector.RecordPersist(true, len(data), time.Since(start), err)
	c.opts.logger.LogSave(ctx, name, len(data), err)

	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Load reads the snapshot stored under name into a new cache.
// On error no cache is returned.
func Load[ID DocID](ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Cache[ID], error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()

	data, err := store.Get(ctx, name)
	var c *Cache[ID]
	if err == nil {
		c, err = unmarshal[ID](data, optFns)
	}

	opts.metricsCollector.RecordPersist(false, len(data), time.Since(start), err)
	docs := 0
	if c != nil {
		docs = c.Len()
	}
	opts.logger.LogLoad(ctx, name, docs, err)

	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return c, nil
}

// Encode writes a snapshot of the cache to w.
func (c *Cache[ID]) Encode(w io.Writer, optFns ...SaveOption) error {
	data, err := c.marshal(optFns)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode reads a snapshot from r into a new cache.
func Decode[ID DocID](r io.Reader, optFns ...Option) (*Cache[ID], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return unmarshal[ID](data, optFns)
}

// SaveFile writes a snapshot to path atomically.
func (c *Cache[ID]) SaveFile(ctx context.Context, path string, optFns ...SaveOption) error {
	return c.Save(ctx, blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path), optFns...)
}

// LoadFile reads a snapshot written by SaveFile.
func LoadFile[ID DocID](ctx context.Context, path string, optFns ...Option) (*Cache[ID], error) {
	return Load[ID](ctx, blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path), optFns...)
}
