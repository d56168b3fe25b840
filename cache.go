package lshdedup

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lshdedup/internal/band"
	"github.com/hupe1980/lshdedup/internal/docid"
	"github.com/hupe1980/lshdedup/internal/store"
)

// Cache is a near-duplicate index over documents keyed by ID.
//
// Mutating methods (Update, AddFingerprint, UpdateBatch, Clear) must not run
// concurrently with each other or with queries. Queries may run concurrently
// with each other.
type Cache[ID DocID] struct {
	fingerprinter Fingerprinter
	bands         *band.Index
	ids           *docid.Table[ID]
	store         *store.Store
	opts          options
}

// Stats describes the current size and shape of a Cache.
type Stats struct {
	Documents  int
	Duplicates int
	Buckets    int
	NumBands   int
	BandWidth  int
	NumSeeds   int
}

// New creates an empty cache that fingerprints documents with fp.
// It returns a *ConfigurationError if fp.NumSeeds() is not divisible by the
// number of bands.
func New[ID DocID](fp Fingerprinter, optFns ...Option) (*Cache[ID], error) {
	if fp == nil {
		return nil, fmt.Errorf("%w: fingerprinter is nil", ErrConfiguration)
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	bands, err := band.New(fp.NumSeeds(), opts.numBands)
	if err != nil {
		return nil, translateError(err)
	}

	return &Cache[ID]{
		fingerprinter: fp,
		bands:         bands,
		ids:           docid.NewTable[ID](),
		store:         store.New(),
		opts:          opts,
	}, nil
}

// Fingerprinter returns the fingerprinter the cache was built with.
func (c *Cache[ID]) Fingerprinter() Fingerprinter { return c.fingerprinter }

// Update fingerprints doc and registers it under id.
// Registering an existing id overwrites its fingerprint and logs a warning.
func (c *Cache[ID]) Update(doc []byte, id ID) error {
	return c.AddFingerprint(id, c.fingerprinter.Fingerprint(doc))
}

// AddFingerprint registers a precomputed fingerprint under id.
func (c *Cache[ID]) AddFingerprint(id ID, fp Fingerprint) error {
	start := time.Now()
	replaced, err := c.register(id, fp)
	c.opts.metricsCollector.RecordUpdate(time.Since(start), replaced, err)
	return err
}

func (c *Cache[ID]) register(id ID, fp Fingerprint) (bool, error) {
	if n := c.fingerprinter.NumSeeds(); len(fp) != n {
		return false, &FingerprintLengthError{Expected: n, Actual: len(fp)}
	}

	idx, err := c.ids.Intern(id)
	if err != nil {
		return false, err
	}

	replaced := c.store.Put(idx, slices.Clone(fp))
	if replaced {
		c.opts.logger.LogDuplicateID(context.Background(), docid.Format(id))
	}
	c.bands.Insert(idx, fp)

	return replaced, nil
}

// UpdateBatch fingerprints docs concurrently and registers them in order.
// If fingerprinting fails, ctx is canceled or any fingerprint is invalid,
// nothing from the batch is registered.
func (c *Cache[ID]) UpdateBatch(ctx context.Context, docs []Document[ID]) error {
	fps := make([]Fingerprint, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.concurrency)
	for i := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fps[i] = c.fingerprinter.Fingerprint(docs[i].Content)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		c.opts.logger.LogBatch(ctx, len(docs), err)
		return err
	}

	if err := c.checkBatch(docs, fps); err != nil {
		c.opts.logger.LogBatch(ctx, len(docs), err)
		return err
	}

	for i, d := range docs {
		if err := c.AddFingerprint(d.ID, fps[i]); err != nil {
			err = fmt.Errorf("register document %d: %w", i, err)
			c.opts.logger.LogBatch(ctx, i, err)
			return err
		}
	}

	c.opts.logger.LogBatch(ctx, len(docs), nil)
	return nil
}

// checkBatch rejects a batch that would fail part way through registration.
func (c *Cache[ID]) checkBatch(docs []Document[ID], fps []Fingerprint) error {
	n := c.fingerprinter.NumSeeds()
	fresh := make(map[ID]struct{})
	for i, fp := range fps {
		if len(fp) != n {
			return fmt.Errorf("register document %d: %w", i, &FingerprintLengthError{Expected: n, Actual: len(fp)})
		}
		if _, ok := c.ids.Lookup(docs[i].ID); !ok {
			fresh[docs[i].ID] = struct{}{}
		}
	}
	if uint64(len(fresh)) > c.ids.Room() {
		return fmt.Errorf("register %d new documents: %w", len(fresh), docid.ErrTableFull)
	}
	return nil
}

// GetAllDuplicates returns every pair of documents sharing at least one bucket.
// With WithMinJaccard the pairs are re-scored from stored fingerprints.
// Pairs are returned with A < B in ascending order.
func (c *Cache[ID]) GetAllDuplicates(optFns ...QueryOption) ([]Pair[ID], error) {
	start := time.Now()
	pairs, err := c.allDuplicates(applyQueryOptions(optFns))
	c.opts.metricsCollector.RecordQuery(QueryAllDuplicates, len(pairs), time.Since(start), err)
	return pairs, err
}

func (c *Cache[ID]) allDuplicates(q queryOptions) ([]Pair[ID], error) {
	type key struct{ a, b uint32 }
	seen := make(map[key]struct{})

	for b := range c.bands.NumBands() {
		for _, members := range c.bands.Buckets(b) {
			if members.GetCardinality() < 2 {
				continue
			}
			docs := members.ToArray()
			for i := range docs {
				for j := i + 1; j < len(docs); j++ {
					seen[key{docs[i], docs[j]}] = struct{}{}
				}
			}
		}
	}

	if q.minJaccard != nil {
		ctx := context.Background()
		c.opts.logger.LogFilterStart(ctx, len(seen))
		total := len(seen)
		for k := range seen {
			sim, err := c.similarity(k.a, k.b)
			if err != nil {
				return nil, err
			}
			if sim <= *q.minJaccard {
				delete(seen, k)
			}
		}
		c.opts.logger.LogFilterDone(ctx, len(seen), total, *q.minJaccard)
	}

	pairs := make([]Pair[ID], 0, len(seen))
	for k := range seen {
		a, b := c.ids.ID(k.a), c.ids.ID(k.b)
		if b < a {
			a, b = b, a
		}
		pairs = append(pairs, Pair[ID]{A: a, B: b})
	}
	slices.SortFunc(pairs, func(x, y Pair[ID]) int {
		if n := cmp.Compare(x.A, y.A); n != 0 {
			return n
		}
		return cmp.Compare(x.B, y.B)
	})

	return pairs, nil
}

func (c *Cache[ID]) similarity(a, b uint32) (float64, error) {
	fa, err := c.stored(a)
	if err != nil {
		return 0, err
	}
	fb, err := c.stored(b)
	if err != nil {
		return 0, err
	}
	return c.fingerprinter.Jaccard(fa, fb), nil
}

func (c *Cache[ID]) stored(idx uint32) (Fingerprint, error) {
	fp, ok := c.store.Get(idx)
	if !ok {
		return nil, &LookupError{ID: docid.Format(c.ids.ID(idx))}
	}
	return fp, nil
}

// GetDuplicatesOf returns the ids sharing at least one bucket with a document.
//
// If id is non-nil and registered, its stored fingerprint is used. Otherwise
// doc is fingerprinted. With neither, ErrInvalidArgument is returned. The
// result is sorted and may include id itself.
func (c *Cache[ID]) GetDuplicatesOf(doc []byte, id *ID, optFns ...QueryOption) ([]ID, error) {
	start := time.Now()
	ids, err := c.duplicatesOf(doc, id, applyQueryOptions(optFns))
	c.opts.metricsCollector.RecordQuery(QueryDuplicatesOf, len(ids), time.Since(start), err)
	return ids, err
}

func (c *Cache[ID]) duplicatesOf(doc []byte, id *ID, q queryOptions) ([]ID, error) {
	fp, err := c.resolve(doc, id)
	if err != nil {
		return nil, err
	}

	candidates := c.bands.Candidates(fp)
	if q.minJaccard != nil {
		candidates, err = c.filter(candidates, fp, *q.minJaccard)
		if err != nil {
			return nil, err
		}
	}

	ids := make([]ID, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		ids = append(ids, c.ids.ID(it.Next()))
	}
	slices.Sort(ids)

	return ids, nil
}

func (c *Cache[ID]) resolve(doc []byte, id *ID) (Fingerprint, error) {
	if id != nil {
		if idx, ok := c.ids.Lookup(*id); ok {
			if fp, ok := c.store.Get(idx); ok {
				return fp, nil
			}
		}
	}
	if doc != nil {
		return c.fingerprinter.Fingerprint(doc), nil
	}
	return nil, ErrInvalidArgument
}

func (c *Cache[ID]) filter(candidates *roaring.Bitmap, fp Fingerprint, minJaccard float64) (*roaring.Bitmap, error) {
	kept := roaring.New()
	it := candidates.Iterator()
	for it.HasNext() {
		idx := it.Next()
		other, err := c.stored(idx)
		if err != nil {
			return nil, err
		}
		if c.fingerprinter.Jaccard(fp, other) > minJaccard {
			kept.Add(idx)
		}
	}
	return kept, nil
}

// IsDuplicate reports whether doc shares a bucket with any document other than id.
// A registered id is never reported as a duplicate; the check is for content
// that is about to be added.
func (c *Cache[ID]) IsDuplicate(doc []byte, id *ID) (bool, error) {
	start := time.Now()
	dup, err := c.isDuplicate(doc, id)
	n := 0
	if dup {
		n = 1
	}
	c.opts.metricsCollector.RecordQuery(QueryIsDuplicate, n, time.Since(start), err)
	return dup, err
}

func (c *Cache[ID]) isDuplicate(doc []byte, id *ID) (bool, error) {
	if id != nil && c.Contains(*id) {
		return false, nil
	}

	ids, err := c.duplicatesOf(doc, nil, queryOptions{})
	if err != nil {
		return false, err
	}
	for _, other := range ids {
		if id == nil || other != *id {
			return true, nil
		}
	}
	return false, nil
}

// Clear empties all buckets and resets the fingerprinter's memoization.
// Stored fingerprints are kept, so Fingerprint and Contains still see every
// registered id while no duplicates are reported until documents are re-added.
func (c *Cache[ID]) Clear() {
	c.bands.Clear()
	c.fingerprinter.ResetCache()
	c.opts.logger.LogClear(context.Background(), c.store.Len())
}

// Fingerprint returns a copy of the stored fingerprint of id.
func (c *Cache[ID]) Fingerprint(id ID) (Fingerprint, bool) {
	idx, ok := c.ids.Lookup(id)
	if !ok {
		return nil, false
	}
	fp, ok := c.store.Get(idx)
	if !ok {
		return nil, false
	}
	return slices.Clone(fp), true
}

// Contains reports whether a fingerprint is stored for id.
func (c *Cache[ID]) Contains(id ID) bool {
	idx, ok := c.ids.Lookup(id)
	return ok && c.store.Contains(idx)
}

// Len returns the number of stored fingerprints.
func (c *Cache[ID]) Len() int { return c.store.Len() }

// Stats returns size information about the cache.
func (c *Cache[ID]) Stats() Stats {
	return Stats{
		Documents:  c.store.Len(),
		Duplicates: c.store.Duplicates(),
		Buckets:    c.bands.Len(),
		NumBands:   c.bands.NumBands(),
		BandWidth:  c.bands.BandWidth(),
		NumSeeds:   c.bands.NumSeeds(),
	}
}
