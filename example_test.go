package lshdedup_test

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/lshdedup"
	"github.com/hupe1980/lshdedup/blobstore"
	"github.com/hupe1980/lshdedup/minhash"
	"github.com/hupe1980/lshdedup/persistence"
)

func newHasher() *minhash.Hasher {
	hasher, err := minhash.New(64, minhash.WithRandomState(42), minhash.WithCharNGram(5))
	if err != nil {
		log.Fatal(err)
	}
	return hasher
}

// Example_getAllDuplicates demonstrates finding all near-duplicate pairs.
func Example_getAllDuplicates() {
	c, err := lshdedup.New[int](newHasher(), lshdedup.WithNumBands(16))
	if err != nil {
		log.Fatal(err)
	}

	_ = c.Update([]byte("Go is an open source programming language."), 1)
	_ = c.Update([]byte("Go is an open source programming language!"), 2)
	_ = c.Update([]byte("Roaring bitmaps are compressed bitsets."), 3)

	pairs, err := c.GetAllDuplicates(lshdedup.WithMinJaccard(0.8))
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range pairs {
		fmt.Println(p.A, p.B)
	}
	// Output: 1 2
}

// Example_isDuplicate demonstrates checking content before adding it.
func Example_isDuplicate() {
	c, _ := lshdedup.New[string](newHasher(), lshdedup.WithNumBands(16))
	_ = c.Update([]byte("Go is an open source programming language."), "go")

	dup, _ := c.IsDuplicate([]byte("Go is an open source programming language!"), nil)
	fmt.Println(dup)

	dup, _ = c.IsDuplicate([]byte("Something completely different."), nil)
	fmt.Println(dup)
	// Output:
	// true
	// false
}

// Example_saveLoad demonstrates persisting a cache to a blob store.
func Example_saveLoad() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	c, _ := lshdedup.New[int](newHasher(), lshdedup.WithNumBands(16))
	_ = c.Update([]byte("Go is an open source programming language."), 1)
	_ = c.Update([]byte("Go is an open source programming language!"), 2)

	if err := c.Save(ctx, store, "cache.json.zst", lshdedup.WithCompression(persistence.CompressionZstd)); err != nil {
		log.Fatal(err)
	}

	loaded, err := lshdedup.Load[int](ctx, store, "cache.json.zst")
	if err != nil {
		log.Fatal(err)
	}

	one := 1
	ids, _ := loaded.GetDuplicatesOf(nil, &one)
	fmt.Println(ids)
	// Output: [1 2]
}

// Example_encode demonstrates writing a snapshot to an io.Writer.
func Example_encode() {
	c, _ := lshdedup.New[int](newHasher(), lshdedup.WithNumBands(16))
	_ = c.Update([]byte("hello world"), 1)

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		log.Fatal(err)
	}

	loaded, _ := lshdedup.Decode[int](&buf)
	fmt.Println(loaded.Len(), loaded.Stats().BandWidth)
	// Output: 1 4
}
