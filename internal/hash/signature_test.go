package hash

import (
	"encoding/binary"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandSignature(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		band := []uint64{1, 2, 3, 4}
		assert.Equal(t, BandSignature(band), BandSignature([]uint64{1, 2, 3, 4}))
	})

	t.Run("OrderSensitive", func(t *testing.T) {
		assert.NotEqual(t, BandSignature([]uint64{1, 2}), BandSignature([]uint64{2, 1}))
	})

	t.Run("ValueSensitive", func(t *testing.T) {
		assert.NotEqual(t, BandSignature([]uint64{1, 2}), BandSignature([]uint64{1, 3}))
	})

	t.Run("LengthPrefixed", func(t *testing.T) {
		assert.NotEqual(t, BandSignature([]uint64{0}), BandSignature([]uint64{0, 0}))
		assert.NotEqual(t, BandSignature(nil), BandSignature([]uint64{0}))
	})

	t.Run("SeededFNV", func(t *testing.T) {
		var buf []byte
		buf = binary.LittleEndian.AppendUint64(buf, signatureSeed)
		buf = binary.LittleEndian.AppendUint64(buf, 2)
		buf = binary.LittleEndian.AppendUint64(buf, 7)
		buf = binary.LittleEndian.AppendUint64(buf, 9)
		h := fnv.New64a()
		_, _ = h.Write(buf)

		assert.Equal(t, finalize(h.Sum64()), BandSignature([]uint64{7, 9}))
	})

	t.Run("NoCollisionsOnSmallDomain", func(t *testing.T) {
		seen := make(map[uint64]struct{})
		for i := uint64(0); i < 100; i++ {
			for j := uint64(0); j < 100; j++ {
				seen[BandSignature([]uint64{i, j})] = struct{}{}
			}
		}
		assert.Len(t, seen, 100*100)
	})
}

func BenchmarkBandSignature(b *testing.B) {
	band := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	b.ReportAllocs()
	for b.Loop() {
		_ = BandSignature(band)
	}
}
