package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s := New()

	assert.False(t, s.Contains(0))
	_, ok := s.Get(5)
	assert.False(t, ok)

	assert.False(t, s.Put(3, []uint64{1, 2}))
	assert.False(t, s.Put(0, []uint64{3, 4}))
	assert.Equal(t, 2, s.Len())

	fp, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, []uint64{1, 2}, fp)
	assert.False(t, s.Contains(1), "gap indices are absent")

	t.Run("OverwriteReportsReplaced", func(t *testing.T) {
		assert.True(t, s.Put(3, []uint64{9, 9}))
		fp, _ := s.Get(3)
		assert.Equal(t, []uint64{9, 9}, fp)
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, 1, s.Duplicates())
	})

	t.Run("AllInIndexOrder", func(t *testing.T) {
		var idxs []uint32
		for idx := range s.All() {
			idxs = append(idxs, idx)
		}
		assert.Equal(t, []uint32{0, 3}, idxs)
	})
}
