// Package store holds the authoritative fingerprint of every registered document.
package store

import "iter"

// Store maps dense document indices to fingerprints.
// Indices come from a docid.Table, so the backing slice stays dense.
type Store struct {
	fps        [][]uint64
	n          int
	duplicates int
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Put stores fp for idx, overwriting any previous fingerprint.
// It reports whether a fingerprint was replaced.
func (s *Store) Put(idx uint32, fp []uint64) (replaced bool) {
	if int(idx) >= len(s.fps) {
		grown := make([][]uint64, int(idx)+1, max(int(idx)+1, 2*len(s.fps)))
		copy(grown, s.fps)
		s.fps = grown
	}

	replaced = s.fps[idx] != nil
	if replaced {
		s.duplicates++
	} else {
		s.n++
	}

	s.fps[idx] = fp
	return replaced
}

// Get returns the fingerprint stored for idx.
func (s *Store) Get(idx uint32) ([]uint64, bool) {
	if int(idx) >= len(s.fps) || s.fps[idx] == nil {
		return nil, false
	}
	return s.fps[idx], true
}

// Contains reports whether a fingerprint is stored for idx.
func (s *Store) Contains(idx uint32) bool {
	_, ok := s.Get(idx)
	return ok
}

// Len returns the number of stored fingerprints.
func (s *Store) Len() int { return s.n }

// Duplicates returns how many Puts replaced an existing fingerprint.
func (s *Store) Duplicates() int { return s.duplicates }

// All iterates over stored fingerprints in ascending index order.
func (s *Store) All() iter.Seq2[uint32, []uint64] {
	return func(yield func(uint32, []uint64) bool) {
		for i, fp := range s.fps {
			if fp == nil {
				continue
			}
			if !yield(uint32(i), fp) {
				return
			}
		}
	}
}
