package hash

import (
	"encoding/binary"
	"hash/fnv"
)

// SignatureVersion identifies the band signature algorithm.
// Snapshots record it so that buckets from an incompatible version are rejected.
const SignatureVersion = 1

// signatureSeed is hashed ahead of every band. Part of version 1.
const signatureSeed = 0x6c73686465647570 // "lshdedup"

// BandSignature returns the bucket signature for the ordered band values.
// Equal values in equal order always produce the same signature.
func BandSignature(values []uint64) uint64 {
	buf := make([]byte, 0, 8*(len(values)+2))
	buf = binary.LittleEndian.AppendUint64(buf, signatureSeed)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(values)))
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint64(buf, v)
	}

	h := fnv.New64a()
	_, _ = h.Write(buf)

	return finalize(h.Sum64())
}

// finalize spreads the low-entropy FNV tail across all bits (splitmix64 finalizer).
func finalize(h uint64) uint64 {
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}
