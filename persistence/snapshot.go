package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/lshdedup/codec"
	"github.com/hupe1980/lshdedup/internal/docid"
	"github.com/hupe1980/lshdedup/internal/hash"
)

// Key type tags recorded in id_key_type.
const (
	KeyTypeInt = "int"
	KeyTypeStr = "str"
)

// CurrentSignatureVersion is the bucket signature version written by this package.
const CurrentSignatureVersion = hash.SignatureVersion

// Snapshot is the persisted state of a cache with document ids of type K.
type Snapshot[K docid.ID] struct {
	// Hasher is the fingerprinter's exported configuration, opaque to the cache.
	Hasher json.RawMessage `json:"hasher"`
	// NumBands is a pointer so that an absent field is distinguishable from zero.
	NumBands *int `json:"num_bands"`
	// Bins holds one map per band from stringified bucket signature to member ids.
	Bins []map[string][]K `json:"bins"`
	// Fingerprints maps stringified ids to fingerprint values.
	Fingerprints map[string][]uint64 `json:"fingerprints"`
	// IDKeyType records how Fingerprints keys decode. Omitted when there are none.
	IDKeyType string `json:"id_key_type,omitempty"`
	// SignatureVersion identifies the bucket signature algorithm. Zero means version 1.
	SignatureVersion int `json:"signature_version,omitempty"`
}

// Validate checks required fields and internal consistency.
func (s *Snapshot[K]) Validate() error {
	if len(s.Hasher) == 0 || bytes.Equal(bytes.TrimSpace(s.Hasher), []byte("null")) {
		return &MissingFieldError{Field: "hasher"}
	}
	if s.NumBands == nil {
		return &MissingFieldError{Field: "num_bands"}
	}
	if s.Bins == nil {
		return &MissingFieldError{Field: "bins"}
	}
	if s.Fingerprints == nil {
		return &MissingFieldError{Field: "fingerprints"}
	}

	if *s.NumBands <= 0 {
		return corrupt("num_bands must be positive, got %d", *s.NumBands)
	}
	if len(s.Bins) != *s.NumBands {
		return corrupt("expected %d bins, got %d", *s.NumBands, len(s.Bins))
	}

	version := s.SignatureVersion
	if version == 0 {
		version = 1
	}
	if version != hash.SignatureVersion {
		return corrupt("unsupported signature version %d (expected %d)", version, hash.SignatureVersion)
	}

	switch s.IDKeyType {
	case "":
	case KeyTypeInt, KeyTypeStr:
		if want := docid.KeyType[K](); s.IDKeyType != want {
			return corrupt("id_key_type %q cannot be loaded as %s ids", s.IDKeyType, want)
		}
	default:
		return corrupt("unknown id_key_type %q", s.IDKeyType)
	}

	return nil
}

// Encode marshals s with c and wraps the result in the requested compression frame.
func Encode[K docid.ID](s *Snapshot[K], c codec.Codec, comp Compression) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("persistence: encode with %s: %w", c.Name(), err)
	}
	return compress(data, comp)
}

// Decode unwraps any compression frame, unmarshals with c and validates the snapshot.
func Decode[K docid.ID](data []byte, c codec.Codec) (*Snapshot[K], error) {
	if c == nil {
		c = codec.Default
	}
	raw, err := decompress(data)
	if err != nil {
		return nil, err
	}

	var s Snapshot[K]
	if err := c.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: decode with %s: %w", ErrCorrupt, c.Name(), err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
