package persistence

import (
	"encoding/json"
	"testing"

	"github.com/hupe1980/lshdedup/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleSnapshot() *Snapshot[int] {
	return &Snapshot[int]{
		Hasher:   json.RawMessage(`{"num_seeds":4,"char_ngram":8,"seeds":[1,2,3,4]}`),
		NumBands: intPtr(2),
		Bins: []map[string][]int{
			{"123": {1, 2}},
			{"456": {1}, "789": {2}},
		},
		Fingerprints: map[string][]uint64{
			"1": {1, 2, 3, 4},
			"2": {1, 2, 5, 6},
		},
		IDKeyType:        KeyTypeInt,
		SignatureVersion: 1,
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
			t.Run(comp.String()+"/"+c.Name(), func(t *testing.T) {
				in := sampleSnapshot()
				data, err := Encode(in, c, comp)
				require.NoError(t, err)

				out, err := Decode[int](data, c)
				require.NoError(t, err)

				assert.JSONEq(t, string(in.Hasher), string(out.Hasher))
				assert.Equal(t, *in.NumBands, *out.NumBands)
				assert.Equal(t, in.Bins, out.Bins)
				assert.Equal(t, in.Fingerprints, out.Fingerprints)
				assert.Equal(t, in.IDKeyType, out.IDKeyType)
			})
		}
	}
}

func TestEncode_PlainIsJSON(t *testing.T) {
	data, err := Encode(sampleSnapshot(), codec.JSON{}, CompressionNone)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	for _, field := range []string{"hasher", "num_bands", "bins", "fingerprints", "id_key_type"} {
		assert.Contains(t, generic, field)
	}
}

func TestEncode_EmptyOmitsKeyType(t *testing.T) {
	s := &Snapshot[string]{
		Hasher:       json.RawMessage(`{}`),
		NumBands:     intPtr(1),
		Bins:         []map[string][]string{{}},
		Fingerprints: map[string][]uint64{},
	}
	data, err := Encode(s, codec.JSON{}, CompressionNone)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "id_key_type")

	_, err = Decode[string](data, nil)
	require.NoError(t, err)
}

func TestDecode_MissingFields(t *testing.T) {
	tests := []struct {
		field string
		doc   string
	}{
		{"hasher", `{"num_bands":1,"bins":[{}],"fingerprints":{}}`},
		{"hasher", `{"hasher":null,"num_bands":1,"bins":[{}],"fingerprints":{}}`},
		{"num_bands", `{"hasher":{},"bins":[{}],"fingerprints":{}}`},
		{"bins", `{"hasher":{},"num_bands":1,"fingerprints":{}}`},
		{"fingerprints", `{"hasher":{},"num_bands":1,"bins":[{}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := Decode[int]([]byte(tt.doc), codec.JSON{})
			var mf *MissingFieldError
			require.ErrorAs(t, err, &mf)
			assert.Equal(t, tt.field, mf.Field)
		})
	}
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"NotJSON", `{{{`},
		{"BinCountMismatch", `{"hasher":{},"num_bands":2,"bins":[{}],"fingerprints":{}}`},
		{"ZeroBands", `{"hasher":{},"num_bands":0,"bins":[],"fingerprints":{}}`},
		{"FutureSignatureVersion", `{"hasher":{},"num_bands":1,"bins":[{}],"fingerprints":{},"signature_version":99}`},
		{"KeyTypeMismatch", `{"hasher":{},"num_bands":1,"bins":[{}],"fingerprints":{"a":[1]},"id_key_type":"str"}`},
		{"UnknownKeyType", `{"hasher":{},"num_bands":1,"bins":[{}],"fingerprints":{},"id_key_type":"float"}`},
		{"TruncatedZstd", string(append([]byte{0x28, 0xb5, 0x2f, 0xfd}, 0x00, 0x01))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[int]([]byte(tt.doc), codec.JSON{})
			require.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestCompression_String(t *testing.T) {
	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())
	assert.Equal(t, "zstd", CompressionZstd.String())
	assert.Equal(t, "compression(9)", Compression(9).String())

	_, err := Encode(sampleSnapshot(), nil, Compression(9))
	require.Error(t, err)
}
