package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	NumBands int                 `json:"num_bands"`
	Bins     []map[string][]int  `json:"bins"`
	Prints   map[string][]uint64 `json:"fingerprints"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestInterchangeable(t *testing.T) {
	in := sample{
		NumBands: 2,
		Bins:     []map[string][]int{{"17": {1, 2}}, {}},
		Prints:   map[string][]uint64{"1": {18446744073709551615, 3}},
	}

	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			t.Run(enc.Name()+"->"+dec.Name(), func(t *testing.T) {
				var out sample
				require.NoError(t, dec.Unmarshal(MustMarshal(enc, in), &out))
				assert.Equal(t, in, out)
			})
		}
	}
}
