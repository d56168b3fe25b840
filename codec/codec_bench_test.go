package codec

import (
	"strconv"
	"testing"
)

func benchSample() sample {
	s := sample{
		NumBands: 16,
		Prints:   make(map[string][]uint64, 1000),
	}
	for b := 0; b < s.NumBands; b++ {
		bin := make(map[string][]int, 1000)
		for i := 0; i < 1000; i++ {
			bin[strconv.Itoa(i*7919+b)] = []int{i}
		}
		s.Bins = append(s.Bins, bin)
	}
	for i := 0; i < 1000; i++ {
		fp := make([]uint64, 128)
		for j := range fp {
			fp[j] = uint64(i*j) * 2654435761
		}
		s.Prints[strconv.Itoa(i)] = fp
	}
	return s
}

func BenchmarkCodec_Marshal_Snapshot(b *testing.B) {
	s := benchSample()
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Marshal(s); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCodec_Unmarshal_Snapshot(b *testing.B) {
	data := MustMarshal(JSON{}, benchSample())
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				var s sample
				if err := c.Unmarshal(data, &s); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
