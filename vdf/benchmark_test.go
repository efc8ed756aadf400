package vdf

import (
	"fmt"
	"testing"
	"time"

	trishare "github.com/BackendStack21/trishare-go"
)

func BenchmarkTemporalVDF_Cycle(b *testing.B) {
	cfg := trishare.TemporalConfig{MinIterationTime: time.Millisecond, EnforceTiming: false}
	for _, size := range []int{1024, 4096, 16384, 65536} {
		b.Run(fmt.Sprintf("%d", size), func(b *testing.B) {
			v := New(cfg)
			input := make([]byte, size)
			b.SetBytes(int64(size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := RunCycle(v, input); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
