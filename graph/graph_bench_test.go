package graph

import (
	"fmt"
	"testing"

	"github.com/hupe1980/cohort/testutil"
)

func BenchmarkBuild(b *testing.B) {
	for _, n := range []int{500, 2_000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			data := testutil.NewRNG(1).DiscreteEntities(n, 8, 3, 2)

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				if _, err := Build(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkKCore(b *testing.B) {
	g, err := Build(testutil.NewRNG(2).DiscreteEntities(2_000, 8, 3, 2))
	if err != nil {
		b.Fatal(err)
	}

	for _, k := range []int{1, 8, 64} {
		b.Run(fmt.Sprintf("k=%d", k), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := KCore(g, k); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCoreNumbers(b *testing.B) {
	g, err := Build(testutil.NewRNG(3).DiscreteEntities(2_000, 8, 3, 2))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = CoreNumbers(g)
	}
}
