package chart

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/masmgr/wordhist/internal/series"
)

func TestComputeScale_MeanInDecade_Rapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		counts := rapid.SliceOfN(rapid.IntRange(1, 5_000_000), 1, 50).Draw(t, "counts")
		samples := make([]series.Sample, len(counts))
		sum := 0.0
		for i, c := range counts {
			samples[i] = series.Sample{Timestamp: int64(i), WordCount: c}
			sum += float64(c)
		}
		mean := sum / float64(len(counts))

		scale, err := ComputeScale(samples)
		if err != nil {
			t.Fatalf("ComputeScale: %v", err)
		}
		if math.Pow10(scale.Prefix) > mean || mean >= math.Pow10(scale.Prefix+1) {
			t.Fatalf("prefix %d does not bracket mean %v", scale.Prefix, mean)
		}
		scaledMean := mean / math.Pow10(scale.Prefix)
		if scaledMean < 1 || scaledMean >= 10 {
			t.Fatalf("scaled mean %v outside [1, 10)", scaledMean)
		}
	})
}
