package grape

import "math"

// DefaultBins matches the reward chart of the interactive screen.
const DefaultBins = 20

// MaxBins bounds request-supplied bin counts.
const MaxBins = 1000

// Bucket is one histogram bin covering [Lo, Hi); the last bin also includes Hi.
type Bucket struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram buckets values into bins equal-width bins spanning [min, max].
// When every value is equal the range is widened to [v-0.5, v+0.5].
// bins <= 0 uses DefaultBins; bins above MaxBins are clamped.
func Histogram(values []int64, bins int) []Bucket {
	if bins <= 0 {
		bins = DefaultBins
	}
	if bins > MaxBins {
		bins = MaxBins
	}
	if len(values) == 0 {
		return nil
	}
	lo, hi := float64(values[0]), float64(values[0])
	for _, v := range values[1:] {
		lo = math.Min(lo, float64(v))
		hi = math.Max(hi, float64(v))
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]Bucket, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi

	for _, v := range values {
		i := int((float64(v) - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}
