package scope

// DefaultMaxPoints bounds the number of points drawn per trace.
const DefaultMaxPoints = 4000

// Decimate reduces xs/ys to at most maxPoints samples by keeping the
// minimum and maximum of each bucket in time order, so peaks survive. The
// result is appended to dstX/dstY, which are truncated first so buffers can
// be reused across frames. Inputs shorter than maxPoints are copied as-is.
func Decimate(dstX, dstY, xs, ys []float64, maxPoints int) ([]float64, []float64) {
	dstX, dstY = dstX[:0], dstY[:0]
	n := min(len(xs), len(ys))
	if maxPoints < 2 || n <= maxPoints {
		return append(dstX, xs[:n]...), append(dstY, ys[:n]...)
	}
	buckets := maxPoints / 2
	for b := 0; b < buckets; b++ {
		lo := b * n / buckets
		hi := (b + 1) * n / buckets
		if lo >= hi {
			continue
		}
		iMin, iMax := lo, lo
		for i := lo + 1; i < hi; i++ {
			if ys[i] < ys[iMin] {
				iMin = i
			}
			if ys[i] > ys[iMax] {
				iMax = i
			}
		}
		first, second := iMin, iMax
		if second < first {
			first, second = second, first
		}
		dstX = append(dstX, xs[first])
		dstY = append(dstY, ys[first])
		if second != first {
			dstX = append(dstX, xs[second])
			dstY = append(dstY, ys[second])
		}
	}
	return dstX, dstY
}
