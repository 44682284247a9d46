package grape

const (
	BaseItemValue   int64 = 100_000
	DiminishingStep int64 = 10_000
)

// Payout is the reward for surviving a draw of drawCount items.
// Flat: drawCount * 100000.
// Diminishing: the i-th item (0-indexed) is worth 100000 - 10000*i, floored at 0,
// so items past the 10th add nothing.
func Payout(drawCount int, diminishing bool) int64 {
	if drawCount <= 0 {
		return 0
	}
	if !diminishing {
		return int64(drawCount) * BaseItemValue
	}
	var total int64
	for i := 0; i < drawCount; i++ {
		v := BaseItemValue - int64(i)*DiminishingStep
		if v <= 0 {
			break
		}
		total += v
	}
	return total
}
