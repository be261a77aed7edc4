package analytics

// Trend returns the signed percentage change of current versus previous.
// When the prior period is zero and the current one is not, there is no
// meaningful base to compare against, so the result is nil ("new") and
// marshals to JSON null; rendering a from-zero change as a finite
// percentage would be misleading. Both zero yields 0. Rounding to one
// decimal happens at the presentation boundary, not here.
func Trend(current, previous float64) *float64 {
	if previous == 0 {
		if current > 0 {
			return nil
		}
		zero := 0.0
		return &zero
	}
	v := 100 * (current - previous) / previous
	return &v
}

// TrendCount is Trend over integer counts.
func TrendCount(current, previous int) *float64 {
	return Trend(float64(current), float64(previous))
}
