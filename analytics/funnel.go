package analytics

import "math"

// FunnelStep is one stage of an ordered conversion funnel. Percentage is
// relative to the first step's count; Dropoff is the relative loss versus
// the immediately preceding step, clamped at 0 so a step that grows never
// reports a negative drop-off.
type FunnelStep struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Dropoff    float64 `json:"dropoff"`
}

// StepCount is a raw funnel input: a stage name and its count, given in
// traversal order (top of funnel first). A single funnel must count one
// thing consistently: all raw event counts or all unique-user counts, never
// a mix.
type StepCount struct {
	Name  string
	Count int
}

// BuildFunnel annotates ordered step counts with percentage-of-top and
// drop-off-from-previous. The first step is always exactly 100 / 0. A zero
// base substitutes 1 as the denominator so an empty funnel yields 0s for
// the later steps instead of NaN. All percentages are rounded to one
// decimal place.
func BuildFunnel(steps []StepCount) []FunnelStep {
	out := make([]FunnelStep, len(steps))
	if len(steps) == 0 {
		return out
	}
	base := steps[0].Count
	if base == 0 {
		base = 1
	}
	for i, s := range steps {
		if i == 0 {
			out[i] = FunnelStep{Name: s.Name, Count: s.Count, Percentage: 100, Dropoff: 0}
			continue
		}
		prev := steps[i-1].Count
		prevBase := prev
		if prevBase == 0 {
			prevBase = 1
		}
		lost := prev - s.Count
		if lost < 0 {
			lost = 0
		}
		out[i] = FunnelStep{
			Name:       s.Name,
			Count:      s.Count,
			Percentage: Round1(100 * float64(s.Count) / float64(base)),
			Dropoff:    Round1(100 * float64(lost) / float64(prevBase)),
		}
	}
	return out
}

// Round1 rounds to one decimal place. Every percentage the dashboard
// displays goes through the same rounding so adjacent figures stay
// consistent.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// Rate returns a/b as a percentage rounded to one decimal, 0 when b is 0.
func Rate(a, b int) float64 {
	if b <= 0 {
		return 0
	}
	return Round1(100 * float64(a) / float64(b))
}
