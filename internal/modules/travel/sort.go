package travel

import (
	"math"
	"sort"
)

// SortOptions returns a sorted copy of opts. The input is never modified.
func SortOptions(opts []TravelOption, mode SortMode) []TravelOption {
	out := make([]TravelOption, len(opts))
	copy(out, opts)

	switch mode {
	case SortLowestPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortShortestDuration:
		sort.SliceStable(out, func(i, j int) bool {
			return DurationKey(out[i].Duration) < DurationKey(out[j].Duration)
		})
	}
	return out
}

// DurationKey is the integer formed by every digit of s in order, so
// "1h 30m" is 130 and "3h" is 3. No digits gives 0; overflow saturates.
//
// TODO: switch to unit-aware minutes once multi-part durations stop being
// ranked by this key (see DESIGN.md, duration sort).
func DurationKey(s string) int64 {
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		d := int64(r - '0')
		if n > (math.MaxInt64-d)/10 {
			return math.MaxInt64
		}
		n = n*10 + d
	}
	return n
}
