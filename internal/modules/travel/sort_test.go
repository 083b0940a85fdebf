package travel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func providers(opts []TravelOption) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Provider
	}
	return out
}

func TestSortOptions_LowestPrice(t *testing.T) {
	in := []TravelOption{
		{Provider: "a", Price: 500},
		{Provider: "b", Price: 100},
		{Provider: "c", Price: 300},
		{Provider: "d", Price: 100},
	}
	got := SortOptions(in, SortLowestPrice)
	assert.Equal(t, []string{"b", "d", "c", "a"}, providers(got))
	assert.Equal(t, []string{"a", "b", "c", "d"}, providers(in), "input must not be reordered")
}

func TestSortOptions_ShortestDuration(t *testing.T) {
	in := []TravelOption{
		{Provider: "x", Duration: "3h"},
		{Provider: "y", Duration: "45m"},
		{Provider: "z", Duration: "1h 30m"},
	}
	got := SortOptions(in, SortShortestDuration)
	assert.Equal(t, []string{"x", "z", "y"}, providers(got))
}

func TestSortOptions_Default(t *testing.T) {
	in := []TravelOption{{Provider: "b", Price: 2}, {Provider: "a", Price: 1}}
	assert.Equal(t, []string{"b", "a"}, providers(SortOptions(in, SortDefault)))
	assert.Empty(t, SortOptions(nil, SortLowestPrice))
}

func TestDurationKey(t *testing.T) {
	tests := map[string]int64{
		"3h":                   3,
		"45m":                  45,
		"1h 30m":               130,
		"N/A":                  0,
		"":                     0,
		"2 days":               2,
		"99999999999999999999": math.MaxInt64,
	}
	for in, want := range tests {
		assert.Equal(t, want, DurationKey(in), in)
	}
}
